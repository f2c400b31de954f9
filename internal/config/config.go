package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"

	"github.com/adroitalarm/shopdesk/internal/common"
)

// Config is the resolved application configuration.
type Config struct {
	API         APIConfig
	Refresh     RefreshConfig
	Grid        GridConfig
	Credentials CredentialsConfig
	Database    DatabaseConfig
	Logging     LoggingConfig
	Export      ExportConfig
}

// APIConfig controls the backend client.
type APIConfig struct {
	BaseURL        string
	Timeout        time.Duration
	PageTimeout    time.Duration
	MaxConcurrency int
	MaxAttempts    int
}

// RefreshConfig holds per-view polling intervals. Zero disables polling.
type RefreshConfig struct {
	Orders        time.Duration
	Reviews       time.Duration
	Payments      time.Duration
	Notifications time.Duration
	RunTimeout    time.Duration
}

// GridConfig controls table rendering.
type GridConfig struct {
	PageLength int
}

// CredentialsConfig locates the cookie file.
type CredentialsConfig struct {
	CookiePath string
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

// ExportConfig controls report exports.
type ExportConfig struct {
	Dir      string
	Schedule string
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "https://shop.adroitalarm.com.au/api")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.page_timeout", 20*time.Second)
	v.SetDefault("api.max_concurrency", 6)
	v.SetDefault("api.max_attempts", 3)

	v.SetDefault("refresh.orders_interval", 5*time.Second)
	v.SetDefault("refresh.reviews_interval", 5*time.Second)
	v.SetDefault("refresh.payments_interval", 30*time.Second)
	v.SetDefault("refresh.notifications_interval", 30*time.Second)
	v.SetDefault("refresh.run_timeout", 60*time.Second)

	v.SetDefault("grid.page_length", 10)

	v.SetDefault("credentials.cookie_path", "~/.config/shopdesk/cookies.json")
	v.SetDefault("database.path", "~/.local/share/shopdesk/shopdesk.db")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "~/.local/state/shopdesk/shopdesk.log")

	v.SetDefault("export.dir", ".")
	v.SetDefault("schedule.cron", "15 0 * * *")
}

// Load resolves the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom resolves and validates the configuration held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		API: APIConfig{
			BaseURL:        v.GetString("api.base_url"),
			Timeout:        v.GetDuration("api.timeout"),
			PageTimeout:    v.GetDuration("api.page_timeout"),
			MaxConcurrency: v.GetInt("api.max_concurrency"),
			MaxAttempts:    v.GetInt("api.max_attempts"),
		},
		Refresh: RefreshConfig{
			Orders:        v.GetDuration("refresh.orders_interval"),
			Reviews:       v.GetDuration("refresh.reviews_interval"),
			Payments:      v.GetDuration("refresh.payments_interval"),
			Notifications: v.GetDuration("refresh.notifications_interval"),
			RunTimeout:    v.GetDuration("refresh.run_timeout"),
		},
		Grid: GridConfig{
			PageLength: v.GetInt("grid.page_length"),
		},
		Credentials: CredentialsConfig{
			CookiePath: ExpandPath(v.GetString("credentials.cookie_path")),
		},
		Database: DatabaseConfig{
			Path: ExpandPath(v.GetString("database.path")),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
			File:   ExpandPath(v.GetString("logging.file")),
		},
		Export: ExportConfig{
			Dir:      ExpandPath(v.GetString("export.dir")),
			Schedule: v.GetString("schedule.cron"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api.base_url must be an http(s) URL, got %q", common.ErrInvalidConfig, c.API.BaseURL)
	}

	durations := map[string]time.Duration{
		"api.timeout":                    c.API.Timeout,
		"api.page_timeout":               c.API.PageTimeout,
		"refresh.orders_interval":        c.Refresh.Orders,
		"refresh.reviews_interval":       c.Refresh.Reviews,
		"refresh.payments_interval":      c.Refresh.Payments,
		"refresh.notifications_interval": c.Refresh.Notifications,
		"refresh.run_timeout":            c.Refresh.RunTimeout,
	}
	for key, d := range durations {
		if d < 0 {
			return fmt.Errorf("%w: %s cannot be negative", common.ErrInvalidConfig, key)
		}
	}

	if c.API.MaxConcurrency < 1 {
		return fmt.Errorf("%w: api.max_concurrency must be at least 1", common.ErrInvalidConfig)
	}
	if c.API.MaxAttempts < 1 {
		return fmt.Errorf("%w: api.max_attempts must be at least 1", common.ErrInvalidConfig)
	}
	if c.Grid.PageLength < 1 {
		return fmt.Errorf("%w: grid.page_length must be at least 1", common.ErrInvalidConfig)
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		return fmt.Errorf("%w: logging.format must be console or json, got %q", common.ErrInvalidConfig, c.Logging.Format)
	}
	if c.Export.Schedule != "" {
		if _, err := cron.ParseStandard(c.Export.Schedule); err != nil {
			return fmt.Errorf("%w: schedule.cron: %w", common.ErrInvalidConfig, err)
		}
	}
	return nil
}
