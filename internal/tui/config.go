package tui

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/adroitalarm/shopdesk/internal/tui/themes"
)

// Config holds dashboard configuration.
type Config struct {
	Context       context.Context
	Logger        *slog.Logger
	Input         io.Reader
	Output        io.Writer
	// Stop ends the dashboard when closed, as if the operator quit.
	Stop          <-chan struct{}
	Theme         themes.Theme
	ActionTimeout time.Duration
	FlashDuration time.Duration
	Width         int
	Height        int
	AltScreen     bool
}

// Option is a functional option for configuring the dashboard.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Context:       context.Background(),
		Logger:        slog.Default(),
		Theme:         themes.Default,
		ActionTimeout: 30 * time.Second,
		FlashDuration: 4 * time.Second,
		Width:         120,
		Height:        30,
		AltScreen:     true,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithContext sets the context row actions run under.
func WithContext(ctx context.Context) Option {
	return func(c *Config) {
		c.Context = ctx
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithActionTimeout bounds each row action.
func WithActionTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.ActionTimeout = d
		}
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithAltScreen controls whether the dashboard takes over the terminal.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}

// WithIO replaces the terminal the dashboard reads keys from and draws to.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(c *Config) {
		c.Input = in
		c.Output = out
	}
}

// WithStop ends the dashboard once stop is closed.
func WithStop(stop <-chan struct{}) Option {
	return func(c *Config) {
		c.Stop = stop
	}
}
