// Package sheets exports report tables to Google Sheets.
package sheets

import (
	"errors"
	"fmt"
	"time"

	"github.com/adroitalarm/shopdesk/internal/common"
)

// DefaultSpreadsheetName titles a spreadsheet created on first export.
const DefaultSpreadsheetName = "Shop Sales Reports"

// AuthMethod is how the writer obtains Google credentials.
type AuthMethod int

// Supported auth methods.
const (
	AuthNone AuthMethod = iota
	AuthOAuth
	AuthServiceAccount
)

var (
	errNoAuth        = errors.New("no authentication method configured")
	errAmbiguousAuth = errors.New("multiple authentication methods configured; use either OAuth2 or service account")
)

// Config holds the Google Sheets writer settings.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	// SpreadsheetID selects an existing spreadsheet. When empty one named
	// SpreadsheetName is created and reused for the writer's lifetime.
	SpreadsheetID    string
	SpreadsheetName  string
	TimeZone         string
	BatchSize        int
	RetryAttempts    int
	RetryDelay       time.Duration
	EnableFormatting bool
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName:  DefaultSpreadsheetName,
		TimeZone:         "Australia/Sydney",
		BatchSize:        500,
		RetryAttempts:    3,
		RetryDelay:       time.Second,
		EnableFormatting: true,
	}
}

// Auth reports which credentials are configured. Partial OAuth credentials
// count as none.
func (c *Config) Auth() (AuthMethod, error) {
	oauth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	switch {
	case oauth && c.ServiceAccountPath != "":
		return AuthNone, errAmbiguousAuth
	case oauth:
		return AuthOAuth, nil
	case c.ServiceAccountPath != "":
		return AuthServiceAccount, nil
	default:
		return AuthNone, errNoAuth
	}
}

// Validate reports the first problem with c, wrapped in
// common.ErrInvalidConfig.
func (c *Config) Validate() error {
	if _, err := c.Auth(); err != nil {
		return fmt.Errorf("%w: sheets: %w", common.ErrInvalidConfig, err)
	}

	var problem string
	switch {
	case c.BatchSize <= 0:
		problem = "batch size must be positive"
	case c.RetryAttempts < 0:
		problem = "retry attempts cannot be negative"
	case c.RetryDelay < 0:
		problem = "retry delay cannot be negative"
	}
	if problem == "" && c.TimeZone != "" {
		if _, err := time.LoadLocation(c.TimeZone); err != nil {
			problem = fmt.Sprintf("unknown time zone %q", c.TimeZone)
		}
	}
	if problem != "" {
		return fmt.Errorf("%w: sheets: %s", common.ErrInvalidConfig, problem)
	}
	return nil
}
