package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/adroitalarm/shopdesk/internal/common"
)

func oauthConfigFixture() Config {
	c := DefaultConfig()
	c.ClientID, c.ClientSecret, c.RefreshToken = "client", "secret", "refresh"
	return c
}

func TestConfig_Auth(t *testing.T) {
	oauth := oauthConfigFixture()
	sa := DefaultConfig()
	sa.ServiceAccountPath = "/keys/sa.json"
	both := oauth
	both.ServiceAccountPath = "/keys/sa.json"
	partial := DefaultConfig()
	partial.ClientID, partial.RefreshToken = "client", "refresh"

	tests := []struct {
		name    string
		config  Config
		want    AuthMethod
		wantErr error
	}{
		{name: "oauth", config: oauth, want: AuthOAuth},
		{name: "service account", config: sa, want: AuthServiceAccount},
		{name: "none", config: DefaultConfig(), wantErr: errNoAuth},
		{name: "partial oauth", config: partial, wantErr: errNoAuth},
		{name: "both", config: both, wantErr: errAmbiguousAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.config.Auth()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing credentials", mutate: func(c *Config) { c.RefreshToken = "" }, errMsg: "no authentication method configured"},
		{name: "zero batch size", mutate: func(c *Config) { c.BatchSize = 0 }, errMsg: "batch size must be positive"},
		{name: "negative attempts", mutate: func(c *Config) { c.RetryAttempts = -1 }, errMsg: "retry attempts cannot be negative"},
		{name: "negative delay", mutate: func(c *Config) { c.RetryDelay = -time.Second }, errMsg: "retry delay cannot be negative"},
		{name: "bad time zone", mutate: func(c *Config) { c.TimeZone = "Mars/Olympus" }, errMsg: `unknown time zone "Mars/Olympus"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := oauthConfigFixture()
			tt.mutate(&c)
			err := c.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
