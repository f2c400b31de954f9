// Package auth keeps the signed-in admin's credentials and drives login,
// logout and session expiry.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/adroitalarm/shopdesk/internal/model"
)

// Cookie backend keys.
const (
	CookieToken     = "token"
	CookieAuthToken = "auth_token"
	CookieUserID    = "user_id"
	CookieRoleID    = "role_id"
)

// Local backend keys.
const (
	LocalToken         = "token"
	LocalAuthToken     = "authToken"
	LocalUserData      = "userData"
	LocalAuthenticated = "authenticated"
)

// Credentials identify the signed-in admin.
type Credentials struct {
	Token         string
	UserID        string
	RoleID        string
	Authenticated bool
}

// IsAdmin reports whether the role is the admin role.
func (c Credentials) IsAdmin() bool {
	id, err := strconv.Atoi(c.RoleID)
	return err == nil && id == model.AdminRoleID
}

// Backend is a flat string key/value store.
type Backend interface {
	Load(ctx context.Context) (map[string]string, error)
	Save(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}

// CredentialStore reads and writes credentials.
type CredentialStore interface {
	Get(ctx context.Context) (Credentials, error)
	Set(ctx context.Context, creds Credentials) error
	Clear(ctx context.Context) error
}

type userData struct {
	UserID model.Numeric `json:"user_id"`
	RoleID model.Numeric `json:"role_id"`
}

// DualStore mirrors credentials into a cookie backend and a local backend.
// Reads prefer the cookie backend. Writes succeed if either backend
// accepts them.
type DualStore struct {
	cookie Backend
	local  Backend
	logger *slog.Logger
}

// NewDualStore creates a store over both backends.
func NewDualStore(cookie, local Backend, logger *slog.Logger) *DualStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &DualStore{
		cookie: cookie,
		local:  local,
		logger: logger.With("component", "credentials"),
	}
}

// Get merges both backends. It fails only when neither can be read.
func (d *DualStore) Get(ctx context.Context) (Credentials, error) {
	cookie, cookieErr := d.cookie.Load(ctx)
	if cookieErr != nil {
		d.logger.Warn("cookie store unreadable", "error", cookieErr)
	}
	local, localErr := d.local.Load(ctx)
	if localErr != nil {
		d.logger.Warn("local store unreadable", "error", localErr)
	}
	if cookieErr != nil && localErr != nil {
		return Credentials{}, fmt.Errorf("reading credentials: %w", errors.Join(cookieErr, localErr))
	}

	var ud userData
	if raw := local[LocalUserData]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &ud); err != nil {
			d.logger.Debug("ignoring malformed userData", "error", err)
		}
	}

	creds := Credentials{
		Token:  firstNonEmpty(cookie[CookieToken], cookie[CookieAuthToken], local[LocalToken], local[LocalAuthToken]),
		UserID: firstNonEmpty(cookie[CookieUserID], ud.UserID.String()),
		RoleID: firstNonEmpty(cookie[CookieRoleID], ud.RoleID.String()),
	}
	creds.Authenticated = creds.Token != "" || local[LocalAuthenticated] == "true"
	return creds, nil
}

// Set writes creds to both backends.
func (d *DualStore) Set(ctx context.Context, creds Credentials) error {
	cookieErr := d.cookie.Save(ctx, map[string]string{
		CookieToken:  creds.Token,
		CookieUserID: creds.UserID,
		CookieRoleID: creds.RoleID,
	})
	if cookieErr != nil {
		d.logger.Warn("cookie store write failed", "error", cookieErr)
	}

	data, err := json.Marshal(userData{
		UserID: model.Numeric(creds.UserID),
		RoleID: model.Numeric(creds.RoleID),
	})
	if err != nil {
		return fmt.Errorf("encoding user data: %w", err)
	}
	localErr := d.local.Save(ctx, map[string]string{
		LocalAuthToken:     creds.Token,
		LocalUserData:      string(data),
		LocalAuthenticated: "true",
	})
	if localErr != nil {
		d.logger.Warn("local store write failed", "error", localErr)
	}

	if cookieErr != nil && localErr != nil {
		return fmt.Errorf("storing credentials: %w", errors.Join(cookieErr, localErr))
	}
	return nil
}

// Clear removes credentials from both backends.
func (d *DualStore) Clear(ctx context.Context) error {
	cookieErr := d.cookie.Delete(ctx, CookieToken, CookieAuthToken, CookieUserID, CookieRoleID)
	localErr := d.local.Delete(ctx, LocalToken, LocalAuthToken, LocalUserData, LocalAuthenticated)
	if err := errors.Join(cookieErr, localErr); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	return nil
}

// Token returns the bearer token, or "" when signed out.
func (d *DualStore) Token(ctx context.Context) (string, error) {
	creds, err := d.Get(ctx)
	if err != nil {
		return "", err
	}
	return creds.Token, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
