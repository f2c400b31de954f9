package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/adroitalarm/shopdesk/internal/api"
	"github.com/adroitalarm/shopdesk/internal/common"
	"github.com/adroitalarm/shopdesk/internal/model"
	"github.com/adroitalarm/shopdesk/internal/validation"
)

// LoginClient performs the credential exchange.
type LoginClient interface {
	Login(ctx context.Context, email, password string) (model.LoginResponse, error)
}

// Login validates the form, signs in and stores the credentials. Only admin
// accounts are accepted.
func Login(ctx context.Context, client LoginClient, store CredentialStore, email, password string) (Credentials, error) {
	errs := validation.LoginRules.Validate(map[string]string{
		validation.FieldEmail:    email,
		validation.FieldPassword: password,
	})
	if err := errs.Err(); err != nil {
		return Credentials{}, err
	}

	resp, err := client.Login(ctx, email, password)
	if err != nil {
		return Credentials{}, loginError(err)
	}

	if resp.Data.RoleID.Int() != model.AdminRoleID {
		return Credentials{}, common.NewUserError("Access denied. Admin privileges required.", common.ErrAccessDenied)
	}
	if resp.Token == "" {
		return Credentials{}, fmt.Errorf("%w: login response has no token", common.ErrRequestFailed)
	}

	creds := Credentials{
		Token:         resp.Token,
		UserID:        resp.Data.UserID.String(),
		RoleID:        resp.Data.RoleID.String(),
		Authenticated: true,
	}
	if err := store.Set(ctx, creds); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// Logout forgets the stored credentials.
func Logout(ctx context.Context, store CredentialStore) error {
	return store.Clear(ctx)
}

func loginError(err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusUnauthorized:
			return common.NewUserError("Invalid email or password", err)
		case http.StatusInternalServerError:
			return common.NewUserError("Server error. Please try again later.", err)
		}
		if apiErr.Message != "" {
			return common.NewUserError(apiErr.Message, err)
		}
		return common.NewUserError("Login failed", err)
	}
	if errors.Is(err, common.ErrRequestFailed) {
		return common.NewUserError("Network error. Please check your connection.", err)
	}
	return common.NewUserError("An unexpected error occurred", err)
}
