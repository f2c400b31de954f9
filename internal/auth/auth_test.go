package auth

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adroitalarm/shopdesk/internal/api"
	"github.com/adroitalarm/shopdesk/internal/common"
	"github.com/adroitalarm/shopdesk/internal/model"
)

type memBackend struct {
	values map[string]string
	err    error
}

func newMemBackend() *memBackend {
	return &memBackend{values: map[string]string{}}
}

func (m *memBackend) Load(context.Context) (map[string]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return maps.Clone(m.values), nil
}

func (m *memBackend) Save(_ context.Context, values map[string]string) error {
	if m.err != nil {
		return m.err
	}
	maps.Copy(m.values, values)
	return nil
}

func (m *memBackend) Delete(_ context.Context, keys ...string) error {
	if m.err != nil {
		return m.err
	}
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

type mockLoginClient struct {
	mock.Mock
}

func (m *mockLoginClient) Login(ctx context.Context, email, password string) (model.LoginResponse, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.LoginResponse), args.Error(1)
}

func loginResponse(token string, userID, roleID string) model.LoginResponse {
	var resp model.LoginResponse
	resp.Token = token
	resp.Data.UserID = model.Numeric(userID)
	resp.Data.RoleID = model.Numeric(roleID)
	return resp
}

func TestDualStore_SetWritesBothBackends(t *testing.T) {
	ctx := context.Background()
	cookie, local := newMemBackend(), newMemBackend()
	store := NewDualStore(cookie, local, nil)

	require.NoError(t, store.Set(ctx, Credentials{Token: "tok", UserID: "7", RoleID: "1"}))

	assert.Equal(t, map[string]string{"token": "tok", "user_id": "7", "role_id": "1"}, cookie.values)
	assert.Equal(t, "tok", local.values["authToken"])
	assert.Equal(t, "true", local.values["authenticated"])
	assert.JSONEq(t, `{"user_id":7,"role_id":1}`, local.values["userData"])

	creds, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, Credentials{Token: "tok", UserID: "7", RoleID: "1", Authenticated: true}, creds)
	assert.True(t, creds.IsAdmin())
}

func TestDualStore_GetPrefersCookie(t *testing.T) {
	tests := []struct {
		name   string
		cookie map[string]string
		local  map[string]string
		want   string
	}{
		{name: "cookie token", cookie: map[string]string{"token": "c"}, local: map[string]string{"authToken": "l"}, want: "c"},
		{name: "cookie auth_token", cookie: map[string]string{"auth_token": "c2"}, local: map[string]string{"authToken": "l"}, want: "c2"},
		{name: "local token", local: map[string]string{"token": "l1", "authToken": "l2"}, want: "l1"},
		{name: "local authToken", local: map[string]string{"authToken": "l2"}, want: "l2"},
		{name: "signed out", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cookie, local := newMemBackend(), newMemBackend()
			maps.Copy(cookie.values, tt.cookie)
			maps.Copy(local.values, tt.local)

			tok, err := NewDualStore(cookie, local, nil).Token(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, tok)
		})
	}
}

func TestDualStore_OneBackendFailing(t *testing.T) {
	ctx := context.Background()
	cookie, local := newMemBackend(), newMemBackend()
	cookie.err = errors.New("disk full")
	store := NewDualStore(cookie, local, nil)

	require.NoError(t, store.Set(ctx, Credentials{Token: "tok", UserID: "7", RoleID: "1"}))
	tok, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)

	local.err = errors.New("locked")
	assert.Error(t, store.Set(ctx, Credentials{Token: "x"}))
	_, err = store.Get(ctx)
	assert.ErrorContains(t, err, "disk full")
	assert.ErrorContains(t, err, "locked")
}

func TestDualStore_Clear(t *testing.T) {
	ctx := context.Background()
	cookie, local := newMemBackend(), newMemBackend()
	local.values["theme"] = "dark"
	store := NewDualStore(cookie, local, nil)
	require.NoError(t, store.Set(ctx, Credentials{Token: "tok", UserID: "7", RoleID: "1"}))

	require.NoError(t, Logout(ctx, store))
	assert.Empty(t, cookie.values)
	assert.Equal(t, map[string]string{"theme": "dark"}, local.values)

	creds, err := store.Get(ctx)
	require.NoError(t, err)
	assert.False(t, creds.Authenticated)
}

func TestCookieJar(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "cookies.json")
	jar := NewCookieJar(path)
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	jar.now = func() time.Time { return now }

	values, err := jar.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, values)

	require.NoError(t, jar.Save(ctx, map[string]string{"token": "a", "user_id": "7"}))
	require.NoError(t, jar.Save(ctx, map[string]string{"token": "b"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	values, err = jar.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"token": "b", "user_id": "7"}, values)

	now = now.Add(CookieTTL)
	values, err = jar.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, values, "cookies expire after a day")
}

func TestCookieJar_DeleteRemovesEmptyFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cookies.json")
	jar := NewCookieJar(path)

	require.NoError(t, jar.Save(ctx, map[string]string{"token": "a", "role_id": "1"}))
	require.NoError(t, jar.Delete(ctx, "token"))
	values, err := jar.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"role_id": "1"}, values)

	require.NoError(t, jar.Delete(ctx, "role_id"))
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
	require.NoError(t, jar.Delete(ctx, "role_id"))
}

func TestCookieJar_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0600))
	_, err := NewCookieJar(path).Load(context.Background())
	assert.Error(t, err)
}

func TestSession_ExpireOnce(t *testing.T) {
	ctx := context.Background()
	cookie, local := newMemBackend(), newMemBackend()
	store := NewDualStore(cookie, local, nil)
	require.NoError(t, store.Set(ctx, Credentials{Token: "tok"}))

	var calls atomic.Int32
	session := NewSession(store, func() { calls.Add(1) }, nil)

	session.Expire(ctx)
	session.Expire(ctx)
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, session.Expired())

	tok, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	session.Reset()
	assert.False(t, session.Expired())
	session.Expire(ctx)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSession_DoneClosesOnExpire(t *testing.T) {
	ctx := context.Background()
	session := NewSession(NewDualStore(newMemBackend(), newMemBackend(), nil), nil, nil)

	first := session.Done()
	select {
	case <-first:
		t.Fatal("done before expiry")
	default:
	}

	session.Expire(ctx)
	select {
	case <-first:
	default:
		t.Fatal("done not closed after expiry")
	}

	session.Reset()
	select {
	case <-session.Done():
		t.Fatal("reset session reports done")
	default:
	}
}

func TestLogin(t *testing.T) {
	apiErr := func(status int, msg string) error {
		return fmt.Errorf("login failed: %w", &api.Error{Method: "POST", Path: "/login", Status: status, Message: msg})
	}

	tests := []struct {
		name      string
		email     string
		password  string
		resp      model.LoginResponse
		err       error
		noCall    bool
		wantMsg   string
		wantIs    error
		wantToken string
	}{
		{name: "admin", email: "admin@shop.com", password: "secret1", resp: loginResponse("tok", "3", "1"), wantToken: "tok"},
		{name: "invalid form", email: "nope", password: "123", noCall: true, wantIs: common.ErrValidation,
			wantMsg: "Please enter a valid email address; Password must be at least 6 characters"},
		{name: "not admin", email: "user@shop.com", password: "secret1", resp: loginResponse("tok", "4", "2"),
			wantMsg: "Access denied. Admin privileges required.", wantIs: common.ErrAccessDenied},
		{name: "bad credentials", email: "admin@shop.com", password: "secret1", err: apiErr(http.StatusUnauthorized, "Unauthorized"),
			wantMsg: "Invalid email or password"},
		{name: "server error", email: "admin@shop.com", password: "secret1", err: apiErr(http.StatusInternalServerError, ""),
			wantMsg: "Server error. Please try again later."},
		{name: "server message", email: "admin@shop.com", password: "secret1", err: apiErr(http.StatusForbidden, "Account locked"),
			wantMsg: "Account locked"},
		{name: "network", email: "admin@shop.com", password: "secret1", err: fmt.Errorf("%w: dial tcp", common.ErrRequestFailed),
			wantMsg: "Network error. Please check your connection."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			client := &mockLoginClient{}
			if !tt.noCall {
				client.On("Login", ctx, tt.email, tt.password).Return(tt.resp, tt.err).Once()
			}
			cookie, local := newMemBackend(), newMemBackend()
			store := NewDualStore(cookie, local, nil)

			creds, err := Login(ctx, client, store, tt.email, tt.password)
			client.AssertExpectations(t)

			if tt.wantToken != "" {
				require.NoError(t, err)
				assert.Equal(t, tt.wantToken, creds.Token)
				stored, _ := store.Token(ctx)
				assert.Equal(t, tt.wantToken, stored)
				return
			}

			require.Error(t, err)
			var userErr *common.UserError
			require.ErrorAs(t, err, &userErr)
			assert.Equal(t, tt.wantMsg, userErr.UserMessage)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			assert.Empty(t, cookie.values, "nothing stored on failure")
		})
	}
}
