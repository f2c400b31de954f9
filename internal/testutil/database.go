// Package testutil provides fixtures shared across package tests: an
// in-memory database, a fake back-office API and signed-in sessions.
package testutil

import (
	"context"
	"strconv"
	"testing"

	"github.com/adroitalarm/shopdesk/internal/auth"
	"github.com/adroitalarm/shopdesk/internal/model"
	"github.com/adroitalarm/shopdesk/internal/storage"
)

// SetupTestDB creates a migrated in-memory database seeded with exports.
// It is closed when the test ends.
func SetupTestDB(t *testing.T, exports ...storage.ExportRecord) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.Open(context.Background(), storage.MemoryPath, nil)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	SeedExports(t, store, exports...)
	return store
}

// SeedExports records exports in store.
func SeedExports(t *testing.T, store *storage.SQLiteStorage, exports ...storage.ExportRecord) {
	t.Helper()
	for _, rec := range exports {
		if _, err := store.RecordExport(context.Background(), rec); err != nil {
			t.Fatalf("failed to seed export %s/%s: %v", rec.ReportDate, rec.Target, err)
		}
	}
}

// AdminToken is the bearer token SignIn stores.
const AdminToken = "test-admin-token"

// SignIn writes admin credentials to the cookie file at path, the way a
// successful login leaves them.
func SignIn(t *testing.T, cookiePath string) auth.Credentials {
	t.Helper()
	return SignInAs(t, cookiePath, auth.Credentials{
		Token:  AdminToken,
		UserID: "1",
		RoleID: strconv.Itoa(model.AdminRoleID),
	})
}

// SignInAs writes creds to the cookie file at path.
func SignInAs(t *testing.T, cookiePath string, creds auth.Credentials) auth.Credentials {
	t.Helper()
	err := auth.NewCookieJar(cookiePath).Save(context.Background(), map[string]string{
		auth.CookieToken:  creds.Token,
		auth.CookieUserID: creds.UserID,
		auth.CookieRoleID: creds.RoleID,
	})
	if err != nil {
		t.Fatalf("failed to store credentials: %v", err)
	}
	creds.Authenticated = creds.Token != ""
	return creds
}
