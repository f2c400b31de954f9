package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := Open(context.Background(), MemoryPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpen_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "shopdesk.db")
	store, err := Open(context.Background(), path, nil)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.Equal(t, path, store.Path())
	v, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, v)
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ", nil)
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	local := createTestStorage(t).LocalStorage()

	values, err := local.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, values)

	require.NoError(t, local.Save(ctx, map[string]string{"authToken": "abc", "authenticated": "true"}))
	require.NoError(t, local.Save(ctx, map[string]string{"authToken": "def"}))

	values, err = local.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"authToken": "def", "authenticated": "true"}, values)

	v, ok, err := local.Get(ctx, "authToken")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "def", v)

	require.NoError(t, local.Delete(ctx, "authToken"))
	_, ok, err = local.Get(ctx, "authToken")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, local.Delete(ctx))
	values, err = local.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestLocalStorage_RejectsEmptyKey(t *testing.T) {
	local := createTestStorage(t).LocalStorage()
	err := local.Save(context.Background(), map[string]string{"": "x"})
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestRecordExport_IdempotentPerDateAndTarget(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	at := time.Date(2025, 3, 2, 1, 0, 0, 0, time.UTC)

	wrote, err := store.RecordExport(ctx, ExportRecord{ReportDate: "2025-03-01", Target: TargetXLSX, Location: "/tmp/a.xlsx", ExportedAt: at})
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = store.RecordExport(ctx, ExportRecord{ReportDate: "2025-03-01", Target: TargetXLSX, Location: "/tmp/b.xlsx", ExportedAt: at.Add(time.Hour)})
	require.NoError(t, err)
	assert.False(t, wrote)

	wrote, err = store.RecordExport(ctx, ExportRecord{ReportDate: "2025-03-01", Target: TargetSheets, Location: "sheet-id", ExportedAt: at.Add(2 * time.Hour)})
	require.NoError(t, err)
	assert.True(t, wrote)

	has, err := store.HasExport(ctx, "2025-03-01", TargetXLSX)
	require.NoError(t, err)
	assert.True(t, has)
	has, err = store.HasExport(ctx, "2025-03-02", TargetXLSX)
	require.NoError(t, err)
	assert.False(t, has)

	recent, err := store.RecentExports(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, TargetSheets, recent[0].Target)
	assert.Equal(t, "/tmp/a.xlsx", recent[1].Location)
}

func TestRecordExport_Validation(t *testing.T) {
	store := createTestStorage(t)
	_, err := store.RecordExport(context.Background(), ExportRecord{ReportDate: "03/01/2025", Target: TargetXLSX})
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = store.RecordExport(context.Background(), ExportRecord{ReportDate: "2025-03-01"})
	assert.ErrorIs(t, err, ErrEmptyString)
}
