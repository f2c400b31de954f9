package storage

import (
	"context"
	"fmt"
	"strings"
)

// LocalStorage is a key/value view over the local_storage table. It is the
// "local" credential backend.
type LocalStorage struct {
	s *SQLiteStorage
}

// LocalStorage returns the key/value store.
func (s *SQLiteStorage) LocalStorage() *LocalStorage {
	return &LocalStorage{s: s}
}

// Load returns every stored key.
func (l *LocalStorage) Load(ctx context.Context) (map[string]string, error) {
	if err := checkArgs(ctx); err != nil {
		return nil, err
	}

	rows, err := l.s.db.QueryContext(ctx, `SELECT key, value FROM local_storage`)
	if err != nil {
		return nil, fmt.Errorf("failed to query local storage: %w", err)
	}
	defer func() { _ = rows.Close() }()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("failed to scan local storage row: %w", err)
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read local storage: %w", err)
	}
	return values, nil
}

// Get returns one value and whether it exists.
func (l *LocalStorage) Get(ctx context.Context, key string) (string, bool, error) {
	values, err := l.Load(ctx)
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Save upserts values in a single transaction.
func (l *LocalStorage) Save(ctx context.Context, values map[string]string) error {
	if err := checkArgs(ctx); err != nil {
		return err
	}

	tx, err := l.s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO local_storage (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for k, v := range values {
		if err := checkArgs(ctx, "key", k); err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, k, v); err != nil {
			return fmt.Errorf("failed to store %q: %w", k, err)
		}
	}
	return tx.Commit()
}

// Delete removes keys. With no keys it removes everything.
func (l *LocalStorage) Delete(ctx context.Context, keys ...string) error {
	if err := checkArgs(ctx); err != nil {
		return err
	}

	query := `DELETE FROM local_storage`
	args := make([]any, 0, len(keys))
	if len(keys) > 0 {
		query += ` WHERE key IN (?` + strings.Repeat(",?", len(keys)-1) + `)`
		for _, k := range keys {
			args = append(args, k)
		}
	}
	if _, err := l.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete local storage keys: %w", err)
	}
	return nil
}
