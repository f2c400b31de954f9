package storage

import (
	"context"
	"fmt"
)

// ExpectedSchemaVersion is the version Migrate must reach.
const ExpectedSchemaVersion = 2

// Migration is one schema step, applied in a single transaction.
type Migration struct {
	Description string
	Statements  []string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "local storage key/value table",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS local_storage (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
		},
	},
	{
		Version:     2,
		Description: "report export history",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS export_history (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				report_date TEXT NOT NULL,
				target TEXT NOT NULL,
				location TEXT NOT NULL,
				exported_at DATETIME NOT NULL,
				UNIQUE(report_date, target)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_export_history_exported_at ON export_history(exported_at)`,
		},
	},
}

// Migrate applies every migration newer than the stored user_version.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := checkArgs(ctx); err != nil {
		return err
	}

	current, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := s.apply(ctx, m); err != nil {
			return err
		}
		s.logger.Debug("applied migration", "version", m.Version, "description", m.Description)
	}

	if v, err := s.SchemaVersion(ctx); err != nil {
		return err
	} else if v != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, v)
	}
	return nil
}

func (s *SQLiteStorage) apply(ctx context.Context, m Migration) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migration %d: begin: %w", m.Version, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range m.Statements {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", m.Version, err)
		}
	}
	// PRAGMA does not take bound parameters.
	if _, err = tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
		return fmt.Errorf("migration %d: set version: %w", m.Version, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("migration %d: commit: %w", m.Version, err)
	}
	return nil
}

// SchemaVersion reads PRAGMA user_version.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return v, nil
}
