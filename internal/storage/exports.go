package storage

import (
	"context"
	"fmt"
	"time"
)

// Export targets.
const (
	TargetXLSX   = "xlsx"
	TargetSheets = "sheets"
)

// ExportRecord is one completed report export.
type ExportRecord struct {
	ExportedAt time.Time
	ReportDate string
	Target     string
	Location   string
	ID         int64
}

// RecordExport stores rec unless the same date and target were already
// exported. It reports whether a row was written.
func (s *SQLiteStorage) RecordExport(ctx context.Context, rec ExportRecord) (bool, error) {
	if err := checkArgs(ctx, "target", rec.Target); err != nil {
		return false, err
	}
	if err := checkDate(rec.ReportDate); err != nil {
		return false, err
	}
	if rec.ExportedAt.IsZero() {
		rec.ExportedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO export_history (report_date, target, location, exported_at)
		VALUES (?, ?, ?, ?)
	`, rec.ReportDate, rec.Target, rec.Location, rec.ExportedAt.UTC())
	if err != nil {
		return false, fmt.Errorf("failed to record export: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check export insert: %w", err)
	}
	return n > 0, nil
}

// HasExport reports whether date was already exported to target.
func (s *SQLiteStorage) HasExport(ctx context.Context, date, target string) (bool, error) {
	if err := checkArgs(ctx); err != nil {
		return false, err
	}
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM export_history WHERE report_date = ? AND target = ?`,
		date, target).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to query export history: %w", err)
	}
	return n > 0, nil
}

// RecentExports lists exports, newest first. limit <= 0 returns all.
func (s *SQLiteStorage) RecentExports(ctx context.Context, limit int) ([]ExportRecord, error) {
	if err := checkArgs(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, report_date, target, location, exported_at
		FROM export_history
		ORDER BY exported_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query export history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []ExportRecord
	for rows.Next() {
		var rec ExportRecord
		if err := rows.Scan(&rec.ID, &rec.ReportDate, &rec.Target, &rec.Location, &rec.ExportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan export history: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
