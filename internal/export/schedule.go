package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/adroitalarm/shopdesk/internal/model"
	"github.com/adroitalarm/shopdesk/internal/report"
	"github.com/adroitalarm/shopdesk/internal/storage"
)

// DefaultSchedule runs the daily export shortly after midnight.
const DefaultSchedule = "15 0 * * *"

// Target receives the tables of one day's report.
type Target interface {
	Name() string
	Export(ctx context.Context, date string, tables []Table) (string, error)
}

// History remembers which days were exported where.
type History interface {
	HasExport(ctx context.Context, date, target string) (bool, error)
	RecordExport(ctx context.Context, rec storage.ExportRecord) (bool, error)
}

// RangeSource produces the report for a date range.
type RangeSource interface {
	Range(ctx context.Context, start, end string) (report.RangeReport, error)
}

// XLSXTarget writes each day to a workbook in Dir.
type XLSXTarget struct {
	Dir string
}

// Name implements Target.
func (x XLSXTarget) Name() string { return storage.TargetXLSX }

// Export implements Target.
func (x XLSXTarget) Export(_ context.Context, date string, tables []Table) (string, error) {
	const tab = "summary"
	path := filepath.Join(x.Dir, FileName(model.ViewDaily, tab, DatePeriod(date, date)))
	if err := WriteXLSX(path, tab, tables); err != nil {
		return "", err
	}
	return path, nil
}

// Daily exports the previous day's report to every target, skipping
// targets that already hold that day.
type Daily struct {
	source  RangeSource
	history History
	targets []Target
	logger  *slog.Logger
	now     func() time.Time

	mu   sync.Mutex
	cron *cron.Cron
}

// NewDaily creates a daily exporter.
func NewDaily(source RangeSource, history History, logger *slog.Logger, targets ...Target) *Daily {
	if logger == nil {
		logger = slog.Default()
	}
	return &Daily{
		source:  source,
		history: history,
		targets: targets,
		logger:  logger.With("component", "export"),
		now:     time.Now,
	}
}

// Run exports date (YYYY-MM-DD) and returns the locations written.
func (d *Daily) Run(ctx context.Context, date string) ([]string, error) {
	var pending []Target
	for _, t := range d.targets {
		done, err := d.history.HasExport(ctx, date, t.Name())
		if err != nil {
			return nil, err
		}
		if done {
			d.logger.Info("report already exported", "date", date, "target", t.Name())
			continue
		}
		pending = append(pending, t)
	}
	if len(pending) == 0 {
		return nil, nil
	}

	r, err := d.source.Range(ctx, date, date)
	if err != nil {
		return nil, fmt.Errorf("building report for %s: %w", date, err)
	}
	tables := RangeTables(r)

	var (
		locations []string
		errs      []error
	)
	for _, t := range pending {
		loc, err := t.Export(ctx, date, tables)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s export: %w", t.Name(), err))
			continue
		}
		if _, err := d.history.RecordExport(ctx, storage.ExportRecord{
			ReportDate: date,
			Target:     t.Name(),
			Location:   loc,
			ExportedAt: d.now(),
		}); err != nil {
			errs = append(errs, err)
		}
		d.logger.Info("report exported", "date", date, "target", t.Name(), "location", loc)
		locations = append(locations, loc)
	}
	return locations, errors.Join(errs...)
}

// Yesterday returns the previous calendar day in YYYY-MM-DD.
func (d *Daily) Yesterday() string {
	return d.now().AddDate(0, 0, -1).Format(time.DateOnly)
}

// Start schedules Run for the previous day on spec, a standard five-field
// cron expression. The schedule stops when ctx is done.
func (d *Daily) Start(ctx context.Context, spec string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cron != nil {
		return errors.New("export schedule already running")
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		date := d.Yesterday()
		if _, err := d.Run(ctx, date); err != nil {
			d.logger.Error("scheduled export failed", "date", date, "error", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	c.Start()
	d.cron = c
	d.logger.Info("export schedule started", "schedule", spec)

	go func() {
		<-ctx.Done()
		d.Stop()
	}()
	return nil
}

// Stop halts the schedule and waits for a running export to finish.
func (d *Daily) Stop() {
	d.mu.Lock()
	c := d.cron
	d.cron = nil
	d.mu.Unlock()
	if c != nil {
		<-c.Stop().Done()
	}
}
