// Package report combines per-day sales reports into range summaries.
package report

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/adroitalarm/shopdesk/internal/common"
	"github.com/adroitalarm/shopdesk/internal/format"
	"github.com/adroitalarm/shopdesk/internal/model"
)

// DefaultPrintedBy is used when a report does not name who printed it.
const DefaultPrintedBy = "System"

// TopProductLimit bounds the merged top products table.
const TopProductLimit = 5

// Source is the subset of the API the aggregator needs.
type Source interface {
	ReportsByDate(ctx context.Context, start, end string) ([]model.ReportEntry, error)
	DailyReport(ctx context.Context, date string) (model.DailyReport, error)
}

// Summary is the headline block of a range. Money values are rendered with
// two decimals; accumulation happens at full precision.
type Summary struct {
	TotalOrders       int    `json:"total_orders"`
	TotalSales        string `json:"total_sales"`
	UniqueCustomers   int    `json:"unique_customers"`
	AverageOrderValue string `json:"average_order_value"`
}

// ProductTotal is a merged top product row.
type ProductTotal struct {
	ProductName  string `json:"product_name"`
	QuantitySold int    `json:"quantity_sold"`
	Revenue      string `json:"revenue"`
}

// MethodTotal is a merged payment method row.
type MethodTotal struct {
	PaymentMethod string `json:"payment_method"`
	OrderCount    int    `json:"order_count"`
	TotalAmount   string `json:"total_amount"`
}

// RangeReport is the combined view of every day in a range that could be
// fetched.
type RangeReport struct {
	Date              string               `json:"date"`
	ReportStartDate   string               `json:"reportStartDate"`
	ReportEndDate     string               `json:"reportEndDate"`
	ReportGeneratedAt string               `json:"reportGeneratedAt"`
	PrintedBy         string               `json:"printedBy"`
	Summary           Summary              `json:"summary"`
	TopProducts       []ProductTotal       `json:"top_products"`
	PaymentMethods    []MethodTotal        `json:"payment_methods"`
	OrdersByHour      []model.HourlyOrders `json:"orders_by_hour"`
	DatesIncluded     []string             `json:"dates_included"`
	DatesFailed       []string             `json:"dates_failed"`
}

// Aggregator fetches and merges daily reports for a date range.
type Aggregator struct {
	source         Source
	logger         *slog.Logger
	maxConcurrency int
	now            func() time.Time
	progress       func(done, total int)
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

// WithMaxConcurrency bounds concurrent daily report requests.
func WithMaxConcurrency(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.maxConcurrency = n
		}
	}
}

// WithClock sets the clock used when no report carries a generation time.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		a.now = now
	}
}

// WithProgress receives a callback after each daily report settles.
func WithProgress(fn func(done, total int)) Option {
	return func(a *Aggregator) {
		a.progress = fn
	}
}

// NewAggregator creates an aggregator over source.
func NewAggregator(source Source, opts ...Option) *Aggregator {
	a := &Aggregator{
		source:         source,
		logger:         slog.Default(),
		maxConcurrency: 6,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("component", "report")
	return a
}

// Range lists the reports between start and end (YYYY-MM-DD, inclusive),
// fetches each day's full report and merges those that arrive. A day that
// fails is logged and left out; the range still succeeds.
func (a *Aggregator) Range(ctx context.Context, start, end string) (RangeReport, error) {
	from, err := time.Parse(time.DateOnly, start)
	if err != nil {
		return RangeReport{}, fmt.Errorf("%w: invalid start date %q", common.ErrValidation, start)
	}
	to, err := time.Parse(time.DateOnly, end)
	if err != nil {
		return RangeReport{}, fmt.Errorf("%w: invalid end date %q", common.ErrValidation, end)
	}
	if to.Before(from) {
		return RangeReport{}, common.ErrInvalidDateRange
	}

	entries, err := a.source.ReportsByDate(ctx, start, end)
	if err != nil {
		return RangeReport{}, fmt.Errorf("listing reports %s to %s: %w", start, end, err)
	}

	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Date != "" {
			dates = append(dates, e.Date)
		}
	}

	reports, failed, err := a.fetchDays(ctx, dates)
	if err != nil {
		return RangeReport{}, err
	}

	out := Merge(reports)
	out.ReportStartDate = start
	out.ReportEndDate = end
	out.Date = format.DateRange(start, end)
	if out.ReportGeneratedAt == "" {
		out.ReportGeneratedAt = a.now().UTC().Format(time.RFC3339)
	}
	out.DatesFailed = failed

	a.logger.Info("Aggregated report range",
		"start", start,
		"end", end,
		"dates", len(dates),
		"included", len(out.DatesIncluded),
		"failed", len(failed))

	return out, nil
}

// fetchDays returns the reports that loaded, in the order of dates, and the
// dates that failed. Only cancellation of ctx is an error.
func (a *Aggregator) fetchDays(ctx context.Context, dates []string) ([]model.DailyReport, []string, error) {
	results := make([]*model.DailyReport, len(dates))
	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxConcurrency)
	for i, date := range dates {
		g.Go(func() error {
			rep, err := a.source.DailyReport(gctx, date)
			if err != nil {
				a.logger.Warn("Skipping day in range", "date", date, "error", err)
			} else {
				if rep.Date == "" {
					rep.Date = date
				}
				results[i] = &rep
			}

			mu.Lock()
			done++
			n := done
			mu.Unlock()
			if a.progress != nil {
				a.progress(n, len(dates))
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	reports := make([]model.DailyReport, 0, len(dates))
	failed := []string{}
	for i, r := range results {
		if r == nil {
			failed = append(failed, dates[i])
			continue
		}
		reports = append(reports, *r)
	}
	return reports, failed, nil
}

// Merge combines daily reports. Totals are sums, the average is combined
// sales over combined orders (one when there are none), products are
// grouped by name and cut to the top five by revenue, and payment methods
// are grouped by method in first-seen order. Generation metadata comes
// from the last report. An empty input yields a zero summary.
func Merge(reports []model.DailyReport) RangeReport {
	var (
		orders    int
		sales     float64
		customers int
	)

	type productAcc struct {
		name    string
		qty     int
		revenue float64
	}
	type methodAcc struct {
		method string
		count  int
		amount float64
	}
	var products []*productAcc
	productIndex := map[string]*productAcc{}
	var methods []*methodAcc
	methodIndex := map[string]*methodAcc{}

	included := make([]string, 0, len(reports))
	for _, r := range reports {
		included = append(included, r.Date)
		orders += r.Summary.TotalOrders.Int()
		sales += r.Summary.TotalSales.FloatOr(0)
		customers += r.Summary.UniqueCustomers.Int()

		for _, p := range r.TopProducts {
			acc, ok := productIndex[p.ProductName]
			if !ok {
				acc = &productAcc{name: p.ProductName}
				productIndex[p.ProductName] = acc
				products = append(products, acc)
			}
			acc.qty += p.QuantitySold.Int()
			acc.revenue += p.Revenue.FloatOr(0)
		}

		for _, m := range r.PaymentMethods {
			acc, ok := methodIndex[m.PaymentMethod]
			if !ok {
				acc = &methodAcc{method: m.PaymentMethod}
				methodIndex[m.PaymentMethod] = acc
				methods = append(methods, acc)
			}
			acc.count += m.OrderCount.Int()
			acc.amount += m.TotalAmount.FloatOr(0)
		}
	}

	slices.SortStableFunc(products, func(x, y *productAcc) int {
		return cmp.Compare(y.revenue, x.revenue)
	})
	if len(products) > TopProductLimit {
		products = products[:TopProductLimit]
	}

	out := RangeReport{
		PrintedBy: DefaultPrintedBy,
		Summary: Summary{
			TotalOrders:       orders,
			TotalSales:        format.ToFixed(sales, 2),
			UniqueCustomers:   customers,
			AverageOrderValue: format.ToFixed(sales/float64(max(orders, 1)), 2),
		},
		TopProducts:    make([]ProductTotal, 0, len(products)),
		PaymentMethods: make([]MethodTotal, 0, len(methods)),
		OrdersByHour:   []model.HourlyOrders{},
		DatesIncluded:  included,
		DatesFailed:    []string{},
	}
	for _, p := range products {
		out.TopProducts = append(out.TopProducts, ProductTotal{
			ProductName:  p.name,
			QuantitySold: p.qty,
			Revenue:      format.ToFixed(p.revenue, 2),
		})
	}
	for _, m := range methods {
		out.PaymentMethods = append(out.PaymentMethods, MethodTotal{
			PaymentMethod: m.method,
			OrderCount:    m.count,
			TotalAmount:   format.ToFixed(m.amount, 2),
		})
	}

	if len(reports) > 0 {
		last := reports[len(reports)-1]
		out.ReportGeneratedAt = last.ReportGeneratedAt
		if last.PrintedBy != "" {
			out.PrintedBy = last.PrintedBy
		}
	}
	return out
}

// FromDaily presents a single day's report in the same shape as a range.
func FromDaily(r model.DailyReport) RangeReport {
	out := Merge([]model.DailyReport{r})
	out.Date = format.Date(r.Date)
	out.ReportStartDate = r.Date
	out.ReportEndDate = r.Date
	if len(r.OrdersByHour) > 0 {
		out.OrdersByHour = r.OrdersByHour
	}
	return out
}
