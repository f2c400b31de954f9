// Package listing turns paginated API collections into filtered,
// display-ready records.
package listing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/adroitalarm/shopdesk/internal/model"
)

// PageSource reads one 1-based page of a collection.
type PageSource[T any] interface {
	FetchPage(ctx context.Context, page int) ([]T, model.Pagination, error)
}

// PageFunc adapts a function to PageSource.
type PageFunc[T any] func(ctx context.Context, page int) ([]T, model.Pagination, error)

// FetchPage implements PageSource.
func (f PageFunc[T]) FetchPage(ctx context.Context, page int) ([]T, model.Pagination, error) {
	return f(ctx, page)
}

// SinglePage wraps an unpaginated endpoint as a one-page source.
func SinglePage[T any](fetch func(ctx context.Context) ([]T, error)) PageSource[T] {
	return PageFunc[T](func(ctx context.Context, _ int) ([]T, model.Pagination, error) {
		items, err := fetch(ctx)
		if err != nil {
			return nil, model.Pagination{}, err
		}
		return items, model.Pagination{
			Total:       len(items),
			CurrentPage: 1,
			LastPage:    1,
			PerPage:     len(items),
		}, nil
	})
}

// FetchOptions tunes FetchAll.
type FetchOptions struct {
	// MaxConcurrency bounds in-flight requests for pages 2..N. Zero means 6.
	MaxConcurrency int
	// PageTimeout bounds each page request. Zero means no extra deadline.
	PageTimeout time.Duration
	Logger      *slog.Logger
}

func (o FetchOptions) withDefaults() FetchOptions {
	if o.MaxConcurrency <= 0 {
		o.MaxConcurrency = 6
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Result is a fully assembled collection. Pagination is page 1's envelope;
// later pages never update it.
type Result[T any] struct {
	Items      []T
	Pagination model.Pagination
}

// FetchAll reads page 1 to learn the page count, then pages 2..N
// concurrently, and returns every item in page order. It is all-or-nothing:
// if any page fails the partial results are dropped and the first error is
// returned.
func FetchAll[T any](ctx context.Context, src PageSource[T], opts FetchOptions) (Result[T], error) {
	opts = opts.withDefaults()
	start := time.Now()

	first, pagination, err := fetchPage(ctx, src, 1, opts.PageTimeout)
	if err != nil {
		return Result[T]{}, fmt.Errorf("fetching page 1: %w", err)
	}

	last := pagination.LastPage
	if last <= 1 {
		items := make([]T, 0, len(first))
		items = append(items, first...)
		return Result[T]{Items: items, Pagination: pagination}, nil
	}

	pages := make([][]T, last-1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.MaxConcurrency)
	for page := 2; page <= last; page++ {
		g.Go(func() error {
			items, _, err := fetchPage(gctx, src, page, opts.PageTimeout)
			if err != nil {
				return fmt.Errorf("fetching page %d of %d: %w", page, last, err)
			}
			pages[page-2] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result[T]{}, err
	}

	total := len(first)
	for _, p := range pages {
		total += len(p)
	}
	items := make([]T, 0, total)
	items = append(items, first...)
	for _, p := range pages {
		items = append(items, p...)
	}

	opts.Logger.Debug("Fetched paginated collection",
		"pages", last,
		"items", len(items),
		"reported_total", pagination.Total,
		"duration", time.Since(start))

	return Result[T]{Items: items, Pagination: pagination}, nil
}

func fetchPage[T any](ctx context.Context, src PageSource[T], page int, timeout time.Duration) ([]T, model.Pagination, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return src.FetchPage(ctx, page)
}
