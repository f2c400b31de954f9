package listing

import (
	"context"

	"github.com/adroitalarm/shopdesk/internal/model"
)

// Snapshot is one refresh cycle's worth of records.
type Snapshot[R Record] struct {
	Records    []R
	Pagination model.Pagination
}

// Loader fetches a whole collection and formats it.
type Loader[T any, R Record] struct {
	Source  PageSource[T]
	Format  func([]T) []R
	Options FetchOptions
}

// Load runs one fetch-and-format cycle.
func (l Loader[T, R]) Load(ctx context.Context) (Snapshot[R], error) {
	res, err := FetchAll(ctx, l.Source, l.Options)
	if err != nil {
		return Snapshot[R]{}, err
	}
	return Snapshot[R]{Records: l.Format(res.Items), Pagination: res.Pagination}, nil
}
