package listing

import (
	"maps"
	"time"
)

// All is the "no predicate" value for a filter dimension.
const All = "all"

// Filter dimensions understood by the record types.
const (
	DimStatus        = "status"
	DimPaymentStatus = "payment_status"
	DimOrderStatus   = "order_status"
	DimPaymentMethod = "payment_method"
	DimRole          = "role"
	DimCategory      = "category"
)

// Record is a display-ready row that can be filtered and rendered.
type Record interface {
	// Key is the backend identifier used for mutations.
	Key() string
	// FilterValue returns the raw value for a dimension, or "" if the
	// record has no such dimension.
	FilterValue(dim string) string
	// FilterDate is the date used for range filters; zero if unknown.
	FilterDate() time.Time
	// Cells are the rendered column values.
	Cells() []string
}

// Filter is a set of predicates combined with AND. Values equal to All and
// zero dates are ignored.
type Filter struct {
	Equals map[string]string
	From   time.Time
	To     time.Time
}

// With returns a copy of f with dim set to value.
func (f Filter) With(dim, value string) Filter {
	next := Filter{From: f.From, To: f.To, Equals: maps.Clone(f.Equals)}
	if next.Equals == nil {
		next.Equals = map[string]string{}
	}
	next.Equals[dim] = value
	return next
}

// Between returns a copy of f restricted to the inclusive day range.
func (f Filter) Between(from, to time.Time) Filter {
	return Filter{Equals: maps.Clone(f.Equals), From: from, To: to}
}

// Value returns the selected value for dim, All when unset.
func (f Filter) Value(dim string) string {
	if v, ok := f.Equals[dim]; ok && v != "" {
		return v
	}
	return All
}

// Active reports whether any predicate is in effect.
func (f Filter) Active() bool {
	for _, v := range f.Equals {
		if v != "" && v != All {
			return true
		}
	}
	return !f.From.IsZero() || !f.To.IsZero()
}

// Match reports whether r satisfies every predicate.
func (f Filter) Match(r Record) bool {
	for dim, want := range f.Equals {
		if want == "" || want == All {
			continue
		}
		if r.FilterValue(dim) != want {
			return false
		}
	}

	if f.From.IsZero() && f.To.IsZero() {
		return true
	}
	d := r.FilterDate()
	if d.IsZero() {
		return false
	}
	day := calendarDay(d)
	if !f.From.IsZero() && day.Before(calendarDay(f.From)) {
		return false
	}
	if !f.To.IsZero() && day.After(calendarDay(f.To)) {
		return false
	}
	return true
}

// Apply returns the records matching f in their original order. The input
// is not modified and the result is never nil.
func Apply[R Record](records []R, f Filter) []R {
	out := make([]R, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Options returns All followed by the distinct non-empty values of dim in
// first-seen order.
func Options[R Record](records []R, dim string) []string {
	seen := map[string]bool{}
	opts := []string{All}
	for _, r := range records {
		v := r.FilterValue(dim)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		opts = append(opts, v)
	}
	return opts
}

// Cycle returns the option after current, wrapping to the first.
func Cycle(options []string, current string) string {
	if len(options) == 0 {
		return All
	}
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
