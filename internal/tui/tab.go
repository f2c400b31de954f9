package tui

import (
	"context"
	"strings"

	"github.com/adroitalarm/shopdesk/internal/grid"
	"github.com/adroitalarm/shopdesk/internal/listing"
	"github.com/adroitalarm/shopdesk/internal/model"
	"github.com/adroitalarm/shopdesk/internal/refresh"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// LoadFunc fetches every record of a tab.
type LoadFunc func(ctx context.Context) ([]listing.Record, model.Pagination, error)

// Action is a row mutation offered by a tab.
type Action struct {
	Binding key.Binding
	// Verb and Noun build the confirmation prompt, e.g. "Delete order 42?".
	Verb    string
	Noun    string
	Success string
	Run     func(ctx context.Context, id string) error
}

// Tab is one listing view: its data, filters, grid and refresh state.
type Tab struct {
	Title   string
	Dims    []string
	Actions []Action

	load    LoadFunc
	table   *grid.Table
	adapter *grid.Adapter

	records    []listing.Record
	pagination model.Pagination
	filter     listing.Filter
	search     string
	dim        int
	column     int
	cursor     int
	state      refresh.State
}

// NewTab binds a loader to a grid with the given columns. dims are the
// filter dimensions the operator can cycle through.
func NewTab[T any, R listing.Record](title string, columns []string, loader listing.Loader[T, R], pageLength int, dims ...string) *Tab {
	return newTab(title, columns, boxed(loader), pageLength, dims...)
}

func newTab(title string, columns []string, load LoadFunc, pageLength int, dims ...string) *Tab {
	table := grid.NewTable(columns, grid.WithPageLength(pageLength))
	return &Tab{
		Title:   title,
		Dims:    dims,
		load:    load,
		table:   table,
		adapter: grid.NewAdapter(table),
		state:   refresh.State{Loading: true},
	}
}

func boxed[T any, R listing.Record](loader listing.Loader[T, R]) LoadFunc {
	return func(ctx context.Context) ([]listing.Record, model.Pagination, error) {
		snap, err := loader.Load(ctx)
		if err != nil {
			return nil, model.Pagination{}, err
		}
		out := make([]listing.Record, len(snap.Records))
		for i, r := range snap.Records {
			out[i] = r
		}
		return out, snap.Pagination, nil
	}
}

// WithActions attaches row mutations and returns the tab.
func (t *Tab) WithActions(actions ...Action) *Tab {
	t.Actions = append(t.Actions, actions...)
	return t
}

// Load runs the tab's fetch.
func (t *Tab) Load(ctx context.Context) ([]listing.Record, model.Pagination, error) {
	return t.load(ctx)
}

// Table exposes the grid.
func (t *Tab) Table() *grid.Table {
	return t.table
}

// Filter returns the active filter.
func (t *Tab) Filter() listing.Filter {
	return t.filter
}

func (t *Tab) setRecords(records []listing.Record, pagination model.Pagination) bool {
	t.records = records
	t.pagination = pagination
	return t.apply()
}

// apply pushes the filtered records through the adapter so search, sort
// and page survive.
func (t *Tab) apply() bool {
	redrawn := t.adapter.Update(listing.Rows(listing.Apply(t.records, t.filter)))
	if t.table.SearchTerm() != t.search {
		t.table.Search(t.search)
	}
	t.clampCursor()
	return redrawn
}

func (t *Tab) setSearch(term string) {
	t.search = term
	t.table.Search(term)
	t.cursor = 0
}

func (t *Tab) activeDim() string {
	if len(t.Dims) == 0 {
		return ""
	}
	return t.Dims[t.dim%len(t.Dims)]
}

func (t *Tab) cycleFilter() {
	dim := t.activeDim()
	if dim == "" {
		return
	}
	next := listing.Cycle(listing.Options(t.records, dim), t.filter.Value(dim))
	t.filter = t.filter.With(dim, next)
	t.apply()
}

func (t *Tab) nextDim() {
	if len(t.Dims) > 0 {
		t.dim = (t.dim + 1) % len(t.Dims)
	}
}

func (t *Tab) clearFilter() {
	t.filter = listing.Filter{}
	t.apply()
}

func (t *Tab) moveColumn(delta int) {
	n := len(t.table.Columns())
	if n == 0 {
		return
	}
	t.column = ((t.column+delta)%n + n) % n
}

func (t *Tab) sortColumn() {
	t.table.ToggleSort(t.column)
	t.cursor = 0
}

func (t *Tab) moveCursor(delta int) {
	t.cursor += delta
	t.clampCursor()
}

func (t *Tab) clampCursor() {
	t.cursor = max(0, min(t.cursor, len(t.table.Visible())-1))
}

func (t *Tab) nextPage() {
	t.table.NextPage()
	t.clampCursor()
}

func (t *Tab) prevPage() {
	t.table.PrevPage()
	t.clampCursor()
}

// Selected returns the row under the cursor.
func (t *Tab) Selected() (grid.Row, bool) {
	visible := t.table.Visible()
	if t.cursor < 0 || t.cursor >= len(visible) {
		return grid.Row{}, false
	}
	return visible[t.cursor], true
}

func (t *Tab) actionFor(msg tea.KeyMsg) (Action, bool) {
	for _, a := range t.Actions {
		if key.Matches(msg, a.Binding) {
			return a, true
		}
	}
	return Action{}, false
}

// filterSummary renders the active filters, marking the dimension that
// "f" cycles.
func (t *Tab) filterSummary() string {
	if len(t.Dims) == 0 {
		return ""
	}
	parts := make([]string, 0, len(t.Dims))
	for i, dim := range t.Dims {
		label := strings.ReplaceAll(dim, "_", " ") + ": " + t.filter.Value(dim)
		if i == t.dim%len(t.Dims) {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}
