// Package grid is the searchable, sortable, paginated table behind every
// list view, and the adapter that refreshes it without losing the
// operator's place.
package grid

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// DefaultPageLength is the number of rows per page.
const DefaultPageLength = 10

// Row is one table row. Key identifies the backing record.
type Row struct {
	Key   string
	Cells []string
}

// SortSpec orders by one column.
type SortSpec struct {
	Column int
	Desc   bool
}

// ViewState is the operator-visible state that must survive a data refresh.
type ViewState struct {
	Search string
	Order  []SortSpec
	Page   int
	Pages  int
}

// TableView is the narrow surface the refresh adapter needs from a grid.
type TableView interface {
	Initialized() bool
	Init(rows []Row)
	SetData(rows []Row)
	CaptureViewState() ViewState
	RestoreViewState(ViewState)
}

// Table is an in-memory grid. It is not safe for concurrent use.
type Table struct {
	columns    []string
	pageLength int

	initialized bool
	rows        []Row
	search      string
	order       []SortSpec
	page        int

	view []Row
}

// Option configures a Table.
type Option func(*Table)

// WithPageLength sets rows per page.
func WithPageLength(n int) Option {
	return func(t *Table) {
		if n > 0 {
			t.pageLength = n
		}
	}
}

// NewTable creates an uninitialized table.
func NewTable(columns []string, opts ...Option) *Table {
	t := &Table{
		columns:    append([]string(nil), columns...),
		pageLength: DefaultPageLength,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Initialized implements TableView.
func (t *Table) Initialized() bool {
	return t.initialized
}

// Init loads rows into a fresh view.
func (t *Table) Init(rows []Row) {
	t.initialized = true
	t.SetData(rows)
}

// SetData replaces every row and redraws from scratch: search and sort
// are cleared and the first page is shown.
func (t *Table) SetData(rows []Row) {
	t.rows = cloneRows(rows)
	t.search = ""
	t.order = nil
	t.page = 0
	t.redraw()
}

// Destroy returns the table to its uninitialized state.
func (t *Table) Destroy() {
	t.initialized = false
	t.rows = nil
	t.view = nil
	t.search = ""
	t.order = nil
	t.page = 0
}

// CaptureViewState implements TableView.
func (t *Table) CaptureViewState() ViewState {
	return ViewState{
		Search: t.search,
		Order:  slices.Clone(t.order),
		Page:   t.page,
		Pages:  t.Pages(),
	}
}

// RestoreViewState reapplies search, then sort, then the page, clamping the
// page to what the current data allows.
func (t *Table) RestoreViewState(vs ViewState) {
	t.search = vs.Search
	t.order = t.validOrder(vs.Order)
	t.redraw()
	t.SetPage(vs.Page)
}

// Search filters rows to those containing every whitespace-separated word
// of term, ignoring case. The first page is shown.
func (t *Table) Search(term string) {
	t.search = term
	t.page = 0
	t.redraw()
}

// SearchTerm returns the active search.
func (t *Table) SearchTerm() string {
	return t.search
}

// Sort replaces the ordering. Earlier specs take precedence.
func (t *Table) Sort(order ...SortSpec) {
	t.order = t.validOrder(order)
	t.redraw()
}

// ToggleSort sorts by column ascending, or flips the direction if column
// is already the primary sort.
func (t *Table) ToggleSort(column int) {
	if len(t.order) > 0 && t.order[0].Column == column {
		t.Sort(SortSpec{Column: column, Desc: !t.order[0].Desc})
		return
	}
	t.Sort(SortSpec{Column: column})
}

// Order returns the active sort.
func (t *Table) Order() []SortSpec {
	return slices.Clone(t.order)
}

// SetPage moves to a 0-based page, clamped to the available pages.
func (t *Table) SetPage(page int) {
	t.page = max(0, min(page, t.Pages()-1))
}

// NextPage advances one page if possible.
func (t *Table) NextPage() { t.SetPage(t.page + 1) }

// PrevPage goes back one page if possible.
func (t *Table) PrevPage() { t.SetPage(t.page - 1) }

// Page returns the 0-based current page.
func (t *Table) Page() int {
	return t.page
}

// Pages is the page count of the searched rows; at least 1.
func (t *Table) Pages() int {
	if len(t.view) == 0 {
		return 1
	}
	return (len(t.view) + t.pageLength - 1) / t.pageLength
}

// PageLength returns rows per page.
func (t *Table) PageLength() int {
	return t.pageLength
}

// Columns returns the headers.
func (t *Table) Columns() []string {
	return t.columns
}

// Len is the number of loaded rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Matches is the number of rows surviving the search.
func (t *Table) Matches() int {
	return len(t.view)
}

// Visible returns the rows on the current page.
func (t *Table) Visible() []Row {
	start := t.page * t.pageLength
	if start >= len(t.view) {
		return nil
	}
	end := min(start+t.pageLength, len(t.view))
	return t.view[start:end]
}

// All returns every searched and sorted row.
func (t *Table) All() []Row {
	return t.view
}

func (t *Table) validOrder(order []SortSpec) []SortSpec {
	out := make([]SortSpec, 0, len(order))
	for _, s := range order {
		if s.Column >= 0 && (len(t.columns) == 0 || s.Column < len(t.columns)) {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (t *Table) redraw() {
	words := strings.Fields(strings.ToLower(t.search))
	view := make([]Row, 0, len(t.rows))
	for _, r := range t.rows {
		if matchesAll(r, words) {
			view = append(view, r)
		}
	}
	if len(t.order) > 0 {
		slices.SortStableFunc(view, func(a, b Row) int {
			for _, s := range t.order {
				c := compareCells(cell(a, s.Column), cell(b, s.Column))
				if s.Desc {
					c = -c
				}
				if c != 0 {
					return c
				}
			}
			return 0
		})
	}
	t.view = view
	t.SetPage(t.page)
}

func matchesAll(r Row, words []string) bool {
	if len(words) == 0 {
		return true
	}
	haystack := strings.ToLower(strings.Join(r.Cells, "  "))
	for _, w := range words {
		if !strings.Contains(haystack, w) {
			return false
		}
	}
	return true
}

func cell(r Row, i int) string {
	if i < len(r.Cells) {
		return r.Cells[i]
	}
	return ""
}

// compareCells orders numbers and currency numerically, MM/DD/YYYY dates
// chronologically and everything else case-insensitively.
func compareCells(a, b string) int {
	if x, ok := numericCell(a); ok {
		if y, ok := numericCell(b); ok {
			return cmp.Compare(x, y)
		}
	}
	if x, err := time.Parse("01/02/2006", a); err == nil {
		if y, err := time.Parse("01/02/2006", b); err == nil {
			return x.Compare(y)
		}
	}
	return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
}

func numericCell(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func cloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = Row{Key: r.Key, Cells: slices.Clone(r.Cells)}
	}
	return out
}
