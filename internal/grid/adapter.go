package grid

import "slices"

// Sync replaces the rows of an initialized view while keeping its search,
// sort and page. The page is clamped to the new page count.
func Sync(view TableView, rows []Row) {
	if !view.Initialized() {
		view.Init(rows)
		return
	}
	state := view.CaptureViewState()
	view.SetData(rows)
	view.RestoreViewState(state)
}

// Adapter feeds refreshed rows to a view, skipping redraws when nothing
// changed.
type Adapter struct {
	view TableView
	last []Row
}

// NewAdapter binds an adapter to view.
func NewAdapter(view TableView) *Adapter {
	return &Adapter{view: view}
}

// Update pushes rows to the view and reports whether it was redrawn. The
// first call initializes the view; identical data leaves it untouched.
func (a *Adapter) Update(rows []Row) bool {
	if a.view.Initialized() && a.last != nil && equalRows(a.last, rows) {
		return false
	}
	Sync(a.view, rows)
	a.last = cloneRows(rows)
	return true
}

// Reset forgets the last rows so the next Update always redraws.
func (a *Adapter) Reset() {
	a.last = nil
}

func equalRows(a, b []Row) bool {
	return slices.EqualFunc(a, b, func(x, y Row) bool {
		return x.Key == y.Key && slices.Equal(x.Cells, y.Cells)
	})
}
