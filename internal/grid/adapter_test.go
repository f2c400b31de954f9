package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordingView is a TableView that records the calls made on it.
type recordingView struct {
	initialized bool
	calls       []string
	state       ViewState
	rows        []Row
}

func (v *recordingView) Initialized() bool { return v.initialized }

func (v *recordingView) Init(rows []Row) {
	v.initialized = true
	v.rows = rows
	v.calls = append(v.calls, "init")
}

func (v *recordingView) SetData(rows []Row) {
	v.rows = rows
	v.calls = append(v.calls, "set")
}

func (v *recordingView) CaptureViewState() ViewState {
	v.calls = append(v.calls, "capture")
	return v.state
}

func (v *recordingView) RestoreViewState(s ViewState) {
	v.calls = append(v.calls, "restore")
	v.state = s
}

func TestAdapter_FirstUpdateInitializes(t *testing.T) {
	view := &recordingView{}
	a := NewAdapter(view)

	assert.True(t, a.Update([]Row{{Key: "1", Cells: []string{"a"}}}))
	assert.Equal(t, []string{"init"}, view.calls)
}

func TestAdapter_RefreshCapturesThenRestores(t *testing.T) {
	view := &recordingView{}
	a := NewAdapter(view)
	a.Update([]Row{{Key: "1", Cells: []string{"a"}}})
	view.calls = nil

	assert.True(t, a.Update([]Row{{Key: "1", Cells: []string{"b"}}}))
	assert.Equal(t, []string{"capture", "set", "restore"}, view.calls)
}

func TestAdapter_IdenticalDataSkipsRedraw(t *testing.T) {
	view := &recordingView{}
	a := NewAdapter(view)
	rows := []Row{{Key: "1", Cells: []string{"a"}}, {Key: "2", Cells: []string{"b"}}}
	a.Update(rows)
	view.calls = nil

	// A caller mutating its slice afterwards must not leak into the cache.
	rows[0].Cells[0] = "changed"
	assert.True(t, a.Update(rows))

	view.calls = nil
	assert.False(t, a.Update([]Row{{Key: "1", Cells: []string{"changed"}}, {Key: "2", Cells: []string{"b"}}}))
	assert.Empty(t, view.calls)

	a.Reset()
	assert.True(t, a.Update(rows))
}

func TestAdapter_ReinitializesDestroyedTable(t *testing.T) {
	tbl := NewTable([]string{"#"})
	a := NewAdapter(tbl)
	a.Update([]Row{{Key: "1", Cells: []string{"1"}}})
	tbl.Destroy()

	assert.True(t, a.Update([]Row{{Key: "1", Cells: []string{"1"}}}))
	assert.True(t, tbl.Initialized())
	assert.Equal(t, 1, tbl.Len())
}
