package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/adroitalarm/shopdesk/internal/grid"
	"github.com/adroitalarm/shopdesk/internal/listing"
	"github.com/adroitalarm/shopdesk/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	id     string
	status string
	method string
}

func (r testRecord) Key() string           { return r.id }
func (r testRecord) FilterDate() time.Time { return time.Time{} }
func (r testRecord) Cells() []string       { return []string{r.id, r.status, r.method} }

func (r testRecord) FilterValue(dim string) string {
	switch dim {
	case listing.DimStatus:
		return r.status
	case listing.DimPaymentMethod:
		return r.method
	}
	return ""
}

func testRecords(n int, statuses ...string) []listing.Record {
	out := make([]listing.Record, n)
	for i := range out {
		status := "pending"
		if len(statuses) > 0 {
			status = statuses[i%len(statuses)]
		}
		out[i] = testRecord{id: fmt.Sprintf("%03d", i+1), status: status, method: "card"}
	}
	return out
}

func newTestTab(records ...listing.Record) *Tab {
	load := func(context.Context) ([]listing.Record, model.Pagination, error) {
		return records, model.Pagination{Total: len(records)}, nil
	}
	return newTab("Orders", []string{"ID", "Status", "Method"}, load, 10, listing.DimStatus, listing.DimPaymentMethod)
}

func TestTab_SetRecordsKeepsViewState(t *testing.T) {
	tab := newTestTab()
	tab.setRecords(testRecords(25), model.Pagination{Total: 25})
	require.True(t, tab.Table().Initialized())

	tab.sortColumn()
	tab.sortColumn()
	tab.nextPage()
	require.Equal(t, 1, tab.Table().Page())

	redrawn := tab.setRecords(testRecords(24), model.Pagination{Total: 24})

	assert.True(t, redrawn)
	assert.Equal(t, 1, tab.Table().Page())
	assert.Equal(t, []grid.SortSpec{{Column: 0, Desc: true}}, tab.Table().Order())
	assert.Equal(t, 24, tab.Table().Len())
}

func TestTab_SetRecordsUnchangedSkipsRedraw(t *testing.T) {
	tab := newTestTab()
	tab.setRecords(testRecords(5), model.Pagination{})

	assert.False(t, tab.setRecords(testRecords(5), model.Pagination{}))
}

func TestTab_SearchBeforeFirstLoad(t *testing.T) {
	tab := newTestTab()
	tab.setSearch("002")

	tab.setRecords(testRecords(5), model.Pagination{})

	assert.Equal(t, "002", tab.Table().SearchTerm())
	assert.Equal(t, 1, tab.Table().Matches())
}

func TestTab_CycleFilter(t *testing.T) {
	tab := newTestTab()
	tab.setRecords(testRecords(6, "pending", "paid", "pending"), model.Pagination{})

	steps := []struct {
		want    string
		matches int
	}{
		{want: "pending", matches: 4},
		{want: "paid", matches: 2},
		{want: listing.All, matches: 6},
	}
	for _, step := range steps {
		tab.cycleFilter()
		assert.Equal(t, step.want, tab.Filter().Value(listing.DimStatus))
		assert.Equal(t, step.matches, tab.Table().Len())
	}
}

func TestTab_NextDimAndClear(t *testing.T) {
	tab := newTestTab()
	tab.setRecords(testRecords(4, "pending", "paid"), model.Pagination{})

	tab.cycleFilter()
	tab.nextDim()
	assert.Equal(t, listing.DimPaymentMethod, tab.activeDim())
	assert.Contains(t, tab.filterSummary(), "[payment method: all]")
	assert.Contains(t, tab.filterSummary(), "status: pending")

	tab.clearFilter()
	assert.False(t, tab.Filter().Active())
	assert.Equal(t, 4, tab.Table().Len())
}

func TestTab_CursorClampsToPage(t *testing.T) {
	tab := newTestTab()
	tab.setRecords(testRecords(12), model.Pagination{})

	tab.moveCursor(20)
	assert.Equal(t, 9, tab.cursor)

	tab.nextPage()
	assert.Equal(t, 1, tab.cursor)

	row, ok := tab.Selected()
	require.True(t, ok)
	assert.Equal(t, "012", row.Key)

	tab.moveCursor(-5)
	assert.Equal(t, 0, tab.cursor)
}

func TestTab_MoveColumnWraps(t *testing.T) {
	tab := newTestTab()
	tab.moveColumn(-1)
	assert.Equal(t, 2, tab.column)
	tab.moveColumn(1)
	assert.Equal(t, 0, tab.column)
}

func TestNewTab_BoxesLoader(t *testing.T) {
	orders := []model.Order{{Status: "pending"}, {Status: "completed"}}
	src := listing.PageFunc[model.Order](func(context.Context, int) ([]model.Order, model.Pagination, error) {
		return orders, model.Pagination{Total: 2, LastPage: 1}, nil
	})
	tab := NewTab("Orders", listing.OrderColumns, listing.Loader[model.Order, listing.OrderRecord]{
		Source: src,
		Format: listing.FormatOrders,
	}, 10, listing.DimStatus)

	records, pagination, err := tab.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 2, pagination.Total)
	assert.Equal(t, "completed", records[1].FilterValue(listing.DimStatus))
}

func TestNewTab_LoaderError(t *testing.T) {
	boom := errors.New("boom")
	src := listing.PageFunc[model.Order](func(context.Context, int) ([]model.Order, model.Pagination, error) {
		return nil, model.Pagination{}, boom
	})
	tab := NewTab("Orders", listing.OrderColumns, listing.Loader[model.Order, listing.OrderRecord]{
		Source: src,
		Format: listing.FormatOrders,
	}, 10)

	_, _, err := tab.Load(context.Background())

	assert.ErrorIs(t, err, boom)
}
