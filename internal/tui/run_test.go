package tui

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/adroitalarm/shopdesk/internal/listing"
	"github.com/adroitalarm/shopdesk/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runDashboard(t *testing.T, d Dashboard, opts ...Option) <-chan error {
	t.Helper()
	in, keys := io.Pipe()
	t.Cleanup(func() { _ = keys.Close() })

	done := make(chan error, 1)
	go func() {
		done <- d.Run(context.Background(), append([]Option{
			WithIO(in, io.Discard),
			WithAltScreen(false),
		}, opts...)...)
	}()
	return done
}

func TestDashboard_StopsWhenStopChannelCloses(t *testing.T) {
	var loads atomic.Int32
	stop := make(chan struct{})
	tab := newTab("Orders", []string{"ID", "Status", "Method"}, func(context.Context) ([]listing.Record, model.Pagination, error) {
		if loads.Add(1) == 1 {
			close(stop)
		}
		return testRecords(2), model.Pagination{Total: 2}, nil
	}, 10)

	done := runDashboard(t, Dashboard{
		Tabs:       []*Tab{tab},
		Intervals:  []time.Duration{time.Hour},
		RunTimeout: time.Second,
	}, WithStop(stop))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("dashboard kept running after stop")
	}
	assert.Equal(t, int32(1), loads.Load())
}

func TestDashboard_RequiresTabs(t *testing.T) {
	err := Dashboard{}.Run(context.Background())
	assert.EqualError(t, err, "dashboard has no tabs")
}
