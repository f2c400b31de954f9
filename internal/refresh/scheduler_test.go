package refresh

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects notifications.
type recorder struct {
	mu     sync.Mutex
	states []State
}

func (r *recorder) notify(s State) {
	r.mu.Lock()
	r.states = append(r.states, s)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.states...)
}

func (r *recorder) last() State {
	states := r.snapshot()
	if len(states) == 0 {
		return State{}
	}
	return states[len(states)-1]
}

func TestScheduler_MountLoadsImmediately(t *testing.T) {
	rec := &recorder{}
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := New(func(context.Context, Trigger) error { return nil }, rec.notify,
		WithInterval(0), WithClock(func() time.Time { return fixed }))

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	require.Eventually(t, func() bool { return rec.last().Mounted }, time.Second, time.Millisecond)
	states := rec.snapshot()
	require.Len(t, states, 2)
	assert.True(t, states[0].Loading)
	assert.Equal(t, TriggerMount, states[0].Trigger)
	assert.False(t, states[1].Loading)
	assert.Equal(t, fixed, states[1].LastUpdated)
	assert.NoError(t, states[1].Err)
}

func TestScheduler_StartTwiceFails(t *testing.T) {
	s := New(func(context.Context, Trigger) error { return nil }, nil, WithInterval(0))
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.ErrorIs(t, s.Start(context.Background()), ErrAlreadyRunning)
	assert.True(t, s.Running())
}

func TestScheduler_MountFailureThenRetry(t *testing.T) {
	rec := &recorder{}
	var calls int32
	s := New(func(context.Context, Trigger) error {
		if atomic.AddInt32(&calls, 1) == 1 {
			return errors.New("backend down")
		}
		return nil
	}, rec.notify, WithInterval(0))

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	require.Eventually(t, func() bool { return rec.last().Err != nil }, time.Second, time.Millisecond)
	assert.False(t, s.State().Mounted)
	assert.False(t, s.State().Loading)

	s.FireNow()
	require.Eventually(t, func() bool { return s.State().Mounted }, time.Second, time.Millisecond)

	st := s.State()
	assert.NoError(t, st.Err)
	assert.Equal(t, TriggerMount, st.Trigger, "retry before first success is a mount")
}

func TestScheduler_TimerFailureIsSilent(t *testing.T) {
	rec := &recorder{}
	var calls int32
	s := New(func(_ context.Context, trig Trigger) error {
		if atomic.AddInt32(&calls, 1) > 1 {
			return errors.New("flaky")
		}
		return nil
	}, rec.notify, WithInterval(5*time.Millisecond))

	require.NoError(t, s.Start(context.Background()))
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) >= 3 }, time.Second, time.Millisecond)
	s.Stop()

	st := s.State()
	assert.True(t, st.Mounted)
	assert.NoError(t, st.Err)
	assert.NoError(t, st.Banner)
	assert.False(t, st.LastUpdated.IsZero())
}

func TestScheduler_ManualFailureSetsBanner(t *testing.T) {
	rec := &recorder{}
	var calls int32
	s := New(func(_ context.Context, trig Trigger) error {
		atomic.AddInt32(&calls, 1)
		if trig == TriggerManual {
			return errors.New("refresh failed")
		}
		return nil
	}, rec.notify, WithInterval(0))

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()
	require.Eventually(t, func() bool { return s.State().Mounted }, time.Second, time.Millisecond)

	s.FireNow()
	require.Eventually(t, func() bool { return s.State().Banner != nil }, time.Second, time.Millisecond)
	assert.NoError(t, s.State().Err, "manual failures never replace loaded data")

	s.DismissBanner()
	assert.NoError(t, s.State().Banner)
}

func TestScheduler_RunsAreSerialized(t *testing.T) {
	var inFlight, peak, calls int32
	s := New(func(context.Context, Trigger) error {
		n := atomic.AddInt32(&inFlight, 1)
		defer atomic.AddInt32(&inFlight, -1)
		if n > atomic.LoadInt32(&peak) {
			atomic.StoreInt32(&peak, n)
		}
		atomic.AddInt32(&calls, 1)
		time.Sleep(3 * time.Millisecond)
		return nil
	}, nil, WithInterval(time.Millisecond))

	require.NoError(t, s.Start(context.Background()))
	for i := 0; i < 10; i++ {
		s.FireNow()
	}
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) >= 5 }, time.Second, time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&peak))
}

func TestScheduler_StopCancelsAndSilences(t *testing.T) {
	rec := &recorder{}
	started := make(chan struct{})
	var sawCancel atomic.Bool
	s := New(func(ctx context.Context, _ Trigger) error {
		close(started)
		<-ctx.Done()
		sawCancel.Store(true)
		return ctx.Err()
	}, rec.notify, WithInterval(time.Millisecond))

	require.NoError(t, s.Start(context.Background()))
	<-started
	s.Stop()

	assert.True(t, sawCancel.Load())
	count := len(rec.snapshot())
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, count, len(rec.snapshot()), "no notifications after Stop")
	assert.NoError(t, s.State().Err, "cancellation is not a load failure")
	assert.False(t, s.State().Loading)

	s.Stop()
	assert.False(t, s.Running())
}

func TestScheduler_RunTimeout(t *testing.T) {
	s := New(func(ctx context.Context, _ Trigger) error {
		<-ctx.Done()
		return ctx.Err()
	}, nil, WithInterval(0), WithRunTimeout(5*time.Millisecond))

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	require.Eventually(t, func() bool { return s.State().Err != nil }, time.Second, time.Millisecond)
	assert.ErrorIs(t, s.State().Err, context.DeadlineExceeded)
}

func TestTrigger_String(t *testing.T) {
	assert.Equal(t, "mount", TriggerMount.String())
	assert.Equal(t, "timer", TriggerTimer.String())
	assert.Equal(t, "manual", TriggerManual.String())
}
