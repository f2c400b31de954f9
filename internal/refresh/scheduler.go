// Package refresh drives a view's data reloads: once on mount, then on a
// fixed interval, and whenever the operator asks.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Trigger identifies why a run started.
type Trigger int

const (
	// TriggerMount is the first load, or a retry after it failed.
	TriggerMount Trigger = iota
	// TriggerTimer is a background poll.
	TriggerTimer
	// TriggerManual is an operator-requested refresh.
	TriggerManual
)

func (t Trigger) String() string {
	switch t {
	case TriggerMount:
		return "mount"
	case TriggerTimer:
		return "timer"
	case TriggerManual:
		return "manual"
	default:
		return fmt.Sprintf("trigger(%d)", int(t))
	}
}

// State is what a view renders about its data freshness.
type State struct {
	Trigger    Trigger
	Loading    bool
	Refreshing bool
	// Mounted is set once any run has succeeded.
	Mounted bool
	// Err is the full-page error shown while no data has ever loaded.
	Err error
	// Banner is the dismissible error from the last manual refresh.
	Banner      error
	LastUpdated time.Time
}

// RunFunc performs one reload.
type RunFunc func(ctx context.Context, trigger Trigger) error

// NotifyFunc receives every state transition, in order, from the
// scheduler's goroutine.
type NotifyFunc func(State)

// ErrAlreadyRunning is returned by Start on a running scheduler.
var ErrAlreadyRunning = errors.New("scheduler is already running")

// Scheduler serializes reloads for one view.
type Scheduler struct {
	run        RunFunc
	notify     NotifyFunc
	interval   time.Duration
	runTimeout time.Duration
	logger     *slog.Logger
	now        func() time.Time
	fire       chan struct{}

	mu      sync.Mutex
	state   State
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithInterval sets the poll interval. Zero disables polling.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		s.interval = d
	}
}

// WithRunTimeout bounds each run.
func WithRunTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		s.runTimeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithClock replaces time.Now for LastUpdated.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// New creates a stopped scheduler. notify may be nil.
func New(run RunFunc, notify NotifyFunc, opts ...Option) *Scheduler {
	s := &Scheduler{
		run:      run,
		notify:   notify,
		interval: 5 * time.Second,
		logger:   slog.Default(),
		now:      time.Now,
		fire:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start runs the mount load immediately and then polls until ctx is
// cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	s.logger.Debug("Refresh scheduler started", "interval", s.interval)

	go s.loop(loopCtx, s.done)
	return nil
}

// Stop cancels any in-flight run and waits for the scheduler to exit. No
// notification is delivered after Stop returns. It is safe to call more
// than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done
	s.logger.Debug("Refresh scheduler stopped")
}

// Running reports whether the scheduler has been started and not stopped.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// FireNow requests a manual refresh. Before the first successful load it
// retries the mount instead. Requests made while a run is pending are
// coalesced.
func (s *Scheduler) FireNow() {
	select {
	case s.fire <- struct{}{}:
	default:
	}
}

// State returns a snapshot of the current state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// DismissBanner clears the manual refresh error.
func (s *Scheduler) DismissBanner() {
	s.mu.Lock()
	s.state.Banner = nil
	s.mu.Unlock()
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	s.execute(ctx, TriggerMount)

	var tick <-chan time.Time
	if s.interval > 0 {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			s.execute(ctx, TriggerTimer)
		case <-s.fire:
			if s.State().Mounted {
				s.execute(ctx, TriggerManual)
			} else {
				s.execute(ctx, TriggerMount)
			}
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, trigger Trigger) {
	if ctx.Err() != nil {
		return
	}

	s.update(ctx, func(st *State) {
		st.Trigger = trigger
		switch trigger {
		case TriggerMount:
			st.Loading = true
		case TriggerManual:
			st.Refreshing = true
			st.Banner = nil
		case TriggerTimer:
			st.Refreshing = true
		}
	})

	var err error
	defer func() {
		s.update(ctx, func(st *State) {
			st.Loading = false
			st.Refreshing = false
			if ctx.Err() == nil {
				s.record(st, trigger, err)
			}
		})
	}()

	runCtx := ctx
	if s.runTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.runTimeout)
		defer cancel()
	}
	err = s.run(runCtx, trigger)
}

// record folds a finished run into the state. Timer failures are only
// logged so a flaky poll never disturbs a working view.
func (s *Scheduler) record(st *State, trigger Trigger, err error) {
	if err == nil {
		st.Mounted = true
		st.Err = nil
		st.LastUpdated = s.now()
		return
	}

	switch trigger {
	case TriggerMount:
		st.Err = err
		s.logger.Error("Initial load failed", "error", err)
	case TriggerManual:
		st.Banner = err
		s.logger.Warn("Manual refresh failed", "error", err)
	case TriggerTimer:
		s.logger.Warn("Background refresh failed", "error", err)
	}
}

// update mutates state and notifies, unless the scheduler is shutting down.
func (s *Scheduler) update(ctx context.Context, mutate func(*State)) {
	s.mu.Lock()
	mutate(&s.state)
	snapshot := s.state
	s.mu.Unlock()

	if ctx.Err() != nil || s.notify == nil {
		return
	}
	s.notify(snapshot)
}
