// Package notify polls the unread notification count and raises an alert
// when it grows.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/adroitalarm/shopdesk/internal/refresh"
)

// DefaultInterval is the unread count poll period.
const DefaultInterval = 30 * time.Second

// Source reports the unread count.
type Source interface {
	UnreadCount(ctx context.Context) (int, error)
}

// AlertFunc is called with the previous and new count when the count rises.
type AlertFunc func(prev, cur int)

// Watcher tracks the unread count. The first successful load sets the
// baseline and never alerts.
type Watcher struct {
	source Source
	alert  AlertFunc
	logger *slog.Logger
	sched  *refresh.Scheduler

	mu     sync.Mutex
	count  int
	loaded bool
}

// NewWatcher creates a stopped watcher. notify receives scheduler state
// changes and may be nil.
func NewWatcher(source Source, alert AlertFunc, notify refresh.NotifyFunc, logger *slog.Logger, opts ...refresh.Option) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Watcher{
		source: source,
		alert:  alert,
		logger: logger.With("component", "notify"),
	}
	opts = append([]refresh.Option{refresh.WithInterval(DefaultInterval), refresh.WithLogger(w.logger)}, opts...)
	w.sched = refresh.New(w.poll, notify, opts...)
	return w
}

// Start begins polling.
func (w *Watcher) Start(ctx context.Context) error {
	return w.sched.Start(ctx)
}

// Stop halts polling.
func (w *Watcher) Stop() {
	w.sched.Stop()
}

// Refresh polls now.
func (w *Watcher) Refresh() {
	w.sched.FireNow()
}

// Count returns the last known unread count.
func (w *Watcher) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Observe records a count obtained elsewhere, such as after marking items
// read. It alerts under the same rules as polling.
func (w *Watcher) Observe(n int) {
	w.mu.Lock()
	prev, loaded := w.count, w.loaded
	w.count, w.loaded = n, true
	w.mu.Unlock()

	if loaded && n > prev {
		w.logger.Info("new notifications", "unread", n, "previous", prev)
		if w.alert != nil {
			w.alert(prev, n)
		}
	}
}

func (w *Watcher) poll(ctx context.Context, _ refresh.Trigger) error {
	n, err := w.source.UnreadCount(ctx)
	if err != nil {
		return err
	}
	w.Observe(n)
	return nil
}
