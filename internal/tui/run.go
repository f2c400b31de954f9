package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/adroitalarm/shopdesk/internal/listing"
	"github.com/adroitalarm/shopdesk/internal/model"
	"github.com/adroitalarm/shopdesk/internal/notify"
	"github.com/adroitalarm/shopdesk/internal/refresh"
	"github.com/adroitalarm/shopdesk/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// Sources are the listings and mutations behind the default tabs.
type Sources struct {
	Orders     listing.PageSource[model.Order]
	Reviews    listing.PageSource[model.Review]
	Backend    service.Backend
	Fetch      listing.FetchOptions
	PageLength int
}

// Intervals are the poll periods of the default tabs.
type Intervals struct {
	Orders        time.Duration
	Reviews       time.Duration
	Payments      time.Duration
	Refunds       time.Duration
	Notifications time.Duration
	RunTimeout    time.Duration
}

// Dashboard is a set of tabs plus the notification badge.
type Dashboard struct {
	Tabs           []*Tab
	Intervals      []time.Duration
	RunTimeout     time.Duration
	Unread         notify.Source
	UnreadInterval time.Duration
}

// NewDashboard builds the Orders, Reviews, Payments and Refunds tabs.
func NewDashboard(src Sources, iv Intervals) Dashboard {
	keys := DefaultKeyMap()
	b := src.Backend

	orders := NewTab("Orders", listing.OrderColumns, listing.Loader[model.Order, listing.OrderRecord]{
		Source:  src.Orders,
		Format:  listing.FormatOrders,
		Options: src.Fetch,
	}, src.PageLength, listing.DimStatus, listing.DimPaymentStatus, listing.DimPaymentMethod).
		WithActions(Action{
			Binding: keys.Delete, Verb: "Delete", Noun: "order",
			Success: "Order deleted successfully",
			Run:     b.DeleteOrder,
		})

	reviews := NewTab("Reviews", listing.ReviewColumns, listing.Loader[model.Review, listing.ReviewRecord]{
		Source:  src.Reviews,
		Format:  listing.FormatReviews,
		Options: src.Fetch,
	}, src.PageLength, listing.DimStatus).
		WithActions(
			Action{
				Binding: keys.Approve, Verb: "Approve", Noun: "review",
				Success: "Review approved successfully",
				Run:     b.ApproveReview,
			},
			Action{
				Binding: keys.Reject, Verb: "Reject", Noun: "review",
				Success: "Review rejected successfully",
				Run:     b.RejectReview,
			},
		)

	payments := NewTab("Payments", listing.PaymentColumns, listing.Loader[model.Payment, listing.PaymentRecord]{
		Source:  listing.SinglePage(b.Payments),
		Format:  listing.FormatPayments,
		Options: src.Fetch,
	}, src.PageLength, listing.DimPaymentStatus, listing.DimOrderStatus, listing.DimPaymentMethod)

	refunds := NewTab("Refunds", listing.RefundColumns, listing.Loader[model.Cancellation, listing.RefundRecord]{
		Source:  listing.SinglePage(b.Cancellations),
		Format:  listing.FormatRefunds,
		Options: src.Fetch,
	}, src.PageLength, listing.DimStatus, listing.DimPaymentMethod).
		WithActions(
			Action{
				Binding: keys.Approve, Verb: "Approve", Noun: "refund request",
				Success: "Refund request approved",
				Run: func(ctx context.Context, id string) error {
					return b.DecideCancellation(ctx, id, true, "")
				},
			},
			Action{
				Binding: keys.Reject, Verb: "Reject", Noun: "refund request",
				Success: "Refund request rejected",
				Run: func(ctx context.Context, id string) error {
					return b.DecideCancellation(ctx, id, false, "")
				},
			},
		)

	return Dashboard{
		Tabs:           []*Tab{orders, reviews, payments, refunds},
		Intervals:      []time.Duration{iv.Orders, iv.Reviews, iv.Payments, iv.Refunds},
		RunTimeout:     iv.RunTimeout,
		Unread:         b,
		UnreadInterval: iv.Notifications,
	}
}

// Run starts one refresh scheduler per tab and the unread watcher, then
// blocks until the operator quits, the WithStop channel closes or ctx is
// cancelled.
func (d Dashboard) Run(ctx context.Context, opts ...Option) error {
	if len(d.Tabs) == 0 {
		return errors.New("dashboard has no tabs")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.Logger.With("component", "dashboard")
	opts = append(opts, WithContext(ctx))

	// program is assigned before any scheduler starts; Send blocks until
	// the event loop runs and returns once ctx is done.
	var program *tea.Program
	send := func(msg tea.Msg) {
		program.Send(msg)
	}

	schedulers := make([]*refresh.Scheduler, len(d.Tabs))
	refreshers := make([]Refresher, len(d.Tabs))
	for i, tab := range d.Tabs {
		run := func(ctx context.Context, _ refresh.Trigger) error {
			records, pagination, err := tab.Load(ctx)
			if err != nil {
				return err
			}
			send(recordsLoadedMsg{tab: i, records: records, pagination: pagination})
			return nil
		}
		onState := func(st refresh.State) {
			send(refreshStateMsg{tab: i, state: st})
		}
		s := refresh.New(run, onState,
			refresh.WithInterval(d.interval(i)),
			refresh.WithRunTimeout(d.RunTimeout),
			refresh.WithLogger(logger.With("tab", tab.Title)),
		)
		schedulers[i] = s
		refreshers[i] = s
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if cfg.Input != nil {
		programOpts = append(programOpts, tea.WithInput(cfg.Input))
	}
	if cfg.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(cfg.Output))
	}
	program = tea.NewProgram(NewModel(d.Tabs, refreshers, opts...), programOpts...)

	for _, s := range schedulers {
		if err := s.Start(ctx); err != nil {
			return fmt.Errorf("failed to start refresh: %w", err)
		}
		defer s.Stop()
	}

	if d.Unread != nil {
		w := d.startWatcher(ctx, send, logger)
		defer w.Stop()
	}

	if cfg.Stop != nil {
		go func() {
			select {
			case <-cfg.Stop:
				logger.Info("Dashboard stopping")
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	_, err := program.Run()
	cancel()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	logger.Debug("Dashboard closed")
	return nil
}

func (d Dashboard) startWatcher(ctx context.Context, send func(tea.Msg), logger *slog.Logger) *notify.Watcher {
	var w *notify.Watcher
	alert := func(prev, cur int) {
		send(newNotificationsMsg{prev: prev, cur: cur})
	}
	onState := func(st refresh.State) {
		if !st.Loading && !st.Refreshing {
			send(unreadCountMsg{count: w.Count()})
		}
	}
	interval := d.UnreadInterval
	if interval <= 0 {
		interval = notify.DefaultInterval
	}
	w = notify.NewWatcher(d.Unread, alert, onState, logger, refresh.WithInterval(interval))
	if err := w.Start(ctx); err != nil {
		logger.Warn("Notification watcher not started", "error", err)
	}
	return w
}

func (d Dashboard) interval(i int) time.Duration {
	if i < len(d.Intervals) && d.Intervals[i] > 0 {
		return d.Intervals[i]
	}
	return 30 * time.Second
}
