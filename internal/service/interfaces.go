// Package service defines the backend capabilities the dashboard and the
// commands depend on.
package service

import (
	"context"

	"github.com/adroitalarm/shopdesk/internal/api"
	"github.com/adroitalarm/shopdesk/internal/model"
)

// Orders manages individual orders.
type Orders interface {
	OrderSummary(ctx context.Context, orderID string) (model.OrderSummary, error)
	UpdateOrder(ctx context.Context, orderID string, update model.OrderUpdate) error
	DeleteOrder(ctx context.Context, orderID string) error
}

// Reviews moderates product reviews.
type Reviews interface {
	ApproveReview(ctx context.Context, reviewID string) error
	RejectReview(ctx context.Context, reviewID string) error
}

// Sales covers payments and cancellation requests.
type Sales interface {
	Payments(ctx context.Context) ([]model.Payment, error)
	Cancellations(ctx context.Context) ([]model.Cancellation, error)
	DecideCancellation(ctx context.Context, cancellationID string, approve bool, notes string) error
	RefundStatus(ctx context.Context, refundID string) (model.RefundStatus, error)
}

// Catalog manages categories, products and the user directory.
type Catalog interface {
	Categories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, payload model.CategoryPayload) error
	EditCategory(ctx context.Context, id string, payload model.CategoryPayload) error
	DeleteCategory(ctx context.Context, id string) error
	Products(ctx context.Context) ([]model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	Users(ctx context.Context) ([]model.User, error)
}

// Notifications manages the admin inbox.
type Notifications interface {
	Notifications(ctx context.Context) ([]model.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id string) error
	ClearNotifications(ctx context.Context) error
}

// Reports reads sales reports.
type Reports interface {
	ReportFilters(ctx context.Context) (model.ReportFilters, error)
	MonthlyReports(ctx context.Context, month, year string) ([]model.ReportEntry, error)
	YearlyReports(ctx context.Context, year string) ([]model.ReportEntry, error)
	ReportsByDate(ctx context.Context, start, end string) ([]model.ReportEntry, error)
	DailyReport(ctx context.Context, date string) (model.DailyReport, error)
	ReportDetail(ctx context.Context, viewType, period, tab string) (model.ReportDetail, error)
}

// Backend is everything the admin API offers besides the paged listings.
type Backend interface {
	Orders
	Reviews
	Sales
	Catalog
	Notifications
	Reports
}

var _ Backend = (*api.Client)(nil)
