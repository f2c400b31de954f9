package listing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/adroitalarm/shopdesk/internal/format"
	"github.com/adroitalarm/shopdesk/internal/grid"
	"github.com/adroitalarm/shopdesk/internal/model"
)

// Column headers for each record type, matching Cells.
var (
	OrderColumns    = []string{"#", "Order ID", "Customer", "Total", "Status", "Payment", "Method", "Date", "Items"}
	ReviewColumns   = []string{"#", "Review ID", "Order", "Customer", "Product", "Rating", "Status", "Date", "Comment"}
	PaymentColumns  = []string{"#", "Payment ID", "Order", "Invoice", "Customer", "Method", "Status", "Order Status", "Total", "Paid", "Paid On"}
	RefundColumns   = []string{"#", "Request", "Order", "Ordered", "Total", "Method", "Reason", "Status", "Requested", "Items"}
	UserColumns     = []string{"#", "User ID", "Name", "Email", "Phone", "Role", "Joined"}
	ProductColumns  = []string{"#", "Product ID", "Name", "SKU", "Category", "Price", "Qty"}
	CategoryColumns = []string{"#", "ID", "Category", "Description", "Subcategories"}
)

// OrderRecord is a display-ready order.
type OrderRecord struct {
	Index         int
	ID            string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	TotalAmount   string
	Status        string
	PaymentStatus string
	PaymentMethod string
	Date          string
	ItemsCount    int
	Raw           model.Order

	date time.Time
}

// FormatOrders builds order records numbered from 1.
func FormatOrders(orders []model.Order) []OrderRecord {
	out := make([]OrderRecord, 0, len(orders))
	for i, o := range orders {
		date, _ := format.ParseDate(o.Date, time.Local)
		out = append(out, OrderRecord{
			Index:         i + 1,
			ID:            o.OrderID.String(),
			CustomerName:  o.Customer.Name,
			CustomerEmail: o.Customer.Email,
			CustomerPhone: o.Customer.Phone,
			TotalAmount:   format.Currency(o.TotalAmount.String()),
			Status:        o.Status,
			PaymentStatus: o.PaymentStatus,
			PaymentMethod: o.PaymentMethod,
			Date:          format.Date(o.Date),
			ItemsCount:    len(o.Items),
			Raw:           o,
			date:          date,
		})
	}
	return out
}

func (r OrderRecord) Key() string           { return r.ID }
func (r OrderRecord) FilterDate() time.Time { return r.date }

func (r OrderRecord) FilterValue(dim string) string {
	switch dim {
	case DimStatus:
		return r.Status
	case DimPaymentStatus:
		return r.PaymentStatus
	case DimPaymentMethod:
		return r.PaymentMethod
	}
	return ""
}

func (r OrderRecord) Cells() []string {
	return []string{
		strconv.Itoa(r.Index), r.ID, r.CustomerName, r.TotalAmount, r.Status,
		r.PaymentStatus, r.PaymentMethod, r.Date, strconv.Itoa(r.ItemsCount),
	}
}

// ReviewRecord is a display-ready product review.
type ReviewRecord struct {
	Index       int
	ID          string
	OrderID     string
	UserName    string
	UserEmail   string
	ProductName string
	ProductID   string
	Rating      float64
	Comment     string
	Status      string
	Images      []string
	CreatedAt   string
	Raw         model.Review

	created time.Time
}

// FormatReviews builds review records numbered from 1. Missing authors and
// products render as "N/A".
func FormatReviews(reviews []model.Review) []ReviewRecord {
	out := make([]ReviewRecord, 0, len(reviews))
	for i, rv := range reviews {
		userName, userEmail, productName := "N/A", "N/A", "N/A"
		if rv.User != nil {
			userName = format.OrNA(rv.User.Name)
			userEmail = format.OrNA(rv.User.Email)
		}
		if rv.Product != nil {
			productName = format.OrNA(rv.Product.Name)
		}
		images := rv.Images
		if images == nil {
			images = []string{}
		}
		created, _ := format.ParseDate(rv.CreatedAt, time.Local)
		out = append(out, ReviewRecord{
			Index:       i + 1,
			ID:          rv.ReviewID.String(),
			OrderID:     rv.OrderID.String(),
			UserName:    userName,
			UserEmail:   userEmail,
			ProductName: productName,
			ProductID:   rv.ProductID.String(),
			Rating:      rv.Rating.FloatOr(0),
			Comment:     rv.Comment,
			Status:      rv.Status,
			Images:      images,
			CreatedAt:   format.Date(rv.CreatedAt),
			Raw:         rv,
			created:     created,
		})
	}
	return out
}

func (r ReviewRecord) Key() string           { return r.ID }
func (r ReviewRecord) FilterDate() time.Time { return r.created }

func (r ReviewRecord) FilterValue(dim string) string {
	if dim == DimStatus {
		return r.Status
	}
	return ""
}

func (r ReviewRecord) Cells() []string {
	return []string{
		strconv.Itoa(r.Index), r.ID, r.OrderID, r.UserName, r.ProductName,
		Stars(r.Rating), r.Status, r.CreatedAt, r.Comment,
	}
}

// Stars renders a 0-5 rating with half stars, e.g. "★★★½☆ 3.5".
func Stars(rating float64) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	full := int(rating)
	half := rating-float64(full) >= 0.5
	var b strings.Builder
	b.WriteString(strings.Repeat("★", full))
	empty := 5 - full
	if half {
		b.WriteString("½")
		empty--
	}
	b.WriteString(strings.Repeat("☆", empty))
	return fmt.Sprintf("%s %s", b.String(), strconv.FormatFloat(rating, 'f', -1, 64))
}

// PaymentRecord is a display-ready payment transaction.
type PaymentRecord struct {
	Index         int
	ID            string
	PaymentID     string
	OrderID       string
	InvoiceNumber string
	PaymentMethod string
	PaymentStatus string
	TotalPrice    string
	PaidAmount    string
	UpdatedAt     string
	PaymentDate   string
	OrderStatus   string
	UserName      string
	Raw           model.Payment

	paid time.Time
}

// FormatPayments builds payment records numbered from 1.
func FormatPayments(payments []model.Payment) []PaymentRecord {
	out := make([]PaymentRecord, 0, len(payments))
	for i, p := range payments {
		paid, _ := format.ParseDate(p.PaymentDate, time.Local)
		out = append(out, PaymentRecord{
			Index:         i + 1,
			ID:            p.ID.String(),
			PaymentID:     p.PaymentID,
			OrderID:       p.OrderID.String(),
			InvoiceNumber: p.InvoiceNumber,
			PaymentMethod: p.PaymentMethod,
			PaymentStatus: p.PaymentStatus,
			TotalPrice:    format.Currency(p.TotalPrice.String()),
			PaidAmount:    format.Currency(p.PaidAmount.String()),
			UpdatedAt:     format.Date(p.UpdatedAt),
			PaymentDate:   format.Date(p.PaymentDate),
			OrderStatus:   p.Order.OrderStatus,
			UserName:      strings.TrimSpace(p.User.FirstName + " " + p.User.LastName),
			Raw:           p,
			paid:          paid,
		})
	}
	return out
}

func (r PaymentRecord) Key() string           { return r.ID }
func (r PaymentRecord) FilterDate() time.Time { return r.paid }

func (r PaymentRecord) FilterValue(dim string) string {
	switch dim {
	case DimStatus, DimPaymentStatus:
		return r.PaymentStatus
	case DimOrderStatus:
		return r.OrderStatus
	case DimPaymentMethod:
		return r.PaymentMethod
	}
	return ""
}

func (r PaymentRecord) Cells() []string {
	return []string{
		strconv.Itoa(r.Index), r.PaymentID, r.OrderID, r.InvoiceNumber, r.UserName,
		r.PaymentMethod, r.PaymentStatus, r.OrderStatus, r.TotalPrice, r.PaidAmount, r.PaymentDate,
	}
}

// RefundRecord is a display-ready cancellation request.
type RefundRecord struct {
	Index         int
	ID            string
	OrderID       string
	OrderDate     string
	OrderTotal    string
	PaymentMethod string
	Reason        string
	Status        string
	RequestedAt   string
	ItemsCount    int
	Raw           model.Cancellation

	requested time.Time
}

// FormatRefunds builds refund records numbered from 1.
func FormatRefunds(cancellations []model.Cancellation) []RefundRecord {
	out := make([]RefundRecord, 0, len(cancellations))
	for i, c := range cancellations {
		requested, _ := format.ParseDate(c.RequestedAt, time.Local)
		out = append(out, RefundRecord{
			Index:         i + 1,
			ID:            c.CancellationID.String(),
			OrderID:       c.OrderID.String(),
			OrderDate:     format.Date(c.OrderDate),
			OrderTotal:    format.Currency(c.OrderTotal.String()),
			PaymentMethod: c.PaymentMethod,
			Reason:        c.Reason,
			Status:        c.Status,
			RequestedAt:   format.Date(c.RequestedAt),
			ItemsCount:    len(c.Items),
			Raw:           c,
			requested:     requested,
		})
	}
	return out
}

func (r RefundRecord) Key() string           { return r.ID }
func (r RefundRecord) FilterDate() time.Time { return r.requested }

func (r RefundRecord) FilterValue(dim string) string {
	switch dim {
	case DimStatus:
		return r.Status
	case DimPaymentMethod:
		return r.PaymentMethod
	}
	return ""
}

func (r RefundRecord) Cells() []string {
	return []string{
		strconv.Itoa(r.Index), r.ID, r.OrderID, r.OrderDate, r.OrderTotal,
		r.PaymentMethod, r.Reason, r.Status, r.RequestedAt, strconv.Itoa(r.ItemsCount),
	}
}

// UserRecord is a display-ready account.
type UserRecord struct {
	Index     int
	ID        string
	UserID    string
	Name      string
	Email     string
	Phone     string
	RoleID    string
	CreatedAt string
	Raw       model.User

	created time.Time
}

// FormatUsers builds user records numbered from 1.
func FormatUsers(users []model.User) []UserRecord {
	out := make([]UserRecord, 0, len(users))
	for i, u := range users {
		created, _ := format.ParseDate(u.CreatedAt, time.Local)
		out = append(out, UserRecord{
			Index:     i + 1,
			ID:        u.ID.String(),
			UserID:    u.UserID.String(),
			Name:      strings.TrimSpace(u.FirstName + " " + u.LastName),
			Email:     u.Email,
			Phone:     u.Phone,
			RoleID:    u.RoleID.String(),
			CreatedAt: format.Date(u.CreatedAt),
			Raw:       u,
			created:   created,
		})
	}
	return out
}

func (r UserRecord) Key() string           { return r.ID }
func (r UserRecord) FilterDate() time.Time { return r.created }

func (r UserRecord) FilterValue(dim string) string {
	if dim == DimRole {
		return r.RoleID
	}
	return ""
}

func (r UserRecord) Cells() []string {
	return []string{strconv.Itoa(r.Index), r.UserID, r.Name, r.Email, r.Phone, r.RoleID, r.CreatedAt}
}

// ProductRecord is a display-ready catalogue entry.
type ProductRecord struct {
	Index    int
	ID       string
	Name     string
	SKU      string
	Category string
	Price    string
	Quantity string
	Raw      model.Product
}

// FormatProducts builds product records numbered from 1.
func FormatProducts(products []model.Product) []ProductRecord {
	out := make([]ProductRecord, 0, len(products))
	for i, p := range products {
		out = append(out, ProductRecord{
			Index:    i + 1,
			ID:       p.ProductID.String(),
			Name:     p.ProductName,
			SKU:      p.SKU,
			Category: p.CategoryName(),
			Price:    format.Currency(p.Price.String()),
			Quantity: strconv.Itoa(p.Quantity.Int()),
			Raw:      p,
		})
	}
	return out
}

func (r ProductRecord) Key() string           { return r.ID }
func (r ProductRecord) FilterDate() time.Time { return time.Time{} }

func (r ProductRecord) FilterValue(dim string) string {
	if dim == DimCategory {
		return r.Category
	}
	return ""
}

func (r ProductRecord) Cells() []string {
	return []string{strconv.Itoa(r.Index), r.ID, r.Name, r.SKU, r.Category, r.Price, r.Quantity}
}

// CategoryRecord is a display-ready category.
type CategoryRecord struct {
	Index         int
	ID            string
	Name          string
	Description   string
	Subcategories []string
	Raw           model.Category
}

// FormatCategories builds category records numbered from 1.
func FormatCategories(categories []model.Category) []CategoryRecord {
	out := make([]CategoryRecord, 0, len(categories))
	for i, c := range categories {
		out = append(out, CategoryRecord{
			Index:         i + 1,
			ID:            c.ID.String(),
			Name:          c.CategoryName,
			Description:   c.Description,
			Subcategories: c.Subcategories(),
			Raw:           c,
		})
	}
	return out
}

func (r CategoryRecord) Key() string                { return r.ID }
func (r CategoryRecord) FilterDate() time.Time      { return time.Time{} }
func (r CategoryRecord) FilterValue(_ string) string { return "" }

func (r CategoryRecord) Cells() []string {
	return []string{strconv.Itoa(r.Index), r.ID, r.Name, r.Description, strings.Join(r.Subcategories, ", ")}
}

// Rows converts records into grid rows keyed by backend ID.
func Rows[R Record](records []R) []grid.Row {
	rows := make([]grid.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, grid.Row{Key: r.Key(), Cells: r.Cells()})
	}
	return rows
}

// Matrix converts records into a header row followed by one row of cells
// per record, for exports.
func Matrix[R Record](header []string, records []R) [][]string {
	out := make([][]string, 0, len(records)+1)
	out = append(out, append([]string(nil), header...))
	for _, r := range records {
		out = append(out, r.Cells())
	}
	return out
}
