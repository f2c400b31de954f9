package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adroitalarm/shopdesk/internal/grid"
	"github.com/adroitalarm/shopdesk/internal/model"
)

func TestFormatOrders(t *testing.T) {
	orders := []model.Order{{
		OrderID:       "501",
		Customer:      model.Customer{Name: "Dana Lee", Email: "dana@example.com"},
		TotalAmount:   "12.3",
		Status:        "processing",
		PaymentStatus: "paid",
		PaymentMethod: "card",
		Date:          "2024-03-05",
		Items:         []model.OrderItem{{ProductName: "Siren"}, {ProductName: "Keypad"}},
	}}

	recs := FormatOrders(orders)
	require.Len(t, recs, 1)
	r := recs[0]
	assert.Equal(t, 1, r.Index)
	assert.Equal(t, "501", r.Key())
	assert.Equal(t, "$12.30", r.TotalAmount)
	assert.Equal(t, "03/05/2024", r.Date)
	assert.Equal(t, 2, r.ItemsCount)
	assert.Equal(t, "12.3", r.Raw.TotalAmount.String(), "raw record must be untouched")
	assert.Equal(t, "paid", r.FilterValue(DimPaymentStatus))
	assert.Len(t, r.Cells(), len(OrderColumns))
}

func TestFormatReviewsDefaults(t *testing.T) {
	recs := FormatReviews([]model.Review{{ReviewID: "9", Rating: "3.5", Status: "pending", CreatedAt: "not-a-date"}})
	require.Len(t, recs, 1)
	r := recs[0]
	assert.Equal(t, "N/A", r.UserName)
	assert.Equal(t, "N/A", r.ProductName)
	assert.Equal(t, []string{}, r.Images)
	assert.Equal(t, "not-a-date", r.CreatedAt)
	assert.True(t, r.FilterDate().IsZero())
	assert.Len(t, r.Cells(), len(ReviewColumns))
}

func TestFormatPayments(t *testing.T) {
	recs := FormatPayments([]model.Payment{{
		ID:            "3",
		PaymentID:     "pi_123",
		TotalPrice:    "99.999",
		PaidAmount:    "abc",
		PaymentStatus: "paid",
		Order:         model.PaymentOrder{OrderStatus: "shipped"},
		User:          model.PaymentUser{FirstName: "Sam", LastName: "Ng"},
	}})
	require.Len(t, recs, 1)
	assert.Equal(t, "$100.00", recs[0].TotalPrice)
	assert.Equal(t, "$NaN", recs[0].PaidAmount)
	assert.Equal(t, "Sam Ng", recs[0].UserName)
	assert.Equal(t, "shipped", recs[0].FilterValue(DimOrderStatus))
	assert.Len(t, recs[0].Cells(), len(PaymentColumns))
}

func TestFormatRefundsAndOthers(t *testing.T) {
	refunds := FormatRefunds([]model.Cancellation{{CancellationID: "77", OrderTotal: "5", Status: "pending"}})
	require.Len(t, refunds, 1)
	assert.Equal(t, "77", refunds[0].Key())
	assert.Equal(t, "$5.00", refunds[0].OrderTotal)
	assert.Len(t, refunds[0].Cells(), len(RefundColumns))

	users := FormatUsers([]model.User{{ID: "1", FirstName: "Ana", RoleID: "1"}})
	assert.Equal(t, "Ana", users[0].Name)
	assert.Len(t, users[0].Cells(), len(UserColumns))

	products := FormatProducts([]model.Product{{ProductID: "8", Price: "7.5", Quantity: "3"}})
	assert.Equal(t, "$7.50", products[0].Price)
	assert.Len(t, products[0].Cells(), len(ProductColumns))

	cats := FormatCategories([]model.Category{{ID: "2", CategoryName: "Alarms", RawSubcategory: `["Wired"]`}})
	assert.Equal(t, "Wired", cats[0].Cells()[4])
	assert.Len(t, cats[0].Cells(), len(CategoryColumns))
}

func TestStars(t *testing.T) {
	assert.Equal(t, "★★★½☆ 3.5", Stars(3.5))
	assert.Equal(t, "★★★★★ 5", Stars(7))
	assert.Equal(t, "☆☆☆☆☆ 0", Stars(-1))
}

func TestRowsAndMatrix(t *testing.T) {
	recs := sampleOrders()[:2]

	rows := Rows(recs)
	assert.Equal(t, []grid.Row{
		{Key: "101", Cells: recs[0].Cells()},
		{Key: "102", Cells: recs[1].Cells()},
	}, rows)

	m := Matrix(OrderColumns, recs)
	require.Len(t, m, 3)
	assert.Equal(t, OrderColumns, m[0])
}
