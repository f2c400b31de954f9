package testutil

import (
	"fmt"
	"strconv"

	"github.com/adroitalarm/shopdesk/internal/model"
)

// OrderBuilder assembles order fixtures. IDs count up from 1 and dates
// from the first of March 2025, one day per order.
//
//	orders := testutil.NewOrderBuilder().
//		WithOrders(3, model.OrderPending).
//		WithOrder(model.OrderShipped, "paid", "card").
//		Build()
type OrderBuilder struct {
	orders []model.Order
}

// NewOrderBuilder returns an empty builder.
func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{}
}

// WithOrder adds one order.
func (b *OrderBuilder) WithOrder(status, paymentStatus, paymentMethod string) *OrderBuilder {
	n := len(b.orders) + 1
	b.orders = append(b.orders, model.Order{
		OrderID: model.Numeric(strconv.Itoa(n)),
		Customer: model.Customer{
			Name:  fmt.Sprintf("Customer %d", n),
			Email: fmt.Sprintf("customer%d@example.com", n),
		},
		TotalAmount:   model.Numeric(fmt.Sprintf("%d.50", n*10)),
		Status:        status,
		PaymentStatus: paymentStatus,
		PaymentMethod: paymentMethod,
		Date:          fmt.Sprintf("2025-03-%02dT12:00:00Z", (n-1)%28+1),
		Items: []model.OrderItem{{
			ProductName: "Door Sensor",
			Quantity:    "1",
			Price:       model.Numeric(fmt.Sprintf("%d.50", n*10)),
			Total:       model.Numeric(fmt.Sprintf("%d.50", n*10)),
		}},
	})
	return b
}

// WithOrders adds n unpaid cash-on-delivery orders in status.
func (b *OrderBuilder) WithOrders(n int, status string) *OrderBuilder {
	for range n {
		b.WithOrder(status, "pending", "cod")
	}
	return b
}

// Build returns the orders.
func (b *OrderBuilder) Build() []model.Order {
	return append([]model.Order(nil), b.orders...)
}

// Paginate splits orders into pages of size perPage.
func Paginate(orders []model.Order, perPage int) [][]model.Order {
	var pages [][]model.Order
	for len(orders) > perPage {
		pages = append(pages, orders[:perPage])
		orders = orders[perPage:]
	}
	return append(pages, orders)
}
