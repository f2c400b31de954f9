package model

// Customer is the buyer embedded in an order.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// OrderItem is a single line of an order.
type OrderItem struct {
	ProductID   Numeric `json:"product_id,omitempty"`
	ProductName string  `json:"product_name"`
	Quantity    Numeric `json:"quantity"`
	Price       Numeric `json:"price"`
	Total       Numeric `json:"total"`
	Image       string  `json:"image,omitempty"`
}

// Order is one entry of /admin/orders.
type Order struct {
	OrderID       Numeric     `json:"order_id"`
	Customer      Customer    `json:"customer"`
	TotalAmount   Numeric     `json:"total_amount"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"payment_status"`
	PaymentMethod string      `json:"payment_method"`
	Date          string      `json:"date"`
	Items         []OrderItem `json:"items"`
}

// OrderSummary is the detail payload returned by /orders/{id}/summary.
type OrderSummary struct {
	OrderID       Numeric     `json:"order_id"`
	OrderStatus   string      `json:"orderstatus"`
	TrackStatus   string      `json:"track_status"`
	PaymentStatus string      `json:"payment_status"`
	TotalPrice    Numeric     `json:"total_price"`
	Customer      Customer    `json:"customer"`
	Items         []OrderItem `json:"items"`
	CreatedAt     string      `json:"created_at"`
	UpdatedAt     string      `json:"updated_at"`
}

// OrderUpdate is the body of PUT /orders/{id}/update.
type OrderUpdate struct {
	OrderStatus string `json:"orderstatus"`
	TrackStatus string `json:"track_status"`
}

// Order statuses the backend accepts.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// OrderStatuses lists the statuses in workflow order.
var OrderStatuses = []string{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}
