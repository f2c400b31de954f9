package model

// PaymentOrder is the order snapshot attached to a payment.
type PaymentOrder struct {
	OrderStatus   string  `json:"orderstatus"`
	PaymentStatus string  `json:"payment_status"`
	TotalPrice    Numeric `json:"total_price"`
	UpdatedAt     string  `json:"updated_at"`
}

// PaymentUser is the payer attached to a payment.
type PaymentUser struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Payment is one entry of /payments.
type Payment struct {
	ID            Numeric      `json:"id"`
	PaymentID     string       `json:"payment_id"`
	OrderID       Numeric      `json:"order_id"`
	InvoiceNumber string       `json:"invoice_number"`
	PaymentMethod string       `json:"payment_method"`
	PaymentStatus string       `json:"payment_status"`
	TotalPrice    Numeric      `json:"total_price"`
	PaidAmount    Numeric      `json:"paid_amount"`
	PaymentDate   string       `json:"payment_date"`
	UpdatedAt     string       `json:"updated_at"`
	Order         PaymentOrder `json:"order"`
	User          PaymentUser  `json:"user"`
}
