package model

// Cancellation is a customer's refund request from
// /admin/orders/cancellations.
type Cancellation struct {
	CancellationID Numeric     `json:"cancellation_id"`
	OrderID        Numeric     `json:"order_id"`
	OrderDate      string      `json:"order_date"`
	OrderTotal     Numeric     `json:"order_total"`
	PaymentMethod  string      `json:"payment_method"`
	Reason         string      `json:"reason"`
	Status         string      `json:"status"`
	RequestedAt    string      `json:"requested_at"`
	RefundID       string      `json:"refund_id,omitempty"`
	AdminNotes     string      `json:"admin_notes,omitempty"`
	Items          []OrderItem `json:"items"`
}

// RefundStatus is the payment provider's view of a processed refund.
type RefundStatus struct {
	RefundID  string  `json:"refund_id"`
	Status    string  `json:"status"`
	Amount    Numeric `json:"amount"`
	Currency  string  `json:"currency"`
	CreatedAt string  `json:"created_at"`
}

// Default admin notes sent with a decision.
const (
	ApproveRefundNote = "Approved and refund processed"
	RejectRefundNote  = "Cancellation rejected because the order is already shipped."
)
