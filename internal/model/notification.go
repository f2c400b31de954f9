package model

// NotificationData is the structured payload of a notification; every
// field is optional.
type NotificationData struct {
	OrderID      Numeric `json:"order_id,omitempty"`
	CustomerName string  `json:"customer_name,omitempty"`
	Message      string  `json:"message,omitempty"`
	Amount       Numeric `json:"amount,omitempty"`
}

// Notification is one entry of /notifications.
type Notification struct {
	NotificationID Numeric           `json:"notification_id"`
	Type           string            `json:"type"`
	Status         string            `json:"status"`
	Data           *NotificationData `json:"data"`
	CreatedAt      string            `json:"created_at"`
}

// Unread reports whether the notification still needs attention.
func (n Notification) Unread() bool {
	return n.Status == "unread"
}
