package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/adroitalarm/shopdesk/internal/model"
)

// Payments lists every payment transaction.
func (c *Client) Payments(ctx context.Context) ([]model.Payment, error) {
	var resp struct {
		Data []model.Payment `json:"data"`
	}
	if err := c.get(ctx, "/payments", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching payments: %w", err)
	}
	return resp.Data, nil
}

// Cancellations lists refund requests.
func (c *Client) Cancellations(ctx context.Context) ([]model.Cancellation, error) {
	var resp struct {
		Data []model.Cancellation `json:"data"`
	}
	if err := c.get(ctx, "/admin/orders/cancellations", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching cancellations: %w", err)
	}
	return resp.Data, nil
}

// DecideCancellation approves or rejects a refund request with admin notes.
// Empty notes fall back to the standard wording for the decision.
func (c *Client) DecideCancellation(ctx context.Context, cancellationID string, approve bool, notes string) error {
	action := "reject"
	if approve {
		action = "approve"
	}
	if notes == "" {
		notes = model.RejectRefundNote
		if approve {
			notes = model.ApproveRefundNote
		}
	}

	body := map[string]string{"admin_notes": notes}
	path := "/admin/cancellations/" + url.PathEscape(cancellationID) + "/" + action
	if err := c.post(ctx, path, body, nil); err != nil {
		return fmt.Errorf("%s cancellation %s: %w", action, cancellationID, err)
	}
	return nil
}

// RefundStatus checks a processed refund with the payment provider.
func (c *Client) RefundStatus(ctx context.Context, refundID string) (model.RefundStatus, error) {
	var resp struct {
		Data model.RefundStatus `json:"data"`
	}
	if err := c.get(ctx, "/admin/refund-status/"+url.PathEscape(refundID), nil, &resp); err != nil {
		return model.RefundStatus{}, fmt.Errorf("verifying refund %s: %w", refundID, err)
	}
	return resp.Data, nil
}
