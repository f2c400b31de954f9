package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/adroitalarm/shopdesk/internal/model"
)

// OrderSummary fetches the detail view of an order.
func (c *Client) OrderSummary(ctx context.Context, orderID string) (model.OrderSummary, error) {
	var resp struct {
		Data model.OrderSummary `json:"data"`
	}
	if err := c.get(ctx, "/orders/"+url.PathEscape(orderID)+"/summary", nil, &resp); err != nil {
		return model.OrderSummary{}, fmt.Errorf("fetching order %s: %w", orderID, err)
	}
	return resp.Data, nil
}

// UpdateOrder changes an order's status and tracking status.
func (c *Client) UpdateOrder(ctx context.Context, orderID string, update model.OrderUpdate) error {
	if err := c.put(ctx, "/orders/"+url.PathEscape(orderID)+"/update", update, nil); err != nil {
		return fmt.Errorf("updating order %s: %w", orderID, err)
	}
	return nil
}

// DeleteOrder removes an order.
func (c *Client) DeleteOrder(ctx context.Context, orderID string) error {
	if err := c.delete(ctx, "/admin/orders/"+url.PathEscape(orderID), nil); err != nil {
		return fmt.Errorf("deleting order %s: %w", orderID, err)
	}
	return nil
}
