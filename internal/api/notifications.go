package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/adroitalarm/shopdesk/internal/model"
)

// Notifications lists the admin's notifications.
func (c *Client) Notifications(ctx context.Context) ([]model.Notification, error) {
	var resp struct {
		Data []model.Notification `json:"data"`
	}
	if err := c.get(ctx, "/notifications", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching notifications: %w", err)
	}
	return resp.Data, nil
}

// UnreadCount returns the number of unread notifications.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		UnreadCount int `json:"unread_count"`
	}
	if err := c.get(ctx, "/notifications/unread-count", nil, &resp); err != nil {
		return 0, fmt.Errorf("fetching unread count: %w", err)
	}
	return resp.UnreadCount, nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	if err := c.put(ctx, "/notifications/"+url.PathEscape(id)+"/read", struct{}{}, nil); err != nil {
		return fmt.Errorf("marking notification %s read: %w", id, err)
	}
	return nil
}

// MarkAllNotificationsRead marks every notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	if err := c.put(ctx, "/notifications/read-all", struct{}{}, nil); err != nil {
		return fmt.Errorf("marking notifications read: %w", err)
	}
	return nil
}

// DeleteNotification removes one notification.
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/notifications/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("deleting notification %s: %w", id, err)
	}
	return nil
}

// ClearNotifications removes every notification.
func (c *Client) ClearNotifications(ctx context.Context) error {
	if err := c.delete(ctx, "/notifications", nil); err != nil {
		return fmt.Errorf("clearing notifications: %w", err)
	}
	return nil
}
