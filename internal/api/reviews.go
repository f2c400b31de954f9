package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/adroitalarm/shopdesk/internal/model"
)

// ApproveReview publishes a review.
func (c *Client) ApproveReview(ctx context.Context, reviewID string) error {
	if err := c.post(ctx, "/admin/reviews/"+url.PathEscape(reviewID)+"/approve", struct{}{}, nil); err != nil {
		return fmt.Errorf("approving review %s: %w", reviewID, err)
	}
	return nil
}

// RejectReview rejects a review.
func (c *Client) RejectReview(ctx context.Context, reviewID string) error {
	if err := c.delete(ctx, "/admin/reviews/"+url.PathEscape(reviewID)+"/reject", nil); err != nil {
		return fmt.Errorf("rejecting review %s: %w", reviewID, err)
	}
	return nil
}

// SetReviewStatus applies an approved or rejected decision.
func (c *Client) SetReviewStatus(ctx context.Context, reviewID, status string) error {
	switch status {
	case model.ReviewApproved:
		return c.ApproveReview(ctx, reviewID)
	case model.ReviewRejected:
		return c.RejectReview(ctx, reviewID)
	default:
		return fmt.Errorf("invalid review status %q", status)
	}
}
