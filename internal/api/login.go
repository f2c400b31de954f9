package api

import (
	"context"
	"fmt"

	"github.com/adroitalarm/shopdesk/internal/model"
)

// Login exchanges credentials for a bearer token. It needs no stored token
// and a 401 here does not count as session expiry.
func (c *Client) Login(ctx context.Context, email, password string) (model.LoginResponse, error) {
	var resp model.LoginResponse
	req := model.LoginRequest{Email: email, Password: password}
	if err := c.post(ctx, loginPath, req, &resp); err != nil {
		return model.LoginResponse{}, fmt.Errorf("login failed: %w", err)
	}
	return resp, nil
}
