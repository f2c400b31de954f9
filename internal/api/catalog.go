package api

import (
	"context"
	"fmt"
	"net/url"
	"slices"

	"github.com/adroitalarm/shopdesk/internal/model"
)

// Categories lists product categories, newest first. The endpoint returns
// a bare array in creation order.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.get(ctx, "/getcategory", nil, &categories); err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}
	slices.Reverse(categories)
	return categories, nil
}

// CreateCategory stores a new category.
func (c *Client) CreateCategory(ctx context.Context, payload model.CategoryPayload) error {
	if err := c.post(ctx, "/storecategory", payload, nil); err != nil {
		return fmt.Errorf("creating category %q: %w", payload.CategoryName, err)
	}
	return nil
}

// EditCategory replaces a category.
func (c *Client) EditCategory(ctx context.Context, id string, payload model.CategoryPayload) error {
	if err := c.post(ctx, "/editcategory/"+url.PathEscape(id), payload, nil); err != nil {
		return fmt.Errorf("editing category %s: %w", id, err)
	}
	return nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	if err := c.post(ctx, "/deletecategory/"+url.PathEscape(id), struct{}{}, nil); err != nil {
		return fmt.Errorf("deleting category %s: %w", id, err)
	}
	return nil
}

// Products lists the catalogue.
func (c *Client) Products(ctx context.Context) ([]model.Product, error) {
	var resp struct {
		Products []model.Product `json:"products"`
	}
	if err := c.get(ctx, "/products", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching products: %w", err)
	}
	return resp.Products, nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/products/deleteproduct/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("deleting product %s: %w", id, err)
	}
	return nil
}

// Users lists customer and staff accounts. The endpoint returns a bare
// array.
func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.get(ctx, "/users", nil, &users); err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	return users, nil
}
