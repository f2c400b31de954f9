package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/adroitalarm/shopdesk/internal/common"
	"github.com/adroitalarm/shopdesk/internal/model"
)

// PagedList reads single pages of a paginated listing whose items live
// under itemsKey next to a "pagination" envelope.
type PagedList[T any] struct {
	client   *Client
	path     string
	itemsKey string
	params   url.Values
}

// NewPagedList binds a listing endpoint. params are sent with every page.
func NewPagedList[T any](c *Client, path, itemsKey string, params url.Values) *PagedList[T] {
	return &PagedList[T]{
		client:   c,
		path:     path,
		itemsKey: itemsKey,
		params:   params,
	}
}

// FetchPage requests one 1-based page.
func (p *PagedList[T]) FetchPage(ctx context.Context, page int) ([]T, model.Pagination, error) {
	query := url.Values{}
	for k, v := range p.params {
		query[k] = append([]string(nil), v...)
	}
	query.Set("page", strconv.Itoa(page))

	var body map[string]json.RawMessage
	if err := p.client.get(ctx, p.path, query, &body); err != nil {
		return nil, model.Pagination{}, err
	}

	var pagination model.Pagination
	if raw, ok := body["pagination"]; ok {
		if err := json.Unmarshal(raw, &pagination); err != nil {
			return nil, model.Pagination{}, fmt.Errorf("%w: decoding pagination of %s page %d: %w", common.ErrRequestFailed, p.path, page, err)
		}
	}

	var items []T
	if raw, ok := body[p.itemsKey]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, model.Pagination{}, fmt.Errorf("%w: decoding %s of %s page %d: %w", common.ErrRequestFailed, p.itemsKey, p.path, page, err)
		}
	}
	return items, pagination, nil
}

// Orders returns the paginated order listing.
func (c *Client) Orders() *PagedList[model.Order] {
	return NewPagedList[model.Order](c, "/admin/orders", "orders", nil)
}

// Reviews returns the paginated review listing, newest first.
func (c *Client) Reviews() *PagedList[model.Review] {
	return NewPagedList[model.Review](c, "/admin/reviews", "reviews", url.Values{
		"per_page":   {"100"},
		"status":     {"all"},
		"sort_by":    {"created_at"},
		"sort_order": {"desc"},
	})
}
