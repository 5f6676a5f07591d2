package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/zmarolt/catadmin/internal/model"
)

// ListItems returns the full item collection.
func (c *Client) ListItems(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	if err := c.doJSON(ctx, http.MethodGet, "/api/item", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem fetches a single item by id.
func (c *Client) GetItem(ctx context.Context, id string) (*model.Item, error) {
	item := &model.Item{}
	if err := c.doJSON(ctx, http.MethodGet, "/api/item/"+url.PathEscape(id), nil, item); err != nil {
		return nil, err
	}
	return item, nil
}

// CreateItem posts a new item. Values are sent as received from the
// form; the backend validates them.
func (c *Client) CreateItem(ctx context.Context, name, category, price string) error {
	body := map[string]string{
		"itemName":     name,
		"itemCategory": category,
		"itemPrice":    price,
	}
	return c.doJSON(ctx, http.MethodPost, "/api/item", body, nil)
}

// UpdateItem issues a partial update. Note the field names differ from
// CreateItem; that is the backend contract.
func (c *Client) UpdateItem(ctx context.Context, id, name, category, price string) error {
	body := map[string]string{
		"name":     name,
		"category": category,
		"price":    price,
	}
	return c.doJSON(ctx, http.MethodPatch, "/api/item/"+url.PathEscape(id), body, nil)
}

// DeleteItem removes an item.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/item/"+url.PathEscape(id), nil, nil)
}
