package backend

import (
	"context"
	"net/url"
	"strconv"

	"ev-storefront/internal/catalog/domain/model"
)

// ListProducts fetches the catalog, optionally filtered by search term and
// category. Listing is public; no token needed.
func (c *Client) ListProducts(ctx context.Context, filters model.Filters) ([]model.Product, error) {
	path := "/products"

	params := url.Values{}
	if filters.Search != "" {
		params.Set("search", filters.Search)
	}
	if filters.Category != "" {
		params.Set("category", filters.Category)
	}
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var products []model.Product
	if _, err := c.get(ctx, path, "", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches one product.
func (c *Client) GetProduct(ctx context.Context, productID int) (*model.Product, error) {
	var product model.Product
	if _, err := c.get(ctx, "/products/"+strconv.Itoa(productID), "", &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a catalog entry (admin operation).
func (c *Client) CreateProduct(ctx context.Context, token string, product *model.Product) (*model.Product, error) {
	var created model.Product
	if _, err := c.post(ctx, "/products", token, product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct updates a catalog entry (admin operation).
func (c *Client) UpdateProduct(ctx context.Context, token string, productID int, product *model.Product) (*model.Product, error) {
	var updated model.Product
	if _, err := c.put(ctx, "/products/"+strconv.Itoa(productID), token, product, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes a catalog entry (admin operation).
func (c *Client) DeleteProduct(ctx context.Context, token string, productID int) error {
	_, err := c.delete(ctx, "/products/"+strconv.Itoa(productID), token, nil)
	return err
}
