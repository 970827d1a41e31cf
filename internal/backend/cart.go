package backend

import (
	"context"

	"ev-storefront/internal/cart/domain/model"
)

type addToCartPayload struct {
	ProductID int    `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color,omitempty"`
}

type updateQuantityPayload struct {
	Quantity int `json:"quantity"`
}

// GetCart fetches the cart lines for the token's user. Items come back raw;
// normalization is the cart module's job.
func (c *Client) GetCart(ctx context.Context, token string) ([]model.CartItem, error) {
	var items []model.CartItem
	if _, err := c.get(ctx, "/cart", token, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart adds a product to the cart and returns the created line.
func (c *Client) AddToCart(ctx context.Context, token string, productID, quantity int, color string) (*model.CartItem, error) {
	var item model.CartItem
	payload := addToCartPayload{ProductID: productID, Quantity: quantity, Color: color}
	if _, err := c.post(ctx, "/cart", token, payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCartQuantity sets the quantity of a cart line.
func (c *Client) UpdateCartQuantity(ctx context.Context, token, itemID string, quantity int) error {
	_, err := c.put(ctx, "/cart/"+itemID, token, updateQuantityPayload{Quantity: quantity}, nil)
	return err
}

// RemoveFromCart deletes a cart line.
func (c *Client) RemoveFromCart(ctx context.Context, token, itemID string) error {
	_, err := c.delete(ctx, "/cart/"+itemID, token, nil)
	return err
}

// ClearCart deletes every line of the cart and returns how many the backend
// removed.
func (c *Client) ClearCart(ctx context.Context, token string) (int, error) {
	env, err := c.delete(ctx, "/cart/clear", token, nil)
	if err != nil {
		return 0, err
	}
	return env.DeletedItems, nil
}
