package backend

import (
	"context"
	"strconv"

	"ev-storefront/internal/checkout/domain/model"
)

type orderStatusPayload struct {
	Status string `json:"status"`
}

// CreateOrder submits an order draft and returns the placed order.
func (c *Client) CreateOrder(ctx context.Context, token string, draft *model.OrderDraft) (*model.Order, error) {
	var order model.Order
	if _, err := c.post(ctx, "/orders", token, draft, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders fetches the token's order history.
func (c *Client) ListOrders(ctx context.Context, token string) ([]model.Order, error) {
	var orders []model.Order
	if _, err := c.get(ctx, "/orders", token, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder fetches one order.
func (c *Client) GetOrder(ctx context.Context, token string, orderID int) (*model.Order, error) {
	var order model.Order
	if _, err := c.get(ctx, "/orders/"+strconv.Itoa(orderID), token, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderTracking fetches the tracking timeline for an order.
func (c *Client) GetOrderTracking(ctx context.Context, token string, orderID int) ([]model.TrackingEvent, error) {
	var events []model.TrackingEvent
	if _, err := c.get(ctx, "/orders/"+strconv.Itoa(orderID)+"/tracking", token, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// UpdateOrderStatus sets an order's status (admin operation).
func (c *Client) UpdateOrderStatus(ctx context.Context, token string, orderID int, status string) (*model.Order, error) {
	var order model.Order
	if _, err := c.put(ctx, "/orders/"+strconv.Itoa(orderID)+"/status", token, orderStatusPayload{Status: status}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
