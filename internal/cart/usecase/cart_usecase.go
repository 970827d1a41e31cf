package usecase

import (
	"context"
	"time"

	"ev-storefront/internal/cart/domain/model"
	"ev-storefront/internal/shared/errors"
	"ev-storefront/internal/shared/eventbus"
	"ev-storefront/internal/shared/logger"
)

// CartAPI is the slice of the backend client the cart module needs.
type CartAPI interface {
	GetCart(ctx context.Context, token string) ([]model.CartItem, error)
	AddToCart(ctx context.Context, token string, productID, quantity int, color string) (*model.CartItem, error)
	UpdateCartQuantity(ctx context.Context, token, itemID string, quantity int) error
	RemoveFromCart(ctx context.Context, token, itemID string) error
	ClearCart(ctx context.Context, token string) (int, error)
}

// FeeCalculator computes the shipping fee for a subtotal. Implemented by the
// checkout module so both modules quote the same figure.
type FeeCalculator interface {
	ShippingFee(subtotal float64) float64
}

// Summary is the cart totals block rendered next to the line items.
type Summary struct {
	ItemsCount  int     `json:"items_count"`
	Subtotal    float64 `json:"subtotal"`
	ShippingFee float64 `json:"shipping_fee"`
	Total       float64 `json:"total"`
}

// CartUsecaseInterface defines the cart service contract
type CartUsecaseInterface interface {
	GetCart(ctx context.Context, token string) []model.CartItem
	AddToCart(ctx context.Context, token string, productID, quantity int, color string) (*model.CartItem, error)
	UpdateQuantity(ctx context.Context, token, itemID string, quantity int) bool
	Remove(ctx context.Context, token, itemID string) bool
	Clear(ctx context.Context, token string) (int, error)
	ClearAfterCheckout(ctx context.Context, token string) bool
	Summary(ctx context.Context, token string) Summary
}

const (
	clearMaxAttempts = 3
	clearRetryDelay  = time.Second
)

// CartUsecase wraps the remote cart with the storefront's tolerance rules:
// reads degrade to an empty cart, writes surface the backend's message, and
// every successful mutation is announced on the event bus.
type CartUsecase struct {
	api   CartAPI
	fees  FeeCalculator
	bus   eventbus.EventBusInterface
	log   logger.Logger
	sleep func(time.Duration)
}

// NewCartUsecase creates a new cart usecase
func NewCartUsecase(api CartAPI, fees FeeCalculator, bus eventbus.EventBusInterface, log logger.Logger) *CartUsecase {
	return &CartUsecase{
		api:   api,
		fees:  fees,
		bus:   bus,
		log:   log.WithComponent("cart"),
		sleep: time.Sleep,
	}
}

// GetCart returns the normalized cart. Without a token, or when the backend
// fails, it returns an empty list so the page still renders.
func (u *CartUsecase) GetCart(ctx context.Context, token string) []model.CartItem {
	if token == "" {
		return []model.CartItem{}
	}

	items, err := u.api.GetCart(ctx, token)
	if err != nil {
		u.log.WithContext(ctx).Warnf("Cart fetch failed, rendering empty cart: %v", err)
		return []model.CartItem{}
	}

	return model.NormalizeItems(items)
}

// AddToCart adds a product to the cart. Unlike reads, this is a write: no
// token is an error and backend failures carry the server's message.
func (u *CartUsecase) AddToCart(ctx context.Context, token string, productID, quantity int, color string) (*model.CartItem, error) {
	if token == "" {
		return nil, errors.ErrAuthRequired
	}
	if quantity < 1 {
		quantity = 1
	}

	item, err := u.api.AddToCart(ctx, token, productID, quantity, color)
	if err != nil {
		return nil, err
	}

	item.Normalize()
	u.publish(ctx, eventbus.EventTypeCartUpdated)

	return item, nil
}

// UpdateQuantity sets a line's quantity and reports success. Quantities below
// one are rejected before any backend call.
func (u *CartUsecase) UpdateQuantity(ctx context.Context, token, itemID string, quantity int) bool {
	if token == "" || quantity < 1 {
		return false
	}

	if err := u.api.UpdateCartQuantity(ctx, token, itemID, quantity); err != nil {
		u.log.WithContext(ctx).Warnf("Cart quantity update failed: %v", err)
		return false
	}

	u.publish(ctx, eventbus.EventTypeCartUpdated)
	return true
}

// Remove deletes a line and reports success.
func (u *CartUsecase) Remove(ctx context.Context, token, itemID string) bool {
	if token == "" {
		return false
	}

	if err := u.api.RemoveFromCart(ctx, token, itemID); err != nil {
		u.log.WithContext(ctx).Warnf("Cart item removal failed: %v", err)
		return false
	}

	u.publish(ctx, eventbus.EventTypeCartUpdated)
	return true
}

// Clear empties the cart and returns how many lines the backend removed. On
// success both cart.updated and cart.cleared are published, in that order.
func (u *CartUsecase) Clear(ctx context.Context, token string) (int, error) {
	if token == "" {
		return 0, errors.ErrAuthRequired
	}

	deleted, err := u.api.ClearCart(ctx, token)
	if err != nil {
		return 0, err
	}

	u.publish(ctx, eventbus.EventTypeCartUpdated)
	u.publish(ctx, eventbus.EventTypeCartCleared)

	return deleted, nil
}

// ClearAfterCheckout clears the cart after a successful order, retrying up to
// three times with a fixed delay. Exhausting the attempts is reported as
// false, never as an error: the order already went through and the caller
// only needs to know whether to warn.
func (u *CartUsecase) ClearAfterCheckout(ctx context.Context, token string) bool {
	var lastErr error

	for attempt := 1; attempt <= clearMaxAttempts; attempt++ {
		_, err := u.Clear(ctx, token)
		if err == nil {
			return true
		}

		lastErr = err
		u.log.WithContext(ctx).Warnf("Cart clear attempt %d failed: %v", attempt, err)

		if attempt < clearMaxAttempts {
			u.sleep(clearRetryDelay)
		}
	}

	u.log.WithContext(ctx).Errorf("Cart not cleared after %d attempts: %v", clearMaxAttempts, lastErr)
	return false
}

// Summary computes the totals block for the current cart.
func (u *CartUsecase) Summary(ctx context.Context, token string) Summary {
	items := u.GetCart(ctx, token)

	subtotal := model.Subtotal(items)
	fee := u.fees.ShippingFee(subtotal)

	return Summary{
		ItemsCount:  model.ItemsCount(items),
		Subtotal:    subtotal,
		ShippingFee: fee,
		Total:       subtotal + fee,
	}
}

// WithSleep overrides the retry delay function; used by tests.
func (u *CartUsecase) WithSleep(sleep func(time.Duration)) *CartUsecase {
	u.sleep = sleep
	return u
}

// publish delivers synchronously so cart.updated always lands before
// cart.cleared on a clear.
func (u *CartUsecase) publish(ctx context.Context, eventType string) {
	if u.bus == nil {
		return
	}
	if err := u.bus.Publish(ctx, eventbus.NewBasicEventWithSource(eventType, nil, "cart")); err != nil {
		u.log.WithContext(ctx).Warnf("Event %s delivery failed: %v", eventType, err)
	}
}
