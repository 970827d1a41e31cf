package usecase

import (
	"context"
	"regexp"
	"strings"

	cartmodel "ev-storefront/internal/cart/domain/model"
	"ev-storefront/internal/checkout/config"
	"ev-storefront/internal/checkout/domain/model"
	"ev-storefront/internal/shared/errors"
	"ev-storefront/internal/shared/eventbus"
	"ev-storefront/internal/shared/logger"
)

// OrderAPI is the slice of the backend client the checkout module needs.
type OrderAPI interface {
	CreateOrder(ctx context.Context, token string, draft *model.OrderDraft) (*model.Order, error)
	ListOrders(ctx context.Context, token string) ([]model.Order, error)
	GetOrder(ctx context.Context, token string, orderID int) (*model.Order, error)
	GetOrderTracking(ctx context.Context, token string, orderID int) ([]model.TrackingEvent, error)
	UpdateOrderStatus(ctx context.Context, token string, orderID int, status string) (*model.Order, error)
}

// CartReader is the slice of the cart module checkout depends on: the lines
// to order and the post-checkout clear.
type CartReader interface {
	GetCart(ctx context.Context, token string) []cartmodel.CartItem
	ClearAfterCheckout(ctx context.Context, token string) bool
}

// CheckoutUsecaseInterface defines the checkout service contract
type CheckoutUsecaseInterface interface {
	ValidateShipping(info *model.ShippingInfo) error
	ShippingFee(subtotal float64) float64
	PlaceOrder(ctx context.Context, token string, info *model.ShippingInfo, paymentMethod string) (*model.PlacedOrder, error)
	ListOrders(ctx context.Context, token string) ([]model.Order, error)
	GetOrder(ctx context.Context, token string, orderID int) (*model.Order, error)
	GetTracking(ctx context.Context, token string, orderID int) ([]model.TrackingEvent, error)
	UpdateStatus(ctx context.Context, token string, orderID int, status string) (*model.Order, error)
}

// emailPattern is deliberately loose: one @, no whitespace, a dot in the
// domain. Real validation happens when the backend sends mail.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPhoneLength = 10

// CheckoutUsecase drives the checkout flow: shipping validation, the fee
// policy, order submission, and the post-order cart clear.
type CheckoutUsecase struct {
	orders OrderAPI
	cart   CartReader
	bus    eventbus.EventBusInterface
	log    logger.Logger
	cfg    *config.Config
}

// NewCheckoutUsecase creates a new checkout usecase
func NewCheckoutUsecase(orders OrderAPI, cart CartReader, bus eventbus.EventBusInterface, cfg *config.Config, log logger.Logger) *CheckoutUsecase {
	return &CheckoutUsecase{
		orders: orders,
		cart:   cart,
		bus:    bus,
		log:    log.WithComponent("checkout"),
		cfg:    cfg,
	}
}

// shippingField pairs a value accessor with the label used in validation
// messages. Order matters: the first empty field is the one reported.
type shippingField struct {
	label string
	value func(*model.ShippingInfo) string
}

var shippingFields = []shippingField{
	{"first name", func(s *model.ShippingInfo) string { return s.FirstName }},
	{"last name", func(s *model.ShippingInfo) string { return s.LastName }},
	{"email", func(s *model.ShippingInfo) string { return s.Email }},
	{"phone", func(s *model.ShippingInfo) string { return s.Phone }},
	{"address", func(s *model.ShippingInfo) string { return s.Address }},
	{"city", func(s *model.ShippingInfo) string { return s.City }},
	{"province", func(s *model.ShippingInfo) string { return s.Province }},
	{"zip code", func(s *model.ShippingInfo) string { return s.ZipCode }},
}

// ValidateShipping checks the shipping form field by field and returns the
// first failure: empty fields in declaration order, then email shape, then
// phone length.
func (u *CheckoutUsecase) ValidateShipping(info *model.ShippingInfo) error {
	for _, field := range shippingFields {
		if strings.TrimSpace(field.value(info)) == "" {
			return errors.NewValidationError("Please fill in " + field.label)
		}
	}

	if !emailPattern.MatchString(info.Email) {
		return errors.NewValidationError("Please enter a valid email address")
	}

	if len(info.Phone) < minPhoneLength {
		return errors.NewValidationError("Please enter a valid phone number")
	}

	return nil
}

// ShippingFee is the storefront fee policy: free only when the subtotal is
// strictly above the threshold, otherwise the flat fee. A subtotal exactly at
// the threshold still pays shipping.
func (u *CheckoutUsecase) ShippingFee(subtotal float64) float64 {
	if subtotal > u.cfg.FreeShippingThreshold {
		return 0
	}
	return u.cfg.ShippingFlatFee
}

// PlaceOrder validates the shipping form and payment method, submits the
// order built from the current cart, then clears the cart through the retry
// wrapper. A clear failure does not fail the order: the result's CartCleared
// flag tells the caller to warn instead.
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, token string, info *model.ShippingInfo, paymentMethod string) (*model.PlacedOrder, error) {
	if token == "" {
		return nil, errors.ErrAuthRequired
	}

	if err := u.ValidateShipping(info); err != nil {
		return nil, err
	}

	if !model.ValidPaymentMethod(paymentMethod) {
		return nil, errors.NewValidationError("Unknown payment method")
	}
	if !model.PaymentMethodAvailable(paymentMethod) {
		return nil, errors.ErrPaymentUnavailable
	}

	items := u.cart.GetCart(ctx, token)
	if len(items) == 0 {
		return nil, errors.NewValidationError("Your cart is empty")
	}

	lines := make([]model.OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, model.OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Color:     item.Color,
		})
	}

	subtotal := cartmodel.Subtotal(items)
	fee := u.ShippingFee(subtotal)

	draft := &model.OrderDraft{
		Items:         lines,
		ShippingInfo:  *info,
		PaymentMethod: paymentMethod,
		Subtotal:      subtotal,
		ShippingFee:   fee,
		Total:         subtotal + fee,
	}

	// One shot: a failed submission is reported, never retried, so a slow
	// backend cannot produce duplicate orders.
	order, err := u.orders.CreateOrder(ctx, token, draft)
	if err != nil {
		return nil, err
	}

	cleared := u.cart.ClearAfterCheckout(ctx, token)
	if !cleared {
		u.log.WithContext(ctx).Warnf("Order %s placed but cart not cleared", order.OrderNumber)
	}

	if u.bus != nil {
		if err := u.bus.Publish(ctx, eventbus.NewBasicEventWithSource(
			eventbus.EventTypeOrderPlaced, map[string]interface{}{
				"order_id":     order.ID,
				"order_number": order.OrderNumber,
			}, "checkout")); err != nil {
			u.log.WithContext(ctx).Warnf("Event %s delivery failed: %v", eventbus.EventTypeOrderPlaced, err)
		}
	}

	return &model.PlacedOrder{Order: order, CartCleared: cleared}, nil
}

// ListOrders returns the user's order history.
func (u *CheckoutUsecase) ListOrders(ctx context.Context, token string) ([]model.Order, error) {
	if token == "" {
		return nil, errors.ErrAuthRequired
	}
	return u.orders.ListOrders(ctx, token)
}

// GetOrder returns one order.
func (u *CheckoutUsecase) GetOrder(ctx context.Context, token string, orderID int) (*model.Order, error) {
	if token == "" {
		return nil, errors.ErrAuthRequired
	}
	return u.orders.GetOrder(ctx, token, orderID)
}

// GetTracking returns an order's tracking timeline.
func (u *CheckoutUsecase) GetTracking(ctx context.Context, token string, orderID int) ([]model.TrackingEvent, error) {
	if token == "" {
		return nil, errors.ErrAuthRequired
	}
	return u.orders.GetOrderTracking(ctx, token, orderID)
}

// UpdateStatus sets an order's status; admin gating happens at the router.
func (u *CheckoutUsecase) UpdateStatus(ctx context.Context, token string, orderID int, status string) (*model.Order, error) {
	if token == "" {
		return nil, errors.ErrAuthRequired
	}
	return u.orders.UpdateOrderStatus(ctx, token, orderID, status)
}
