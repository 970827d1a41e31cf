package http

import (
	stderrors "errors"
	"strconv"

	"ev-storefront/internal/backend"
	"ev-storefront/internal/checkout/domain/model"
	"ev-storefront/internal/checkout/usecase"
	"ev-storefront/internal/shared/errors"
	"ev-storefront/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHTTPHandler handles HTTP requests for checkout and orders
type CheckoutHTTPHandler struct {
	usecase usecase.CheckoutUsecaseInterface
}

// NewCheckoutHTTPHandler creates a new checkout HTTP handler
func NewCheckoutHTTPHandler(uc usecase.CheckoutUsecaseInterface) *CheckoutHTTPHandler {
	return &CheckoutHTTPHandler{usecase: uc}
}

// SetupRoutes sets up order routes. Everything requires a session; status
// updates additionally require the admin role.
func (h *CheckoutHTTPHandler) SetupRoutes(router fiber.Router, required, admin fiber.Handler) {
	protected := router.Group("/", required)
	protected.Post("/", h.PlaceOrder)
	protected.Get("/", h.ListOrders)
	protected.Get("/:id", h.GetOrder)
	protected.Get("/:id/tracking", h.GetTracking)

	router.Put("/:id/status", admin, h.UpdateStatus)
}

// PlaceOrderRequest carries the checkout payload
type PlaceOrderRequest struct {
	ShippingInfo  model.ShippingInfo `json:"shipping_info"`
	PaymentMethod string             `json:"payment_method"`
}

// UpdateStatusRequest carries the admin status update payload
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// PlaceOrder submits the checkout form
func (h *CheckoutHTTPHandler) PlaceOrder(c *fiber.Ctx) error {
	var req PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = model.PaymentCashOnDelivery
	}

	token := utils.GetAuthTokenOrDefault(c.UserContext(), "")

	placed, err := h.usecase.PlaceOrder(c.Context(), token, &req.ShippingInfo, req.PaymentMethod)
	if err != nil {
		return h.orderError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"data":         placed.Order,
		"cart_cleared": placed.CartCleared,
	})
}

// ListOrders returns the user's order history
func (h *CheckoutHTTPHandler) ListOrders(c *fiber.Ctx) error {
	token := utils.GetAuthTokenOrDefault(c.UserContext(), "")

	orders, err := h.usecase.ListOrders(c.Context(), token)
	if err != nil {
		return h.orderError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
	})
}

// GetOrder returns one order
func (h *CheckoutHTTPHandler) GetOrder(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid order ID",
		})
	}

	token := utils.GetAuthTokenOrDefault(c.UserContext(), "")

	order, err := h.usecase.GetOrder(c.Context(), token, orderID)
	if err != nil {
		return h.orderError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    order,
	})
}

// GetTracking returns an order's tracking timeline
func (h *CheckoutHTTPHandler) GetTracking(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid order ID",
		})
	}

	token := utils.GetAuthTokenOrDefault(c.UserContext(), "")

	events, err := h.usecase.GetTracking(c.Context(), token, orderID)
	if err != nil {
		return h.orderError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    events,
	})
}

// UpdateStatus sets an order's status (admin only)
func (h *CheckoutHTTPHandler) UpdateStatus(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid order ID",
		})
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "status is required",
		})
	}

	token := utils.GetAuthTokenOrDefault(c.UserContext(), "")

	order, err := h.usecase.UpdateStatus(c.Context(), token, orderID, req.Status)
	if err != nil {
		return h.orderError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    order,
	})
}

// orderError maps usecase failures onto HTTP statuses. Backend 4xx statuses
// pass through so "order not found" stays a 404 at the gateway.
func (h *CheckoutHTTPHandler) orderError(c *fiber.Ctx, err error) error {
	status := fiber.StatusBadGateway
	switch {
	case errors.IsValidation(err) || stderrors.Is(err, errors.ErrPaymentUnavailable):
		status = fiber.StatusBadRequest
	case errors.IsAuthentication(err):
		status = fiber.StatusUnauthorized
	case errors.IsAuthorization(err):
		status = fiber.StatusForbidden
	case errors.IsNotFound(err):
		status = fiber.StatusNotFound
	default:
		if apiErr, ok := backend.AsAPIError(err); ok && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			status = apiErr.StatusCode
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}
