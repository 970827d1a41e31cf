package http

import (
	"ev-storefront/internal/cart/usecase"
	"ev-storefront/internal/shared/errors"
	"ev-storefront/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
)

// CartHTTPHandler handles HTTP requests for the cart
type CartHTTPHandler struct {
	usecase usecase.CartUsecaseInterface
}

// NewCartHTTPHandler creates a new cart HTTP handler
func NewCartHTTPHandler(uc usecase.CartUsecaseInterface) *CartHTTPHandler {
	return &CartHTTPHandler{usecase: uc}
}

// SetupRoutes sets up cart routes. Reads are optional-session and degrade to
// an empty cart; writes require a session.
func (h *CartHTTPHandler) SetupRoutes(router fiber.Router, optional, required fiber.Handler) {
	reads := router.Group("/", optional)
	reads.Get("/", h.GetCart)
	reads.Get("/summary", h.GetSummary)

	writes := router.Group("/", required)
	writes.Post("/", h.AddToCart)
	writes.Delete("/clear", h.Clear) // before /:id so "clear" is not an item ID
	writes.Put("/:id", h.UpdateQuantity)
	writes.Delete("/:id", h.Remove)
}

// AddToCartRequest carries the add-to-cart payload
type AddToCartRequest struct {
	ProductID int    `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color"`
}

// UpdateQuantityRequest carries the quantity update payload
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart returns the normalized cart items
func (h *CartHTTPHandler) GetCart(c *fiber.Ctx) error {
	token := utils.GetAuthTokenOrDefault(c.UserContext(), "")
	items := h.usecase.GetCart(c.Context(), token)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    items,
	})
}

// GetSummary returns the cart totals block
func (h *CartHTTPHandler) GetSummary(c *fiber.Ctx) error {
	token := utils.GetAuthTokenOrDefault(c.UserContext(), "")

	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.usecase.Summary(c.Context(), token),
	})
}

// AddToCart adds a product to the cart
func (h *CartHTTPHandler) AddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}
	if req.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "product_id is required",
		})
	}

	token := utils.GetAuthTokenOrDefault(c.UserContext(), "")

	item, err := h.usecase.AddToCart(c.Context(), token, req.ProductID, req.Quantity, req.Color)
	if err != nil {
		if errors.IsAuthentication(err) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Authentication required",
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    item,
	})
}

// UpdateQuantity sets a cart line's quantity
func (h *CartHTTPHandler) UpdateQuantity(c *fiber.Ctx) error {
	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	token := utils.GetAuthTokenOrDefault(c.UserContext(), "")
	ok := h.usecase.UpdateQuantity(c.Context(), token, c.Params("id"), req.Quantity)

	return c.JSON(fiber.Map{
		"success": ok,
	})
}

// Remove deletes a cart line
func (h *CartHTTPHandler) Remove(c *fiber.Ctx) error {
	token := utils.GetAuthTokenOrDefault(c.UserContext(), "")
	ok := h.usecase.Remove(c.Context(), token, c.Params("id"))

	return c.JSON(fiber.Map{
		"success": ok,
	})
}

// Clear empties the cart
func (h *CartHTTPHandler) Clear(c *fiber.Ctx) error {
	token := utils.GetAuthTokenOrDefault(c.UserContext(), "")

	deleted, err := h.usecase.Clear(c.Context(), token)
	if err != nil {
		if errors.IsAuthentication(err) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Authentication required",
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"deleted_items": deleted,
	})
}
