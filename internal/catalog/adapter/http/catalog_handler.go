package http

import (
	"strconv"

	"ev-storefront/internal/backend"
	"ev-storefront/internal/catalog/domain/model"
	"ev-storefront/internal/catalog/usecase"
	"ev-storefront/internal/shared/errors"
	"ev-storefront/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
)

// CatalogHTTPHandler handles HTTP requests for the product catalog
type CatalogHTTPHandler struct {
	usecase usecase.CatalogUsecaseInterface
}

// NewCatalogHTTPHandler creates a new catalog HTTP handler
func NewCatalogHTTPHandler(uc usecase.CatalogUsecaseInterface) *CatalogHTTPHandler {
	return &CatalogHTTPHandler{usecase: uc}
}

// SetupRoutes sets up catalog routes. Listing and detail are public (the
// optional guard only attaches session context for search memory); writes
// are admin-gated.
func (h *CatalogHTTPHandler) SetupRoutes(router fiber.Router, optional, admin fiber.Handler) {
	router.Get("/", optional, h.ListProducts)
	router.Get("/:id", h.GetProduct)

	router.Post("/", admin, h.CreateProduct)
	router.Put("/:id", admin, h.UpdateProduct)
	router.Delete("/:id", admin, h.DeleteProduct)
}

// ListProducts lists the catalog with optional search/category filters
func (h *CatalogHTTPHandler) ListProducts(c *fiber.Ctx) error {
	filters := model.Filters{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
	sessionID := utils.GetSessionIDOrDefault(c.UserContext(), "")

	products, err := h.usecase.ListProducts(c.Context(), sessionID, filters)
	if err != nil {
		return h.catalogError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
	})
}

// GetProduct returns one product
func (h *CatalogHTTPHandler) GetProduct(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid product ID",
		})
	}

	product, err := h.usecase.GetProduct(c.Context(), productID)
	if err != nil {
		return h.catalogError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}

// CreateProduct creates a catalog entry (admin only)
func (h *CatalogHTTPHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	token := utils.GetAuthTokenOrDefault(c.UserContext(), "")

	created, err := h.usecase.CreateProduct(c.Context(), token, &product)
	if err != nil {
		return h.catalogError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    created,
	})
}

// UpdateProduct updates a catalog entry (admin only)
func (h *CatalogHTTPHandler) UpdateProduct(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid product ID",
		})
	}

	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	token := utils.GetAuthTokenOrDefault(c.UserContext(), "")

	updated, err := h.usecase.UpdateProduct(c.Context(), token, productID, &product)
	if err != nil {
		return h.catalogError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    updated,
	})
}

// DeleteProduct removes a catalog entry (admin only)
func (h *CatalogHTTPHandler) DeleteProduct(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid product ID",
		})
	}

	token := utils.GetAuthTokenOrDefault(c.UserContext(), "")

	if err := h.usecase.DeleteProduct(c.Context(), token, productID); err != nil {
		return h.catalogError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
	})
}

func (h *CatalogHTTPHandler) catalogError(c *fiber.Ctx, err error) error {
	status := fiber.StatusBadGateway
	switch {
	case errors.IsAuthentication(err):
		status = fiber.StatusUnauthorized
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
