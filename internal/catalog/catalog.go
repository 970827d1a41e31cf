package catalog

import (
	cataloghttp "ev-storefront/internal/catalog/adapter/http"
	"ev-storefront/internal/catalog/usecase"
	"ev-storefront/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// Module represents the complete catalog module
type Module struct {
	usecase usecase.CatalogUsecaseInterface
	handler *cataloghttp.CatalogHTTPHandler
}

// NewModule creates a new catalog module instance
func NewModule(api usecase.ProductAPI, searches usecase.SearchMemory, log logger.Logger) *Module {
	catalogUsecase := usecase.NewCatalogUsecase(api, searches, log)

	return &Module{
		usecase: catalogUsecase,
		handler: cataloghttp.NewCatalogHTTPHandler(catalogUsecase),
	}
}

// RegisterRoutes registers catalog routes with the provided router
func (m *Module) RegisterRoutes(router fiber.Router, optional, admin fiber.Handler) {
	m.handler.SetupRoutes(router, optional, admin)
}

// GetUsecase returns the catalog usecase for external access
func (m *Module) GetUsecase() usecase.CatalogUsecaseInterface {
	return m.usecase
}
