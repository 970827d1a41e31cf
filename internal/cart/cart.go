package cart

import (
	carthttp "ev-storefront/internal/cart/adapter/http"
	"ev-storefront/internal/cart/usecase"
	"ev-storefront/internal/shared/eventbus"
	"ev-storefront/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// Module represents the complete cart module
type Module struct {
	usecase usecase.CartUsecaseInterface
	handler *carthttp.CartHTTPHandler
}

// NewModule creates a new cart module instance
func NewModule(api usecase.CartAPI, fees usecase.FeeCalculator, bus eventbus.EventBusInterface, log logger.Logger) *Module {
	cartUsecase := usecase.NewCartUsecase(api, fees, bus, log)

	return &Module{
		usecase: cartUsecase,
		handler: carthttp.NewCartHTTPHandler(cartUsecase),
	}
}

// RegisterRoutes registers cart routes with the provided router
func (m *Module) RegisterRoutes(router fiber.Router, optional, required fiber.Handler) {
	m.handler.SetupRoutes(router, optional, required)
}

// GetUsecase returns the cart usecase for external access
func (m *Module) GetUsecase() usecase.CartUsecaseInterface {
	return m.usecase
}
