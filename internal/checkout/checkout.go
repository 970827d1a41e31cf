package checkout

import (
	checkouthttp "ev-storefront/internal/checkout/adapter/http"
	"ev-storefront/internal/checkout/config"
	"ev-storefront/internal/checkout/usecase"
	"ev-storefront/internal/shared/eventbus"
	"ev-storefront/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// Module represents the complete checkout module
type Module struct {
	usecase usecase.CheckoutUsecaseInterface
	handler *checkouthttp.CheckoutHTTPHandler
}

// NewModule creates a new checkout module instance
func NewModule(orders usecase.OrderAPI, cart usecase.CartReader, bus eventbus.EventBusInterface, cfg *config.Config, log logger.Logger) *Module {
	checkoutUsecase := usecase.NewCheckoutUsecase(orders, cart, bus, cfg, log)

	return &Module{
		usecase: checkoutUsecase,
		handler: checkouthttp.NewCheckoutHTTPHandler(checkoutUsecase),
	}
}

// RegisterRoutes registers order routes with the provided router
func (m *Module) RegisterRoutes(router fiber.Router, required, admin fiber.Handler) {
	m.handler.SetupRoutes(router, required, admin)
}

// GetUsecase returns the checkout usecase for external access. The cart
// module uses it as the shipping fee calculator.
func (m *Module) GetUsecase() usecase.CheckoutUsecaseInterface {
	return m.usecase
}
