package realtime

import (
	realtimehttp "ev-storefront/internal/realtime/adapter/http"
	"ev-storefront/internal/realtime/usecase"
	"ev-storefront/internal/shared/eventbus"
	"ev-storefront/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// Module represents the realtime notification module
type Module struct {
	hub     *usecase.Hub
	handler *realtimehttp.WebSocketHandler
}

// NewModule creates a new realtime module wired to the event bus
func NewModule(bus eventbus.EventBusInterface, log logger.Logger) *Module {
	hub := usecase.NewHub(bus, log)

	return &Module{
		hub:     hub,
		handler: realtimehttp.NewWebSocketHandler(hub, log),
	}
}

// RegisterRoutes registers the WebSocket endpoint with the provided router
func (m *Module) RegisterRoutes(router fiber.Router) {
	m.handler.RegisterRoutes(router)
}

// GetHub returns the hub for external access
func (m *Module) GetHub() *usecase.Hub {
	return m.hub
}
