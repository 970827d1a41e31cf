package http

import (
	"time"

	"ev-storefront/internal/realtime/usecase"
	"ev-storefront/internal/shared/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// readDeadline bounds how long a client may stay silent; browsers answer the
// server ping well inside this window.
const (
	readDeadline = 60 * time.Second
	pingInterval = 30 * time.Second
	writeTimeout = 10 * time.Second
)

// WebSocketHandler upgrades connections and streams storefront notifications.
type WebSocketHandler struct {
	hub usecase.HubInterface
	log logger.Logger
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(hub usecase.HubInterface, log logger.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		log: log.WithComponent("realtime"),
	}
}

// RegisterRoutes registers the WebSocket endpoint.
func (h *WebSocketHandler) RegisterRoutes(router fiber.Router) {
	wsGroup := router.Group("/ws")

	wsGroup.Use("/storefront", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	wsGroup.Get("/storefront", websocket.New(h.handleConnection))
}

// handleConnection runs for the lifetime of one WebSocket connection.
func (h *WebSocketHandler) handleConnection(conn *websocket.Conn) {
	subscriberID, notifications := h.hub.Register()

	h.log.Info("WebSocket connection established",
		zap.String("subscriberID", subscriberID))

	defer func() {
		h.hub.Unregister(subscriberID)
		h.log.Info("WebSocket connection closed",
			zap.String("subscriberID", subscriberID))
	}()

	done := make(chan struct{})

	// Writer: forward hub notifications and keep the connection alive with
	// pings. The writer owns all writes on the connection.
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case n, ok := <-notifications:
				if !ok {
					return
				}
				conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteJSON(n); err != nil {
					h.log.Error("Error sending notification to client",
						zap.String("subscriberID", subscriberID),
						zap.Error(err))
					return
				}
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	// Reader: clients send nothing meaningful; reading only detects
	// disconnection.
	for {
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Error("WebSocket error",
					zap.String("subscriberID", subscriberID),
					zap.Error(err))
			}
			close(done)
			return
		}
	}
}
