package usecase

import (
	"context"
	"sync"
	"time"

	"ev-storefront/internal/shared/eventbus"
	"ev-storefront/internal/shared/logger"

	"github.com/google/uuid"
)

// Notification is the frame pushed to connected clients. Cart and order
// signals carry no payload; the client re-fetches on receipt.
type Notification struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// HubInterface defines the realtime hub contract
type HubInterface interface {
	Register() (string, <-chan Notification)
	Unregister(subscriberID string)
	SubscriberCount() int
}

// Hub fans storefront events out to WebSocket subscribers. It listens on the
// in-process event bus for the signals the UI cares about and forwards each
// one to every connected client.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]chan Notification
	log         logger.Logger
}

// subscriberBuffer bounds the per-client queue; a client that stops reading
// loses notifications rather than blocking the bus.
const subscriberBuffer = 16

// NewHub creates a hub and wires it to the event bus.
func NewHub(bus eventbus.EventBusInterface, log logger.Logger) *Hub {
	h := &Hub{
		subscribers: make(map[string]chan Notification),
		log:         log.WithComponent("realtime"),
	}

	for _, eventType := range []string{
		eventbus.EventTypeCartUpdated,
		eventbus.EventTypeCartCleared,
		eventbus.EventTypeOrderPlaced,
	} {
		bus.Subscribe(eventType, h.forward)
	}

	return h
}

// forward is the bus handler; it never returns an error so a slow WebSocket
// client cannot fail the publishing operation.
func (h *Hub) forward(ctx context.Context, event eventbus.Event) error {
	h.Broadcast(Notification{
		Type:      event.Type(),
		Data:      event.Data(),
		Timestamp: event.Timestamp(),
	})
	return nil
}

// Register adds a subscriber and returns its ID and notification channel.
func (h *Hub) Register() (string, <-chan Notification) {
	subscriberID := uuid.NewString()
	ch := make(chan Notification, subscriberBuffer)

	h.mu.Lock()
	h.subscribers[subscriberID] = ch
	h.mu.Unlock()

	h.log.Debugf("Subscriber registered: %s", subscriberID)
	return subscriberID, ch
}

// Unregister removes a subscriber and closes its channel. Safe to call twice.
func (h *Hub) Unregister(subscriberID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subscribers[subscriberID]; ok {
		close(ch)
		delete(h.subscribers, subscriberID)
		h.log.Debugf("Subscriber unregistered: %s", subscriberID)
	}
}

// Broadcast delivers a notification to every subscriber. Full client queues
// are skipped.
func (h *Hub) Broadcast(n Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for subscriberID, ch := range h.subscribers {
		select {
		case ch <- n:
		default:
			h.log.Warnf("Dropping %s notification for slow subscriber %s", n.Type, subscriberID)
		}
	}
}

// SubscriberCount returns the number of connected subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
