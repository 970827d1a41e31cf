package usecase

import (
	"context"
	"testing"
	"time"

	"ev-storefront/internal/shared/eventbus"
	"ev-storefront/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() (*Hub, *eventbus.EventBus) {
	bus := eventbus.NewEventBus(nil)
	return NewHub(bus, logger.NewLogger()), bus
}

func receiveNotification(t *testing.T, ch <-chan Notification) Notification {
	t.Helper()
	select {
	case n, ok := <-ch:
		require.True(t, ok, "channel closed before notification arrived")
		return n
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for notification")
		return Notification{}
	}
}

func TestHub_ForwardsBusEvents(t *testing.T) {
	hub, bus := newTestHub()
	id, ch := hub.Register()
	defer hub.Unregister(id)

	err := bus.Publish(context.Background(), eventbus.NewBasicEvent(eventbus.EventTypeCartUpdated, nil))
	require.NoError(t, err)

	n := receiveNotification(t, ch)
	assert.Equal(t, eventbus.EventTypeCartUpdated, n.Type)
	assert.False(t, n.Timestamp.IsZero())
}

func TestHub_BroadcastReachesAllSubscribers(t *testing.T) {
	hub, bus := newTestHub()
	id1, ch1 := hub.Register()
	id2, ch2 := hub.Register()
	defer hub.Unregister(id1)
	defer hub.Unregister(id2)

	payload := map[string]interface{}{"order_id": 42}
	err := bus.Publish(context.Background(), eventbus.NewBasicEvent(eventbus.EventTypeOrderPlaced, payload))
	require.NoError(t, err)

	assert.Equal(t, eventbus.EventTypeOrderPlaced, receiveNotification(t, ch1).Type)
	assert.Equal(t, eventbus.EventTypeOrderPlaced, receiveNotification(t, ch2).Type)
}

func TestHub_UnregisterClosesChannel(t *testing.T) {
	hub, _ := newTestHub()
	id, ch := hub.Register()

	assert.Equal(t, 1, hub.SubscriberCount())
	hub.Unregister(id)
	assert.Equal(t, 0, hub.SubscriberCount())

	_, ok := <-ch
	assert.False(t, ok)

	// Second unregister is a no-op.
	hub.Unregister(id)
}

func TestHub_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	hub, bus := newTestHub()
	id, _ := hub.Register()
	defer hub.Unregister(id)

	// Never read from the channel; publishing must still succeed once the
	// buffer fills.
	for i := 0; i < subscriberBuffer+5; i++ {
		err := bus.Publish(context.Background(), eventbus.NewBasicEvent(eventbus.EventTypeCartUpdated, nil))
		require.NoError(t, err)
	}
}

func TestHub_EventOrderPreservedOnClear(t *testing.T) {
	hub, bus := newTestHub()
	id, ch := hub.Register()
	defer hub.Unregister(id)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, eventbus.NewBasicEvent(eventbus.EventTypeCartUpdated, nil)))
	require.NoError(t, bus.Publish(ctx, eventbus.NewBasicEvent(eventbus.EventTypeCartCleared, nil)))

	assert.Equal(t, eventbus.EventTypeCartUpdated, receiveNotification(t, ch).Type)
	assert.Equal(t, eventbus.EventTypeCartCleared, receiveNotification(t, ch).Type)
}
