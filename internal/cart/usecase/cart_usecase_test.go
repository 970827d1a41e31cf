package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"ev-storefront/internal/cart/domain/model"
	"ev-storefront/internal/shared/errors"
	"ev-storefront/internal/shared/eventbus"
	"ev-storefront/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCartAPI is a mock implementation of CartAPI
type MockCartAPI struct {
	mock.Mock
}

func (m *MockCartAPI) GetCart(ctx context.Context, token string) ([]model.CartItem, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartItem), args.Error(1)
}

func (m *MockCartAPI) AddToCart(ctx context.Context, token string, productID, quantity int, color string) (*model.CartItem, error) {
	args := m.Called(ctx, token, productID, quantity, color)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItem), args.Error(1)
}

func (m *MockCartAPI) UpdateCartQuantity(ctx context.Context, token, itemID string, quantity int) error {
	args := m.Called(ctx, token, itemID, quantity)
	return args.Error(0)
}

func (m *MockCartAPI) RemoveFromCart(ctx context.Context, token, itemID string) error {
	args := m.Called(ctx, token, itemID)
	return args.Error(0)
}

func (m *MockCartAPI) ClearCart(ctx context.Context, token string) (int, error) {
	args := m.Called(ctx, token)
	return args.Int(0), args.Error(1)
}

// flatFee mirrors the storefront fee policy for tests.
type flatFee struct{}

func (flatFee) ShippingFee(subtotal float64) float64 {
	if subtotal > 50000 {
		return 0
	}
	return 500
}

// eventRecorder captures bus deliveries in order.
type eventRecorder struct {
	mu     sync.Mutex
	events []string
}

func (r *eventRecorder) record(ctx context.Context, event eventbus.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event.Type())
	return nil
}

func (r *eventRecorder) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func newTestUsecase(api CartAPI) (*CartUsecase, *eventRecorder) {
	bus := eventbus.NewEventBus(logger.NewLogger())
	recorder := &eventRecorder{}
	bus.Subscribe(eventbus.EventTypeCartUpdated, recorder.record)
	bus.Subscribe(eventbus.EventTypeCartCleared, recorder.record)

	uc := NewCartUsecase(api, flatFee{}, bus, logger.NewLogger())
	uc.WithSleep(func(time.Duration) {})
	return uc, recorder
}

func TestGetCart_NoToken_NoBackendCall(t *testing.T) {
	api := new(MockCartAPI)
	uc, _ := newTestUsecase(api)

	items := uc.GetCart(context.Background(), "")

	assert.NotNil(t, items)
	assert.Empty(t, items)
	api.AssertNotCalled(t, "GetCart")
}

func TestGetCart_UpstreamFailure_DegradesToEmpty(t *testing.T) {
	api := new(MockCartAPI)
	api.On("GetCart", mock.Anything, "token").
		Return(nil, assert.AnError)

	uc, _ := newTestUsecase(api)

	items := uc.GetCart(context.Background(), "token")
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestGetCart_NormalizesItems(t *testing.T) {
	api := new(MockCartAPI)
	api.On("GetCart", mock.Anything, "token").Return([]model.CartItem{
		{ID: "item-1", Quantity: 2, Name: "EV Scooter", Price: 1000, ImageURL: "s.jpg"},
	}, nil)

	uc, _ := newTestUsecase(api)

	items := uc.GetCart(context.Background(), "token")
	require.Len(t, items, 1)
	assert.Equal(t, 2000.0, items[0].Total)
	assert.Equal(t, "EV Scooter", items[0].Product.Name)
	assert.Equal(t, "Standard Model", items[0].Product.Model)
}

func TestAddToCart_NoToken_ErrorsWithoutCall(t *testing.T) {
	api := new(MockCartAPI)
	uc, recorder := newTestUsecase(api)

	item, err := uc.AddToCart(context.Background(), "", 7, 1, "")

	assert.Nil(t, item)
	assert.Equal(t, errors.ErrAuthRequired, err)
	api.AssertNotCalled(t, "AddToCart")
	assert.Empty(t, recorder.seen())
}

func TestAddToCart_Success_PublishesCartUpdated(t *testing.T) {
	api := new(MockCartAPI)
	api.On("AddToCart", mock.Anything, "token", 7, 2, "red").
		Return(&model.CartItem{ID: "item-1", ProductID: 7, Quantity: 2, Price: 1000}, nil)

	uc, recorder := newTestUsecase(api)

	item, err := uc.AddToCart(context.Background(), "token", 7, 2, "red")
	require.NoError(t, err)
	assert.Equal(t, 2000.0, item.Total)
	assert.Equal(t, []string{eventbus.EventTypeCartUpdated}, recorder.seen())
}

func TestAddToCart_ZeroQuantityDefaultsToOne(t *testing.T) {
	api := new(MockCartAPI)
	api.On("AddToCart", mock.Anything, "token", 7, 1, "").
		Return(&model.CartItem{ID: "item-1", Quantity: 1}, nil)

	uc, _ := newTestUsecase(api)

	_, err := uc.AddToCart(context.Background(), "token", 7, 0, "")
	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestAddToCart_BackendFailure_SurfacesError(t *testing.T) {
	api := new(MockCartAPI)
	api.On("AddToCart", mock.Anything, "token", 7, 1, "").
		Return(nil, assert.AnError)

	uc, recorder := newTestUsecase(api)

	_, err := uc.AddToCart(context.Background(), "token", 7, 1, "")
	assert.Error(t, err)
	assert.Empty(t, recorder.seen())
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("rejects quantity below one before any call", func(t *testing.T) {
		api := new(MockCartAPI)
		uc, _ := newTestUsecase(api)

		assert.False(t, uc.UpdateQuantity(context.Background(), "token", "item-1", 0))
		api.AssertNotCalled(t, "UpdateCartQuantity")
	})

	t.Run("no token is false", func(t *testing.T) {
		api := new(MockCartAPI)
		uc, _ := newTestUsecase(api)

		assert.False(t, uc.UpdateQuantity(context.Background(), "", "item-1", 2))
	})

	t.Run("success publishes and returns true", func(t *testing.T) {
		api := new(MockCartAPI)
		api.On("UpdateCartQuantity", mock.Anything, "token", "item-1", 2).Return(nil)

		uc, recorder := newTestUsecase(api)

		assert.True(t, uc.UpdateQuantity(context.Background(), "token", "item-1", 2))
		assert.Equal(t, []string{eventbus.EventTypeCartUpdated}, recorder.seen())
	})

	t.Run("backend failure is false without event", func(t *testing.T) {
		api := new(MockCartAPI)
		api.On("UpdateCartQuantity", mock.Anything, "token", "item-1", 2).Return(assert.AnError)

		uc, recorder := newTestUsecase(api)

		assert.False(t, uc.UpdateQuantity(context.Background(), "token", "item-1", 2))
		assert.Empty(t, recorder.seen())
	})
}

func TestRemove(t *testing.T) {
	t.Run("success publishes and returns true", func(t *testing.T) {
		api := new(MockCartAPI)
		api.On("RemoveFromCart", mock.Anything, "token", "item-1").Return(nil)

		uc, recorder := newTestUsecase(api)

		assert.True(t, uc.Remove(context.Background(), "token", "item-1"))
		assert.Equal(t, []string{eventbus.EventTypeCartUpdated}, recorder.seen())
	})

	t.Run("backend failure is false", func(t *testing.T) {
		api := new(MockCartAPI)
		api.On("RemoveFromCart", mock.Anything, "token", "item-1").Return(assert.AnError)

		uc, _ := newTestUsecase(api)

		assert.False(t, uc.Remove(context.Background(), "token", "item-1"))
	})
}

func TestClear_Success_PublishesBothEventsInOrder(t *testing.T) {
	api := new(MockCartAPI)
	api.On("ClearCart", mock.Anything, "token").Return(3, nil)

	uc, recorder := newTestUsecase(api)

	deleted, err := uc.Clear(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)
	assert.Equal(t, []string{
		eventbus.EventTypeCartUpdated,
		eventbus.EventTypeCartCleared,
	}, recorder.seen())
}

func TestClear_NoToken(t *testing.T) {
	api := new(MockCartAPI)
	uc, _ := newTestUsecase(api)

	_, err := uc.Clear(context.Background(), "")
	assert.Equal(t, errors.ErrAuthRequired, err)
	api.AssertNotCalled(t, "ClearCart")
}

func TestClearAfterCheckout_RetriesThenSucceeds(t *testing.T) {
	api := new(MockCartAPI)
	api.On("ClearCart", mock.Anything, "token").Return(0, assert.AnError).Twice()
	api.On("ClearCart", mock.Anything, "token").Return(2, nil).Once()

	var delays []time.Duration
	bus := eventbus.NewEventBus(logger.NewLogger())
	uc := NewCartUsecase(api, flatFee{}, bus, logger.NewLogger())
	uc.WithSleep(func(d time.Duration) { delays = append(delays, d) })

	cleared := uc.ClearAfterCheckout(context.Background(), "token")

	assert.True(t, cleared)
	assert.Equal(t, []time.Duration{time.Second, time.Second}, delays)
	api.AssertExpectations(t)
}

func TestClearAfterCheckout_ExhaustsAttempts(t *testing.T) {
	api := new(MockCartAPI)
	api.On("ClearCart", mock.Anything, "token").Return(0, assert.AnError).Times(3)

	var delays []time.Duration
	bus := eventbus.NewEventBus(logger.NewLogger())
	uc := NewCartUsecase(api, flatFee{}, bus, logger.NewLogger())
	uc.WithSleep(func(d time.Duration) { delays = append(delays, d) })

	cleared := uc.ClearAfterCheckout(context.Background(), "token")

	// False, never an error: the order already went through.
	assert.False(t, cleared)
	// Two delays between three attempts, none after the last.
	assert.Equal(t, []time.Duration{time.Second, time.Second}, delays)
	api.AssertExpectations(t)
}

func TestSummary(t *testing.T) {
	api := new(MockCartAPI)
	api.On("GetCart", mock.Anything, "token").Return([]model.CartItem{
		{ID: "item-1", Quantity: 2, Price: 1000, Total: 2000},
		{ID: "item-2", Quantity: 1, Price: 500, Total: 500},
	}, nil)

	uc, _ := newTestUsecase(api)

	summary := uc.Summary(context.Background(), "token")

	assert.Equal(t, 3, summary.ItemsCount)
	assert.Equal(t, 2500.0, summary.Subtotal)
	assert.Equal(t, 500.0, summary.ShippingFee)
	assert.Equal(t, 3000.0, summary.Total)
}

func TestSummary_EmptyCart(t *testing.T) {
	api := new(MockCartAPI)
	uc, _ := newTestUsecase(api)

	summary := uc.Summary(context.Background(), "")

	assert.Equal(t, 0, summary.ItemsCount)
	assert.Equal(t, 0.0, summary.Subtotal)
	assert.Equal(t, 500.0, summary.ShippingFee)
	assert.Equal(t, 500.0, summary.Total)
}
