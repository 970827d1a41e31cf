package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	carthttp "ev-storefront/internal/cart/adapter/http"
	"ev-storefront/internal/cart/domain/model"
	"ev-storefront/internal/cart/usecase"
	"ev-storefront/internal/shared/contextkeys"
	"ev-storefront/internal/shared/errors"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// Mock usecase
type mockCartUsecase struct {
	mock.Mock
}

func (m *mockCartUsecase) GetCart(ctx context.Context, token string) []model.CartItem {
	args := m.Called(ctx, token)
	return args.Get(0).([]model.CartItem)
}

func (m *mockCartUsecase) AddToCart(ctx context.Context, token string, productID, quantity int, color string) (*model.CartItem, error) {
	args := m.Called(ctx, token, productID, quantity, color)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItem), args.Error(1)
}

func (m *mockCartUsecase) UpdateQuantity(ctx context.Context, token, itemID string, quantity int) bool {
	args := m.Called(ctx, token, itemID, quantity)
	return args.Bool(0)
}

func (m *mockCartUsecase) Remove(ctx context.Context, token, itemID string) bool {
	args := m.Called(ctx, token, itemID)
	return args.Bool(0)
}

func (m *mockCartUsecase) Clear(ctx context.Context, token string) (int, error) {
	args := m.Called(ctx, token)
	return args.Int(0), args.Error(1)
}

func (m *mockCartUsecase) ClearAfterCheckout(ctx context.Context, token string) bool {
	args := m.Called(ctx, token)
	return args.Bool(0)
}

func (m *mockCartUsecase) Summary(ctx context.Context, token string) usecase.Summary {
	args := m.Called(ctx, token)
	return args.Get(0).(usecase.Summary)
}

type CartHTTPTestSuite struct {
	suite.Suite
	app         *fiber.App
	mockUsecase *mockCartUsecase
}

// optionalStub forwards the bearer token into the request context when
// present; requiredStub rejects requests without one. They stand in for the
// session middleware.
func optionalStub(c *fiber.Ctx) error {
	if auth := c.Get("Authorization"); len(auth) > 7 {
		ctx := context.WithValue(c.UserContext(), contextkeys.AuthTokenKey, auth[7:])
		c.SetUserContext(ctx)
	}
	return c.Next()
}

func requiredStub(c *fiber.Ctx) error {
	auth := c.Get("Authorization")
	if len(auth) <= 7 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}
	ctx := context.WithValue(c.UserContext(), contextkeys.AuthTokenKey, auth[7:])
	c.SetUserContext(ctx)
	return c.Next()
}

func (suite *CartHTTPTestSuite) SetupTest() {
	suite.mockUsecase = &mockCartUsecase{}
	suite.app = fiber.New()

	handler := carthttp.NewCartHTTPHandler(suite.mockUsecase)
	handler.SetupRoutes(suite.app.Group("/api/cart"), optionalStub, requiredStub)
}

func (suite *CartHTTPTestSuite) TestGetCart_Guest() {
	suite.mockUsecase.On("GetCart", mock.Anything, "").Return([]model.CartItem{})

	req := httptest.NewRequest("GET", "/api/cart", nil)
	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool             `json:"success"`
		Data    []model.CartItem `json:"data"`
	}
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&body))
	assert.True(suite.T(), body.Success)
	assert.Empty(suite.T(), body.Data)
}

func (suite *CartHTTPTestSuite) TestGetCart_Authenticated() {
	suite.mockUsecase.On("GetCart", mock.Anything, "backend-token").Return([]model.CartItem{
		{ID: "item-1", Quantity: 2, Total: 2000},
	})

	req := httptest.NewRequest("GET", "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer backend-token")

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
}

func (suite *CartHTTPTestSuite) TestAddToCart_RequiresSession() {
	req := httptest.NewRequest("POST", "/api/cart", bytes.NewReader([]byte(`{"product_id": 7}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusUnauthorized, resp.StatusCode)
	suite.mockUsecase.AssertNotCalled(suite.T(), "AddToCart")
}

func (suite *CartHTTPTestSuite) TestAddToCart_Success() {
	suite.mockUsecase.On("AddToCart", mock.Anything, "backend-token", 7, 2, "red").
		Return(&model.CartItem{ID: "item-1", ProductID: 7, Quantity: 2}, nil)

	body, _ := json.Marshal(map[string]interface{}{"product_id": 7, "quantity": 2, "color": "red"})
	req := httptest.NewRequest("POST", "/api/cart", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer backend-token")

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusCreated, resp.StatusCode)
}

func (suite *CartHTTPTestSuite) TestAddToCart_MissingProduct() {
	req := httptest.NewRequest("POST", "/api/cart", bytes.NewReader([]byte(`{"quantity": 1}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer backend-token")

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)
}

func (suite *CartHTTPTestSuite) TestUpdateQuantity() {
	suite.mockUsecase.On("UpdateQuantity", mock.Anything, "backend-token", "item-1", 3).
		Return(true)

	req := httptest.NewRequest("PUT", "/api/cart/item-1", bytes.NewReader([]byte(`{"quantity": 3}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer backend-token")

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	var body map[string]bool
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&body))
	assert.True(suite.T(), body["success"])
}

func (suite *CartHTTPTestSuite) TestClear_RoutesBeforeItemID() {
	suite.mockUsecase.On("Clear", mock.Anything, "backend-token").Return(3, nil)

	req := httptest.NewRequest("DELETE", "/api/cart/clear", nil)
	req.Header.Set("Authorization", "Bearer backend-token")

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	var body struct {
		Success      bool `json:"success"`
		DeletedItems int  `json:"deleted_items"`
	}
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&body))
	assert.True(suite.T(), body.Success)
	assert.Equal(suite.T(), 3, body.DeletedItems)
	suite.mockUsecase.AssertNotCalled(suite.T(), "Remove")
}

func (suite *CartHTTPTestSuite) TestClear_UpstreamFailure() {
	suite.mockUsecase.On("Clear", mock.Anything, "backend-token").
		Return(0, errors.NewUpstreamError("Failed to clear cart"))

	req := httptest.NewRequest("DELETE", "/api/cart/clear", nil)
	req.Header.Set("Authorization", "Bearer backend-token")

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadGateway, resp.StatusCode)
}

func (suite *CartHTTPTestSuite) TestRemove() {
	suite.mockUsecase.On("Remove", mock.Anything, "backend-token", "item-1").Return(true)

	req := httptest.NewRequest("DELETE", "/api/cart/item-1", nil)
	req.Header.Set("Authorization", "Bearer backend-token")

	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
}

func (suite *CartHTTPTestSuite) TestSummary() {
	suite.mockUsecase.On("Summary", mock.Anything, "").Return(usecase.Summary{
		ItemsCount: 0, Subtotal: 0, ShippingFee: 500, Total: 500,
	})

	req := httptest.NewRequest("GET", "/api/cart/summary", nil)
	resp, err := suite.app.Test(req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
}

func TestCartHTTPTestSuite(t *testing.T) {
	suite.Run(t, new(CartHTTPTestSuite))
}
