package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	catalogmodel "ev-storefront/internal/catalog/domain/model"
	"ev-storefront/internal/shared/errors"
	"ev-storefront/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(&Config{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	}, logger.NewLogger())

	return client, server
}

func TestClient_GetCart_DecodesEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cart", r.URL.Path)
		assert.Equal(t, "Bearer backend-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": [
				{"id": "item-1", "product_id": 7, "quantity": 2, "name": "EV Scooter", "price": 1000}
			]
		}`))
	}))

	items, err := client.GetCart(context.Background(), "backend-token")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "item-1", items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestClient_GetCart_DecodesBareArray(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": "item-1", "quantity": 1}]`))
	}))

	items, err := client.GetCart(context.Background(), "backend-token")
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestClient_EnvelopeFailure_BecomesAPIError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": false, "message": "Product out of stock"}`))
	}))

	_, err := client.AddToCart(context.Background(), "backend-token", 7, 1, "")
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Product out of stock", apiErr.Message)
}

func TestClient_HTTPError_BecomesAPIError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Cart item not found"}`))
	}))

	err := client.RemoveFromCart(context.Background(), "backend-token", "missing")
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsNotFound())
	assert.Equal(t, "Cart item not found", apiErr.Message)
}

func TestClient_ClearCart_ReportsDeletedItems(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/cart/clear", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "deleted_items": 3}`))
	}))

	deleted, err := client.ClearCart(context.Background(), "backend-token")
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)
}

func TestClient_Login_Success(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada@example.com", body["email"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {
				"user": {"id": "user-1", "name": "Ada", "email": "ada@example.com", "role": "customer"},
				"token": "backend-token"
			}
		}`))
	}))

	user, token, err := client.Login(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "backend-token", token)
}

func TestClient_Login_InvalidCredentials(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "Invalid credentials"}`))
	}))

	_, _, err := client.Login(context.Background(), "ada@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, errors.IsAuthentication(err))
}

func TestClient_Login_BackendDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused

	client := NewClient(&Config{BaseURL: server.URL, Timeout: time.Second}, logger.NewLogger())

	_, _, err := client.Login(context.Background(), "ada@example.com", "secret")
	require.Error(t, err)
	assert.True(t, errors.IsUpstream(err))
}

func TestClient_Logout_NoToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected without a token")
	}))

	assert.NoError(t, client.Logout(context.Background(), ""))
}

func TestClient_ListProducts_Filters(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "scooter", r.URL.Query().Get("search"))
		assert.Equal(t, "Scooters", r.URL.Query().Get("category"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": [{"id": 7, "name": "EV Scooter"}]}`))
	}))

	products, err := client.ListProducts(context.Background(), catalogmodel.Filters{
		Search:   "scooter",
		Category: "Scooters",
	})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 7, products[0].ID)
}
