package usecase

import (
	"context"
	"testing"

	"ev-storefront/internal/catalog/domain/model"
	"ev-storefront/internal/shared/errors"
	"ev-storefront/internal/shared/logger"

	stderrors "errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductAPI mocks the backend product surface
type MockProductAPI struct {
	mock.Mock
}

func (m *MockProductAPI) ListProducts(ctx context.Context, filters model.Filters) ([]model.Product, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductAPI) GetProduct(ctx context.Context, productID int) (*model.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductAPI) CreateProduct(ctx context.Context, token string, product *model.Product) (*model.Product, error) {
	args := m.Called(ctx, token, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductAPI) UpdateProduct(ctx context.Context, token string, productID int, product *model.Product) (*model.Product, error) {
	args := m.Called(ctx, token, productID, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductAPI) DeleteProduct(ctx context.Context, token string, productID int) error {
	args := m.Called(ctx, token, productID)
	return args.Error(0)
}

// MockSearchMemory mocks the session module's search history
type MockSearchMemory struct {
	mock.Mock
}

func (m *MockSearchMemory) RememberSearch(ctx context.Context, sessionID, term string) error {
	args := m.Called(ctx, sessionID, term)
	return args.Error(0)
}

func newTestCatalogUsecase() (*CatalogUsecase, *MockProductAPI, *MockSearchMemory) {
	api := &MockProductAPI{}
	searches := &MockSearchMemory{}
	return NewCatalogUsecase(api, searches, logger.NewLogger()), api, searches
}

func TestListProducts_RemembersSearchForSession(t *testing.T) {
	uc, api, searches := newTestCatalogUsecase()
	filters := model.Filters{Search: "taycan"}

	searches.On("RememberSearch", mock.Anything, "session-1", "taycan").Return(nil)
	api.On("ListProducts", mock.Anything, filters).Return([]model.Product{{ID: 1}}, nil)

	products, err := uc.ListProducts(context.Background(), "session-1", filters)

	require.NoError(t, err)
	assert.Len(t, products, 1)
	searches.AssertExpectations(t)
}

func TestListProducts_GuestSearchNotRemembered(t *testing.T) {
	uc, api, searches := newTestCatalogUsecase()
	filters := model.Filters{Search: "taycan"}

	api.On("ListProducts", mock.Anything, filters).Return([]model.Product{}, nil)

	_, err := uc.ListProducts(context.Background(), "", filters)

	require.NoError(t, err)
	searches.AssertNotCalled(t, "RememberSearch")
}

func TestListProducts_BlankSearchNotRemembered(t *testing.T) {
	uc, api, searches := newTestCatalogUsecase()
	filters := model.Filters{Search: "   "}

	api.On("ListProducts", mock.Anything, filters).Return([]model.Product{}, nil)

	_, err := uc.ListProducts(context.Background(), "session-1", filters)

	require.NoError(t, err)
	searches.AssertNotCalled(t, "RememberSearch")
}

func TestListProducts_SearchMemoryFailureDoesNotFailListing(t *testing.T) {
	uc, api, searches := newTestCatalogUsecase()
	filters := model.Filters{Search: "etron"}

	searches.On("RememberSearch", mock.Anything, "session-1", "etron").
		Return(stderrors.New("session store down"))
	api.On("ListProducts", mock.Anything, filters).Return([]model.Product{{ID: 7}}, nil)

	products, err := uc.ListProducts(context.Background(), "session-1", filters)

	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestListProducts_NilBecomesEmptySlice(t *testing.T) {
	uc, api, _ := newTestCatalogUsecase()

	api.On("ListProducts", mock.Anything, model.Filters{}).
		Return([]model.Product(nil), nil)

	products, err := uc.ListProducts(context.Background(), "", model.Filters{})

	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestListProducts_BackendFailure(t *testing.T) {
	uc, api, _ := newTestCatalogUsecase()

	api.On("ListProducts", mock.Anything, model.Filters{}).
		Return(nil, stderrors.New("connection refused"))

	_, err := uc.ListProducts(context.Background(), "", model.Filters{})

	assert.Error(t, err)
}

func TestGetProduct_Passthrough(t *testing.T) {
	uc, api, _ := newTestCatalogUsecase()

	api.On("GetProduct", mock.Anything, 42).
		Return(&model.Product{ID: 42, Name: "Ioniq 5"}, nil)

	product, err := uc.GetProduct(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, "Ioniq 5", product.Name)
}

func TestAdminOperations_RequireToken(t *testing.T) {
	uc, api, _ := newTestCatalogUsecase()
	ctx := context.Background()

	_, err := uc.CreateProduct(ctx, "", &model.Product{})
	assert.ErrorIs(t, err, errors.ErrAuthRequired)

	_, err = uc.UpdateProduct(ctx, "", 1, &model.Product{})
	assert.ErrorIs(t, err, errors.ErrAuthRequired)

	err = uc.DeleteProduct(ctx, "", 1)
	assert.ErrorIs(t, err, errors.ErrAuthRequired)

	api.AssertNotCalled(t, "CreateProduct")
	api.AssertNotCalled(t, "UpdateProduct")
	api.AssertNotCalled(t, "DeleteProduct")
}

func TestAdminOperations_PassTokenThrough(t *testing.T) {
	uc, api, _ := newTestCatalogUsecase()
	ctx := context.Background()

	api.On("DeleteProduct", mock.Anything, "admin-token", 9).Return(nil)

	require.NoError(t, uc.DeleteProduct(ctx, "admin-token", 9))
	api.AssertExpectations(t)
}
