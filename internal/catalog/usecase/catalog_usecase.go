package usecase

import (
	"context"
	"strings"

	"ev-storefront/internal/catalog/domain/model"
	"ev-storefront/internal/shared/errors"
	"ev-storefront/internal/shared/logger"
)

// ProductAPI is the slice of the backend client the catalog module needs.
type ProductAPI interface {
	ListProducts(ctx context.Context, filters model.Filters) ([]model.Product, error)
	GetProduct(ctx context.Context, productID int) (*model.Product, error)
	CreateProduct(ctx context.Context, token string, product *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, token string, productID int, product *model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, token string, productID int) error
}

// SearchMemory records search terms against a session. Implemented by the
// session module.
type SearchMemory interface {
	RememberSearch(ctx context.Context, sessionID, term string) error
}

// CatalogUsecaseInterface defines the catalog service contract
type CatalogUsecaseInterface interface {
	ListProducts(ctx context.Context, sessionID string, filters model.Filters) ([]model.Product, error)
	GetProduct(ctx context.Context, productID int) (*model.Product, error)
	CreateProduct(ctx context.Context, token string, product *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, token string, productID int, product *model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, token string, productID int) error
}

// CatalogUsecase passes the catalog through from the backend. Its one piece
// of gateway-side state is the recent-search history.
type CatalogUsecase struct {
	api      ProductAPI
	searches SearchMemory
	log      logger.Logger
}

// NewCatalogUsecase creates a new catalog usecase
func NewCatalogUsecase(api ProductAPI, searches SearchMemory, log logger.Logger) *CatalogUsecase {
	return &CatalogUsecase{
		api:      api,
		searches: searches,
		log:      log.WithComponent("catalog"),
	}
}

// ListProducts lists the catalog. A non-empty search term from a session is
// remembered in its recent-search history; failing to record it never fails
// the listing.
func (u *CatalogUsecase) ListProducts(ctx context.Context, sessionID string, filters model.Filters) ([]model.Product, error) {
	if term := strings.TrimSpace(filters.Search); term != "" && sessionID != "" {
		if err := u.searches.RememberSearch(ctx, sessionID, term); err != nil {
			u.log.WithContext(ctx).Warnf("Failed to remember search %q: %v", term, err)
		}
	}

	products, err := u.api.ListProducts(ctx, filters)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

// GetProduct returns one product.
func (u *CatalogUsecase) GetProduct(ctx context.Context, productID int) (*model.Product, error) {
	return u.api.GetProduct(ctx, productID)
}

// CreateProduct creates a catalog entry (admin operation).
func (u *CatalogUsecase) CreateProduct(ctx context.Context, token string, product *model.Product) (*model.Product, error) {
	if token == "" {
		return nil, errors.ErrAuthRequired
	}
	return u.api.CreateProduct(ctx, token, product)
}

// UpdateProduct updates a catalog entry (admin operation).
func (u *CatalogUsecase) UpdateProduct(ctx context.Context, token string, productID int, product *model.Product) (*model.Product, error) {
	if token == "" {
		return nil, errors.ErrAuthRequired
	}
	return u.api.UpdateProduct(ctx, token, productID, product)
}

// DeleteProduct removes a catalog entry (admin operation).
func (u *CatalogUsecase) DeleteProduct(ctx context.Context, token string, productID int) error {
	if token == "" {
		return errors.ErrAuthRequired
	}
	return u.api.DeleteProduct(ctx, token, productID)
}
