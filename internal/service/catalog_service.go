package service

import (
	"context"
	"errors"

	"ecommerce-backend/internal/models"
	"ecommerce-backend/internal/repository"
)

var (
	ErrNameRequired = errors.New("product name is required")
	ErrInvalidPrice = errors.New("price must not be negative")
)

// CatalogService handles product creation and listing
type CatalogService struct {
	store repository.Store
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store repository.Store) *CatalogService {
	return &CatalogService{
		store: store,
	}
}

// CreateProduct validates and persists a product, returning the generated id
func (s *CatalogService) CreateProduct(ctx context.Context, req models.ProductCreateRequest) (string, error) {
	if req.Name == "" {
		return "", ErrNameRequired
	}
	if req.Price < 0 {
		return "", ErrInvalidPrice
	}

	sizes := req.Sizes
	if sizes == nil {
		sizes = []models.Size{}
	}

	return s.store.InsertProduct(ctx, models.Product{
		Name:  req.Name,
		Price: req.Price,
		Sizes: sizes,
	})
}

// ListProducts returns the filtered, windowed catalog projection. An
// empty result is a valid outcome, never an error.
func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter, offset, limit int) ([]models.ProductSummary, error) {
	products, err := s.store.FindProducts(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.ProductSummary{}
	}
	return products, nil
}

// GetProduct returns a single product including its sizes
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.store.GetProduct(ctx, id)
}
