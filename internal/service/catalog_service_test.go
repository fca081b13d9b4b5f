package service

import (
	"context"
	"errors"
	"testing"

	"ecommerce-backend/internal/models"
	"ecommerce-backend/internal/repository"
)

func TestCatalogService_CreateProduct(t *testing.T) {
	store := repository.NewMemoryStore()
	catalog := NewCatalogService(store)

	tests := []struct {
		name    string
		req     models.ProductCreateRequest
		wantErr error
	}{
		{
			name: "valid product",
			req: models.ProductCreateRequest{
				Name:  "Shirt",
				Price: 19.99,
				Sizes: []models.Size{{Size: "M", Quantity: 5}},
			},
			wantErr: nil,
		},
		{
			name: "no sizes allowed",
			req: models.ProductCreateRequest{
				Name:  "Cap",
				Price: 5,
			},
			wantErr: nil,
		},
		{
			name: "free product allowed",
			req: models.ProductCreateRequest{
				Name:  "Flyer",
				Price: 0,
			},
			wantErr: nil,
		},
		{
			name:    "missing name",
			req:     models.ProductCreateRequest{Price: 10},
			wantErr: ErrNameRequired,
		},
		{
			name:    "negative price",
			req:     models.ProductCreateRequest{Name: "Shirt", Price: -1},
			wantErr: ErrInvalidPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := catalog.CreateProduct(context.Background(), tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("CreateProduct() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("CreateProduct() unexpected error = %v", err)
				return
			}

			if id == "" {
				t.Error("CreateProduct() returned empty id")
				return
			}

			// created product must be retrievable with identical fields
			product, err := catalog.GetProduct(context.Background(), id)
			if err != nil {
				t.Fatalf("GetProduct() unexpected error = %v", err)
			}
			if product.Name != tt.req.Name {
				t.Errorf("expected name %s, got %s", tt.req.Name, product.Name)
			}
			if product.Price != tt.req.Price {
				t.Errorf("expected price %v, got %v", tt.req.Price, product.Price)
			}
		})
	}
}

func TestCatalogService_ListProducts_EmptyResult(t *testing.T) {
	store := repository.NewMemoryStore()
	catalog := NewCatalogService(store)

	products, err := catalog.ListProducts(context.Background(), repository.ProductFilter{Name: "nothing"}, 0, 10)
	if err != nil {
		t.Fatalf("ListProducts() unexpected error = %v", err)
	}

	if products == nil {
		t.Error("expected non-nil empty slice")
	}
	if len(products) != 0 {
		t.Errorf("expected no products, got %d", len(products))
	}
}
