// Package repository provides collection-level access to the products and
// orders collections. It carries no business logic: filtering, windowing
// and the order/product join are executed by the backing store (natively
// on MongoDB, as explicit sequential steps in the in-memory store).
package repository

import (
	"context"
	"errors"

	"ecommerce-backend/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidID       = errors.New("invalid document id")
)

// ProductFilter narrows a product listing. Both fields are optional and
// combine with logical AND when both are set.
type ProductFilter struct {
	// Name matches products whose name contains this value as a literal,
	// case-insensitive substring. Pattern metacharacters are not
	// interpreted.
	Name string

	// Size matches products having at least one size entry equal to it.
	Size string
}

// JoinedOrder is one order after joining its items against the products
// collection. Total is the unrounded sum of price*qty over surviving
// items; presentation rounding happens in the service layer.
type JoinedOrder struct {
	ID    string
	Items []JoinedItem
	Total float64
}

// JoinedItem is an order line whose product reference resolved. Lines
// with dangling references never appear here.
type JoinedItem struct {
	ProductID string
	Name      string
	Price     float64
	Qty       int
}

// Store defines the gateway over the two logical collections.
type Store interface {
	// InsertProduct persists a product and returns its generated id.
	InsertProduct(ctx context.Context, product models.Product) (string, error)

	// FindProducts returns the filtered catalog ordered by ascending id,
	// windowed by offset/limit, projected without sizes.
	FindProducts(ctx context.Context, filter ProductFilter, offset, limit int) ([]models.ProductSummary, error)

	// GetProduct returns a single product by id. Returns ErrInvalidID for
	// malformed ids and ErrProductNotFound for unknown ones.
	GetProduct(ctx context.Context, id string) (*models.Product, error)

	// InsertOrder persists an order and returns its generated id.
	InsertOrder(ctx context.Context, order models.Order) (string, error)

	// AggregateOrdersByUser selects the user's orders ordered by ascending
	// id, windows them by offset/limit before the join, then inner-joins
	// each order's items against the products collection. Items whose
	// product is missing are dropped; an order that loses all its items is
	// still returned with no items and a zero total.
	AggregateOrdersByUser(ctx context.Context, userID string, offset, limit int) ([]JoinedOrder, error)
}
