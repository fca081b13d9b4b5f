package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"ecommerce-backend/internal/models"
	"ecommerce-backend/internal/repository"
)

var (
	ErrUserIDRequired  = errors.New("userId is required")
	ErrInvalidProduct  = errors.New("invalid product id")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// OrderService handles order creation and the joined order listing
type OrderService struct {
	store repository.Store
}

// NewOrderService creates a new order service
func NewOrderService(store repository.Store) *OrderService {
	return &OrderService{
		store: store,
	}
}

// CreateOrder validates and persists an order, returning the generated
// id. Product references are checked for well-formedness only; a
// reference to a product that never existed or was since removed is
// stored as-is and silently dropped at read time. An order with no items
// is allowed.
func (s *OrderService) CreateOrder(ctx context.Context, req models.OrderCreateRequest) (string, error) {
	if req.UserID == "" {
		return "", ErrUserIDRequired
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Qty < 1 {
			return "", ErrInvalidQuantity
		}
		items = append(items, item)
	}

	id, err := s.store.InsertOrder(ctx, models.Order{
		UserID: req.UserID,
		Items:  items,
	})
	if err != nil {
		if errors.Is(err, repository.ErrInvalidID) {
			return "", ErrInvalidProduct
		}
		return "", err
	}
	return id, nil
}

// ListOrders returns the user's orders joined against current product
// records, in ascending id order, windowed by offset/limit. Totals are
// computed from current prices and rounded half-up (away from zero) to
// two decimal places. A user with no orders yields an empty slice.
func (s *OrderService) ListOrders(ctx context.Context, userID string, offset, limit int) ([]models.OrderView, error) {
	joined, err := s.store.AggregateOrdersByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}

	views := make([]models.OrderView, 0, len(joined))
	for _, order := range joined {
		items := make([]models.OrderViewItem, 0, len(order.Items))
		for _, item := range order.Items {
			items = append(items, models.OrderViewItem{
				ProductDetails: models.ProductDetails{
					ID:   item.ProductID,
					Name: item.Name,
				},
				Qty: item.Qty,
			})
		}

		views = append(views, models.OrderView{
			ID:    order.ID,
			Items: items,
			Total: roundTotal(order.Total),
		})
	}
	return views, nil
}

// roundTotal rounds a monetary amount to two decimal places, half away
// from zero
func roundTotal(total float64) float64 {
	return decimal.NewFromFloat(total).Round(2).InexactFloat64()
}
