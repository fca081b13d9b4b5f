package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ecommerce-backend/internal/models"
)

// MemoryStore implements Store with in-process storage. It backs the
// test suites and the "memory" storage driver. The aggregation contract
// of MongoStore is reproduced as explicit sequential steps: select,
// sort, window, expand items, look up products, regroup, total.
type MemoryStore struct {
	mu          sync.RWMutex
	products    []models.Product // insertion order
	productByID map[string]models.Product
	orders      []models.Order // insertion order
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		productByID: make(map[string]models.Product),
	}
}

// newID mints an ObjectID hex string. ObjectIDs generated in-process are
// increasing, which keeps id order equal to insertion order, same as the
// MongoDB driver.
func newID() string {
	return primitive.NewObjectID().Hex()
}

// InsertProduct persists a product and returns the generated id
func (s *MemoryStore) InsertProduct(ctx context.Context, product models.Product) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = newID()
	s.products = append(s.products, product)
	s.productByID[product.ID] = product
	return product.ID, nil
}

// FindProducts lists the catalog in insertion order, filtered and
// windowed, projected without sizes
func (s *MemoryStore) FindProducts(ctx context.Context, filter ProductFilter, offset, limit int) ([]models.ProductSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.Product
	for _, p := range s.products {
		if !matchesFilter(p, filter) {
			continue
		}
		matched = append(matched, p)
	}

	matched = window(matched, offset, limit)

	summaries := make([]models.ProductSummary, 0, len(matched))
	for _, p := range matched {
		summaries = append(summaries, models.ProductSummary{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price,
		})
	}
	return summaries, nil
}

// matchesFilter applies the name and size filters with AND semantics.
// The name filter is a case-insensitive literal substring match, so
// pattern metacharacters in user input have no special meaning.
func matchesFilter(p models.Product, filter ProductFilter) bool {
	if filter.Name != "" {
		if !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Name)) {
			return false
		}
	}
	if filter.Size != "" {
		found := false
		for _, size := range p.Sizes {
			if size.Size == filter.Size {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// GetProduct returns a single product by its hex id
func (s *MemoryStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.productByID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// InsertOrder persists an order and returns the generated id. Product
// references must be well-formed ids but are not checked for existence.
func (s *MemoryStore) InsertOrder(ctx context.Context, order models.Order) (string, error) {
	for _, item := range order.Items {
		if _, err := primitive.ObjectIDFromHex(item.ProductID); err != nil {
			return "", ErrInvalidID
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = newID()
	s.orders = append(s.orders, order)
	return order.ID, nil
}

// AggregateOrdersByUser performs the order/product join step by step over
// the in-memory collections, mirroring the MongoDB pipeline: match on
// userId, sort by id, window before the join, expand each order's items,
// look up the referenced product, drop lines whose reference dangles,
// regroup under the order and sum line values. Orders that lose every
// line are still emitted with no items and a zero total.
func (s *MemoryStore) AggregateOrdersByUser(ctx context.Context, userID string, offset, limit int) ([]JoinedOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var selected []models.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			selected = append(selected, o)
		}
	}

	selected = window(selected, offset, limit)

	joined := make([]JoinedOrder, 0, len(selected))
	for _, o := range selected {
		row := JoinedOrder{ID: o.ID, Items: make([]JoinedItem, 0, len(o.Items))}

		total := decimal.Zero
		for _, item := range o.Items {
			product, ok := s.productByID[item.ProductID]
			if !ok {
				// dangling reference: inner-join semantics, line vanishes
				continue
			}

			lineValue := decimal.NewFromFloat(product.Price).Mul(decimal.NewFromInt(int64(item.Qty)))
			total = total.Add(lineValue)

			row.Items = append(row.Items, JoinedItem{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     product.Price,
				Qty:       item.Qty,
			})
		}

		row.Total = total.InexactFloat64()
		joined = append(joined, row)
	}
	return joined, nil
}

// window applies offset/limit windowing to an ordered slice
func window[T any](s []T, offset, limit int) []T {
	if offset >= len(s) {
		return nil
	}
	end := offset + limit
	if end > len(s) || end < 0 {
		end = len(s)
	}
	return s[offset:end]
}
