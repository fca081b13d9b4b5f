package models

// Order represents an order as persisted in the orders collection.
// Orders are never mutated or deleted after creation.
type Order struct {
	ID     string      `json:"id"`
	UserID string      `json:"userId"`
	Items  []OrderItem `json:"items"`
}

// OrderItem is a single line of an order. ProductID is a weak reference
// to a product; nothing guarantees the referenced product still exists.
type OrderItem struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// OrderCreateRequest represents an incoming order creation request
type OrderCreateRequest struct {
	UserID string      `json:"userId"`
	Items  []OrderItem `json:"items"`
}

// OrderView is the joined per-request view of an order. It is computed
// fresh on every read: the total reflects current product prices, and
// items whose product no longer exists are absent.
type OrderView struct {
	ID    string          `json:"id"`
	Items []OrderViewItem `json:"items"`
	Total float64         `json:"total"`
}

// OrderViewItem is one surviving line of a joined order
type OrderViewItem struct {
	ProductDetails ProductDetails `json:"productDetails"`
	Qty            int            `json:"qty"`
}

// ProductDetails identifies the joined product. The product price feeds
// the order total but is never exposed per item.
type ProductDetails struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
