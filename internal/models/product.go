package models

// Product represents a catalog product. Products are immutable once
// created; the id is generated by the store on insert.
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Sizes []Size  `json:"sizes"`
}

// Size represents a stocked size variant of a product
type Size struct {
	Size     string `json:"size" bson:"size"`
	Quantity int    `json:"quantity" bson:"quantity"`
}

// ProductSummary is the listing projection of a product.
// The sizes field is deliberately excluded from list responses.
type ProductSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ProductCreateRequest represents an incoming product creation request
type ProductCreateRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Sizes []Size  `json:"sizes"`
}
