package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ecommerce-backend/internal/models"
	"ecommerce-backend/internal/pagination"
	"ecommerce-backend/internal/repository"
	"ecommerce-backend/internal/service"
	"ecommerce-backend/pkg/logger"
)

type orderListResponse struct {
	Data []models.OrderView `json:"data"`
	Page pagination.Page    `json:"page"`
}

// newAPIRouter wires both handlers so order tests can create real products
func newAPIRouter(store repository.Store) *chi.Mux {
	log := logger.New("error")
	productHandler := NewProductHandler(service.NewCatalogService(store), log)
	orderHandler := NewOrderHandler(service.NewOrderService(store), log)

	r := chi.NewRouter()
	r.Post("/products", productHandler.CreateProduct)
	r.Get("/products", productHandler.ListProducts)
	r.Get("/products/{productId}", productHandler.GetProduct)
	r.Post("/orders", orderHandler.CreateOrder)
	r.Get("/orders/{userId}", orderHandler.ListOrders)
	return r
}

func createOrder(t *testing.T, r http.Handler, req models.OrderCreateRequest) string {
	t.Helper()

	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body)))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var created CreatedResponse
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected non-empty id")
	}
	return created.ID
}

func listOrders(t *testing.T, r http.Handler, path string) orderListResponse {
	t.Helper()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp orderListResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestOrderHandler_ShirtScenario(t *testing.T) {
	r := newAPIRouter(repository.NewMemoryStore())

	productID := createProduct(t, r, models.ProductCreateRequest{
		Name:  "Shirt",
		Price: 19.99,
		Sizes: []models.Size{{Size: "M", Quantity: 5}},
	})

	orderID := createOrder(t, r, models.OrderCreateRequest{
		UserID: "U1",
		Items:  []models.OrderItem{{ProductID: productID, Qty: 2}},
	})

	resp := listOrders(t, r, "/orders/U1")

	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 order, got %d", len(resp.Data))
	}

	order := resp.Data[0]
	if order.ID != orderID {
		t.Errorf("expected order id %s, got %s", orderID, order.ID)
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(order.Items))
	}
	if order.Items[0].ProductDetails.ID != productID {
		t.Errorf("expected product id %s, got %s", productID, order.Items[0].ProductDetails.ID)
	}
	if order.Items[0].ProductDetails.Name != "Shirt" {
		t.Errorf("expected product name Shirt, got %s", order.Items[0].ProductDetails.Name)
	}
	if order.Items[0].Qty != 2 {
		t.Errorf("expected qty 2, got %d", order.Items[0].Qty)
	}
	if order.Total != 39.98 {
		t.Errorf("expected total 39.98, got %v", order.Total)
	}

	if resp.Page.Next != "10" || resp.Page.Limit != 1 || resp.Page.Previous != "0" {
		t.Errorf("unexpected page metadata %+v", resp.Page)
	}
}

func TestOrderHandler_DanglingReferences(t *testing.T) {
	r := newAPIRouter(repository.NewMemoryStore())

	productID := createProduct(t, r, models.ProductCreateRequest{Name: "Shirt", Price: 19.99})
	dangling := primitive.NewObjectID().Hex()

	mixedID := createOrder(t, r, models.OrderCreateRequest{
		UserID: "U1",
		Items: []models.OrderItem{
			{ProductID: productID, Qty: 2},
			{ProductID: dangling, Qty: 5},
		},
	})
	lostID := createOrder(t, r, models.OrderCreateRequest{
		UserID: "U1",
		Items:  []models.OrderItem{{ProductID: dangling, Qty: 1}},
	})

	resp := listOrders(t, r, "/orders/U1")
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(resp.Data))
	}

	// the dangling line vanished but the valid one survived
	mixed := resp.Data[0]
	if mixed.ID != mixedID {
		t.Errorf("expected order id %s, got %s", mixedID, mixed.ID)
	}
	if len(mixed.Items) != 1 {
		t.Fatalf("expected 1 surviving item, got %d", len(mixed.Items))
	}
	if mixed.Total != 39.98 {
		t.Errorf("expected total 39.98, got %v", mixed.Total)
	}

	// an order whose references all dangle still appears, emptied
	lost := resp.Data[1]
	if lost.ID != lostID {
		t.Errorf("expected order id %s, got %s", lostID, lost.ID)
	}
	if lost.Items == nil {
		t.Error("items must be an empty array, not null")
	}
	if len(lost.Items) != 0 {
		t.Errorf("expected no items, got %d", len(lost.Items))
	}
	if lost.Total != 0 {
		t.Errorf("expected total 0, got %v", lost.Total)
	}
}

func TestOrderHandler_ListOrders_Pagination(t *testing.T) {
	r := newAPIRouter(repository.NewMemoryStore())

	productID := createProduct(t, r, models.ProductCreateRequest{Name: "Shirt", Price: 10})

	var orderIDs []string
	for i := 0; i < 3; i++ {
		orderIDs = append(orderIDs, createOrder(t, r, models.OrderCreateRequest{
			UserID: "U1",
			Items:  []models.OrderItem{{ProductID: productID, Qty: 1}},
		}))
	}

	resp := listOrders(t, r, "/orders/U1?limit=2&offset=2")
	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 order, got %d", len(resp.Data))
	}
	if resp.Data[0].ID != orderIDs[2] {
		t.Errorf("expected order id %s, got %s", orderIDs[2], resp.Data[0].ID)
	}
	if resp.Page.Next != "4" || resp.Page.Limit != 1 || resp.Page.Previous != "0" {
		t.Errorf("unexpected page metadata %+v", resp.Page)
	}
}

func TestOrderHandler_ListOrders_UnknownUser(t *testing.T) {
	r := newAPIRouter(repository.NewMemoryStore())

	resp := listOrders(t, r, "/orders/nobody")
	if resp.Data == nil {
		t.Error("data must be an empty array, not null")
	}
	if len(resp.Data) != 0 {
		t.Errorf("expected no orders, got %d", len(resp.Data))
	}
	if resp.Page.Next != "10" || resp.Page.Limit != 0 || resp.Page.Previous != "0" {
		t.Errorf("unexpected page metadata %+v", resp.Page)
	}
}

func TestOrderHandler_CreateOrder_Validation(t *testing.T) {
	r := newAPIRouter(repository.NewMemoryStore())

	productID := createProduct(t, r, models.ProductCreateRequest{Name: "Shirt", Price: 10})

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "malformed json",
			body:           "{broken",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing userId",
			body:           `{"items": [{"productId": "` + productID + `", "qty": 1}]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero quantity",
			body:           `{"userId": "U1", "items": [{"productId": "` + productID + `", "qty": 0}]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed product id",
			body:           `{"userId": "U1", "items": [{"productId": "nope", "qty": 1}]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty items allowed",
			body:           `{"userId": "U1", "items": []}`,
			expectedStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader([]byte(tt.body))))

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}
