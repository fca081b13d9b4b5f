package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ecommerce-backend/internal/models"
	"ecommerce-backend/internal/pagination"
	"ecommerce-backend/internal/repository"
	"ecommerce-backend/internal/service"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	catalog *service.CatalogService
	log     *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalog *service.CatalogService, log *slog.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		log:     log,
	}
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.ProductCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("failed to decode product request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	id, err := h.catalog.CreateProduct(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameRequired):
			WriteError(w, http.StatusBadRequest, "Product name is required", h.log)
		case errors.Is(err, service.ErrInvalidPrice):
			WriteError(w, http.StatusBadRequest, "Price must not be negative", h.log)
		default:
			h.log.Error("failed to create product", "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	h.log.Info("product created", "product_id", id)
	WriteJSON(w, http.StatusCreated, CreatedResponse{ID: id}, h.log)
}

// ListProducts handles GET /products
// Optional query parameters: name (case-insensitive literal substring),
// size (exact match), limit, offset.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := parseWindow(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error(), h.log)
		return
	}

	filter := repository.ProductFilter{
		Name: r.URL.Query().Get("name"),
		Size: r.URL.Query().Get("size"),
	}

	products, err := h.catalog.ListProducts(r.Context(), filter, offset, limit)
	if err != nil {
		h.log.Error("failed to list products", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, ListResponse{
		Data: products,
		Page: pagination.NewPage(offset, limit, len(products)),
	}, h.log)
}

// GetProduct handles GET /products/{productId}
// - 200: successful operation
// - 400: Invalid ID supplied
// - 404: Product not found
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	product, err := h.catalog.GetProduct(r.Context(), productID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidID):
			h.log.Warn("invalid product id format", "product_id", productID)
			WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.log)
		case errors.Is(err, repository.ErrProductNotFound):
			h.log.Info("product not found", "product_id", productID)
			WriteError(w, http.StatusNotFound, "Product not found", h.log)
		default:
			h.log.Error("failed to get product", "product_id", productID, "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusOK, product, h.log)
}
