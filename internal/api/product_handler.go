package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/emberhq/portfolio-api/internal/domain"
	"github.com/emberhq/portfolio-api/internal/store"
)

// ProductHandler handles the product catalog endpoints. Reads are public;
// writes are admin only.
type ProductHandler struct {
	productStore store.ProductStore
	logger       *slog.Logger
}

// NewProductHandler creates a new ProductHandler with the given dependencies.
func NewProductHandler(productStore store.ProductStore, logger *slog.Logger) *ProductHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductHandler{
		productStore: productStore,
		logger:       logger.With(slog.String("component", "product_handler")),
	}
}

// List handles GET /api/products. Only active products are listed.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := parseProductFilter(r)
	page := ParsePage(r)

	products, total, err := h.productStore.List(r.Context(), filter, page)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, ProductListResponse{
		Products:   products,
		Pagination: NewPagination(total, page),
	})
}

// Get handles GET /api/products/{id}. Inactive products are reported as
// not available so the public cannot probe the hidden catalog.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	product, err := h.productStore.GetByID(r.Context(), id)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}
	if !product.IsActive {
		RespondWithError(w, r, http.StatusNotFound, "Product not available")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"product": product})
}

// Create handles POST /api/products (admin only).
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	product, err := domain.NewProduct(
		req.Name, req.Description, req.Price, req.Stock, req.Category, req.ImageURL,
	)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.productStore.Create(r.Context(), product); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	h.logger.Info("product created",
		slog.String("product_id", product.ID.String()),
		slog.String("name", product.Name))

	RespondWithJSON(w, r, http.StatusCreated, map[string]interface{}{
		"message": "Product created successfully",
		"product": product,
	})
}

// Update handles PUT /api/products/{id} (admin only).
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	product, err := h.productStore.GetByID(r.Context(), id)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	var req UpdateProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	applyProductUpdate(product, &req)
	product.UpdatedAt = time.Now().UTC()

	if err := product.Validate(); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.productStore.Update(r.Context(), product); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	h.logger.Info("product updated", slog.String("product_id", id.String()))

	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "Product updated successfully",
		"product": product,
	})
}

// Delete handles DELETE /api/products/{id} (admin only).
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.productStore.Delete(r.Context(), id); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	h.logger.Info("product deleted", slog.String("product_id", id.String()))

	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "Product deleted successfully",
	})
}

// Categories handles GET /api/products/categories.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.productStore.Categories(r.Context())
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, CategoryListResponse{Categories: categories})
}

// parseProductFilter reads the catalog listing query parameters.
func parseProductFilter(r *http.Request) store.ProductFilter {
	q := r.URL.Query()

	filter := store.ProductFilter{
		Category:   q.Get("category"),
		ActiveOnly: true,
		SortBy:     q.Get("sort_by"),
		SortAsc:    q.Get("sort_order") == "asc",
	}

	if raw := q.Get("min_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if raw := q.Get("max_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &v
		}
	}

	return filter
}

// applyProductUpdate copies the non-nil request fields onto the product.
func applyProductUpdate(product *domain.Product, req *UpdateProductRequest) {
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
}
