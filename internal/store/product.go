package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/emberhq/portfolio-api/internal/domain"
)

// Product sort keys accepted by ProductFilter.SortBy.
const (
	ProductSortName      = "name"
	ProductSortPrice     = "price"
	ProductSortCreatedAt = "created_at"
)

// ProductFilter narrows and orders List results.
type ProductFilter struct {
	// Category restricts the listing to an exact category when non-empty.
	Category string

	// MinPrice/MaxPrice bound the unit price when non-nil.
	MinPrice *float64
	MaxPrice *float64

	// ActiveOnly hides inactive products. Public listings always set this.
	ActiveOnly bool

	// SortBy is one of the ProductSort* keys; defaults to created_at.
	SortBy string

	// SortAsc orders ascending when true, descending otherwise.
	SortAsc bool
}

// ProductStore defines the interface for product data persistence.
type ProductStore interface {
	// Create saves a new product to the store.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique ID.
	// Returns ErrProductNotFound if the product does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// List returns a page of products matching the filter and the total
	// match count.
	List(ctx context.Context, filter ProductFilter, page Page) ([]domain.Product, int64, error)

	// Update modifies an existing product.
	// Returns ErrProductNotFound if the product does not exist.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product from the store by its ID.
	// Returns ErrProductNotFound if the product does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// Categories returns the distinct non-empty categories of active products.
	Categories(ctx context.Context) ([]string, error)

	// WithTx returns a new ProductStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ProductStore
}
