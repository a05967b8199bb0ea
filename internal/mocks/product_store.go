package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"

	"github.com/emberhq/portfolio-api/internal/domain"
	"github.com/emberhq/portfolio-api/internal/store"
)

// MockProductStore implements store.ProductStore for testing
type MockProductStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, product *domain.Product) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListFn       func(ctx context.Context, filter store.ProductFilter, page store.Page) ([]domain.Product, int64, error)
	UpdateFn     func(ctx context.Context, product *domain.Product) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error
	CategoriesFn func(ctx context.Context) ([]string, error)

	// Products backs the default in-memory implementation, keyed by ID.
	Products map[uuid.UUID]*domain.Product
}

// NewMockProductStore creates a new mock store with initialized defaults
func NewMockProductStore() *MockProductStore {
	return &MockProductStore{
		Products: make(map[uuid.UUID]*domain.Product),
	}
}

// Ensure MockProductStore implements store.ProductStore
var _ store.ProductStore = (*MockProductStore)(nil)

// Create implements the ProductStore interface
func (m *MockProductStore) Create(ctx context.Context, product *domain.Product) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, product)
	}

	copied := *product
	m.Products[product.ID] = &copied
	return nil
}

// GetByID implements the ProductStore interface
func (m *MockProductStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	product, exists := m.Products[id]
	if !exists {
		return nil, store.ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

// List implements the ProductStore interface
func (m *MockProductStore) List(
	ctx context.Context,
	filter store.ProductFilter,
	page store.Page,
) ([]domain.Product, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter, page)
	}

	matched := []domain.Product{}
	for _, product := range m.Products {
		if filter.ActiveOnly && !product.IsActive {
			continue
		}
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		if filter.MinPrice != nil && product.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && product.Price > *filter.MaxPrice {
			continue
		}
		matched = append(matched, *product)
	}

	sort.Slice(matched, func(i, j int) bool {
		var less bool
		switch filter.SortBy {
		case store.ProductSortName:
			less = matched[i].Name < matched[j].Name
		case store.ProductSortPrice:
			less = matched[i].Price < matched[j].Price
		default:
			less = matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		if filter.SortAsc {
			return less
		}
		return !less
	})

	return paginate(matched, page), int64(len(matched)), nil
}

// Update implements the ProductStore interface
func (m *MockProductStore) Update(ctx context.Context, product *domain.Product) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, product)
	}

	if _, exists := m.Products[product.ID]; !exists {
		return store.ErrProductNotFound
	}
	copied := *product
	m.Products[product.ID] = &copied
	return nil
}

// Delete implements the ProductStore interface
func (m *MockProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Products[id]; !exists {
		return store.ErrProductNotFound
	}
	delete(m.Products, id)
	return nil
}

// Categories implements the ProductStore interface
func (m *MockProductStore) Categories(ctx context.Context) ([]string, error) {
	if m.CategoriesFn != nil {
		return m.CategoriesFn(ctx)
	}

	seen := map[string]bool{}
	categories := []string{}
	for _, product := range m.Products {
		if !product.IsActive || product.Category == "" || seen[product.Category] {
			continue
		}
		seen[product.Category] = true
		categories = append(categories, product.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

// WithTx implements the ProductStore interface. The mock has no
// transactions, so it returns itself.
func (m *MockProductStore) WithTx(tx *sql.Tx) store.ProductStore {
	return m
}
