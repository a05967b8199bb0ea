package mocks

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/emberhq/portfolio-api/internal/domain"
	"github.com/emberhq/portfolio-api/internal/store"
)

// MockOrderStore implements store.OrderStore for testing
type MockOrderStore struct {
	// Function fields for customizable behavior
	CreateFn              func(ctx context.Context, order *domain.Order) error
	GetByIDFn             func(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListFn                func(ctx context.Context, filter store.OrderFilter, page store.Page) ([]domain.Order, int64, error)
	UpdateStatusFn        func(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
	UpdatePaymentStatusFn func(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) error

	// Orders backs the default in-memory implementation, keyed by ID.
	Orders map[uuid.UUID]*domain.Order
}

// NewMockOrderStore creates a new mock store with initialized defaults
func NewMockOrderStore() *MockOrderStore {
	return &MockOrderStore{
		Orders: make(map[uuid.UUID]*domain.Order),
	}
}

// Ensure MockOrderStore implements store.OrderStore
var _ store.OrderStore = (*MockOrderStore)(nil)

// Create implements the OrderStore interface
func (m *MockOrderStore) Create(ctx context.Context, order *domain.Order) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, order)
	}

	copied := *order
	copied.Items = append([]domain.OrderItem{}, order.Items...)
	m.Orders[order.ID] = &copied
	return nil
}

// GetByID implements the OrderStore interface
func (m *MockOrderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	order, exists := m.Orders[id]
	if !exists {
		return nil, store.ErrOrderNotFound
	}
	copied := *order
	copied.Items = append([]domain.OrderItem{}, order.Items...)
	return &copied, nil
}

// List implements the OrderStore interface
func (m *MockOrderStore) List(
	ctx context.Context,
	filter store.OrderFilter,
	page store.Page,
) ([]domain.Order, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter, page)
	}

	matched := []domain.Order{}
	for _, order := range m.Orders {
		if filter.UserID != nil && order.UserID != *filter.UserID {
			continue
		}
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		matched = append(matched, *order)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return paginate(matched, page), int64(len(matched)), nil
}

// UpdateStatus implements the OrderStore interface
func (m *MockOrderStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.OrderStatus,
) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}

	order, exists := m.Orders[id]
	if !exists {
		return store.ErrOrderNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdatePaymentStatus implements the OrderStore interface
func (m *MockOrderStore) UpdatePaymentStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.PaymentStatus,
) error {
	if m.UpdatePaymentStatusFn != nil {
		return m.UpdatePaymentStatusFn(ctx, id, status)
	}

	order, exists := m.Orders[id]
	if !exists {
		return store.ErrOrderNotFound
	}
	order.PaymentStatus = status
	order.UpdatedAt = time.Now().UTC()
	return nil
}

// WithTx implements the OrderStore interface. The mock has no transactions,
// so it returns itself.
func (m *MockOrderStore) WithTx(tx *sql.Tx) store.OrderStore {
	return m
}
