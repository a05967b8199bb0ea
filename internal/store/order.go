package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/emberhq/portfolio-api/internal/domain"
)

// OrderFilter narrows List results.
type OrderFilter struct {
	// UserID restricts the listing to a single customer when non-nil.
	// Admin listings leave it nil to see all orders.
	UserID *uuid.UUID

	// Status restricts the listing to an order status when non-empty.
	Status domain.OrderStatus
}

// OrderStore defines the interface for order data persistence.
type OrderStore interface {
	// Create saves a new order together with its items.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order with its items (and their products).
	// Returns ErrOrderNotFound if the order does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)

	// List returns a page of orders matching the filter and the total match
	// count, newest first. Items are populated for each returned order.
	List(ctx context.Context, filter OrderFilter, page Page) ([]domain.Order, int64, error)

	// UpdateStatus sets the fulfillment status of an order.
	// Returns ErrOrderNotFound if the order does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error

	// UpdatePaymentStatus sets the payment status of an order.
	// Returns ErrOrderNotFound if the order does not exist.
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) error

	// WithTx returns a new OrderStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) OrderStore
}
