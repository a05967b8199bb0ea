package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/emberhq/portfolio-api/internal/domain"
	"github.com/emberhq/portfolio-api/internal/platform/logger"
	"github.com/emberhq/portfolio-api/internal/store"
)

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderInput carries the caller's order request into the service.
type CreateOrderInput struct {
	ShippingAddress string
	PaymentMethod   string
	Items           []OrderItemInput
}

// OrderService provides order operations that must touch the product
// catalog and the order tables atomically.
type OrderService interface {
	// CreateOrder validates every requested item against the catalog,
	// captures unit prices, decrements stock and saves the order in a
	// single transaction. Returns store.ErrProductNotFound for unknown
	// products, domain.ErrProductNotAvailable for inactive ones and
	// domain.ErrInsufficientStock when stock can't cover the quantity.
	CreateOrder(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*domain.Order, error)

	// UpdateStatus moves an order to the given fulfillment status.
	// Transitioning into cancelled restores the captured quantities to
	// product stock in the same transaction.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error)

	// UpdatePaymentStatus moves an order to the given payment status.
	UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, status domain.PaymentStatus) (*domain.Order, error)
}

// orderServiceImpl implements the OrderService interface
type orderServiceImpl struct {
	db           *sql.DB
	orderStore   store.OrderStore
	productStore store.ProductStore
	logger       *slog.Logger
}

// NewOrderService creates a new OrderService.
// It returns an error if any of the required dependencies are nil.
func NewOrderService(
	db *sql.DB,
	orderStore store.OrderStore,
	productStore store.ProductStore,
	log *slog.Logger,
) (OrderService, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if orderStore == nil {
		return nil, fmt.Errorf("orderStore cannot be nil")
	}
	if productStore == nil {
		return nil, fmt.Errorf("productStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &orderServiceImpl{
		db:           db,
		orderStore:   orderStore,
		productStore: productStore,
		logger:       log.With(slog.String("component", "order_service")),
	}, nil
}

// CreateOrder implements OrderService.CreateOrder
func (s *orderServiceImpl) CreateOrder(
	ctx context.Context,
	userID uuid.UUID,
	input CreateOrderInput,
) (*domain.Order, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var order *domain.Order
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var txErr error
		order, txErr = createOrderTx(
			ctx,
			s.orderStore.WithTx(tx),
			s.productStore.WithTx(tx),
			userID,
			input,
		)
		return txErr
	})
	if err != nil {
		log.Debug("order creation failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("order created",
		slog.String("order_id", order.ID.String()),
		slog.String("user_id", userID.String()),
		slog.Float64("total_amount", order.TotalAmount),
		slog.Int("item_count", len(order.Items)))

	return order, nil
}

// createOrderTx performs the order creation steps on transactional stores.
func createOrderTx(
	ctx context.Context,
	orders store.OrderStore,
	products store.ProductStore,
	userID uuid.UUID,
	input CreateOrderInput,
) (*domain.Order, error) {
	items := make([]domain.OrderItem, 0, len(input.Items))

	for _, line := range input.Items {
		product, err := products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.IsActive {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductNotAvailable, product.Name)
		}
		if product.Stock < line.Quantity {
			return nil, fmt.Errorf("%w: %s", domain.ErrInsufficientStock, product.Name)
		}

		// Capture the unit price now; catalog price changes must not
		// rewrite existing orders.
		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})

		product.Stock -= line.Quantity
		product.UpdatedAt = time.Now().UTC()
		if err := products.Update(ctx, product); err != nil {
			return nil, NewServiceError("create_order", "failed to decrement stock", err)
		}
	}

	order, err := domain.NewOrder(userID, input.ShippingAddress, input.PaymentMethod, items)
	if err != nil {
		return nil, err
	}

	if err := orders.Create(ctx, order); err != nil {
		return nil, NewServiceError("create_order", "failed to save order", err)
	}

	return order, nil
}

// UpdateStatus implements OrderService.UpdateStatus
func (s *orderServiceImpl) UpdateStatus(
	ctx context.Context,
	orderID uuid.UUID,
	status domain.OrderStatus,
) (*domain.Order, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.IsValid() {
		return nil, domain.ErrInvalidOrderStatus
	}

	var order *domain.Order
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var txErr error
		order, txErr = updateOrderStatusTx(
			ctx,
			s.orderStore.WithTx(tx),
			s.productStore.WithTx(tx),
			orderID,
			status,
		)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	log.Info("order status updated",
		slog.String("order_id", orderID.String()),
		slog.String("status", string(status)))

	return order, nil
}

// updateOrderStatusTx performs the status change on transactional stores.
func updateOrderStatusTx(
	ctx context.Context,
	orders store.OrderStore,
	products store.ProductStore,
	orderID uuid.UUID,
	status domain.OrderStatus,
) (*domain.Order, error) {
	order, err := orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// Entering cancelled hands the captured quantities back to the catalog.
	// Products deleted since the order was placed are skipped.
	if status == domain.OrderStatusCancelled && order.Status != domain.OrderStatusCancelled {
		for _, item := range order.Items {
			product, err := products.GetByID(ctx, item.ProductID)
			if err != nil {
				if store.IsNotFoundError(err) {
					continue
				}
				return nil, err
			}

			product.Stock += item.Quantity
			product.UpdatedAt = time.Now().UTC()
			if err := products.Update(ctx, product); err != nil {
				return nil, NewServiceError("update_order_status", "failed to restore stock", err)
			}
		}
	}

	if err := orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}

	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	return order, nil
}

// UpdatePaymentStatus implements OrderService.UpdatePaymentStatus
func (s *orderServiceImpl) UpdatePaymentStatus(
	ctx context.Context,
	orderID uuid.UUID,
	status domain.PaymentStatus,
) (*domain.Order, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.IsValid() {
		return nil, domain.ErrInvalidPaymentStatus
	}

	order, err := s.orderStore.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.orderStore.UpdatePaymentStatus(ctx, orderID, status); err != nil {
		return nil, err
	}

	order.PaymentStatus = status
	order.UpdatedAt = time.Now().UTC()

	log.Info("order payment status updated",
		slog.String("order_id", orderID.String()),
		slog.String("payment_status", string(status)))

	return order, nil
}
