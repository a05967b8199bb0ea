package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/emberhq/portfolio-api/internal/domain"
	"github.com/emberhq/portfolio-api/internal/store"
)

// PostgresOrderStore implements the store.OrderStore interface
// using a PostgreSQL database as the storage backend.
type PostgresOrderStore struct {
	db store.DBTX
}

// NewPostgresOrderStore creates a new PostgreSQL implementation of the
// OrderStore interface.
func NewPostgresOrderStore(db store.DBTX) *PostgresOrderStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &PostgresOrderStore{db: db}
}

// Ensure PostgresOrderStore implements store.OrderStore interface
var _ store.OrderStore = (*PostgresOrderStore)(nil)

// WithTx implements store.OrderStore.WithTx
func (s *PostgresOrderStore) WithTx(tx *sql.Tx) store.OrderStore {
	return &PostgresOrderStore{db: tx}
}

// Create implements store.OrderStore.Create
// The order row and all its item rows are inserted on the store's DBTX, so
// calling Create on a WithTx store makes the whole insert transactional.
func (s *PostgresOrderStore) Create(ctx context.Context, order *domain.Order) error {
	if err := order.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	orderQuery := `
		INSERT INTO orders (id, user_id, status, total_amount, shipping_address,
			payment_method, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.db.ExecContext(ctx, orderQuery,
		order.ID,
		order.UserID,
		order.Status,
		order.TotalAmount,
		order.ShippingAddress,
		order.PaymentMethod,
		order.PaymentStatus,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, item := range order.Items {
		_, err := s.db.ExecContext(ctx, itemQuery,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.Quantity,
			item.Price,
		)
		if err != nil {
			return MapError(err)
		}
	}

	return nil
}

// GetByID implements store.OrderStore.GetByID
func (s *PostgresOrderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT id, user_id, status, total_amount, shipping_address,
			payment_method, payment_status, created_at, updated_at
		FROM orders WHERE id = $1
	`

	var order domain.Order
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&order.TotalAmount,
		&order.ShippingAddress,
		&order.PaymentMethod,
		&order.PaymentStatus,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrOrderNotFound
		}
		return nil, MapError(err)
	}

	items, err := s.itemsForOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

// List implements store.OrderStore.List
func (s *PostgresOrderStore) List(
	ctx context.Context,
	filter store.OrderFilter,
	page store.Page,
) ([]domain.Order, int64, error) {
	conds := []string{}
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	countQuery := `SELECT count(*) FROM orders` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", MapError(err))
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, status, total_amount, shipping_address,
			payment_method, payment_status, created_at, updated_at
		FROM orders%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2,
	)
	args = append(args, page.Size, page.Offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query orders: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.Status,
			&order.TotalAmount,
			&order.ShippingAddress,
			&order.PaymentMethod,
			&order.PaymentStatus,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating order rows: %w", err)
	}

	// Item counts per page are small (page size is capped by the API layer),
	// so items are loaded per order rather than with a joined query.
	for i := range orders {
		items, err := s.itemsForOrder(ctx, orders[i].ID)
		if err != nil {
			return nil, 0, err
		}
		orders[i].Items = items
	}

	return orders, total, nil
}

// UpdateStatus implements store.OrderStore.UpdateStatus
func (s *PostgresOrderStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.OrderStatus,
) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrInvalidOrderStatus)
	}

	query := `UPDATE orders SET status = $1, updated_at = now() WHERE id = $2`
	result, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrOrderNotFound)
}

// UpdatePaymentStatus implements store.OrderStore.UpdatePaymentStatus
func (s *PostgresOrderStore) UpdatePaymentStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.PaymentStatus,
) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrInvalidPaymentStatus)
	}

	query := `UPDATE orders SET payment_status = $1, updated_at = now() WHERE id = $2`
	result, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrOrderNotFound)
}

// itemsForOrder loads the line items of one order, with each item's product
// joined in when it still exists in the catalog.
func (s *PostgresOrderStore) itemsForOrder(
	ctx context.Context,
	orderID uuid.UUID,
) ([]domain.OrderItem, error) {
	query := `
		SELECT i.id, i.order_id, i.product_id, i.quantity, i.price,
			p.id, p.name, p.description, p.price, p.stock, p.category,
			p.image_url, p.is_active, p.created_at, p.updated_at
		FROM order_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1
		ORDER BY i.id
	`

	rows, err := s.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	items := []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		var (
			productID   sql.Null[uuid.UUID]
			name        sql.NullString
			description sql.NullString
			price       sql.NullFloat64
			stock       sql.NullInt64
			category    sql.NullString
			imageURL    sql.NullString
			isActive    sql.NullBool
			createdAt   sql.NullTime
			updatedAt   sql.NullTime
		)

		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Quantity,
			&item.Price,
			&productID,
			&name,
			&description,
			&price,
			&stock,
			&category,
			&imageURL,
			&isActive,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order item row: %w", err)
		}

		if productID.Valid {
			item.Product = &domain.Product{
				ID:          productID.V,
				Name:        name.String,
				Description: description.String,
				Price:       price.Float64,
				Stock:       int(stock.Int64),
				Category:    category.String,
				ImageURL:    imageURL.String,
				IsActive:    isActive.Bool,
				CreatedAt:   createdAt.Time,
				UpdatedAt:   updatedAt.Time,
			}
		}

		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order item rows: %w", err)
	}

	return items, nil
}
