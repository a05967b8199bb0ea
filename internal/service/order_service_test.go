package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberhq/portfolio-api/internal/domain"
	"github.com/emberhq/portfolio-api/internal/mocks"
	"github.com/emberhq/portfolio-api/internal/store"
)

func seedProduct(t *testing.T, products *mocks.MockProductStore, name string, price float64, stock int, active bool) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct(name, "", price, stock, "test", "")
	require.NoError(t, err)
	product.IsActive = active
	require.NoError(t, products.Create(context.Background(), product))
	return product
}

func TestCreateOrderCapturesPricesAndDecrementsStock(t *testing.T) {
	t.Parallel()

	orders := mocks.NewMockOrderStore()
	products := mocks.NewMockProductStore()
	widget := seedProduct(t, products, "Widget", 9.99, 10, true)
	gadget := seedProduct(t, products, "Gadget", 25.00, 3, true)

	userID := uuid.New()
	order, err := createOrderTx(context.Background(), orders, products, userID, CreateOrderInput{
		ShippingAddress: "1 Main St",
		PaymentMethod:   domain.PaymentMethodCreditCard,
		Items: []OrderItemInput{
			{ProductID: widget.ID, Quantity: 2},
			{ProductID: gadget.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, domain.PaymentStatusUnpaid, order.PaymentStatus)
	assert.InDelta(t, 2*9.99+25.00, order.TotalAmount, 0.001)
	require.Len(t, order.Items, 2)
	assert.InDelta(t, 9.99, order.Items[0].Price, 0.001)

	// Stock was decremented in the catalog.
	updatedWidget, err := products.GetByID(context.Background(), widget.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, updatedWidget.Stock)
	updatedGadget, err := products.GetByID(context.Background(), gadget.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updatedGadget.Stock)

	// The order was persisted.
	_, err = orders.GetByID(context.Background(), order.ID)
	assert.NoError(t, err)
}

func TestCreateOrderRejectsBadItems(t *testing.T) {
	t.Parallel()

	orders := mocks.NewMockOrderStore()
	products := mocks.NewMockProductStore()
	inactive := seedProduct(t, products, "Retired", 5, 10, false)
	scarce := seedProduct(t, products, "Scarce", 5, 1, true)

	userID := uuid.New()
	base := CreateOrderInput{
		ShippingAddress: "1 Main St",
		PaymentMethod:   domain.PaymentMethodPayPal,
	}

	tests := []struct {
		name    string
		items   []OrderItemInput
		wantErr error
	}{
		{
			name:    "unknown product",
			items:   []OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
			wantErr: store.ErrProductNotFound,
		},
		{
			name:    "inactive product",
			items:   []OrderItemInput{{ProductID: inactive.ID, Quantity: 1}},
			wantErr: domain.ErrProductNotAvailable,
		},
		{
			name:    "insufficient stock",
			items:   []OrderItemInput{{ProductID: scarce.ID, Quantity: 2}},
			wantErr: domain.ErrInsufficientStock,
		},
		{
			name:    "no items",
			items:   nil,
			wantErr: domain.ErrEmptyOrderItems,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := base
			input.Items = tt.items

			_, err := createOrderTx(context.Background(), orders, products, userID, input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCancellingOrderRestoresStock(t *testing.T) {
	t.Parallel()

	orders := mocks.NewMockOrderStore()
	products := mocks.NewMockProductStore()
	widget := seedProduct(t, products, "Widget", 10, 5, true)

	userID := uuid.New()
	order, err := createOrderTx(context.Background(), orders, products, userID, CreateOrderInput{
		ShippingAddress: "1 Main St",
		PaymentMethod:   domain.PaymentMethodBankTransfer,
		Items:           []OrderItemInput{{ProductID: widget.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	depleted, err := products.GetByID(context.Background(), widget.ID)
	require.NoError(t, err)
	require.Equal(t, 2, depleted.Stock)

	updated, err := updateOrderStatusTx(
		context.Background(), orders, products, order.ID, domain.OrderStatusCancelled,
	)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, updated.Status)

	restored, err := products.GetByID(context.Background(), widget.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, restored.Stock)
}

func TestCancellingTwiceRestoresStockOnce(t *testing.T) {
	t.Parallel()

	orders := mocks.NewMockOrderStore()
	products := mocks.NewMockProductStore()
	widget := seedProduct(t, products, "Widget", 10, 5, true)

	order, err := createOrderTx(context.Background(), orders, products, uuid.New(), CreateOrderInput{
		ShippingAddress: "1 Main St",
		PaymentMethod:   domain.PaymentMethodCreditCard,
		Items:           []OrderItemInput{{ProductID: widget.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = updateOrderStatusTx(
		context.Background(), orders, products, order.ID, domain.OrderStatusCancelled,
	)
	require.NoError(t, err)
	_, err = updateOrderStatusTx(
		context.Background(), orders, products, order.ID, domain.OrderStatusCancelled,
	)
	require.NoError(t, err)

	restored, err := products.GetByID(context.Background(), widget.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, restored.Stock)
}

func TestCancellingOrderSkipsDeletedProducts(t *testing.T) {
	t.Parallel()

	orders := mocks.NewMockOrderStore()
	products := mocks.NewMockProductStore()
	widget := seedProduct(t, products, "Widget", 10, 5, true)

	order, err := createOrderTx(context.Background(), orders, products, uuid.New(), CreateOrderInput{
		ShippingAddress: "1 Main St",
		PaymentMethod:   domain.PaymentMethodCreditCard,
		Items:           []OrderItemInput{{ProductID: widget.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, products.Delete(context.Background(), widget.ID))

	updated, err := updateOrderStatusTx(
		context.Background(), orders, products, order.ID, domain.OrderStatusCancelled,
	)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, updated.Status)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	t.Parallel()

	orders := mocks.NewMockOrderStore()
	products := mocks.NewMockProductStore()

	_, err := updateOrderStatusTx(
		context.Background(), orders, products, uuid.New(), domain.OrderStatusProcessing,
	)
	assert.ErrorIs(t, err, store.ErrOrderNotFound)
}
