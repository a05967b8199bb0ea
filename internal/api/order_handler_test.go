package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberhq/portfolio-api/internal/domain"
	"github.com/emberhq/portfolio-api/internal/mocks"
	"github.com/emberhq/portfolio-api/internal/service"
	"github.com/emberhq/portfolio-api/internal/store"
)

// stubOrderService implements service.OrderService with function fields so
// handler tests can control outcomes without a database.
type stubOrderService struct {
	CreateOrderFn         func(ctx context.Context, userID uuid.UUID, input service.CreateOrderInput) (*domain.Order, error)
	UpdateStatusFn        func(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error)
	UpdatePaymentStatusFn func(ctx context.Context, orderID uuid.UUID, status domain.PaymentStatus) (*domain.Order, error)
}

var _ service.OrderService = (*stubOrderService)(nil)

func (s *stubOrderService) CreateOrder(
	ctx context.Context,
	userID uuid.UUID,
	input service.CreateOrderInput,
) (*domain.Order, error) {
	return s.CreateOrderFn(ctx, userID, input)
}

func (s *stubOrderService) UpdateStatus(
	ctx context.Context,
	orderID uuid.UUID,
	status domain.OrderStatus,
) (*domain.Order, error) {
	return s.UpdateStatusFn(ctx, orderID, status)
}

func (s *stubOrderService) UpdatePaymentStatus(
	ctx context.Context,
	orderID uuid.UUID,
	status domain.PaymentStatus,
) (*domain.Order, error) {
	return s.UpdatePaymentStatusFn(ctx, orderID, status)
}

func seedOrder(orderStore *mocks.MockOrderStore, userID uuid.UUID, createdAt time.Time) *domain.Order {
	order := &domain.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Status:          domain.OrderStatusPending,
		TotalAmount:     100,
		ShippingAddress: "1 Main St",
		PaymentMethod:   domain.PaymentMethodCreditCard,
		PaymentStatus:   domain.PaymentStatusUnpaid,
		CreatedAt:       createdAt,
	}
	orderStore.Orders[order.ID] = order
	return order
}

func TestOrderList(t *testing.T) {
	t.Parallel()

	orderStore := mocks.NewMockOrderStore()
	alice := uuid.New()
	bob := uuid.New()
	now := time.Now().UTC()
	seedOrder(orderStore, alice, now)
	seedOrder(orderStore, alice, now.Add(time.Minute))
	seedOrder(orderStore, bob, now.Add(2*time.Minute))

	handler := NewOrderHandler(orderStore, &stubOrderService{}, nil)

	t.Run("customers see only their own orders", func(t *testing.T) {
		req := asUser(jsonRequest(t, "GET", "/api/orders", nil), alice, domain.RoleUser, "alice")

		recorder := httptest.NewRecorder()
		handler.List(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Len(t, body["orders"], 2)
		assert.EqualValues(t, 2, body["total"])
	})

	t.Run("admins see every order", func(t *testing.T) {
		req := asUser(jsonRequest(t, "GET", "/api/orders", nil), uuid.New(), domain.RoleAdmin, "root")

		recorder := httptest.NewRecorder()
		handler.List(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Len(t, body["orders"], 3)
	})

	t.Run("status filter", func(t *testing.T) {
		req := asUser(
			jsonRequest(t, "GET", "/api/orders?status=completed", nil),
			alice, domain.RoleUser, "alice")

		recorder := httptest.NewRecorder()
		handler.List(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Empty(t, body["orders"])
	})
}

func TestOrderGet(t *testing.T) {
	t.Parallel()

	orderStore := mocks.NewMockOrderStore()
	alice := uuid.New()
	order := seedOrder(orderStore, alice, time.Now().UTC())

	handler := NewOrderHandler(orderStore, &stubOrderService{}, nil)

	tests := []struct {
		name       string
		callerID   uuid.UUID
		role       string
		orderID    string
		wantStatus int
	}{
		{"owner", alice, domain.RoleUser, order.ID.String(), http.StatusOK},
		{"other customer", uuid.New(), domain.RoleUser, order.ID.String(), http.StatusForbidden},
		{"admin", uuid.New(), domain.RoleAdmin, order.ID.String(), http.StatusOK},
		{"unknown order", alice, domain.RoleUser, uuid.New().String(), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := asUser(
				jsonRequest(t, "GET", "/api/orders/"+tt.orderID, nil),
				tt.callerID, tt.role, "caller")
			req = withPathParam(req, "id", tt.orderID)

			recorder := httptest.NewRecorder()
			handler.Get(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

func TestOrderCreate(t *testing.T) {
	t.Parallel()

	alice := uuid.New()
	productID := uuid.New()

	validPayload := map[string]interface{}{
		"shipping_address": "1 Main St",
		"payment_method":   "credit_card",
		"items": []map[string]interface{}{
			{"product_id": productID.String(), "quantity": 2},
		},
	}

	t.Run("valid order", func(t *testing.T) {
		var gotInput service.CreateOrderInput
		orderService := &stubOrderService{
			CreateOrderFn: func(
				ctx context.Context,
				userID uuid.UUID,
				input service.CreateOrderInput,
			) (*domain.Order, error) {
				gotInput = input
				assert.Equal(t, alice, userID)
				return &domain.Order{ID: uuid.New(), UserID: userID, TotalAmount: 99.98}, nil
			},
		}
		handler := NewOrderHandler(mocks.NewMockOrderStore(), orderService, nil)

		req := asUser(jsonRequest(t, "POST", "/api/orders", validPayload), alice, domain.RoleUser, "alice")

		recorder := httptest.NewRecorder()
		handler.Create(recorder, req)

		require.Equal(t, http.StatusCreated, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Order created successfully", body["message"])

		require.Len(t, gotInput.Items, 1)
		assert.Equal(t, productID, gotInput.Items[0].ProductID)
		assert.Equal(t, 2, gotInput.Items[0].Quantity)
	})

	t.Run("service errors map to status codes", func(t *testing.T) {
		tests := []struct {
			name       string
			err        error
			wantStatus int
		}{
			{"unknown product", store.ErrProductNotFound, http.StatusNotFound},
			{"inactive product", domain.ErrProductNotAvailable, http.StatusBadRequest},
			{"insufficient stock", domain.ErrInsufficientStock, http.StatusBadRequest},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				orderService := &stubOrderService{
					CreateOrderFn: func(
						ctx context.Context,
						userID uuid.UUID,
						input service.CreateOrderInput,
					) (*domain.Order, error) {
						return nil, tt.err
					},
				}
				handler := NewOrderHandler(mocks.NewMockOrderStore(), orderService, nil)

				req := asUser(
					jsonRequest(t, "POST", "/api/orders", validPayload),
					alice, domain.RoleUser, "alice")

				recorder := httptest.NewRecorder()
				handler.Create(recorder, req)

				assert.Equal(t, tt.wantStatus, recorder.Code)
			})
		}
	})

	t.Run("invalid payloads", func(t *testing.T) {
		tests := []struct {
			name    string
			payload map[string]interface{}
		}{
			{
				name: "no items",
				payload: map[string]interface{}{
					"shipping_address": "1 Main St",
					"payment_method":   "credit_card",
					"items":            []map[string]interface{}{},
				},
			},
			{
				name: "bad payment method",
				payload: map[string]interface{}{
					"shipping_address": "1 Main St",
					"payment_method":   "barter",
					"items": []map[string]interface{}{
						{"product_id": productID.String(), "quantity": 1},
					},
				},
			},
			{
				name: "zero quantity",
				payload: map[string]interface{}{
					"shipping_address": "1 Main St",
					"payment_method":   "credit_card",
					"items": []map[string]interface{}{
						{"product_id": productID.String(), "quantity": 0},
					},
				},
			},
			{
				name: "malformed product id",
				payload: map[string]interface{}{
					"shipping_address": "1 Main St",
					"payment_method":   "credit_card",
					"items": []map[string]interface{}{
						{"product_id": "not-a-uuid", "quantity": 1},
					},
				},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				handler := NewOrderHandler(mocks.NewMockOrderStore(), &stubOrderService{}, nil)

				req := asUser(
					jsonRequest(t, "POST", "/api/orders", tt.payload),
					alice, domain.RoleUser, "alice")

				recorder := httptest.NewRecorder()
				handler.Create(recorder, req)

				assert.Equal(t, http.StatusBadRequest, recorder.Code)
			})
		}
	})
}

func TestOrderStatusUpdate(t *testing.T) {
	t.Parallel()

	orderID := uuid.New()

	t.Run("valid transition", func(t *testing.T) {
		orderService := &stubOrderService{
			UpdateStatusFn: func(
				ctx context.Context,
				id uuid.UUID,
				status domain.OrderStatus,
			) (*domain.Order, error) {
				assert.Equal(t, orderID, id)
				assert.Equal(t, domain.OrderStatusCancelled, status)
				return &domain.Order{ID: id, Status: status}, nil
			},
		}
		handler := NewOrderHandler(mocks.NewMockOrderStore(), orderService, nil)

		req := jsonRequest(t, "PUT", "/api/orders/"+orderID.String()+"/status", map[string]interface{}{
			"status": "cancelled",
		})
		req = withPathParam(req, "id", orderID.String())

		recorder := httptest.NewRecorder()
		handler.UpdateStatus(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Order status updated successfully", body["message"])
	})

	t.Run("invalid status value", func(t *testing.T) {
		handler := NewOrderHandler(mocks.NewMockOrderStore(), &stubOrderService{}, nil)

		req := jsonRequest(t, "PUT", "/api/orders/"+orderID.String()+"/status", map[string]interface{}{
			"status": "teleported",
		})
		req = withPathParam(req, "id", orderID.String())

		recorder := httptest.NewRecorder()
		handler.UpdateStatus(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("unknown order", func(t *testing.T) {
		orderService := &stubOrderService{
			UpdateStatusFn: func(
				ctx context.Context,
				id uuid.UUID,
				status domain.OrderStatus,
			) (*domain.Order, error) {
				return nil, store.ErrOrderNotFound
			},
		}
		handler := NewOrderHandler(mocks.NewMockOrderStore(), orderService, nil)

		req := jsonRequest(t, "PUT", "/api/orders/"+orderID.String()+"/status", map[string]interface{}{
			"status": "processing",
		})
		req = withPathParam(req, "id", orderID.String())

		recorder := httptest.NewRecorder()
		handler.UpdateStatus(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestOrderPaymentUpdate(t *testing.T) {
	t.Parallel()

	orderID := uuid.New()

	orderService := &stubOrderService{
		UpdatePaymentStatusFn: func(
			ctx context.Context,
			id uuid.UUID,
			status domain.PaymentStatus,
		) (*domain.Order, error) {
			return &domain.Order{ID: id, PaymentStatus: status}, nil
		},
	}
	handler := NewOrderHandler(mocks.NewMockOrderStore(), orderService, nil)

	req := jsonRequest(t, "PUT", "/api/orders/"+orderID.String()+"/payment", map[string]interface{}{
		"payment_status": "paid",
	})
	req = withPathParam(req, "id", orderID.String())

	recorder := httptest.NewRecorder()
	handler.UpdatePayment(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "Payment status updated successfully", body["message"])
}
