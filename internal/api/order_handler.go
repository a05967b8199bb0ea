package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/emberhq/portfolio-api/internal/api/middleware"
	"github.com/emberhq/portfolio-api/internal/domain"
	"github.com/emberhq/portfolio-api/internal/service"
	"github.com/emberhq/portfolio-api/internal/store"
)

// OrderHandler handles order endpoints. Customers see their own orders;
// admins see everything and manage statuses.
type OrderHandler struct {
	orderStore   store.OrderStore
	orderService service.OrderService
	logger       *slog.Logger
}

// NewOrderHandler creates a new OrderHandler with the given dependencies.
func NewOrderHandler(
	orderStore store.OrderStore,
	orderService service.OrderService,
	logger *slog.Logger,
) *OrderHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderHandler{
		orderStore:   orderStore,
		orderService: orderService,
		logger:       logger.With(slog.String("component", "order_handler")),
	}
}

// List handles GET /api/orders. Non-admin callers only see their own
// orders regardless of filters.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}

	filter := store.OrderFilter{
		Status: domain.OrderStatus(r.URL.Query().Get("status")),
	}
	if !middleware.IsAdmin(r) {
		filter.UserID = &callerID
	}
	page := ParsePage(r)

	orders, total, err := h.orderStore.List(r.Context(), filter, page)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, OrderListResponse{
		Orders:     orders,
		Pagination: NewPagination(total, page),
	})
}

// Get handles GET /api/orders/{id} (owner or admin).
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	order, err := h.orderStore.GetByID(r.Context(), id)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	callerID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}
	if !middleware.IsAdmin(r) && callerID != order.UserID {
		RespondWithError(w, r, http.StatusForbidden, "Not authorized to access this order")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"order": order})
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	input := service.CreateOrderInput{
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Items:           make([]service.OrderItemInput, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			RespondWithError(w, r, http.StatusBadRequest, "Invalid product ID format")
			return
		}
		input.Items = append(input.Items, service.OrderItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.orderService.CreateOrder(r.Context(), callerID, input)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	h.logger.Info("order created",
		slog.String("order_id", order.ID.String()),
		slog.String("user_id", callerID.String()),
		slog.Float64("total_amount", order.TotalAmount))

	RespondWithJSON(w, r, http.StatusCreated, map[string]interface{}{
		"message": "Order created successfully",
		"order":   order,
	})
}

// UpdateStatus handles PUT /api/orders/{id}/status (admin only).
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.orderService.UpdateStatus(r.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	h.logger.Info("order status updated",
		slog.String("order_id", id.String()),
		slog.String("status", req.Status))

	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "Order status updated successfully",
		"order":   order,
	})
}

// UpdatePayment handles PUT /api/orders/{id}/payment (admin only).
func (h *OrderHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdatePaymentStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.orderService.UpdatePaymentStatus(
		r.Context(), id, domain.PaymentStatus(req.PaymentStatus),
	)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	h.logger.Info("payment status updated",
		slog.String("order_id", id.String()),
		slog.String("payment_status", req.PaymentStatus))

	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "Payment status updated successfully",
		"order":   order,
	})
}
