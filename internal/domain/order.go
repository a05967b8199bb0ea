package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the fulfillment state of an order.
type OrderStatus string

// Possible order status values.
const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists all valid order statuses, in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// IsValid reports whether the status is one of the known order statuses.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentStatus represents the payment state of an order.
type PaymentStatus string

// Possible payment status values.
const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// PaymentStatuses lists all valid payment statuses.
var PaymentStatuses = []PaymentStatus{
	PaymentStatusUnpaid,
	PaymentStatusPaid,
	PaymentStatusRefunded,
}

// IsValid reports whether the status is one of the known payment statuses.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}
	return false
}

// Accepted payment methods.
const (
	PaymentMethodCreditCard   = "credit_card"
	PaymentMethodPayPal       = "paypal"
	PaymentMethodBankTransfer = "bank_transfer"
)

// ValidPaymentMethod reports whether the given method is accepted.
func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCreditCard, PaymentMethodPayPal, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// Order validation errors.
var (
	ErrEmptyOrderID         = errors.New("order ID cannot be empty")
	ErrEmptyOrderUserID     = errors.New("order user ID cannot be empty")
	ErrEmptyShippingAddress = errors.New("shipping address cannot be empty")
	ErrEmptyOrderItems      = errors.New("order must contain at least one item")
	ErrInvalidQuantity      = errors.New("order item quantity must be at least 1")
)

// OrderItem represents a single product line within an order. Price is the
// unit price captured at order time, so later catalog changes do not affect
// historical orders.
type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"-"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Product   *Product  `json:"product,omitempty"`
}

// Order represents a customer purchase with its line items.
type Order struct {
	ID              uuid.UUID     `json:"id"`
	UserID          uuid.UUID     `json:"user_id"`
	Status          OrderStatus   `json:"status"`
	TotalAmount     float64       `json:"total_amount"`
	ShippingAddress string        `json:"shipping_address"`
	PaymentMethod   string        `json:"payment_method"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	Items           []OrderItem   `json:"items"`
}

// NewOrder creates a pending, unpaid Order for the given user. The items
// must already carry their captured unit prices; the total is computed here.
// Returns an error if validation fails.
func NewOrder(userID uuid.UUID, shippingAddress, paymentMethod string, items []OrderItem) (*Order, error) {
	now := time.Now().UTC()
	order := &Order{
		ID:              uuid.New(),
		UserID:          userID,
		Status:          OrderStatusPending,
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   PaymentStatusUnpaid,
		CreatedAt:       now,
		UpdatedAt:       now,
		Items:           items,
	}

	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].OrderID = order.ID
		order.TotalAmount += order.Items[i].Price * float64(order.Items[i].Quantity)
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate checks if the Order has valid data.
func (o *Order) Validate() error {
	if o.ID == uuid.Nil {
		return ErrEmptyOrderID
	}
	if o.UserID == uuid.Nil {
		return ErrEmptyOrderUserID
	}
	if !o.Status.IsValid() {
		return ErrInvalidOrderStatus
	}
	if !o.PaymentStatus.IsValid() {
		return ErrInvalidPaymentStatus
	}
	if !ValidPaymentMethod(o.PaymentMethod) {
		return ErrInvalidPaymentMethod
	}
	if o.ShippingAddress == "" {
		return ErrEmptyShippingAddress
	}
	if len(o.Items) == 0 {
		return ErrEmptyOrderItems
	}
	for _, item := range o.Items {
		if item.Quantity < 1 {
			return ErrInvalidQuantity
		}
	}

	return nil
}
