package domain

import (
	"context"
	"time"
)

// =============================================================================
// ORDER DOMAIN ERRORS
// =============================================================================

var (
	ErrOrderNotFound     = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrInvalidTransition = &Error{Code: ECONFLICT, Message: "Illegal order status transition"}
	ErrEmptyCart         = &Error{Code: EINVALID, Message: "Cart is empty"}
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// legalTransitions is the complete transition table. Anything absent is
// rejected. Shipped and delivered are driven by external fulfillment; the
// core only needs to recognize them as valid later states.
var legalTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

// String implements fmt.Stringer (for logging).
func (s OrderStatus) String() string {
	return string(s)
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransition reports whether s -> target is a legal transition.
func (s OrderStatus) CanTransition(target OrderStatus) bool {
	for _, next := range legalTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Transition returns target if s -> target is legal, or ErrInvalidTransition
// without mutating anything. Callers apply the returned status themselves.
func (s OrderStatus) Transition(target OrderStatus) (OrderStatus, error) {
	if !s.CanTransition(target) {
		return s, Errorf(ECONFLICT, "order.transition", "illegal order status transition %s -> %s", s, target)
	}
	return target, nil
}

// Order is an immutable-line snapshot of a cart, created at checkout start.
// The server assigns the ID and computes TotalCents from line snapshots;
// the total is never recomputed from a mutable cart after creation.
type Order struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id"`
	Status        OrderStatus `json:"status"`
	TotalCents    int32       `json:"total_cents"`
	PaymentMethod string      `json:"payment_method"`
	Lines         []OrderLine `json:"lines"`
	CreatedAt     time.Time   `json:"created_at"`
}

// OrderLine is a frozen copy of a cart line at order creation time. Catalog
// price changes after creation never alter it.
type OrderLine struct {
	ProductID      string `json:"product_id"`
	Quantity       int32  `json:"quantity"`
	UnitPriceCents int32  `json:"unit_price_cents"`
	SubtotalCents  int32  `json:"subtotal_cents"`
}

// PaymentAttemptOutcome classifies a single payment attempt.
type PaymentAttemptOutcome string

const (
	AttemptOutcomeConfirmed PaymentAttemptOutcome = "confirmed"
	AttemptOutcomeDeclined  PaymentAttemptOutcome = "declined"
	AttemptOutcomeErrored   PaymentAttemptOutcome = "errored"
)

// PaymentAttempt records one charge attempt against an order. An order may
// accumulate several attempts (card retry), but at most one confirmed.
type PaymentAttempt struct {
	IntentID    string                `json:"intent_id"`
	OrderID     string                `json:"order_id"`
	AmountCents int32                 `json:"amount_cents"`
	Outcome     PaymentAttemptOutcome `json:"outcome"`
	CreatedAt   time.Time             `json:"created_at"`
}

// OrderService is the backend order collaborator.
type OrderService interface {
	// CreateOrderFromCart materializes a pending order from the user's
	// current server cart. The idempotency token makes retried creation
	// calls return the already-created order instead of a duplicate.
	CreateOrderFromCart(ctx context.Context, userID, paymentMethod, idempotencyToken string) (*Order, error)

	// GetOrder retrieves a single order with its line snapshots.
	GetOrder(ctx context.Context, orderID string) (*Order, error)

	// SetOrderStatus records a status transition server-side. Callers are
	// expected to have validated the transition via OrderStatus.Transition.
	SetOrderStatus(ctx context.Context, orderID string, status OrderStatus) error
}

// InventoryService is the inventory collaborator, used only on cancellation.
type InventoryService interface {
	// ReleaseReservation frees the inventory hold for an order's lines.
	ReleaseReservation(ctx context.Context, orderID string) error
}
