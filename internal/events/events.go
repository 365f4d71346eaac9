// Package events publishes order lifecycle events for downstream consumers
// (fulfillment, notifications, analytics).
package events

import (
	"context"
	"time"

	"github.com/dukerupert/njord/internal/domain"
)

// Subjects for order lifecycle events.
const (
	SubjectOrderProcessing = "order.processing"
	SubjectOrderCancelled  = "order.cancelled"
)

// OrderEvent is the payload published on order status transitions.
type OrderEvent struct {
	OrderID    string             `json:"order_id"`
	UserID     string             `json:"user_id"`
	Status     domain.OrderStatus `json:"status"`
	TotalCents int32              `json:"total_cents"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// Publisher publishes order lifecycle events. Publishing is best-effort:
// callers log failures but never fail the checkout over them.
type Publisher interface {
	// PublishOrderProcessing announces that payment settled and the order
	// moved to processing.
	PublishOrderProcessing(ctx context.Context, event OrderEvent) error

	// PublishOrderCancelled announces an order cancellation.
	PublishOrderCancelled(ctx context.Context, event OrderEvent) error
}

// NoopPublisher discards all events. Used in tests and event-less deploys.
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that discards everything.
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) PublishOrderProcessing(ctx context.Context, event OrderEvent) error {
	return nil
}

func (p *NoopPublisher) PublishOrderCancelled(ctx context.Context, event OrderEvent) error {
	return nil
}
