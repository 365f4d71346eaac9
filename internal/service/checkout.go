package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dukerupert/njord/internal/billing"
	"github.com/dukerupert/njord/internal/domain"
	"github.com/dukerupert/njord/internal/events"
	"github.com/dukerupert/njord/internal/telemetry"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CheckoutService drives the checkout sequence: order creation, payment,
// finalize, state transition, cart clear. Steps are strictly sequential.
type CheckoutService interface {
	// Checkout runs the full sequence for the user's current server cart.
	// A declined or failed payment leaves the created order pending and
	// the cart untouched; RetryPayment picks up from there.
	Checkout(ctx context.Context, params CheckoutParams) (*CheckoutResult, error)

	// RetryPayment re-runs the payment steps against an existing pending
	// order. The order is never re-created.
	RetryPayment(ctx context.Context, orderID, paymentMethod string) (*CheckoutResult, error)

	// Cancel cancels a pending or processing order. The inventory hold is
	// released first; a failed release fails the cancellation and leaves
	// the order status untouched.
	Cancel(ctx context.Context, orderID string) error

	// Attempts returns the payment attempt history for an order.
	Attempts(orderID string) []domain.PaymentAttempt

	// CachedBadgeCount returns the last known server cart item count.
	CachedBadgeCount() int32
}

// CheckoutParams contains parameters for starting a checkout.
type CheckoutParams struct {
	UserID        string
	PaymentMethod string

	// IdempotencyKey scopes order creation. Empty means a fresh key, so
	// each Checkout call creates at most one order.
	IdempotencyKey string
}

// CheckoutResult is the outcome of a successful checkout or retry.
type CheckoutResult struct {
	Order    *domain.Order
	IntentID string
}

// checkoutService implements CheckoutService.
type checkoutService struct {
	cart      domain.CartService
	orders    domain.OrderService
	inventory domain.InventoryService
	provider  billing.Provider
	attempts  *AttemptLog
	publisher events.Publisher
	metrics   *telemetry.BusinessMetrics
	logger    zerolog.Logger

	badge atomic.Int32
}

// NewCheckoutService creates a new CheckoutService instance.
// Publisher and metrics may be nil.
func NewCheckoutService(
	cart domain.CartService,
	orders domain.OrderService,
	inventory domain.InventoryService,
	provider billing.Provider,
	publisher events.Publisher,
	metrics *telemetry.BusinessMetrics,
	logger zerolog.Logger,
) (CheckoutService, error) {
	if cart == nil {
		return nil, errors.New("cart service is required")
	}
	if orders == nil {
		return nil, errors.New("order service is required")
	}
	if inventory == nil {
		return nil, errors.New("inventory service is required")
	}
	if provider == nil {
		return nil, errors.New("billing provider is required")
	}
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}

	return &checkoutService{
		cart:      cart,
		orders:    orders,
		inventory: inventory,
		provider:  provider,
		attempts:  NewAttemptLog(),
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}, nil
}

// Checkout runs the full checkout sequence.
func (s *checkoutService) Checkout(ctx context.Context, params CheckoutParams) (*CheckoutResult, error) {
	if s.metrics != nil {
		s.metrics.CheckoutStarted.Inc()
	}

	summary, err := s.cart.GetCart(ctx, params.UserID)
	if err != nil {
		return nil, err
	}
	if summary.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	s.badge.Store(summary.ItemCount)

	token := params.IdempotencyKey
	if token == "" {
		token = uuid.New().String()
	}

	// Exactly one creation call per checkout attempt. The backend owns
	// the total and the line snapshots from here on.
	order, err := s.orders.CreateOrderFromCart(ctx, params.UserID, params.PaymentMethod, token)
	if err != nil {
		return nil, err
	}

	intentID, err := s.runPayment(ctx, order, params.PaymentMethod)
	if err != nil {
		return nil, err
	}

	s.completeCheckout(ctx, order)

	return &CheckoutResult{Order: order, IntentID: intentID}, nil
}

// RetryPayment re-runs the payment steps against an existing pending order.
func (s *checkoutService) RetryPayment(ctx context.Context, orderID, paymentMethod string) (*CheckoutResult, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status != domain.OrderStatusPending {
		return nil, ErrOrderNotPending
	}
	if s.attempts.HasConfirmed(orderID) {
		return nil, ErrAlreadyPaid
	}

	intentID, err := s.runPayment(ctx, order, paymentMethod)
	if err != nil {
		return nil, err
	}

	s.completeCheckout(ctx, order)

	return &CheckoutResult{Order: order, IntentID: intentID}, nil
}

// runPayment executes steps 3-5 of the sequence: intent creation, payment
// confirmation, finalize, and the pending -> processing transition. On
// decline or gateway failure the order stays pending and untouched.
func (s *checkoutService) runPayment(ctx context.Context, order *domain.Order, paymentMethod string) (string, error) {
	attemptKey := fmt.Sprintf("%s:%d", order.ID, s.attempts.NextAttemptNumber(order.ID))

	// The amount is always the server-computed order total.
	pi, err := s.provider.CreatePaymentIntent(ctx, billing.CreatePaymentIntentParams{
		AmountCents:    order.TotalCents,
		Currency:       "usd",
		Description:    fmt.Sprintf("Order %s", order.ID),
		Metadata:       map[string]string{"order_id": order.ID},
		IdempotencyKey: attemptKey,
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.PaymentFailed.Inc()
		}
		return "", domain.WrapError(err, domain.EPAYMENT, "checkout.intent", "failed to create payment intent")
	}

	confirmation, err := s.provider.ConfirmPayment(ctx, pi.ClientSecret, paymentMethod)
	if err != nil {
		s.attempts.Record(order.ID, pi.ID, order.TotalCents, domain.AttemptOutcomeErrored)
		if s.metrics != nil {
			s.metrics.PaymentFailed.Inc()
		}
		return "", domain.WrapError(err, domain.EPAYMENT, "checkout.confirm", "payment gateway error")
	}

	if confirmation.Declined {
		s.attempts.Record(order.ID, confirmation.IntentID, order.TotalCents, domain.AttemptOutcomeDeclined)
		s.logger.Info().
			Str("order_id", order.ID).
			Str("decline_code", confirmation.DeclineCode).
			Msg("payment declined")
		if s.metrics != nil {
			s.metrics.PaymentDeclined.Inc()
		}
		return "", ErrPaymentDeclined
	}

	if err := s.provider.FinalizePayment(ctx, confirmation.IntentID); err != nil {
		s.attempts.Record(order.ID, confirmation.IntentID, order.TotalCents, domain.AttemptOutcomeErrored)
		if s.metrics != nil {
			s.metrics.PaymentFailed.Inc()
		}
		return "", domain.WrapError(err, domain.EPAYMENT, "checkout.finalize", "failed to finalize payment")
	}

	next, err := order.Status.Transition(domain.OrderStatusProcessing)
	if err != nil {
		return "", err
	}
	if err := s.orders.SetOrderStatus(ctx, order.ID, next); err != nil {
		return "", err
	}
	order.Status = next

	s.attempts.Record(order.ID, confirmation.IntentID, order.TotalCents, domain.AttemptOutcomeConfirmed)

	return confirmation.IntentID, nil
}

// completeCheckout runs the post-payment step: clear the server cart and
// refresh the badge. Failures here are logged, not returned; the payment
// has settled and the order is already processing.
func (s *checkoutService) completeCheckout(ctx context.Context, order *domain.Order) {
	if err := s.cart.ClearCart(ctx, order.UserID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", order.UserID).Msg("failed to clear server cart after checkout")
	} else {
		s.badge.Store(0)
	}

	if err := s.publisher.PublishOrderProcessing(ctx, orderEvent(order)); err != nil {
		s.logger.Warn().Err(err).Str("order_id", order.ID).Msg("failed to publish order.processing")
	}

	if s.metrics != nil {
		s.metrics.CheckoutCompleted.Inc()
		s.metrics.OrderValue.Observe(float64(order.TotalCents))
	}
}

// Cancel cancels a pending or processing order.
func (s *checkoutService) Cancel(ctx context.Context, orderID string) error {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	next, err := order.Status.Transition(domain.OrderStatusCancelled)
	if err != nil {
		return err
	}

	// The inventory hold must be released before the status changes. If
	// release fails the order keeps its current status.
	if err := s.inventory.ReleaseReservation(ctx, orderID); err != nil {
		s.logger.Warn().Err(err).Str("order_id", orderID).Msg("inventory release failed, cancellation aborted")
		return fmt.Errorf("%w: %v", ErrInventoryRelease, err)
	}

	if err := s.orders.SetOrderStatus(ctx, orderID, next); err != nil {
		return err
	}
	order.Status = next

	if err := s.publisher.PublishOrderCancelled(ctx, orderEvent(order)); err != nil {
		s.logger.Warn().Err(err).Str("order_id", orderID).Msg("failed to publish order.cancelled")
	}

	if s.metrics != nil {
		s.metrics.OrdersCancelled.Inc()
	}

	return nil
}

// Attempts returns the payment attempt history for an order.
func (s *checkoutService) Attempts(orderID string) []domain.PaymentAttempt {
	return s.attempts.ForOrder(orderID)
}

// CachedBadgeCount returns the last known server cart item count.
func (s *checkoutService) CachedBadgeCount() int32 {
	return s.badge.Load()
}

func orderEvent(order *domain.Order) events.OrderEvent {
	return events.OrderEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     order.Status,
		TotalCents: order.TotalCents,
		OccurredAt: time.Now(),
	}
}
