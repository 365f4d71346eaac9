package billing

import (
	"context"
	"time"
)

// Provider defines the interface for payment processing.
// Implementations can use Stripe, PayPal, Square, etc.
type Provider interface {
	// CreatePaymentIntent creates a payment intent for a one-time charge.
	// Returns the intent with a client secret for confirmation.
	CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error)

	// ConfirmPayment confirms the intent behind clientSecret with the given
	// payment method. A card decline is reported in the Confirmation, not
	// as an error; errors mean the gateway itself failed.
	ConfirmPayment(ctx context.Context, clientSecret, paymentMethod string) (*Confirmation, error)

	// FinalizePayment verifies that the intent has actually succeeded.
	// Called before the order is allowed to advance.
	FinalizePayment(ctx context.Context, intentID string) error

	// VerifyWebhookSignature verifies that a webhook request is authentic.
	VerifyWebhookSignature(payload []byte, signature string, secret string) error
}

// CreatePaymentIntentParams contains parameters for creating a payment intent.
type CreatePaymentIntentParams struct {
	// AmountCents is the amount in smallest currency unit (cents for USD).
	// Always the server-computed order total, never a client figure.
	AmountCents int32

	// Currency code (ISO 4217) - e.g., "usd", "eur"
	Currency string

	// Description appears on the customer's statement and in the dashboard
	Description string

	// Metadata for filtering and reporting (always include order_id)
	Metadata map[string]string

	// IdempotencyKey prevents duplicate payment intents.
	// Typically the order ID plus an attempt counter.
	IdempotencyKey string
}

// PaymentIntent represents a payment intent.
type PaymentIntent struct {
	// ID is the provider's payment intent ID (pi_...)
	ID string

	// ClientSecret is used to confirm the payment
	ClientSecret string

	// AmountCents is the amount in smallest currency unit (cents)
	AmountCents int32

	// Currency code
	Currency string

	// Status: requires_payment_method, requires_confirmation, succeeded, etc.
	Status string

	// Metadata passed during creation
	Metadata map[string]string

	// CreatedAt is when the payment intent was created
	CreatedAt time.Time
}

// Confirmation is the result of confirming a payment intent.
type Confirmation struct {
	// IntentID is the payment intent that was confirmed
	IntentID string

	// Declined is true when the card was rejected. The intent stays open
	// for another attempt with a different method.
	Declined bool

	// DeclineCode is the provider's decline reason (if declined)
	DeclineCode string

	// Status is the intent status after confirmation
	Status string
}
