package billing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/webhook"
)

// minimumChargeCents is Stripe's minimum charge for USD.
const minimumChargeCents = 50

// StripeProvider implements Provider using Stripe.
type StripeProvider struct {
	webhookSecret string
}

// NewStripeProvider creates a new Stripe billing provider.
// The API key is installed process-wide, matching the SDK's global client.
func NewStripeProvider(apiKey, webhookSecret string) (*StripeProvider, error) {
	if apiKey == "" {
		return nil, ErrInvalidAPIKey
	}

	stripe.Key = apiKey
	return &StripeProvider{webhookSecret: webhookSecret}, nil
}

// CreatePaymentIntent creates a Stripe payment intent.
func (s *StripeProvider) CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error) {
	if params.AmountCents < minimumChargeCents {
		return nil, ErrAmountTooSmall
	}

	currency := params.Currency
	if currency == "" {
		currency = "usd"
	}

	piParams := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(params.AmountCents)),
		Currency: stripe.String(currency),
	}
	piParams.Context = ctx

	if params.Description != "" {
		piParams.Description = stripe.String(params.Description)
	}
	for k, v := range params.Metadata {
		piParams.AddMetadata(k, v)
	}
	if params.IdempotencyKey != "" {
		piParams.SetIdempotencyKey(params.IdempotencyKey)
	}

	pi, err := paymentintent.New(piParams)
	if err != nil {
		return nil, wrapStripeError(err)
	}

	return convertPaymentIntent(pi), nil
}

// ConfirmPayment confirms the payment intent behind clientSecret.
// Card declines are reported in the Confirmation; other Stripe failures
// come back as a *StripeError.
func (s *StripeProvider) ConfirmPayment(ctx context.Context, clientSecret, paymentMethod string) (*Confirmation, error) {
	intentID, err := IntentIDFromClientSecret(clientSecret)
	if err != nil {
		return nil, err
	}

	confirmParams := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(paymentMethod),
	}
	confirmParams.Context = ctx

	pi, err := paymentintent.Confirm(intentID, confirmParams)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeCardDeclined {
			return &Confirmation{
				IntentID:    intentID,
				Declined:    true,
				DeclineCode: string(stripeErr.DeclineCode),
				Status:      "requires_payment_method",
			}, nil
		}
		return nil, wrapStripeError(err)
	}

	return &Confirmation{
		IntentID: pi.ID,
		Declined: false,
		Status:   string(pi.Status),
	}, nil
}

// FinalizePayment verifies that the intent reached succeeded status.
func (s *StripeProvider) FinalizePayment(ctx context.Context, intentID string) error {
	getParams := &stripe.PaymentIntentParams{}
	getParams.Context = ctx

	pi, err := paymentintent.Get(intentID, getParams)
	if err != nil {
		return wrapStripeError(err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return ErrPaymentNotSucceeded
	}
	return nil
}

// VerifyWebhookSignature verifies a Stripe webhook signature.
func (s *StripeProvider) VerifyWebhookSignature(payload []byte, signature string, secret string) error {
	if secret == "" {
		secret = s.webhookSecret
	}

	if _, err := webhook.ConstructEvent(payload, signature, secret); err != nil {
		return ErrInvalidWebhookSignature
	}
	return nil
}

// IntentIDFromClientSecret extracts the payment intent ID from a client
// secret. Secrets have the form "pi_xxx_secret_yyy".
func IntentIDFromClientSecret(clientSecret string) (string, error) {
	id, _, found := strings.Cut(clientSecret, "_secret")
	if !found || !strings.HasPrefix(id, "pi_") {
		return "", ErrInvalidClientSecret
	}
	return id, nil
}

// wrapStripeError converts a Stripe SDK error into a *StripeError.
func wrapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return &StripeError{
			Message:       stripeErr.Msg,
			Code:          string(stripeErr.Code),
			DeclineCode:   string(stripeErr.DeclineCode),
			RequestID:     stripeErr.RequestID,
			OriginalError: err,
		}
	}
	return &StripeError{Message: err.Error(), OriginalError: err}
}

// convertPaymentIntent maps the SDK intent to the provider-neutral type.
func convertPaymentIntent(pi *stripe.PaymentIntent) *PaymentIntent {
	return &PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		AmountCents:  int32(pi.Amount),
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
		Metadata:     pi.Metadata,
		CreatedAt:    time.Unix(pi.Created, 0),
	}
}
