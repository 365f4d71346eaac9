package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MockProvider is a mock billing provider for testing.
// Simulates payment flows without calling the Stripe API.
type MockProvider struct {
	// CreatePaymentIntentFunc allows customizing payment intent creation behavior
	CreatePaymentIntentFunc func(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error)

	// ConfirmPaymentFunc allows customizing payment confirmation behavior
	ConfirmPaymentFunc func(ctx context.Context, clientSecret, paymentMethod string) (*Confirmation, error)

	// FinalizePaymentFunc allows customizing finalize behavior
	FinalizePaymentFunc func(ctx context.Context, intentID string) error

	// VerifyWebhookSignatureFunc allows customizing webhook verification behavior
	VerifyWebhookSignatureFunc func(payload []byte, signature string, secret string) error

	// PaymentIntents stores created payment intents for retrieval
	PaymentIntents map[string]*PaymentIntent

	// CallLog tracks method calls for test assertions
	CallLog []string
}

// NewMockProvider creates a new mock billing provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		PaymentIntents: make(map[string]*PaymentIntent),
		CallLog:        []string{},
	}
}

// CreatePaymentIntent creates a mock payment intent.
func (m *MockProvider) CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error) {
	m.CallLog = append(m.CallLog, fmt.Sprintf("CreatePaymentIntent(%d, %s)", params.AmountCents, params.Currency))

	if m.CreatePaymentIntentFunc != nil {
		return m.CreatePaymentIntentFunc(ctx, params)
	}

	// Default mock behavior: create successful payment intent
	id := "pi_" + uuid.New().String()
	pi := &PaymentIntent{
		ID:           id,
		ClientSecret: id + "_secret_" + uuid.New().String(),
		AmountCents:  params.AmountCents,
		Currency:     params.Currency,
		Status:       "requires_payment_method",
		Metadata:     params.Metadata,
		CreatedAt:    time.Now(),
	}

	m.PaymentIntents[pi.ID] = pi
	return pi, nil
}

// ConfirmPayment confirms a mock payment intent.
func (m *MockProvider) ConfirmPayment(ctx context.Context, clientSecret, paymentMethod string) (*Confirmation, error) {
	m.CallLog = append(m.CallLog, fmt.Sprintf("ConfirmPayment(%s)", paymentMethod))

	if m.ConfirmPaymentFunc != nil {
		return m.ConfirmPaymentFunc(ctx, clientSecret, paymentMethod)
	}

	intentID, err := IntentIDFromClientSecret(clientSecret)
	if err != nil {
		return nil, err
	}

	pi, exists := m.PaymentIntents[intentID]
	if !exists {
		return nil, ErrPaymentIntentNotFound
	}

	// Default mock behavior: confirmation succeeds
	pi.Status = "succeeded"
	return &Confirmation{IntentID: intentID, Status: "succeeded"}, nil
}

// FinalizePayment verifies a mock payment intent succeeded.
func (m *MockProvider) FinalizePayment(ctx context.Context, intentID string) error {
	m.CallLog = append(m.CallLog, fmt.Sprintf("FinalizePayment(%s)", intentID))

	if m.FinalizePaymentFunc != nil {
		return m.FinalizePaymentFunc(ctx, intentID)
	}

	pi, exists := m.PaymentIntents[intentID]
	if !exists {
		return ErrPaymentIntentNotFound
	}
	if pi.Status != "succeeded" {
		return ErrPaymentNotSucceeded
	}
	return nil
}

// VerifyWebhookSignature verifies a mock webhook signature.
func (m *MockProvider) VerifyWebhookSignature(payload []byte, signature string, secret string) error {
	m.CallLog = append(m.CallLog, "VerifyWebhookSignature")

	if m.VerifyWebhookSignatureFunc != nil {
		return m.VerifyWebhookSignatureFunc(payload, signature, secret)
	}

	// Default mock behavior: always verify successfully
	return nil
}

// SimulateDecline makes the next confirmation of the given intent decline.
// Used in tests to simulate card declines.
func (m *MockProvider) SimulateDecline(declineCode string) {
	m.ConfirmPaymentFunc = func(ctx context.Context, clientSecret, paymentMethod string) (*Confirmation, error) {
		intentID, err := IntentIDFromClientSecret(clientSecret)
		if err != nil {
			return nil, err
		}
		return &Confirmation{
			IntentID:    intentID,
			Declined:    true,
			DeclineCode: declineCode,
			Status:      "requires_payment_method",
		}, nil
	}
}
