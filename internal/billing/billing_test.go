package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntentIDFromClientSecret(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		want    string
		wantErr bool
	}{
		{"valid secret", "pi_3ABC123_secret_xyz", "pi_3ABC123", false},
		{"missing secret suffix", "pi_3ABC123", "", true},
		{"not an intent", "seti_123_secret_xyz", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IntentIDFromClientSecret(tt.secret)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMockProvider_ConfirmAndFinalize(t *testing.T) {
	ctx := context.Background()
	m := NewMockProvider()

	pi, err := m.CreatePaymentIntent(ctx, CreatePaymentIntentParams{AmountCents: 1299, Currency: "usd"})
	require.NoError(t, err)
	require.NotEmpty(t, pi.ClientSecret)

	// Finalize before confirmation must fail
	require.ErrorIs(t, m.FinalizePayment(ctx, pi.ID), ErrPaymentNotSucceeded)

	conf, err := m.ConfirmPayment(ctx, pi.ClientSecret, "pm_card_visa")
	require.NoError(t, err)
	assert.False(t, conf.Declined)
	assert.Equal(t, pi.ID, conf.IntentID)

	require.NoError(t, m.FinalizePayment(ctx, pi.ID))
}

func TestMockProvider_SimulateDecline(t *testing.T) {
	ctx := context.Background()
	m := NewMockProvider()

	pi, err := m.CreatePaymentIntent(ctx, CreatePaymentIntentParams{AmountCents: 500, Currency: "usd"})
	require.NoError(t, err)

	m.SimulateDecline("insufficient_funds")

	conf, err := m.ConfirmPayment(ctx, pi.ClientSecret, "pm_card_declined")
	require.NoError(t, err)
	assert.True(t, conf.Declined)
	assert.Equal(t, "insufficient_funds", conf.DeclineCode)
}

func TestStripeError_Classification(t *testing.T) {
	declined := &StripeError{Code: "card_declined", DeclineCode: "generic_decline"}
	assert.True(t, declined.IsDeclined())
	assert.False(t, declined.IsTemporary())

	rateLimited := &StripeError{Code: "rate_limit"}
	assert.False(t, rateLimited.IsDeclined())
	assert.True(t, rateLimited.IsTemporary())
}
