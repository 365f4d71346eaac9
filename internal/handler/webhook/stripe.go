// Package webhook receives asynchronous payment events from Stripe.
package webhook

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/dukerupert/njord/internal/billing"
	"github.com/dukerupert/njord/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
)

// maxPayloadBytes caps webhook bodies. Stripe events are small.
const maxPayloadBytes = 65536

// StripeHandler handles Stripe webhook events.
type StripeHandler struct {
	provider      billing.Provider
	webhookSecret string
	logger        zerolog.Logger
}

// NewStripeHandler creates a new Stripe webhook handler.
func NewStripeHandler(provider billing.Provider, webhookSecret string, logger zerolog.Logger) *StripeHandler {
	return &StripeHandler{
		provider:      provider,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// HandleWebhook processes incoming Stripe webhook events.
//
// Stripe CLI testing:
//
//	stripe listen --forward-to localhost:3000/webhooks/stripe
//	stripe trigger payment_intent.succeeded
func (h *StripeHandler) HandleWebhook(c echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxPayloadBytes))
	if err != nil {
		return domain.Invalid("webhook.stripe", "error reading request body")
	}

	signature := c.Request().Header.Get("Stripe-Signature")
	if signature == "" {
		return domain.Invalid("webhook.stripe", "missing signature")
	}

	if err := h.provider.VerifyWebhookSignature(payload, signature, h.webhookSecret); err != nil {
		h.logger.Warn().Err(err).Msg("stripe webhook signature verification failed")
		return domain.Unauthorized("webhook.stripe", "invalid signature")
	}

	var event stripe.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return domain.Invalid("webhook.stripe", "invalid JSON")
	}

	h.logger.Info().Str("type", string(event.Type)).Str("event_id", event.ID).Msg("stripe webhook received")

	switch event.Type {
	case "payment_intent.succeeded":
		h.handlePaymentIntent(event, "payment intent succeeded")
	case "payment_intent.payment_failed":
		h.handlePaymentIntent(event, "payment intent failed")
	default:
		// Unhandled event types are acknowledged so Stripe stops retrying.
		h.logger.Debug().Str("type", string(event.Type)).Msg("unhandled stripe event type")
	}

	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}

// handlePaymentIntent logs the intent outcome. The checkout flow confirms
// synchronously; the webhook is the audit trail for async settlement.
func (h *StripeHandler) handlePaymentIntent(event stripe.Event, msg string) {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		h.logger.Warn().Err(err).Str("event_id", event.ID).Msg("failed to parse payment intent from event")
		return
	}

	h.logger.Info().
		Str("intent_id", pi.ID).
		Str("order_id", pi.Metadata["order_id"]).
		Int64("amount_cents", pi.Amount).
		Str("status", string(pi.Status)).
		Msg(msg)
}
