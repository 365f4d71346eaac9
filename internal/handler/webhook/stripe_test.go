package webhook

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dukerupert/njord/internal/billing"
	"github.com/dukerupert/njord/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const succeededEvent = `{
	"id": "evt_1",
	"type": "payment_intent.succeeded",
	"data": {
		"object": {
			"id": "pi_1",
			"amount": 1250,
			"status": "succeeded",
			"metadata": {"order_id": "ord-1"}
		}
	}
}`

func newWebhookContext(body, signature string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestStripeWebhook_AcknowledgesVerifiedEvent(t *testing.T) {
	provider := billing.NewMockProvider()
	h := NewStripeHandler(provider, "whsec_test", zerolog.Nop())

	c, rec := newWebhookContext(succeededEvent, "t=1,v1=sig")

	require.NoError(t, h.HandleWebhook(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, provider.CallLog, "VerifyWebhookSignature")
}

func TestStripeWebhook_RejectsMissingSignature(t *testing.T) {
	h := NewStripeHandler(billing.NewMockProvider(), "whsec_test", zerolog.Nop())

	c, _ := newWebhookContext(succeededEvent, "")

	err := h.HandleWebhook(c)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestStripeWebhook_RejectsBadSignature(t *testing.T) {
	provider := billing.NewMockProvider()
	provider.VerifyWebhookSignatureFunc = func(payload []byte, signature, secret string) error {
		return billing.ErrInvalidWebhookSignature
	}
	h := NewStripeHandler(provider, "whsec_test", zerolog.Nop())

	c, _ := newWebhookContext(succeededEvent, "t=1,v1=bad")

	err := h.HandleWebhook(c)
	require.Error(t, err)
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
}

func TestStripeWebhook_AcknowledgesUnhandledEventTypes(t *testing.T) {
	h := NewStripeHandler(billing.NewMockProvider(), "whsec_test", zerolog.Nop())

	c, rec := newWebhookContext(`{"id":"evt_2","type":"charge.refunded","data":{"object":{}}}`, "t=1,v1=sig")

	require.NoError(t, h.HandleWebhook(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
