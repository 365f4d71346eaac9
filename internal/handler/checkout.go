package handler

import (
	"net/http"

	"github.com/dukerupert/njord/internal/domain"
	"github.com/dukerupert/njord/internal/service"
	"github.com/labstack/echo/v4"
)

// CheckoutHandler serves checkout, payment retry, cancellation, and order
// detail.
type CheckoutHandler struct {
	checkout service.CheckoutService
	orders   domain.OrderService
}

// NewCheckoutHandler creates the checkout handler.
func NewCheckoutHandler(checkout service.CheckoutService, orders domain.OrderService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, orders: orders}
}

type checkoutRequest struct {
	UserID         string `json:"user_id" validate:"required"`
	PaymentMethod  string `json:"payment_method" validate:"required"`
	IdempotencyKey string `json:"idempotency_key"`
}

type retryPaymentRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
}

type checkoutResponse struct {
	Order    *domain.Order `json:"order"`
	IntentID string        `json:"intent_id"`
}

type orderDetailResponse struct {
	Order    *domain.Order           `json:"order"`
	Attempts []domain.PaymentAttempt `json:"payment_attempts,omitempty"`
}

// Checkout runs the full checkout sequence for the user's server cart.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.checkout.Checkout(c.Request().Context(), service.CheckoutParams{
		UserID:         req.UserID,
		PaymentMethod:  req.PaymentMethod,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, checkoutResponse{Order: result.Order, IntentID: result.IntentID})
}

// RetryPayment retries payment for a pending order with a new method.
func (h *CheckoutHandler) RetryPayment(c echo.Context) error {
	var req retryPaymentRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.checkout.RetryPayment(c.Request().Context(), c.Param("id"), req.PaymentMethod)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, checkoutResponse{Order: result.Order, IntentID: result.IntentID})
}

// Cancel cancels a pending or processing order.
func (h *CheckoutHandler) Cancel(c echo.Context) error {
	if err := h.checkout.Cancel(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetOrder returns an order with its payment attempt history.
func (h *CheckoutHandler) GetOrder(c echo.Context) error {
	orderID := c.Param("id")

	order, err := h.orders.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orderDetailResponse{
		Order:    order,
		Attempts: h.checkout.Attempts(orderID),
	})
}

// Badge returns the cached server cart item count.
func (h *CheckoutHandler) Badge(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]int32{"count": h.checkout.CachedBadgeCount()})
}
