// Package routes wires the HTTP surface onto an Echo instance.
package routes

import (
	"net/http"

	"github.com/dukerupert/njord/internal/domain"
	"github.com/dukerupert/njord/internal/guestcart"
	"github.com/dukerupert/njord/internal/handler"
	"github.com/dukerupert/njord/internal/handler/webhook"
	"github.com/dukerupert/njord/internal/middleware"
	"github.com/dukerupert/njord/internal/service"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// Deps carries everything the route tree needs.
type Deps struct {
	GuestCart  guestcart.Store
	Reconciler service.ReconcilerService
	Checkout   service.CheckoutService
	Orders     domain.OrderService
	Stripe     *webhook.StripeHandler
	Metrics    *middleware.Metrics
	Logger     zerolog.Logger
}

// Register mounts all routes and middleware on e.
func Register(e *echo.Echo, deps Deps) {
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.HTTPErrorHandler(deps.Logger)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	if deps.Metrics != nil {
		e.Use(deps.Metrics.Middleware())
		e.GET("/metrics", echo.WrapHandler(deps.Metrics.Handler()))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	guestCart := handler.NewGuestCartHandler(deps.GuestCart)
	auth := handler.NewAuthHandler(deps.Reconciler)
	checkout := handler.NewCheckoutHandler(deps.Checkout, deps.Orders)

	api := e.Group("/api")

	// Guest (pre-auth) cart, local to this service
	api.GET("/guest-cart", guestCart.GetCart)
	api.POST("/guest-cart/items", guestCart.AddItem)
	api.PUT("/guest-cart/items/:product_id", guestCart.SetQuantity)
	api.DELETE("/guest-cart/items/:product_id", guestCart.RemoveItem)
	api.DELETE("/guest-cart", guestCart.Clear)
	api.GET("/guest-cart/count", guestCart.Count)

	// Login completion: merge guest cart into the server cart
	api.POST("/auth/complete-login", auth.CompleteLogin)

	// Checkout and orders
	api.POST("/checkout", checkout.Checkout)
	api.POST("/orders/:id/retry-payment", checkout.RetryPayment)
	api.POST("/orders/:id/cancel", checkout.Cancel)
	api.GET("/orders/:id", checkout.GetOrder)
	api.GET("/cart/badge", checkout.Badge)

	// Async payment events
	if deps.Stripe != nil {
		e.POST("/webhooks/stripe", deps.Stripe.HandleWebhook)
	}
}
