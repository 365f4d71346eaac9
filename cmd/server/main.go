package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/njord/internal"
	"github.com/dukerupert/njord/internal/billing"
	"github.com/dukerupert/njord/internal/client"
	"github.com/dukerupert/njord/internal/events"
	"github.com/dukerupert/njord/internal/guestcart"
	"github.com/dukerupert/njord/internal/handler/webhook"
	"github.com/dukerupert/njord/internal/middleware"
	"github.com/dukerupert/njord/internal/routes"
	"github.com/dukerupert/njord/internal/service"
	"github.com/dukerupert/njord/internal/telemetry"
	"github.com/labstack/echo/v4"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)
	logger.Info().Str("env", cfg.Env).Msg("starting njord")

	// Local guest cart, durable across restarts
	guestCart := guestcart.NewFileStore(cfg.GuestCartPath, logger)

	// Backend collaborators
	backend, err := client.New(cfg.BackendURL, logger)
	if err != nil {
		return err
	}
	cartService := client.NewCartClient(backend)
	orderService := client.NewOrderClient(backend)
	inventoryService := client.NewInventoryClient(backend)

	// Payment provider
	provider, err := billing.NewStripeProvider(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
	if err != nil {
		return fmt.Errorf("failed to init stripe provider: %w", err)
	}

	// Order lifecycle events
	var publisher events.Publisher = events.NewNoopPublisher()
	if cfg.NATS.Enabled {
		natsPublisher, err := events.NewNATSPublisher(cfg.NATS.URL, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to nats: %w", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	// Telemetry
	httpMetrics := middleware.NewMetrics("njord")
	businessMetrics := telemetry.NewBusinessMetrics("njord")

	// Core services
	reconciler, err := service.NewReconcilerService(guestCart, cartService, businessMetrics, logger)
	if err != nil {
		return err
	}
	checkout, err := service.NewCheckoutService(cartService, orderService, inventoryService, provider, publisher, businessMetrics, logger)
	if err != nil {
		return err
	}

	stripeWebhook := webhook.NewStripeHandler(provider, cfg.Stripe.WebhookSecret, logger)

	e := echo.New()
	routes.Register(e, routes.Deps{
		GuestCart:  guestCart,
		Reconciler: reconciler,
		Checkout:   checkout,
		Orders:     orderService,
		Stripe:     stripeWebhook,
		Metrics:    httpMetrics,
		Logger:     logger,
	})

	// Serve with graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info().Str("addr", addr).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}
