package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dukerupert/njord/internal/domain"
)

// OrderClient implements domain.OrderService against the backend order API.
type OrderClient struct {
	*Client
}

// NewOrderClient creates the order collaborator client.
func NewOrderClient(c *Client) domain.OrderService {
	return &OrderClient{Client: c}
}

type createOrderRequest struct {
	UserID           string `json:"user_id"`
	PaymentMethod    string `json:"payment_method"`
	IdempotencyToken string `json:"idempotency_token"`
}

type setStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

// CreateOrderFromCart asks the backend to freeze the user's cart into a
// pending order. The backend computes the total and line snapshots; the
// idempotency token makes a retried call return the same order.
func (c *OrderClient) CreateOrderFromCart(ctx context.Context, userID, paymentMethod, idempotencyToken string) (*domain.Order, error) {
	var order domain.Order
	req := createOrderRequest{
		UserID:           userID,
		PaymentMethod:    paymentMethod,
		IdempotencyToken: idempotencyToken,
	}
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrder retrieves an order with its line snapshots.
func (c *OrderClient) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	path := fmt.Sprintf("/api/orders/%s", url.PathEscape(orderID))
	if err := c.do(ctx, http.MethodGet, path, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// SetOrderStatus records a status transition server-side.
func (c *OrderClient) SetOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	path := fmt.Sprintf("/api/orders/%s/status", url.PathEscape(orderID))
	return c.do(ctx, http.MethodPut, path, setStatusRequest{Status: status}, nil)
}
