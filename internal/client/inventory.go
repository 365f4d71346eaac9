package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dukerupert/njord/internal/domain"
)

// InventoryClient implements domain.InventoryService against the backend
// inventory API.
type InventoryClient struct {
	*Client
}

// NewInventoryClient creates the inventory collaborator client.
func NewInventoryClient(c *Client) domain.InventoryService {
	return &InventoryClient{Client: c}
}

// ReleaseReservation frees the inventory hold for an order's lines.
func (c *InventoryClient) ReleaseReservation(ctx context.Context, orderID string) error {
	path := fmt.Sprintf("/api/inventory/reservations/%s/release", url.PathEscape(orderID))
	return c.do(ctx, http.MethodPost, path, nil, nil)
}
