package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dukerupert/njord/internal/domain"
)

// CartClient implements domain.CartService against the backend cart API.
type CartClient struct {
	*Client
}

// NewCartClient creates the cart collaborator client.
func NewCartClient(c *Client) domain.CartService {
	return &CartClient{Client: c}
}

type cartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

// GetCart returns the server cart snapshot with server-computed subtotals.
func (c *CartClient) GetCart(ctx context.Context, userID string) (*domain.CartSummary, error) {
	var summary domain.CartSummary
	path := fmt.Sprintf("/api/users/%s/cart", url.PathEscape(userID))
	if err := c.do(ctx, http.MethodGet, path, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// AddItem adds quantity of a product to the server cart.
func (c *CartClient) AddItem(ctx context.Context, userID, productID string, quantity int32) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	path := fmt.Sprintf("/api/users/%s/cart/items", url.PathEscape(userID))
	return c.do(ctx, http.MethodPost, path, cartItemRequest{ProductID: productID, Quantity: quantity}, nil)
}

// SetItemQuantity replaces the quantity of a product line on the server cart.
func (c *CartClient) SetItemQuantity(ctx context.Context, userID, productID string, quantity int32) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	path := fmt.Sprintf("/api/users/%s/cart/items/%s", url.PathEscape(userID), url.PathEscape(productID))
	return c.do(ctx, http.MethodPut, path, cartItemRequest{ProductID: productID, Quantity: quantity}, nil)
}

// RemoveItem deletes a cart line by line ID.
func (c *CartClient) RemoveItem(ctx context.Context, userID, lineID string) error {
	path := fmt.Sprintf("/api/users/%s/cart/lines/%s", url.PathEscape(userID), url.PathEscape(lineID))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// ClearCart removes every line from the server cart.
func (c *CartClient) ClearCart(ctx context.Context, userID string) error {
	path := fmt.Sprintf("/api/users/%s/cart", url.PathEscape(userID))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
