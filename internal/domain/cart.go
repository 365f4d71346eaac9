package domain

import "context"

// =============================================================================
// CART DOMAIN ERRORS
// =============================================================================

var (
	ErrCartNotFound      = &Error{Code: ENOTFOUND, Message: "Cart not found"}
	ErrCartItemNotFound  = &Error{Code: ENOTFOUND, Message: "Cart item not found"}
	ErrInvalidQuantity   = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
	ErrRemoteUnavailable = &Error{Code: EUNAVAILABLE, Message: "Backend service unavailable"}
)

// CartService is the backend-authoritative cart for an authenticated user.
// Calls are remote with at-least-once semantics; callers may retry. The
// server recomputes line subtotals on every mutation - a locally computed
// subtotal is never authoritative.
type CartService interface {
	// GetCart retrieves the user's cart with all lines and computed totals.
	GetCart(ctx context.Context, userID string) (*CartSummary, error)

	// AddItem adds a product to the cart or increments quantity if present.
	AddItem(ctx context.Context, userID, productID string, quantity int32) error

	// SetItemQuantity sets the absolute quantity of a product's cart line.
	SetItemQuantity(ctx context.Context, userID, productID string, quantity int32) error

	// RemoveItem removes a single cart line by line ID.
	RemoveItem(ctx context.Context, userID, lineID string) error

	// ClearCart removes all lines from the user's cart.
	ClearCart(ctx context.Context, userID string) error
}

// GuestCartLine is one line of the client-local, pre-authentication cart.
// Unique by ProductID; quantity is always >= 1 while stored.
type GuestCartLine struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

// CartLine is a server-owned cart line. LineID is assigned by the backend,
// Subtotal is recomputed server-side as UnitPriceCents * Quantity.
type CartLine struct {
	LineID         string `json:"line_id"`
	ProductID      string `json:"product_id"`
	Quantity       int32  `json:"quantity"`
	UnitPriceCents int32  `json:"unit_price_cents"`
	SubtotalCents  int32  `json:"subtotal_cents"`
}

// CartSummary aggregates the server cart with computed totals.
type CartSummary struct {
	UserID        string     `json:"user_id"`
	Lines         []CartLine `json:"lines"`
	SubtotalCents int32      `json:"subtotal_cents"`
	ItemCount     int32      `json:"item_count"`
}

// IsEmpty reports whether the cart holds no lines.
func (s *CartSummary) IsEmpty() bool {
	return s == nil || len(s.Lines) == 0
}

// LineByProduct returns the cart line for a product, if present.
func (s *CartSummary) LineByProduct(productID string) (CartLine, bool) {
	for _, line := range s.Lines {
		if line.ProductID == productID {
			return line, true
		}
	}
	return CartLine{}, false
}
