// Package guestcart holds the pre-authentication cart on the client side.
// Lines live locally (no network) until login, when the reconciler merges
// them into the server cart and clears this store.
package guestcart

import "github.com/dukerupert/njord/internal/domain"

// Store is the local guest cart. Implementations are single-writer: the
// owning session is the only mutator. Storage faults degrade to a no-op
// that preserves the pre-operation lines; they are logged, never returned
// to callers and never allowed to panic.
type Store interface {
	// Lines returns a copy of the current guest lines.
	Lines() []domain.GuestCartLine

	// Add appends a new line, or increments quantity when the product
	// already has one. qty <= 0 is ignored.
	Add(productID string, qty int32)

	// SetQuantity replaces the quantity for a product. qty <= 0 removes
	// the line. Setting a product with no line creates it.
	SetQuantity(productID string, qty int32)

	// Remove deletes the line for a product. Missing product is a no-op.
	Remove(productID string)

	// Clear removes all lines.
	Clear()

	// Count returns the sum of all line quantities (the badge number).
	Count() int32
}
