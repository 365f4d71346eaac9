package handler

import (
	"net/http"

	"github.com/dukerupert/njord/internal/domain"
	"github.com/dukerupert/njord/internal/guestcart"
	"github.com/labstack/echo/v4"
)

// GuestCartHandler serves the local guest cart CRUD and the badge count.
type GuestCartHandler struct {
	store guestcart.Store
}

// NewGuestCartHandler creates a guest cart handler.
func NewGuestCartHandler(store guestcart.Store) *GuestCartHandler {
	return &GuestCartHandler{store: store}
}

type guestCartResponse struct {
	Lines []domain.GuestCartLine `json:"lines"`
	Count int32                  `json:"count"`
}

type addLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int32  `json:"quantity" validate:"required,gt=0"`
}

type setQuantityRequest struct {
	Quantity int32 `json:"quantity"`
}

// GetCart returns the guest cart lines and count.
func (h *GuestCartHandler) GetCart(c echo.Context) error {
	return c.JSON(http.StatusOK, guestCartResponse{
		Lines: h.store.Lines(),
		Count: h.store.Count(),
	})
}

// AddItem adds a line (or increments an existing one).
func (h *GuestCartHandler) AddItem(c echo.Context) error {
	var req addLineRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	h.store.Add(req.ProductID, req.Quantity)
	return c.JSON(http.StatusOK, guestCartResponse{Lines: h.store.Lines(), Count: h.store.Count()})
}

// SetQuantity replaces the quantity of a line. Zero or less removes it.
func (h *GuestCartHandler) SetQuantity(c echo.Context) error {
	var req setQuantityRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("", "invalid request body")
	}

	h.store.SetQuantity(c.Param("product_id"), req.Quantity)
	return c.JSON(http.StatusOK, guestCartResponse{Lines: h.store.Lines(), Count: h.store.Count()})
}

// RemoveItem deletes a line.
func (h *GuestCartHandler) RemoveItem(c echo.Context) error {
	h.store.Remove(c.Param("product_id"))
	return c.JSON(http.StatusOK, guestCartResponse{Lines: h.store.Lines(), Count: h.store.Count()})
}

// Clear empties the guest cart.
func (h *GuestCartHandler) Clear(c echo.Context) error {
	h.store.Clear()
	return c.NoContent(http.StatusNoContent)
}

// Count returns just the badge number.
func (h *GuestCartHandler) Count(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]int32{"count": h.store.Count()})
}
