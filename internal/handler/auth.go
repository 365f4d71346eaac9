package handler

import (
	"net/http"

	"github.com/dukerupert/njord/internal/domain"
	"github.com/dukerupert/njord/internal/service"
	"github.com/labstack/echo/v4"
)

// AuthHandler completes authentication: it runs the guest cart merge that
// follows a successful login. Credential checks live in the auth backend,
// not here.
type AuthHandler struct {
	reconciler service.ReconcilerService
}

// NewAuthHandler creates the auth completion handler.
func NewAuthHandler(reconciler service.ReconcilerService) *AuthHandler {
	return &AuthHandler{reconciler: reconciler}
}

type completeLoginRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type mergeLineFailure struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
	Error     string `json:"error"`
}

type completeLoginResponse struct {
	Merged int                `json:"merged"`
	Failed []mergeLineFailure `json:"failed,omitempty"`
}

// CompleteLogin merges the guest cart into the freshly authenticated
// user's server cart. Per-line failures are reported, not fatal; only a
// failed cart snapshot read fails the request (and keeps the guest cart).
func (h *AuthHandler) CompleteLogin(c echo.Context) error {
	var req completeLoginRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.reconciler.Merge(c.Request().Context(), req.UserID)
	if err != nil {
		return err
	}

	resp := completeLoginResponse{Merged: result.Merged}
	for _, f := range result.Failed {
		resp.Failed = append(resp.Failed, mergeLineFailure{
			ProductID: f.ProductID,
			Quantity:  f.Quantity,
			Error:     domain.ErrorMessage(f.Err),
		})
	}

	return c.JSON(http.StatusOK, resp)
}
