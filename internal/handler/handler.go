// Package handler exposes the JSON API surface: guest cart CRUD, the
// login-completion merge, checkout, and order operations.
package handler

import (
	"net/http"

	"github.com/dukerupert/njord/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.EPAYMENT:
		return http.StatusPaymentRequired
	case domain.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	case domain.ENOTIMPL:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// errorEnvelope is the JSON error response body.
type errorEnvelope struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HTTPErrorHandler returns an Echo error handler that renders domain
// errors as the JSON envelope and logs internals.
func HTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := domain.ErrorCode(err)
		status := ErrorCodeToHTTPStatus(code)
		message := domain.ErrorMessage(err)

		// Echo's own errors (404 route miss, bad method) pass through.
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
			code = domain.EINVALID
			if status == http.StatusNotFound {
				code = domain.ENOTFOUND
			}
			if m, ok := he.Message.(string); ok {
				message = m
			}
		}

		if status >= 500 {
			logger.Error().Err(err).Str("op", domain.ErrorOp(err)).Msg("request failed")
		}

		if jsonErr := c.JSON(status, errorEnvelope{Error: errorDetail{Code: code, Message: message}}); jsonErr != nil {
			logger.Error().Err(jsonErr).Msg("failed to write error response")
		}
	}
}

// Validator adapts go-playground/validator to Echo's Validator interface.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates the request validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return domain.Errorf(domain.EINVALID, "", "%s", err.Error())
	}
	return nil
}
