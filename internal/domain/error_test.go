package domain

import (
	"errors"
	"testing"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, ""},
		{"domain error", &Error{Code: EINVALID, Message: "bad input"}, EINVALID},
		{"wrapped domain error", &Error{Code: ENOTFOUND, Err: errors.New("inner")}, ENOTFOUND},
		{"plain error", errors.New("boom"), EINTERNAL},
		{"payment error", Errorf(EPAYMENT, "checkout.confirm", "card declined"), EPAYMENT},
		{"unavailable error", ErrRemoteUnavailable, EUNAVAILABLE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.want {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	if got := ErrorMessage(&Error{Code: EINVALID, Message: "Quantity must be greater than 0"}); got != "Quantity must be greater than 0" {
		t.Errorf("ErrorMessage() = %q", got)
	}
	if got := ErrorMessage(errors.New("boom")); got != "An internal error occurred. Please try again later." {
		t.Errorf("ErrorMessage() for plain error = %q", got)
	}
}

func TestIsCode(t *testing.T) {
	err := WrapError(errors.New("connection refused"), EUNAVAILABLE, "client.do", "backend request failed")
	if !IsCode(err, EUNAVAILABLE) {
		t.Error("IsCode should match the wrapping code")
	}
	if IsCode(err, ENOTFOUND) {
		t.Error("IsCode should not match a different code")
	}
	if IsCode(nil, EINTERNAL) {
		t.Error("IsCode(nil) should be false")
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("io fault")
	err := WrapError(inner, EINTERNAL, "guestcart.save", "write failed")
	if !errors.Is(err, inner) {
		t.Error("wrapped error should unwrap to the inner error")
	}
}
