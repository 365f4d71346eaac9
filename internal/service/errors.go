package service

import (
	"github.com/dukerupert/njord/internal/domain"
)

// Payment errors - use domain.EPAYMENT
var (
	ErrPaymentDeclined = domain.Errorf(domain.EPAYMENT, "", "Payment was declined")
	ErrPaymentGateway  = domain.Errorf(domain.EPAYMENT, "", "Payment gateway error")
)

// Checkout flow errors
var (
	ErrOrderNotPending  = domain.Errorf(domain.ECONFLICT, "", "Order is not awaiting payment")
	ErrAlreadyPaid      = domain.Errorf(domain.ECONFLICT, "", "Order already has a confirmed payment")
	ErrInventoryRelease = domain.Errorf(domain.EUNAVAILABLE, "", "Failed to release inventory reservation")
)
