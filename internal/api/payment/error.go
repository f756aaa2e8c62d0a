package payment

import (
	"waroengg-be/pkg/response"
)

var (
	ErrPaymentNotFound         = response.NewError(404, "payment not found")
	ErrInvalidAmount           = response.NewError(400, "invalid amount")
	ErrMalformedTemplate       = response.NewError(500, "qris template is malformed")
	ErrInvalidTransactionState = response.NewError(409, "payment is no longer pending")
	ErrPaymentExpired          = response.NewError(410, "payment has expired")
)
