package order

import (
	"waroengg-be/pkg/response"
)

var (
	ErrOrderNotFound          = response.NewError(404, "order not found")
	ErrInsufficientBalance    = response.NewError(400, "insufficient balance")
	ErrOutOfStock             = response.NewError(409, "product is out of stock")
	ErrPaymentNotCompleted    = response.NewError(400, "payment is not completed")
	ErrPaymentAlreadyUsed     = response.NewError(409, "payment has already been used")
	ErrDepositAlreadyCredited = response.NewError(409, "deposit has already been credited")
	ErrMissingPaymentID       = response.NewError(400, "qris_payment_id is required for qris payment")
)
