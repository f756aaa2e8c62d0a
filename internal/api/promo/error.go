package promo

import (
	"waroengg-be/pkg/response"
)

var (
	ErrPromoNotFound    = response.NewError(404, "invalid promo code")
	ErrPromoExpired     = response.NewError(410, "promo code has expired")
	ErrPromoExhausted   = response.NewError(410, "promo code usage limit reached")
	ErrBelowMinPurchase = response.NewError(400, "subtotal is below the minimum purchase for this promo")
)
