package entity

import "time"

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type PromoCode struct {
	ID            string       `db:"id"`
	Code          string       `db:"code"`
	DiscountType  DiscountType `db:"discount_type"`
	DiscountValue float64      `db:"discount_value"`
	IsActive      bool         `db:"is_active"`
	MinPurchase   float64      `db:"min_purchase"`
	MaxUsage      *int         `db:"max_usage"`
	CurrentUsage  int          `db:"current_usage"`
	ValidUntil    *time.Time   `db:"valid_until"`
	CreatedAt     time.Time    `db:"created_at"`
}
