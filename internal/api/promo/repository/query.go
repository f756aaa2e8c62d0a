package promoRepository

const (
	queryGetActiveByCode = `
		SELECT id, code, discount_type, discount_value, is_active, min_purchase,
		       max_usage, current_usage, valid_until, created_at
		FROM promo_codes
		WHERE code = :code AND is_active = TRUE
	`

	queryIncrementUsage = `
		UPDATE promo_codes
		SET current_usage = current_usage + 1
		WHERE id = :id
	`
)
