package paymentRepository

const (
	queryCreatePayment = `
		INSERT INTO qris_payments (
			id,
			user_id,
			qris_code,
			qris_url,
			amount,
			type,
			reference_id,
			status,
			created_at,
			expires_at
		) VALUES (
			:id,
			:user_id,
			:qris_code,
			:qris_url,
			:amount,
			:type,
			:reference_id,
			:status,
			:created_at,
			:expires_at
		)
	`

	queryGetPaymentByID = `
		SELECT
			id,
			user_id,
			qris_code,
			qris_url,
			amount,
			type,
			reference_id,
			status,
			created_at,
			expires_at
		FROM qris_payments
		WHERE id = :id
	`

	queryGetPayerEmail = `
		SELECT p.email
		FROM profiles p
		JOIN qris_payments q ON q.user_id = p.id
		WHERE q.id = :id
	`

	queryUpdateStatusFromPending = `
		UPDATE qris_payments
		SET status = :status
		WHERE id = :id
		AND status = 'pending'
	`
)
