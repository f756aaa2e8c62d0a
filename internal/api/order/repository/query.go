package orderRepository

const (
	queryCreateOrder = `
		INSERT INTO orders (id, user_id, product_id, amount, status, qris_payment_id, created_at)
		VALUES (:id, :user_id, :product_id, :amount, :status, :qris_payment_id, :created_at)
	`

	queryGetOrderByPaymentID = `
		SELECT id, user_id, product_id, amount, status, qris_payment_id, created_at
		FROM orders
		WHERE qris_payment_id = :qris_payment_id
	`

	queryListOrdersByUser = `
		SELECT o.id, o.user_id, o.product_id, o.amount, o.status, o.qris_payment_id, o.created_at,
		       p.name AS product_name, i.email, i.password
		FROM orders o
		JOIN products p ON p.id = o.product_id
		LEFT JOIN product_inventory i ON i.order_id = o.id
		WHERE o.user_id = :user_id
		ORDER BY o.created_at DESC
	`

	queryDecrementStock = `
		UPDATE products
		SET stock = stock - 1
		WHERE id = :id AND stock > 0
	`

	queryClaimInventoryItem = `
		UPDATE product_inventory
		SET is_sold = TRUE, order_id = :order_id
		WHERE id = (
			SELECT id FROM product_inventory
			WHERE product_id = :product_id AND is_sold = FALSE
			ORDER BY created_at
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, product_id, email, password, is_sold, order_id, created_at
	`

	queryDebitBalance = `
		UPDATE profiles
		SET balance = balance - :amount, updated_at = NOW()
		WHERE id = :id AND balance >= :amount
	`

	queryCreditBalance = `
		UPDATE profiles
		SET balance = balance + :amount, updated_at = NOW()
		WHERE id = :id
	`

	queryCreateDeposit = `
		INSERT INTO deposits (id, user_id, amount, status, qris_payment_id, created_at)
		VALUES (:id, :user_id, :amount, :status, :qris_payment_id, :created_at)
	`

	queryGetDepositByPaymentID = `
		SELECT id, user_id, amount, status, qris_payment_id, created_at
		FROM deposits
		WHERE qris_payment_id = :qris_payment_id
	`
)
