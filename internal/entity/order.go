package entity

import "time"

const (
	OrderStatusCompleted = "completed"

	DepositStatusCompleted = "completed"
)

type Order struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	ProductID     string    `db:"product_id"`
	Amount        float64   `db:"amount"`
	Status        string    `db:"status"`
	QRISPaymentID *string   `db:"qris_payment_id"`
	CreatedAt     time.Time `db:"created_at"`
}

type Deposit struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	Amount        float64   `db:"amount"`
	Status        string    `db:"status"`
	QRISPaymentID *string   `db:"qris_payment_id"`
	CreatedAt     time.Time `db:"created_at"`
}
