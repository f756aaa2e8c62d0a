package entity

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusExpired   PaymentStatus = "expired"
	// Never produced by this service; kept so externally written rows scan.
	PaymentStatusFailed PaymentStatus = "failed"
)

func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusExpired || s == PaymentStatusFailed
}

type PaymentPurpose string

const (
	PaymentPurposeDeposit  PaymentPurpose = "deposit"
	PaymentPurposePurchase PaymentPurpose = "purchase"
)

// QRISPayment is one in-flight or resolved payment attempt. Amount is the
// payable total: base price plus the unique de-duplication fee.
type QRISPayment struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	QRISCode    string         `db:"qris_code"`
	QRISURL     string         `db:"qris_url"`
	Amount      float64        `db:"amount"`
	Type        PaymentPurpose `db:"type"`
	ReferenceID *string        `db:"reference_id"`
	Status      PaymentStatus  `db:"status"`
	CreatedAt   time.Time      `db:"created_at"`
	ExpiresAt   time.Time      `db:"expires_at"`
}
