package payment

import "time"

type CreatePaymentRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Type        string  `json:"type" validate:"required,oneof=deposit purchase"`
	ReferenceID *string `json:"reference_id,omitempty"`
}

type PaymentResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	QRISCode    string    `json:"qris_code"`
	QRISURL     string    `json:"qris_url"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	ReferenceID *string   `json:"reference_id,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type StatusResponse struct {
	Status        string `json:"status"`
	RemainingTime string `json:"remaining_time"`
}

// WatchUpdate is one frame pushed over the payment watch socket.
type WatchUpdate struct {
	Status        string `json:"status"`
	RemainingTime string `json:"remaining_time"`
}
