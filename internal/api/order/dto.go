package order

import "time"

type CreateOrderRequest struct {
	ProductID     string  `json:"product_id" validate:"required"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=balance qris"`
	QRISPaymentID *string `json:"qris_payment_id,omitempty"`
	PromoCode     *string `json:"promo_code,omitempty"`
}

type CredentialResponse struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OrderResponse struct {
	ID          string              `json:"id"`
	ProductID   string              `json:"product_id"`
	ProductName string              `json:"product_name,omitempty"`
	Amount      float64             `json:"amount"`
	Status      string              `json:"status"`
	Credential  *CredentialResponse `json:"credential,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

type CreateDepositRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type DepositResponse struct {
	ID        string    `json:"id"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
