package promo

type ValidatePromoRequest struct {
	Code     string  `json:"code" validate:"required"`
	Subtotal float64 `json:"subtotal" validate:"required,gt=0"`
}

type ValidatePromoResponse struct {
	Code        string  `json:"code"`
	Discount    float64 `json:"discount"`
	FinalAmount float64 `json:"final_amount"`
}
