package product

import "time"

type ListProductsQuery struct {
	Category   string `query:"category"`
	BestSeller bool   `query:"best_seller"`
}

type ProductResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Category     string    `json:"category"`
	ImageURL     string    `json:"image_url"`
	IsBestSeller bool      `json:"is_best_seller"`
	Stock        int       `json:"stock"`
	CreatedAt    time.Time `json:"created_at"`
}

type BannerResponse struct {
	ID         string `json:"id"`
	ImageURL   string `json:"image_url"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index"`
}

type UploadImageResponse struct {
	ImageURL string `json:"image_url"`
}
