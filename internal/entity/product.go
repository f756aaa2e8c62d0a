package entity

import "time"

type Product struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Description  string    `db:"description"`
	Price        float64   `db:"price"`
	Category     string    `db:"category"`
	ImageURL     string    `db:"image_url"`
	IsBestSeller bool      `db:"is_best_seller"`
	Stock        int       `db:"stock"`
	CreatedAt    time.Time `db:"created_at"`
}

type Banner struct {
	ID         string    `db:"id"`
	ImageURL   string    `db:"image_url"`
	Title      string    `db:"title"`
	OrderIndex int       `db:"order_index"`
	IsActive   bool      `db:"is_active"`
	CreatedAt  time.Time `db:"created_at"`
}

// InventoryItem is one sellable digital credential attached to a product.
// A row is claimed (is_sold + order_id) exactly once, at fulfillment.
type InventoryItem struct {
	ID        string    `db:"id"`
	ProductID string    `db:"product_id"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	IsSold    bool      `db:"is_sold"`
	OrderID   *string   `db:"order_id"`
	CreatedAt time.Time `db:"created_at"`
}
