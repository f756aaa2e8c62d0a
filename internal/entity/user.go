package entity

import "time"

// Profile mirrors the account record managed by the external auth service.
// Only the balance is mutated here, by deposits and balance purchases.
type Profile struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	Balance   float64   `db:"balance"`
	IsAdmin   bool      `db:"is_admin"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type UserLoginData struct {
	ID      string
	Email   string
	Name    string
	IsAdmin bool
}
