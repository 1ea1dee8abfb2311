package model

import "time"

// User represents an application user record as stored in the `users`
// table.  The password hash is excluded from JSON so it can never leak
// through a response body; handlers serialize these structs directly.
type User struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SellerReport is one row of the admin report: a seller together with
// every product they have listed, sold or not.
type SellerReport struct {
	User
	Products []ProductWithBuyer `json:"products"`
}

// BuyerReport is one row of the admin report: a buyer together with the
// products they have purchased, in purchase order.
type BuyerReport struct {
	User
	PurchasedProducts []ProductWithSeller `json:"purchased_products"`
}

// AdminReport groups all sellers and buyers with their products.  Only
// admins may request it.
type AdminReport struct {
	Sellers []SellerReport `json:"sellers"`
	Buyers  []BuyerReport  `json:"buyers"`
}
