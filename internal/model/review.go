package model

import "time"

// Review records a user's rating and comment on a product.  At most one
// review may exist per (product, user) pair; the service layer enforces
// this with a lookup before every insert.  Reviews are never updated or
// deleted.
type Review struct {
	ID        uint64    `json:"id"`
	ProductID uint64    `json:"product_id"`
	UserID    uint64    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewWithUser is a review annotated with the reviewer's display name.
// No other user field is exposed through the review listing.
type ReviewWithUser struct {
	Review
	UserName string `json:"user_name"`
}
