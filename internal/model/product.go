package model

import "time"

// DefaultProductImage is used when a listing is created without an image URL.
const DefaultProductImage = "https://via.placeholder.com/150"

// Product represents a single-unit listing in the `products` table.  A
// product is owned by exactly one seller for its entire lifetime; a
// purchase never transfers ownership, it only sets the buyer reference
// and flips the sold flag.
//
// Invariant: Sold is true if and only if BuyerID is non-nil, and once
// Sold becomes true it never reverts.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – listing title.
//  Image       – image URL, defaults to DefaultProductImage.
//  Price       – non-negative asking price.
//  Location    – where the item is located.
//  Description – free-form listing text.
//  Category    – category label.
//  SellerID    – owning user, immutable after creation.
//  BuyerID     – purchasing user, set exactly once on purchase.
//  Sold        – whether the purchase transition has happened.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Product struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	Price       float64   `json:"price"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	SellerID    uint64    `json:"seller_id"`
	BuyerID     *uint64   `json:"buyer_id"`
	Sold        bool      `json:"sold"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserRef is the subset of user fields exposed when a product response
// embeds its seller or buyer.  Only name and email are ever populated.
type UserRef struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProductWithSeller is a product annotated with its seller's public fields.
// Returned by the list, detail and purchased-products queries.
type ProductWithSeller struct {
	Product
	Seller UserRef `json:"seller"`
}

// ProductWithBuyer is a product annotated with its buyer when sold.
// Returned by the seller's own-listings query.
type ProductWithBuyer struct {
	Product
	Buyer *UserRef `json:"buyer,omitempty"`
}
