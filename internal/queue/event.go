// Package queue defines message payloads exchanged over the broker, the
// publisher that emits them and the background consumer that records them.
package queue

// ProductSoldEvent is published when the purchase transition commits.
// It carries enough information for downstream consumers to log or
// notify without querying the primary database.
type ProductSoldEvent struct {
	ProductID uint64  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	SellerID  uint64  `json:"seller_id"`
	BuyerID   uint64  `json:"buyer_id"`
	SoldAt    string  `json:"sold_at"`
}
