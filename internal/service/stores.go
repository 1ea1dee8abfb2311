package service

import (
	"context"

	"github.com/navidsh/marketplace-api/internal/model"
	"github.com/navidsh/marketplace-api/internal/queue"
)

// Caller identifies the authenticated user on whose behalf an operation
// runs.  Middleware extracts it from the session token; handlers pass it
// down unchanged.
type Caller struct {
	ID   uint64
	Role model.Role
}

// UserStore is the persistence contract the services need for users and
// their append-only purchase list.  *repository.UserRepo satisfies it.
type UserStore interface {
	Create(ctx context.Context, name, email, phone, passwordHash string, role model.Role) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	UpdateProfile(ctx context.Context, id uint64, name, phone *string) error
	Delete(ctx context.Context, id uint64) error
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
	AddPurchase(ctx context.Context, userID, productID uint64) error
}

// ProductStore is the persistence contract for products.  MarkSold must
// be a conditional claim: it succeeds for exactly one caller per product
// and returns repository.ErrAlreadySold for everyone else.
// *repository.ProductRepo satisfies it.
type ProductStore interface {
	Create(ctx context.Context, p *model.Product) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.Product, error)
	GetWithSeller(ctx context.Context, id uint64) (model.ProductWithSeller, error)
	ListAll(ctx context.Context) ([]model.ProductWithSeller, error)
	SearchByName(ctx context.Context, name string) ([]model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id uint64) error
	MarkSold(ctx context.Context, productID, buyerID uint64) error
	ListBySeller(ctx context.Context, sellerID uint64) ([]model.ProductWithBuyer, error)
	ListPurchasedBy(ctx context.Context, userID uint64) ([]model.ProductWithSeller, error)
}

// ReviewStore is the persistence contract for reviews.
// *repository.ReviewRepo satisfies it.
type ReviewStore interface {
	Create(ctx context.Context, rv *model.Review) (uint64, error)
	GetByProductAndUser(ctx context.Context, productID, userID uint64) (model.Review, error)
	ListByProduct(ctx context.Context, productID uint64) ([]model.ReviewWithUser, error)
}

// EventPublisher emits domain events to the message broker.  Publishing
// is best effort; a broker outage must never fail the request that
// triggered the event.
type EventPublisher interface {
	PublishProductSold(ctx context.Context, ev queue.ProductSoldEvent) error
}
