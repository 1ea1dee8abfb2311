package service

import (
	"context"
	"log"
	"time"

	"github.com/navidsh/marketplace-api/internal/model"
	"github.com/navidsh/marketplace-api/internal/queue"
	"github.com/navidsh/marketplace-api/internal/repository"
)

// ProductService implements the product lifecycle rules and the purchase
// transition.  Events is optional; when nil no sold events are emitted.
type ProductService struct {
	Products ProductStore
	Users    UserStore
	Events   EventPublisher
}

func NewProductService(products ProductStore, users UserStore, events EventPublisher) *ProductService {
	return &ProductService{Products: products, Users: users, Events: events}
}

// CreateProductInput carries a new listing.  Price is a pointer so that
// an absent price is distinguishable from a zero one.
type CreateProductInput struct {
	Name        string
	Image       string
	Price       *float64
	Location    string
	Description string
	Category    string
}

// UpdateProductInput carries a partial update.  A nil field means "not
// supplied" and leaves the stored value untouched; this replaces the
// old treat-falsy-as-absent rule, so a price can be updated to zero.
type UpdateProductInput struct {
	Name        *string
	Image       *string
	Price       *float64
	Location    *string
	Description *string
	Category    *string
}

// Create validates the listing and persists it for the calling seller.
// Only seller-role users may create products.
func (s *ProductService) Create(ctx context.Context, caller Caller, in CreateProductInput) (model.Product, error) {
	if in.Name == "" || in.Price == nil || in.Location == "" || in.Description == "" {
		return model.Product{}, errValidation("please fill in all fields")
	}
	if *in.Price < 0 {
		return model.Product{}, errValidation("price must not be negative")
	}
	if !caller.Role.CanSell() {
		return model.Product{}, errForbidden("only sellers can create products")
	}
	if in.Image == "" {
		in.Image = model.DefaultProductImage
	}
	p := model.Product{
		Name:        in.Name,
		Image:       in.Image,
		Price:       *in.Price,
		Location:    in.Location,
		Description: in.Description,
		Category:    in.Category,
		SellerID:    caller.ID,
	}
	if _, err := s.Products.Create(ctx, &p); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// Get returns a product with its seller populated.
func (s *ProductService) Get(ctx context.Context, id uint64) (model.ProductWithSeller, error) {
	p, err := s.Products.GetWithSeller(ctx, id)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return model.ProductWithSeller{}, errNotFound("product not found")
		}
		return model.ProductWithSeller{}, err
	}
	return p, nil
}

// List returns all products with seller details.
func (s *ProductService) List(ctx context.Context) ([]model.ProductWithSeller, error) {
	return s.Products.ListAll(ctx)
}

// Search returns products whose name contains the substring, ignoring
// case.  An empty substring matches everything.
func (s *ProductService) Search(ctx context.Context, name string) ([]model.Product, error) {
	return s.Products.SearchByName(ctx, name)
}

// Update applies the supplied fields to a listing.  Only the owning
// seller may update it; a sold product can still be edited.
func (s *ProductService) Update(ctx context.Context, caller Caller, productID uint64, in UpdateProductInput) (model.Product, error) {
	p, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return model.Product{}, errNotFound("product not found")
		}
		return model.Product{}, err
	}
	if p.SellerID != caller.ID {
		return model.Product{}, errForbidden("you can only update your own products")
	}
	if in.Price != nil && *in.Price < 0 {
		return model.Product{}, errValidation("price must not be negative")
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Location != nil {
		p.Location = *in.Location
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if err := s.Products.Update(ctx, p); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// Delete permanently removes a listing.  Only the owning seller may
// delete it.
func (s *ProductService) Delete(ctx context.Context, caller Caller, productID uint64) error {
	p, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return errNotFound("product not found")
		}
		return err
	}
	if p.SellerID != caller.ID {
		return errForbidden("you can only delete your own products")
	}
	if err := s.Products.Delete(ctx, productID); err != nil {
		if err == repository.ErrProductNotFound {
			return errNotFound("product not found")
		}
		return err
	}
	return nil
}

// Buy performs the one-way purchase transition.  The product is claimed
// with a conditional update so that under concurrent attempts exactly
// one buyer wins; everyone else gets a conflict and the state is left
// unchanged.  Repeated attempts on a sold product are rejected the same
// way.  Any authenticated user may buy.
func (s *ProductService) Buy(ctx context.Context, caller Caller, productID uint64) (model.Product, error) {
	if productID == 0 {
		return model.Product{}, errValidation("product id is required")
	}
	p, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return model.Product{}, errNotFound("product not found")
		}
		return model.Product{}, err
	}
	if _, err := s.Users.GetByID(ctx, caller.ID); err != nil {
		if err == repository.ErrUserNotFound {
			return model.Product{}, errNotFound("user not found")
		}
		return model.Product{}, err
	}
	if p.Sold {
		return model.Product{}, errConflict("product is already sold")
	}
	// The sold flag is re-checked atomically here; the early check above
	// only short-circuits the common case.
	if err := s.Products.MarkSold(ctx, productID, caller.ID); err != nil {
		switch err {
		case repository.ErrAlreadySold:
			return model.Product{}, errConflict("product is already sold")
		case repository.ErrProductNotFound:
			return model.Product{}, errNotFound("product not found")
		}
		return model.Product{}, err
	}
	if err := s.Users.AddPurchase(ctx, caller.ID, productID); err != nil {
		return model.Product{}, err
	}
	buyerID := caller.ID
	p.Sold = true
	p.BuyerID = &buyerID

	if s.Events != nil {
		ev := queue.ProductSoldEvent{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			SellerID:  p.SellerID,
			BuyerID:   buyerID,
			SoldAt:    time.Now().UTC().Format(time.RFC3339),
		}
		if err := s.Events.PublishProductSold(ctx, ev); err != nil {
			log.Printf("product sold event not published: %v", err)
		}
	}
	return p, nil
}
