package service

import (
	"context"

	"github.com/navidsh/marketplace-api/internal/model"
	"github.com/navidsh/marketplace-api/internal/repository"
)

// ReviewService implements review creation and listing.
type ReviewService struct {
	Reviews  ReviewStore
	Products ProductStore
}

func NewReviewService(reviews ReviewStore, products ProductStore) *ReviewService {
	return &ReviewService{Reviews: reviews, Products: products}
}

// Create stores a review for a product.  Rating and comment are
// required, the product must exist, and a second review by the same
// user on the same product is rejected with a conflict.  The uniqueness
// rule is a lookup before the insert, not a storage constraint.
func (s *ReviewService) Create(ctx context.Context, userID, productID uint64, rating *int, comment string) (model.Review, error) {
	if productID == 0 {
		return model.Review{}, errValidation("product id is required")
	}
	if rating == nil || comment == "" {
		return model.Review{}, errValidation("rating and comment are required")
	}
	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		if err == repository.ErrProductNotFound {
			return model.Review{}, errNotFound("product not found")
		}
		return model.Review{}, err
	}
	if _, err := s.Reviews.GetByProductAndUser(ctx, productID, userID); err == nil {
		return model.Review{}, errConflict("you already reviewed this product")
	} else if err != repository.ErrReviewNotFound {
		return model.Review{}, err
	}
	rv := model.Review{ProductID: productID, UserID: userID, Rating: *rating, Comment: comment}
	if _, err := s.Reviews.Create(ctx, &rv); err != nil {
		return model.Review{}, err
	}
	return rv, nil
}

// List returns a product's reviews newest first, each carrying the
// reviewer's display name only.
func (s *ReviewService) List(ctx context.Context, productID uint64) ([]model.ReviewWithUser, error) {
	if productID == 0 {
		return nil, errValidation("product id is required")
	}
	return s.Reviews.ListByProduct(ctx, productID)
}
