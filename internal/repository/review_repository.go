package repository

import (
	"context"
	"database/sql"

	"github.com/navidsh/marketplace-api/internal/model"
)

// ReviewRepo provides access to the reviews table.  There is no unique
// index on (product_id, user_id); the one-review-per-pair rule is a
// lookup-before-insert check done by the service through
// GetByProductAndUser.
type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

// Create inserts a review and returns its ID.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO reviews (product_id, user_id, rating, comment) VALUES (?,?,?,?)",
		rv.ProductID, rv.UserID, rv.Rating, rv.Comment)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	rv.ID = uint64(id)
	return rv.ID, nil
}

// GetByProductAndUser fetches the review a user left on a product, or
// ErrReviewNotFound when none exists.
func (r *ReviewRepo) GetByProductAndUser(ctx context.Context, productID, userID uint64) (model.Review, error) {
	var rv model.Review
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,product_id,user_id,rating,comment,created_at FROM reviews WHERE product_id=? AND user_id=? LIMIT 1",
		productID, userID).
		Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt)
	if err == sql.ErrNoRows {
		return rv, ErrReviewNotFound
	}
	return rv, err
}

// ListByProduct returns a product's reviews newest first, each annotated
// with the reviewing user's display name only.
func (r *ReviewRepo) ListByProduct(ctx context.Context, productID uint64) ([]model.ReviewWithUser, error) {
	const q = `SELECT r.id, r.product_id, r.user_id, r.rating, r.comment, r.created_at, u.name
	           FROM reviews r JOIN users u ON u.id = r.user_id
	           WHERE r.product_id=? ORDER BY r.created_at DESC, r.id DESC`
	rows, err := r.DB.QueryContext(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.ReviewWithUser{}
	for rows.Next() {
		var rv model.ReviewWithUser
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UserName); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
