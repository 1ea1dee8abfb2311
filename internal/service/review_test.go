package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/navidsh/marketplace-api/internal/model"
)

func newReviewService(db *memDB) *ReviewService {
	return NewReviewService(db.reviewStore(), db.productStore())
}

func TestCreateReviewValidation(t *testing.T) {
	db := newMemDB()
	seller := db.addUser("Sam", "sam@example.com", model.RoleSeller)
	buyer := db.addUser("Bea", "bea@example.com", model.RoleBuyer)
	p := db.addProduct(seller.ID, "Lamp", 100)
	svc := newReviewService(db)

	_, err := svc.Create(context.Background(), buyer.ID, 0, intPtr(5), "great")
	require.Equal(t, KindValidation, KindOf(err))

	_, err = svc.Create(context.Background(), buyer.ID, p.ID, nil, "great")
	require.Equal(t, KindValidation, KindOf(err))

	_, err = svc.Create(context.Background(), buyer.ID, p.ID, intPtr(5), "")
	require.Equal(t, KindValidation, KindOf(err))
}

func TestCreateReviewProductNotFound(t *testing.T) {
	db := newMemDB()
	buyer := db.addUser("Bea", "bea@example.com", model.RoleBuyer)
	svc := newReviewService(db)

	_, err := svc.Create(context.Background(), buyer.ID, 42, intPtr(5), "great")
	require.Equal(t, KindNotFound, KindOf(err))
}

func TestCreateReviewOncePerUser(t *testing.T) {
	db := newMemDB()
	seller := db.addUser("Sam", "sam@example.com", model.RoleSeller)
	buyer := db.addUser("Bea", "bea@example.com", model.RoleBuyer)
	other := db.addUser("Ben", "ben@example.com", model.RoleBuyer)
	p := db.addProduct(seller.ID, "Lamp", 100)
	svc := newReviewService(db)

	rv, err := svc.Create(context.Background(), buyer.ID, p.ID, intPtr(5), "great lamp")
	require.NoError(t, err)
	require.NotZero(t, rv.ID)
	require.Equal(t, 5, rv.Rating)

	// Same user, same product: rejected even with different content.
	_, err = svc.Create(context.Background(), buyer.ID, p.ID, intPtr(1), "changed my mind")
	require.Equal(t, KindConflict, KindOf(err))

	// A different user may still review it.
	_, err = svc.Create(context.Background(), other.ID, p.ID, intPtr(3), "it is fine")
	require.NoError(t, err)

	got, err := svc.List(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestListReviewsNewestFirstWithNames(t *testing.T) {
	db := newMemDB()
	seller := db.addUser("Sam", "sam@example.com", model.RoleSeller)
	first := db.addUser("Bea", "bea@example.com", model.RoleBuyer)
	second := db.addUser("Ben", "ben@example.com", model.RoleBuyer)
	p := db.addProduct(seller.ID, "Lamp", 100)
	svc := newReviewService(db)

	_, err := svc.Create(context.Background(), first.ID, p.ID, intPtr(4), "nice")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), second.ID, p.ID, intPtr(2), "meh")
	require.NoError(t, err)

	got, err := svc.List(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Ben", got[0].UserName)
	require.Equal(t, "Bea", got[1].UserName)

	_, err = svc.List(context.Background(), 0)
	require.Equal(t, KindValidation, KindOf(err))
}
