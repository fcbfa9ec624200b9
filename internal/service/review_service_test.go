package service

import (
	"context"
	"testing"

	"github.com/avelichko/gallery-market/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReviewFixture(t *testing.T) (*reviewService, *cartService, *fakeArtworkRepo, *fakeUserRepo) {
	t.Helper()
	artworks := newFakeArtworkRepo()
	orders := newFakeOrderRepo(artworks)
	users := newFakeUserRepo()
	cart := &cartService{
		orders:   orders,
		artworks: artworks,
		minTotal: decimal.Zero,
		now:      fixedNow,
	}
	svc := &reviewService{
		reviews:  newFakeReviewRepo(),
		orders:   orders,
		artworks: artworks,
		users:    users,
	}
	return svc, cart, artworks, users
}

func seedSeller(t *testing.T, users *fakeUserRepo) *model.User {
	t.Helper()
	u := &model.User{
		Email:    "seller@example.com",
		Username: "seller",
		Role:     model.RoleSeller,
		IsActive: true,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestCreateReviewRecomputesSellerRating(t *testing.T) {
	svc, cart, artworks, users := newReviewFixture(t)
	seller := seedSeller(t, users)

	first := paidOrderFrom(t, cart, artworks, seller.ID, 2)
	_, err := svc.Create(context.Background(), first.ID, 2, 5, nil)
	require.NoError(t, err)

	u, err := users.FindByID(context.Background(), seller.ID)
	require.NoError(t, err)
	assert.Equal(t, "5.00", u.Rating.StringFixed(2))

	second := paidOrderFrom(t, cart, artworks, seller.ID, 3)
	_, err = svc.Create(context.Background(), second.ID, 3, 2, nil)
	require.NoError(t, err)

	u, err = users.FindByID(context.Background(), seller.ID)
	require.NoError(t, err)
	assert.Equal(t, "3.50", u.Rating.StringFixed(2))
}

// paidOrderFrom mirrors paidOrder but lets the test pick both parties.
func paidOrderFrom(t *testing.T, cart *cartService, artworks *fakeArtworkRepo, sellerID, buyerID uint64) model.Order {
	t.Helper()
	a := seedArtwork(t, artworks, sellerID, "20000", 0)
	_, err := cart.Add(context.Background(), a.ID, buyerID, CartOptions{})
	require.NoError(t, err)
	result, err := cart.Confirm(context.Background(), buyerID, model.PaymentMethodCard)
	require.NoError(t, err)
	require.Len(t, result.Confirmed, 1)
	return result.Confirmed[0]
}

func TestCreateReviewRejectsUnpaidOrder(t *testing.T) {
	svc, cart, artworks, users := newReviewFixture(t)
	seller := seedSeller(t, users)
	a := seedArtwork(t, artworks, seller.ID, "20000", 0)
	line, err := cart.Add(context.Background(), a.ID, 2, CartOptions{})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), line.ID, 2, 5, nil)
	assert.Error(t, err)
}

func TestCreateReviewOncePerOrder(t *testing.T) {
	svc, cart, artworks, users := newReviewFixture(t)
	seller := seedSeller(t, users)
	order := paidOrderFrom(t, cart, artworks, seller.ID, 2)

	_, err := svc.Create(context.Background(), order.ID, 2, 4, nil)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), order.ID, 2, 1, nil)
	assert.ErrorIs(t, err, ErrReviewExists)
}

func TestCreateReviewBuyerOnly(t *testing.T) {
	svc, cart, artworks, users := newReviewFixture(t)
	seller := seedSeller(t, users)
	order := paidOrderFrom(t, cart, artworks, seller.ID, 2)

	_, err := svc.Create(context.Background(), order.ID, 9, 4, nil)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateReviewValidatesRating(t *testing.T) {
	svc, cart, artworks, users := newReviewFixture(t)
	seller := seedSeller(t, users)
	order := paidOrderFrom(t, cart, artworks, seller.ID, 2)

	_, err := svc.Create(context.Background(), order.ID, 2, 0, nil)
	assert.Error(t, err)
	_, err = svc.Create(context.Background(), order.ID, 2, 6, nil)
	assert.Error(t, err)
}

func TestApproveIsIdempotent(t *testing.T) {
	svc, cart, artworks, users := newReviewFixture(t)
	seller := seedSeller(t, users)
	order := paidOrderFrom(t, cart, artworks, seller.ID, 2)

	rv, err := svc.Create(context.Background(), order.ID, 2, 4, nil)
	require.NoError(t, err)
	assert.False(t, rv.IsApproved)

	rv, err = svc.Approve(context.Background(), rv.ID)
	require.NoError(t, err)
	assert.True(t, rv.IsApproved)

	rv, err = svc.Approve(context.Background(), rv.ID)
	require.NoError(t, err)
	assert.True(t, rv.IsApproved)
}
