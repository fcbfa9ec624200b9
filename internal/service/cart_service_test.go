package service

import (
	"context"
	"testing"
	"time"

	"github.com/avelichko/gallery-market/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
}

func newCartFixture(minTotal string) (*cartService, *fakeArtworkRepo, *fakeOrderRepo) {
	artworks := newFakeArtworkRepo()
	orders := newFakeOrderRepo(artworks)
	svc := &cartService{
		orders:   orders,
		artworks: artworks,
		minTotal: decimal.RequireFromString(minTotal),
		now:      fixedNow,
	}
	return svc, artworks, orders
}

func seedArtwork(t *testing.T, artworks *fakeArtworkRepo, sellerID uint64, price string, listedDaysAgo int) *model.Artwork {
	t.Helper()
	a := &model.Artwork{
		SellerID:    sellerID,
		Title:       "Untitled",
		Description: "oil on canvas",
		Price:       decimal.RequireFromString(price),
		Status:      model.ArtworkStatusActive,
		CreatedAt:   fixedNow().AddDate(0, 0, -listedDaysAgo),
	}
	require.NoError(t, artworks.Create(context.Background(), a))
	// Create stamps CreatedAt only when zero, but keep it explicit.
	a.CreatedAt = fixedNow().AddDate(0, 0, -listedDaysAgo)
	artworks.artworks[a.ID] = *a
	return a
}

func TestAddRejectsSelfPurchase(t *testing.T) {
	svc, artworks, _ := newCartFixture("0")
	a := seedArtwork(t, artworks, 1, "20000", 0)

	_, err := svc.Add(context.Background(), a.ID, 1, CartOptions{})
	assert.ErrorIs(t, err, ErrSelfPurchase)
}

func TestAddRejectsUnavailableArtwork(t *testing.T) {
	svc, artworks, _ := newCartFixture("0")
	a := seedArtwork(t, artworks, 1, "20000", 0)
	require.NoError(t, artworks.SetStatus(context.Background(), a.ID, model.ArtworkStatusSold))

	_, err := svc.Add(context.Background(), a.ID, 2, CartOptions{})
	assert.ErrorIs(t, err, ErrArtworkUnavailable)
}

func TestAddRejectsSecondReservation(t *testing.T) {
	svc, artworks, _ := newCartFixture("0")
	a := seedArtwork(t, artworks, 1, "20000", 0)

	_, err := svc.Add(context.Background(), a.ID, 2, CartOptions{})
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), a.ID, 3, CartOptions{})
	assert.ErrorIs(t, err, ErrArtworkReserved)
}

func TestAddSnapshotsDiscountedPrice(t *testing.T) {
	svc, artworks, _ := newCartFixture("0")
	// Listed 100 days ago: 20% off.
	a := seedArtwork(t, artworks, 1, "1000.00", 100)

	order, err := svc.Add(context.Background(), a.ID, 2, CartOptions{})
	require.NoError(t, err)
	assert.Equal(t, "800.00", order.Price.StringFixed(2))
	assert.Equal(t, "800.00", order.TotalPrice.StringFixed(2))

	// A later price change must not touch the snapshot.
	a.Price = decimal.RequireFromString("9999.00")
	require.NoError(t, artworks.Save(context.Background(), a))
	stored, err := svc.orders.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "800.00", stored.Price.StringFixed(2))
}

func TestAddComputesShippingAndInsurance(t *testing.T) {
	svc, artworks, _ := newCartFixture("0")
	a := seedArtwork(t, artworks, 1, "1000.00", 0)

	order, err := svc.Add(context.Background(), a.ID, 2, CartOptions{
		ShippingMethod: model.ShippingCourier,
		Insurance:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, "500.00", order.ShippingCost.StringFixed(2))
	assert.Equal(t, "20.00", order.InsuranceCost.StringFixed(2))
	assert.Equal(t, "1520.00", order.TotalPrice.StringFixed(2))
}

func TestRemoveIsOwnerOnly(t *testing.T) {
	svc, artworks, _ := newCartFixture("0")
	a := seedArtwork(t, artworks, 1, "20000", 0)
	order, err := svc.Add(context.Background(), a.ID, 2, CartOptions{})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Remove(context.Background(), order.ID, 3), ErrForbidden)
	assert.NoError(t, svc.Remove(context.Background(), order.ID, 2))

	// The slot is free again.
	_, err = svc.Add(context.Background(), a.ID, 3, CartOptions{})
	assert.NoError(t, err)
}

func TestCheckoutDropsUnavailableLines(t *testing.T) {
	svc, artworks, orders := newCartFixture("0")
	a := seedArtwork(t, artworks, 1, "20000", 0)
	b := seedArtwork(t, artworks, 1, "30000", 0)
	_, err := svc.Add(context.Background(), a.ID, 2, CartOptions{})
	require.NoError(t, err)
	lineB, err := svc.Add(context.Background(), b.ID, 2, CartOptions{})
	require.NoError(t, err)

	require.NoError(t, artworks.SetStatus(context.Background(), b.ID, model.ArtworkStatusArchived))

	_, err = svc.Checkout(context.Background(), 2)
	require.ErrorIs(t, err, ErrArtworkUnavailable)

	// The stale line is gone; the valid one survives.
	_, err = orders.FindByID(context.Background(), lineB.ID)
	assert.Error(t, err)
	lines, _, err := svc.List(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	// A retry with only valid lines passes.
	summary, err := svc.Checkout(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, summary.Lines, 1)
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _, _ := newCartFixture("0")
	_, err := svc.Checkout(context.Background(), 2)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutBelowMinimumKeepsCart(t *testing.T) {
	svc, artworks, _ := newCartFixture("15000.00")
	a := seedArtwork(t, artworks, 1, "10000", 0)
	_, err := svc.Add(context.Background(), a.ID, 2, CartOptions{})
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), 2)
	require.ErrorIs(t, err, ErrBelowMinimum)

	// Nothing was deleted; the buyer can keep shopping.
	lines, total, err := svc.List(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.Equal(t, "10000.00", total.StringFixed(2))
}

func TestConfirmSellsArtworksAndCreatesPayments(t *testing.T) {
	svc, artworks, orders := newCartFixture("0")
	a := seedArtwork(t, artworks, 1, "20000", 0)
	b := seedArtwork(t, artworks, 1, "30000", 0)
	_, err := svc.Add(context.Background(), a.ID, 2, CartOptions{})
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), b.ID, 2, CartOptions{})
	require.NoError(t, err)

	result, err := svc.Confirm(context.Background(), 2, "")
	require.NoError(t, err)
	require.Len(t, result.Confirmed, 2)
	require.Len(t, result.Payments, 2)

	for _, o := range result.Confirmed {
		assert.Equal(t, model.OrderStatusPaid, o.Status)
		assert.Nil(t, o.CartSlot)
		art, err := artworks.FindByID(context.Background(), o.ArtworkID)
		require.NoError(t, err)
		assert.Equal(t, model.ArtworkStatusSold, art.Status)
		p := orders.payments[o.ID]
		assert.Equal(t, model.PaymentMethodCard, p.Method)
		assert.True(t, p.Amount.Equal(o.TotalPrice))
		assert.NotEmpty(t, p.TransactionID)
	}

	// The cart is now empty and a sold artwork cannot be re-reserved.
	_, err = svc.Checkout(context.Background(), 2)
	assert.ErrorIs(t, err, ErrEmptyCart)
	_, err = svc.Add(context.Background(), a.ID, 3, CartOptions{})
	assert.ErrorIs(t, err, ErrArtworkUnavailable)
}

func TestExpireStaleDeletesOldCartLines(t *testing.T) {
	svc, artworks, orders := newCartFixture("0")
	a := seedArtwork(t, artworks, 1, "20000", 0)
	b := seedArtwork(t, artworks, 1, "30000", 0)

	old, err := svc.Add(context.Background(), a.ID, 2, CartOptions{})
	require.NoError(t, err)
	stored := orders.orders[old.ID]
	stored.CreatedAt = fixedNow().AddDate(0, 0, -8)
	orders.orders[old.ID] = stored

	fresh, err := svc.Add(context.Background(), b.ID, 2, CartOptions{})
	require.NoError(t, err)

	n, err := svc.ExpireStale(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = orders.FindByID(context.Background(), old.ID)
	assert.Error(t, err)
	_, err = orders.FindByID(context.Background(), fresh.ID)
	assert.NoError(t, err)
}
