package service

import (
	"context"
	"testing"

	"github.com/avelichko/gallery-market/internal/model"
	"github.com/avelichko/gallery-market/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArtworkFixture() (*artworkService, *fakeArtworkRepo) {
	artworks := newFakeArtworkRepo()
	return &artworkService{artworks: artworks, now: fixedNow}, artworks
}

func validInput() ArtworkInput {
	return ArtworkInput{
		Title:       "Composition VIII",
		Description: "oil on canvas",
		YearCreated: 1923,
		Width:       decimal.NewFromInt(140),
		Height:      decimal.NewFromInt(201),
		Price:       decimal.RequireFromString("250000.00"),
	}
}

func TestCreateArtworkValidation(t *testing.T) {
	svc, _ := newArtworkFixture()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*ArtworkInput)
	}{
		{"empty title", func(in *ArtworkInput) { in.Title = "  " }},
		{"title too long", func(in *ArtworkInput) {
			for len(in.Title) <= 120 {
				in.Title += "x"
			}
		}},
		{"empty description", func(in *ArtworkInput) { in.Description = "" }},
		{"zero price", func(in *ArtworkInput) { in.Price = decimal.Zero }},
		{"negative price", func(in *ArtworkInput) { in.Price = decimal.NewFromInt(-5) }},
		{"width below minimum", func(in *ArtworkInput) { in.Width = decimal.RequireFromString("0.5") }},
		{"year before 1000", func(in *ArtworkInput) { in.YearCreated = 999 }},
		{"year in the future", func(in *ArtworkInput) { in.YearCreated = fixedNow().Year() + 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := svc.Create(ctx, 1, in)
			assert.Error(t, err)
		})
	}
}

func TestCreateArtworkStartsActive(t *testing.T) {
	svc, _ := newArtworkFixture()

	a, err := svc.Create(context.Background(), 1, validInput())
	require.NoError(t, err)
	assert.Equal(t, model.ArtworkStatusActive, a.Status)
	assert.Equal(t, uint64(1), a.SellerID)
}

func TestUpdateArtworkOwnerOrAdmin(t *testing.T) {
	svc, _ := newArtworkFixture()
	a, err := svc.Create(context.Background(), 1, validInput())
	require.NoError(t, err)

	in := validInput()
	in.Title = "Composition IX"

	_, err = svc.Update(context.Background(), a.ID, 2, false, in)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(context.Background(), a.ID, 2, true, in)
	require.NoError(t, err)
	assert.Equal(t, "Composition IX", updated.Title)

	in.Title = "Composition X"
	updated, err = svc.Update(context.Background(), a.ID, 1, false, in)
	require.NoError(t, err)
	assert.Equal(t, "Composition X", updated.Title)
}

func TestOverrideStatusValidatesAndSets(t *testing.T) {
	svc, _ := newArtworkFixture()
	a, err := svc.Create(context.Background(), 1, validInput())
	require.NoError(t, err)

	_, err = svc.OverrideStatus(context.Background(), a.ID, "melted")
	assert.Error(t, err)

	updated, err := svc.OverrideStatus(context.Background(), a.ID, model.ArtworkStatusReserved)
	require.NoError(t, err)
	assert.Equal(t, model.ArtworkStatusReserved, updated.Status)

	_, err = svc.OverrideStatus(context.Background(), 999, model.ArtworkStatusActive)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestArchiveStaleOnlyTouchesActive(t *testing.T) {
	svc, artworks := newArtworkFixture()
	ctx := context.Background()

	old, err := svc.Create(ctx, 1, validInput())
	require.NoError(t, err)
	stored := artworks.artworks[old.ID]
	stored.CreatedAt = fixedNow().AddDate(0, 0, -31)
	artworks.artworks[old.ID] = stored

	oldSold, err := svc.Create(ctx, 1, validInput())
	require.NoError(t, err)
	stored = artworks.artworks[oldSold.ID]
	stored.CreatedAt = fixedNow().AddDate(0, 0, -31)
	stored.Status = model.ArtworkStatusSold
	artworks.artworks[oldSold.ID] = stored

	fresh, err := svc.Create(ctx, 1, validInput())
	require.NoError(t, err)

	n, err := svc.ArchiveStale(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.Equal(t, model.ArtworkStatusArchived, artworks.artworks[old.ID].Status)
	assert.Equal(t, model.ArtworkStatusSold, artworks.artworks[oldSold.ID].Status)
	assert.Equal(t, model.ArtworkStatusActive, artworks.artworks[fresh.ID].Status)

	// A second sweep finds nothing new.
	n, err = svc.ArchiveStale(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestListFiltersBySellerAndStatus(t *testing.T) {
	svc, artworks := newArtworkFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, validInput())
	require.NoError(t, err)
	b, err := svc.Create(ctx, 2, validInput())
	require.NoError(t, err)
	require.NoError(t, artworks.SetStatus(ctx, b.ID, model.ArtworkStatusSold))

	sellerID := uint64(2)
	list, total, err := svc.List(ctx, repository.ArtworkFilter{SellerID: &sellerID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	list, _, err = svc.List(ctx, repository.ArtworkFilter{Status: model.ArtworkStatusActive})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
