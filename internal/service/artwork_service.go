package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/avelichko/gallery-market/internal/model"
	"github.com/avelichko/gallery-market/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	minPrice     = decimal.New(1, -2) // 0.01
	minDimension = decimal.NewFromInt(1)
)

type ArtworkInput struct {
	Title       string
	Description string
	ImageURL    *string
	Style       string
	Medium      string
	YearCreated int
	Width       decimal.Decimal
	Height      decimal.Decimal
	Depth       decimal.NullDecimal
	Price       decimal.Decimal
	ArtistID    *uint64
	CategoryID  *uint64
	IsFramed    bool
	IsCertified bool
}

type ArtworkService interface {
	Create(ctx context.Context, sellerID uint64, in ArtworkInput) (*model.Artwork, error)
	Update(ctx context.Context, id, actorID uint64, admin bool, in ArtworkInput) (*model.Artwork, error)
	Get(ctx context.Context, id uint64) (*model.Artwork, error)
	List(ctx context.Context, f repository.ArtworkFilter) ([]model.Artwork, int64, error)
	Delete(ctx context.Context, id uint64) error
	OverrideStatus(ctx context.Context, id uint64, status model.ArtworkStatus) (*model.Artwork, error)
	ArchiveStale(ctx context.Context, olderThanDays int) (int64, error)
}

type artworkService struct {
	artworks repository.ArtworkRepository
	now      func() time.Time
}

func NewArtworkService(artworks repository.ArtworkRepository) ArtworkService {
	return &artworkService{artworks: artworks, now: time.Now}
}

func validateArtworkInput(in *ArtworkInput, now time.Time) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" || len(in.Title) > 120 {
		return errors.New("invalid title")
	}
	if in.Description == "" {
		return errors.New("invalid description")
	}
	if in.Price.LessThan(minPrice) {
		return errors.New("price must be at least 0.01")
	}
	if in.Width.LessThan(minDimension) || in.Height.LessThan(minDimension) {
		return errors.New("width and height must be at least 1 cm")
	}
	if in.YearCreated < 1000 || in.YearCreated > now.Year() {
		return errors.New("invalid year of creation")
	}
	return nil
}

func (s *artworkService) Create(ctx context.Context, sellerID uint64, in ArtworkInput) (*model.Artwork, error) {
	if err := validateArtworkInput(&in, s.now()); err != nil {
		return nil, err
	}
	a := &model.Artwork{
		SellerID:    sellerID,
		ArtistID:    in.ArtistID,
		CategoryID:  in.CategoryID,
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Style:       in.Style,
		Medium:      in.Medium,
		YearCreated: in.YearCreated,
		Width:       in.Width,
		Height:      in.Height,
		Depth:       in.Depth,
		Price:       in.Price,
		Status:      model.ArtworkStatusActive,
		IsFramed:    in.IsFramed,
		IsCertified: in.IsCertified,
	}
	if err := s.artworks.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *artworkService) Update(ctx context.Context, id, actorID uint64, admin bool, in ArtworkInput) (*model.Artwork, error) {
	a, err := s.artworks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !admin && a.SellerID != actorID {
		return nil, ErrForbidden
	}
	if err := validateArtworkInput(&in, s.now()); err != nil {
		return nil, err
	}
	a.ArtistID = in.ArtistID
	a.CategoryID = in.CategoryID
	a.Title = in.Title
	a.Description = in.Description
	a.ImageURL = in.ImageURL
	a.Style = in.Style
	a.Medium = in.Medium
	a.YearCreated = in.YearCreated
	a.Width = in.Width
	a.Height = in.Height
	a.Depth = in.Depth
	a.Price = in.Price
	a.IsFramed = in.IsFramed
	a.IsCertified = in.IsCertified
	if err := s.artworks.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *artworkService) Get(ctx context.Context, id uint64) (*model.Artwork, error) {
	a, err := s.artworks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *artworkService) List(ctx context.Context, f repository.ArtworkFilter) ([]model.Artwork, int64, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.artworks.List(ctx, f)
}

func (s *artworkService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.artworks.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.artworks.Delete(ctx, id)
}

// OverrideStatus is the administrative escape hatch: the only way out of sold or
// archived, and the way into reserved.
func (s *artworkService) OverrideStatus(ctx context.Context, id uint64, status model.ArtworkStatus) (*model.Artwork, error) {
	if !model.ValidArtworkStatus(status) {
		return nil, errors.New("invalid artwork status")
	}
	if err := s.artworks.SetStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.artworks.FindByID(ctx, id)
}

func (s *artworkService) ArchiveStale(ctx context.Context, olderThanDays int) (int64, error) {
	cutoff := s.now().AddDate(0, 0, -olderThanDays)
	return s.artworks.ArchiveOlderThan(ctx, cutoff)
}
