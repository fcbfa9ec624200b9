package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/avelichko/gallery-market/internal/model"
	"github.com/avelichko/gallery-market/internal/repository"
	"gorm.io/gorm"
)

type ArtistWithCount struct {
	Artist        model.Artist
	ArtworksCount int64
}

type ArtistService interface {
	Create(ctx context.Context, a *model.Artist) (*model.Artist, error)
	Update(ctx context.Context, id uint64, a *model.Artist) (*model.Artist, error)
	Delete(ctx context.Context, id uint64) error
	Get(ctx context.Context, id uint64) (*ArtistWithCount, error)
	List(ctx context.Context, limit, offset int) ([]ArtistWithCount, int64, error)
}

type artistService struct {
	artists  repository.ArtistRepository
	artworks repository.ArtworkRepository
}

func NewArtistService(artists repository.ArtistRepository, artworks repository.ArtworkRepository) ArtistService {
	return &artistService{artists: artists, artworks: artworks}
}

func validateArtist(a *model.Artist) error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" || len(a.Name) > 100 {
		return errors.New("invalid artist name")
	}
	if a.BirthDate != nil && a.DeathDate != nil && a.DeathDate.Before(*a.BirthDate) {
		return errors.New("death date precedes birth date")
	}
	return nil
}

func (s *artistService) Create(ctx context.Context, a *model.Artist) (*model.Artist, error) {
	if err := validateArtist(a); err != nil {
		return nil, err
	}
	if err := s.artists.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errors.New("artist already exists")
		}
		return nil, err
	}
	return a, nil
}

func (s *artistService) Update(ctx context.Context, id uint64, in *model.Artist) (*model.Artist, error) {
	a, err := s.artists.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := validateArtist(in); err != nil {
		return nil, err
	}
	a.Name = in.Name
	a.Bio = in.Bio
	a.PhotoURL = in.PhotoURL
	a.OfficialSite = in.OfficialSite
	a.BirthDate = in.BirthDate
	a.DeathDate = in.DeathDate
	if err := s.artists.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *artistService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.artists.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.artists.Delete(ctx, id)
}

func (s *artistService) Get(ctx context.Context, id uint64) (*ArtistWithCount, error) {
	a, err := s.artists.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	count, err := s.artworks.CountByArtist(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ArtistWithCount{Artist: *a, ArtworksCount: count}, nil
}

func (s *artistService) List(ctx context.Context, limit, offset int) ([]ArtistWithCount, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	artists, total, err := s.artists.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]ArtistWithCount, 0, len(artists))
	for _, a := range artists {
		count, _ := s.artworks.CountByArtist(ctx, a.ID)
		resp = append(resp, ArtistWithCount{Artist: a, ArtworksCount: count})
	}
	return resp, total, nil
}

// ArtistAge mirrors the catalogue display rule: age at death when dead, current
// age when alive, nil when the birth date is unknown.
func ArtistAge(a *model.Artist, now time.Time) *int {
	if a.BirthDate == nil {
		return nil
	}
	end := now
	if a.DeathDate != nil {
		end = *a.DeathDate
	}
	years := end.Year() - a.BirthDate.Year()
	if end.YearDay() < a.BirthDate.YearDay() {
		years--
	}
	return &years
}

type CategoryWithStats struct {
	Category model.Category
	Stats    repository.CategoryPriceStats
}

type CategoryService interface {
	Create(ctx context.Context, c *model.Category) (*model.Category, error)
	Update(ctx context.Context, id uint64, c *model.Category) (*model.Category, error)
	Delete(ctx context.Context, id uint64) error
	Get(ctx context.Context, id uint64) (*CategoryWithStats, error)
	List(ctx context.Context) ([]CategoryWithStats, error)
}

type categoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) Create(ctx context.Context, c *model.Category) (*model.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" || len(c.Name) > 100 {
		return nil, errors.New("invalid category name")
	}
	if err := s.categories.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errors.New("category already exists")
		}
		return nil, err
	}
	return c, nil
}

func (s *categoryService) Update(ctx context.Context, id uint64, in *model.Category) (*model.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || len(in.Name) > 100 {
		return nil, errors.New("invalid category name")
	}
	c.Name = in.Name
	c.Description = in.Description
	c.Icon = in.Icon
	if err := s.categories.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *categoryService) Delete(ctx context.Context, id uint64) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.categories.Delete(ctx, id)
}

func (s *categoryService) Get(ctx context.Context, id uint64) (*CategoryWithStats, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	stats, err := s.categories.PriceStats(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CategoryWithStats{Category: *c, Stats: stats}, nil
}

func (s *categoryService) List(ctx context.Context) ([]CategoryWithStats, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]CategoryWithStats, 0, len(categories))
	for _, c := range categories {
		stats, _ := s.categories.PriceStats(ctx, c.ID)
		resp = append(resp, CategoryWithStats{Category: c, Stats: stats})
	}
	return resp, nil
}
