package repository

import (
	"context"
	"time"

	"github.com/avelichko/gallery-market/internal/model"
	"gorm.io/gorm"
)

// ArtworkFilter is always explicit: no repository method applies a default status
// scope, so callers can never be bitten by an implicit "active only" view.
type ArtworkFilter struct {
	Status     model.ArtworkStatus
	SellerID   *uint64
	CategoryID *uint64
	ArtistID   *uint64
	Query      string
	Limit      int
	Offset     int
}

type ArtworkRepository interface {
	Create(ctx context.Context, a *model.Artwork) error
	Save(ctx context.Context, a *model.Artwork) error
	Delete(ctx context.Context, id uint64) error
	FindByID(ctx context.Context, id uint64) (*model.Artwork, error)
	List(ctx context.Context, f ArtworkFilter) ([]model.Artwork, int64, error)
	SetStatus(ctx context.Context, id uint64, status model.ArtworkStatus) error
	ArchiveOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountByArtist(ctx context.Context, artistID uint64) (int64, error)
	CountByCategory(ctx context.Context, categoryID uint64) (int64, error)
}

type artworkRepository struct {
	db *gorm.DB
}

func NewArtworkRepository(db *gorm.DB) ArtworkRepository {
	return &artworkRepository{db: db}
}

func (r *artworkRepository) Create(ctx context.Context, a *model.Artwork) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *artworkRepository) Save(ctx context.Context, a *model.Artwork) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *artworkRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Artwork{}, id).Error
}

func (r *artworkRepository) FindByID(ctx context.Context, id uint64) (*model.Artwork, error) {
	var a model.Artwork
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *artworkRepository) List(ctx context.Context, f ArtworkFilter) ([]model.Artwork, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Artwork{})
	if f.Status != "" {
		q = q.Where("artworks.status = ?", f.Status)
	}
	if f.SellerID != nil {
		q = q.Where("artworks.seller_id = ?", *f.SellerID)
	}
	if f.CategoryID != nil {
		q = q.Where("artworks.category_id = ?", *f.CategoryID)
	}
	if f.ArtistID != nil {
		q = q.Where("artworks.artist_id = ?", *f.ArtistID)
	}
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Joins("LEFT JOIN artists ON artists.id = artworks.artist_id").
			Where("artworks.title LIKE ? OR artworks.description LIKE ? OR artists.name LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var artworks []model.Artwork
	if err := q.
		Order("artworks.created_at desc").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&artworks).Error; err != nil {
		return nil, 0, err
	}
	return artworks, total, nil
}

func (r *artworkRepository) SetStatus(ctx context.Context, id uint64, status model.ArtworkStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Artwork{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ArchiveOlderThan is a single bulk conditional update so it is idempotent and
// safe to run concurrently with live traffic.
func (r *artworkRepository) ArchiveOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Artwork{}).
		Where("status = ? AND created_at <= ?", model.ArtworkStatusActive, cutoff).
		Update("status", model.ArtworkStatusArchived)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *artworkRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Artwork{}).Count(&total).Error
	return total, err
}

func (r *artworkRepository) CountByArtist(ctx context.Context, artistID uint64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Artwork{}).Where("artist_id = ?", artistID).Count(&total).Error
	return total, err
}

func (r *artworkRepository) CountByCategory(ctx context.Context, categoryID uint64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Artwork{}).Where("category_id = ?", categoryID).Count(&total).Error
	return total, err
}
