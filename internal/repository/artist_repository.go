package repository

import (
	"context"

	"github.com/avelichko/gallery-market/internal/model"
	"gorm.io/gorm"
)

type ArtistRepository interface {
	Create(ctx context.Context, a *model.Artist) error
	Save(ctx context.Context, a *model.Artist) error
	Delete(ctx context.Context, id uint64) error
	FindByID(ctx context.Context, id uint64) (*model.Artist, error)
	List(ctx context.Context, limit, offset int) ([]model.Artist, int64, error)
}

type artistRepository struct {
	db *gorm.DB
}

func NewArtistRepository(db *gorm.DB) ArtistRepository {
	return &artistRepository{db: db}
}

func (r *artistRepository) Create(ctx context.Context, a *model.Artist) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(a).Error)
}

func (r *artistRepository) Save(ctx context.Context, a *model.Artist) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *artistRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Artist{}, id).Error
}

func (r *artistRepository) FindByID(ctx context.Context, id uint64) (*model.Artist, error) {
	var a model.Artist
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *artistRepository) List(ctx context.Context, limit, offset int) ([]model.Artist, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Artist{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var artists []model.Artist
	if err := r.db.WithContext(ctx).
		Order("name").
		Limit(limit).
		Offset(offset).
		Find(&artists).Error; err != nil {
		return nil, 0, err
	}
	return artists, total, nil
}
