package repository

import (
	"context"

	"github.com/avelichko/gallery-market/internal/model"
	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Create(ctx context.Context, f *model.Favorite) error
	Delete(ctx context.Context, userID, artworkID uint64) error
	Exists(ctx context.Context, userID, artworkID uint64) (bool, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Favorite, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(ctx context.Context, f *model.Favorite) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(f).Error)
}

func (r *favoriteRepository) Delete(ctx context.Context, userID, artworkID uint64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND artwork_id = ?", userID, artworkID).
		Delete(&model.Favorite{}).Error
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, artworkID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Favorite{}).
		Where("user_id = ? AND artwork_id = ?", userID, artworkID).
		Count(&count).Error
	return count > 0, err
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint64) ([]model.Favorite, error) {
	var list []model.Favorite
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
