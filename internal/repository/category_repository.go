package repository

import (
	"context"

	"github.com/avelichko/gallery-market/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CategoryPriceStats struct {
	Count int64
	Min   decimal.NullDecimal
	Max   decimal.NullDecimal
	Avg   decimal.NullDecimal
}

type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	Save(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id uint64) error
	FindByID(ctx context.Context, id uint64) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	PriceStats(ctx context.Context, categoryID uint64) (CategoryPriceStats, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *model.Category) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *categoryRepository) Save(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Category{}, id).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint64) (*model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) PriceStats(ctx context.Context, categoryID uint64) (CategoryPriceStats, error) {
	var stats CategoryPriceStats
	err := r.db.WithContext(ctx).
		Model(&model.Artwork{}).
		Select("COUNT(*) as count, MIN(price) as min, MAX(price) as max, AVG(price) as avg").
		Where("category_id = ?", categoryID).
		Scan(&stats).Error
	return stats, err
}
