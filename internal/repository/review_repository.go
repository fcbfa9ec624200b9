package repository

import (
	"context"

	"github.com/avelichko/gallery-market/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *model.Review) error
	Save(ctx context.Context, rv *model.Review) error
	FindByID(ctx context.Context, id uint64) (*model.Review, error)
	FindByOrderID(ctx context.Context, orderID uint64) (*model.Review, error)
	ListApproved(ctx context.Context, limit, offset int) ([]model.Review, error)
	ListBySeller(ctx context.Context, sellerID uint64) ([]model.Review, error)
	// SellerAverage aggregates the rating across every review the seller has
	// received, approved or not, mirroring how the rating was always computed.
	SellerAverage(ctx context.Context, sellerID uint64) (decimal.NullDecimal, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *model.Review) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(rv).Error)
}

func (r *reviewRepository) Save(ctx context.Context, rv *model.Review) error {
	return r.db.WithContext(ctx).Save(rv).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint64) (*model.Review, error) {
	var rv model.Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *reviewRepository) FindByOrderID(ctx context.Context, orderID uint64) (*model.Review, error) {
	var rv model.Review
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&rv).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *reviewRepository) ListApproved(ctx context.Context, limit, offset int) ([]model.Review, error) {
	var list []model.Review
	if err := r.db.WithContext(ctx).
		Where("is_approved = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *reviewRepository) ListBySeller(ctx context.Context, sellerID uint64) ([]model.Review, error) {
	var list []model.Review
	if err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *reviewRepository) SellerAverage(ctx context.Context, sellerID uint64) (decimal.NullDecimal, int64, error) {
	var row struct {
		Avg   decimal.NullDecimal
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("AVG(rating) as avg, COUNT(*) as count").
		Where("seller_id = ?", sellerID).
		Scan(&row).Error
	return row.Avg, row.Count, err
}
