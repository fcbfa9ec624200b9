package repository

import (
	"context"
	"time"

	"github.com/avelichko/gallery-market/internal/model"
	"gorm.io/gorm"
)

type VerificationRepository interface {
	Create(ctx context.Context, v *model.Verification) error
	Save(ctx context.Context, v *model.Verification) error
	FindByUserID(ctx context.Context, userID uint64) (*model.Verification, error)
	ListPendingBefore(ctx context.Context, cutoff time.Time) ([]model.Verification, error)
	CountPending(ctx context.Context) (int64, error)
}

type verificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) Create(ctx context.Context, v *model.Verification) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(v).Error)
}

func (r *verificationRepository) Save(ctx context.Context, v *model.Verification) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *verificationRepository) FindByUserID(ctx context.Context, userID uint64) (*model.Verification, error) {
	var v model.Verification
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *verificationRepository) ListPendingBefore(ctx context.Context, cutoff time.Time) ([]model.Verification, error) {
	var list []model.Verification
	if err := r.db.WithContext(ctx).
		Where("status = ? AND created_at <= ?", model.VerificationStatusPending, cutoff).
		Order("created_at").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *verificationRepository) CountPending(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Verification{}).
		Where("status = ?", model.VerificationStatusPending).
		Count(&total).Error
	return total, err
}
