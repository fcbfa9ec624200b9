package repository

import (
	"context"

	"github.com/avelichko/gallery-market/internal/model"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error
	Save(ctx context.Context, p *model.Payment) error
	FindByOrderID(ctx context.Context, orderID uint64) (*model.Payment, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *model.Payment) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *paymentRepository) Save(ctx context.Context, p *model.Payment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *paymentRepository) FindByOrderID(ctx context.Context, orderID uint64) (*model.Payment, error) {
	var p model.Payment
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
