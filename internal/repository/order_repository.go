package repository

import (
	"context"
	"time"

	"github.com/avelichko/gallery-market/internal/model"
	"gorm.io/gorm"
)

type StatusCount struct {
	Status model.OrderStatus
	Count  int64
}

type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) error
	Save(ctx context.Context, o *model.Order) error
	Delete(ctx context.Context, id uint64) error
	FindByID(ctx context.Context, id uint64) (*model.Order, error)
	ListByBuyer(ctx context.Context, buyerID uint64) ([]model.Order, error)
	ListByBuyerAndStatus(ctx context.Context, buyerID uint64, status model.OrderStatus) ([]model.Order, error)
	ListBySeller(ctx context.Context, sellerID uint64) ([]model.Order, error)
	ListRecent(ctx context.Context, limit int) ([]model.Order, error)
	ExistsCreatedForArtwork(ctx context.Context, artworkID uint64) (bool, error)
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	ConfirmPaid(ctx context.Context, o *model.Order, p *model.Payment) error
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, o *model.Order) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(o).Error)
}

func (r *orderRepository) Save(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *orderRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Order{}, id).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id uint64) (*model.Order, error) {
	var o model.Order
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) ListByBuyer(ctx context.Context, buyerID uint64) ([]model.Order, error) {
	var list []model.Order
	if err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *orderRepository) ListByBuyerAndStatus(ctx context.Context, buyerID uint64, status model.OrderStatus) ([]model.Order, error) {
	var list []model.Order
	if err := r.db.WithContext(ctx).
		Where("buyer_id = ? AND status = ?", buyerID, status).
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *orderRepository) ListBySeller(ctx context.Context, sellerID uint64) ([]model.Order, error) {
	var list []model.Order
	if err := r.db.WithContext(ctx).
		Joins("JOIN artworks ON artworks.id = orders.artwork_id").
		Where("artworks.seller_id = ?", sellerID).
		Order("orders.id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *orderRepository) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	var list []model.Order
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *orderRepository) ExistsCreatedForArtwork(ctx context.Context, artworkID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("artwork_id = ? AND status = ?", artworkID, model.OrderStatusCreated).
		Count(&count).Error
	return count > 0, err
}

// DeleteCreatedBefore expires abandoned carts in one bulk statement; rows are
// removed outright, not soft-transitioned.
func (r *orderRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("status = ? AND created_at <= ?", model.OrderStatusCreated, cutoff).
		Delete(&model.Order{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// ConfirmPaid commits one order/artwork pair: order created→paid (slot released),
// artwork active→sold, payment row created, all in a single transaction. Each pair
// is its own unit; callers confirm carts pair by pair.
func (r *orderRepository) ConfirmPaid(ctx context.Context, o *model.Order, p *model.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Order{}).
			Where("id = ? AND status = ?", o.ID, model.OrderStatusCreated).
			Updates(map[string]interface{}{
				"status":    model.OrderStatusPaid,
				"cart_slot": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleState
		}

		res = tx.Model(&model.Artwork{}).
			Where("id = ? AND status = ?", o.ArtworkID, model.ArtworkStatusActive).
			Update("status", model.ArtworkStatusSold)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleState
		}

		if p != nil {
			if err := tx.Create(p).Error; err != nil {
				return translateDuplicate(err)
			}
		}

		o.Status = model.OrderStatusPaid
		o.CartSlot = nil
		return nil
	})
}

func (r *orderRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&total).Error
	return total, err
}

func (r *orderRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var counts []StatusCount
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error
	return counts, err
}
