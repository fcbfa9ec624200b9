package service

import (
	"context"
	"errors"
	"time"

	"github.com/avelichko/gallery-market/internal/model"
	"github.com/avelichko/gallery-market/internal/repository"
	"gorm.io/gorm"
)

type OrderWithArtwork struct {
	Order   model.Order
	Artwork *model.Artwork
}

type OrderService interface {
	Get(ctx context.Context, orderID, userID uint64) (*OrderWithArtwork, error)
	ListByBuyer(ctx context.Context, buyerID uint64) ([]OrderWithArtwork, error)
	ListSales(ctx context.Context, sellerID uint64) ([]OrderWithArtwork, error)
	MarkShipped(ctx context.Context, orderID, sellerID uint64) (*model.Order, error)
	MarkDelivered(ctx context.Context, orderID, buyerID uint64) (*model.Order, error)
	MarkCompleted(ctx context.Context, orderID, buyerID uint64) (*model.Order, error)
	Cancel(ctx context.Context, orderID, buyerID uint64) (*model.Order, error)
	Dispute(ctx context.Context, orderID, userID uint64) (*model.Order, error)
	CompletePayment(ctx context.Context, orderID, buyerID uint64) (*model.Payment, error)
}

type orderService struct {
	orders   repository.OrderRepository
	artworks repository.ArtworkRepository
	payments repository.PaymentRepository
	now      func() time.Time
}

func NewOrderService(orders repository.OrderRepository, artworks repository.ArtworkRepository, payments repository.PaymentRepository) OrderService {
	return &orderService{orders: orders, artworks: artworks, payments: payments, now: time.Now}
}

func (s *orderService) find(ctx context.Context, orderID uint64) (*model.Order, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

// transition enforces the explicit table; skipping or moving backward fails.
func (s *orderService) transition(ctx context.Context, o *model.Order, next model.OrderStatus) error {
	if !o.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	o.Status = next
	return s.orders.Save(ctx, o)
}

func (s *orderService) Get(ctx context.Context, orderID, userID uint64) (*OrderWithArtwork, error) {
	o, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	artwork, err := s.artworks.FindByID(ctx, o.ArtworkID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if o.BuyerID != userID && (artwork == nil || artwork.SellerID != userID) {
		return nil, ErrForbidden
	}
	return &OrderWithArtwork{Order: *o, Artwork: artwork}, nil
}

func (s *orderService) ListByBuyer(ctx context.Context, buyerID uint64) ([]OrderWithArtwork, error) {
	orders, err := s.orders.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	return s.withArtworks(ctx, orders), nil
}

func (s *orderService) ListSales(ctx context.Context, sellerID uint64) ([]OrderWithArtwork, error) {
	orders, err := s.orders.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return s.withArtworks(ctx, orders), nil
}

func (s *orderService) withArtworks(ctx context.Context, orders []model.Order) []OrderWithArtwork {
	resp := make([]OrderWithArtwork, 0, len(orders))
	for _, o := range orders {
		artwork, _ := s.artworks.FindByID(ctx, o.ArtworkID)
		resp = append(resp, OrderWithArtwork{Order: o, Artwork: artwork})
	}
	return resp
}

func (s *orderService) MarkShipped(ctx context.Context, orderID, sellerID uint64) (*model.Order, error) {
	o, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	artwork, err := s.artworks.FindByID(ctx, o.ArtworkID)
	if err != nil {
		return nil, err
	}
	if artwork.SellerID != sellerID {
		return nil, ErrForbidden
	}
	if err := s.transition(ctx, o, model.OrderStatusShipped); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *orderService) MarkDelivered(ctx context.Context, orderID, buyerID uint64) (*model.Order, error) {
	o, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.BuyerID != buyerID {
		return nil, ErrForbidden
	}
	if err := s.transition(ctx, o, model.OrderStatusDelivered); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *orderService) MarkCompleted(ctx context.Context, orderID, buyerID uint64) (*model.Order, error) {
	o, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.BuyerID != buyerID {
		return nil, ErrForbidden
	}
	if err := s.transition(ctx, o, model.OrderStatusCompleted); err != nil {
		return nil, err
	}
	return o, nil
}

// Cancel is only open before shipment. A cancelled cart line frees its slot via
// BeforeSave; a paid order's artwork stays sold until an admin override relists it.
func (s *orderService) Cancel(ctx context.Context, orderID, buyerID uint64) (*model.Order, error) {
	o, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.BuyerID != buyerID {
		return nil, ErrForbidden
	}
	if err := s.transition(ctx, o, model.OrderStatusCancelled); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *orderService) Dispute(ctx context.Context, orderID, userID uint64) (*model.Order, error) {
	o, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	artwork, err := s.artworks.FindByID(ctx, o.ArtworkID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if o.BuyerID != userID && (artwork == nil || artwork.SellerID != userID) {
		return nil, ErrForbidden
	}
	if err := s.transition(ctx, o, model.OrderStatusDisputed); err != nil {
		return nil, err
	}
	return o, nil
}

// CompletePayment is idempotent: repeating it only refreshes the completion time.
func (s *orderService) CompletePayment(ctx context.Context, orderID, buyerID uint64) (*model.Payment, error) {
	o, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.BuyerID != buyerID {
		return nil, ErrForbidden
	}
	p, err := s.payments.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.MarkCompleted(s.now())
	if err := s.payments.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
