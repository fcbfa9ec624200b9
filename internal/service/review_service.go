package service

import (
	"context"
	"errors"

	"github.com/avelichko/gallery-market/internal/model"
	"github.com/avelichko/gallery-market/internal/repository"
	"gorm.io/gorm"
)

type ReviewService interface {
	Create(ctx context.Context, orderID, buyerID uint64, rating int, comment *string) (*model.Review, error)
	Approve(ctx context.Context, reviewID uint64) (*model.Review, error)
	ListApproved(ctx context.Context, limit, offset int) ([]model.Review, error)
	ListBySeller(ctx context.Context, sellerID uint64) ([]model.Review, error)
}

type reviewService struct {
	reviews  repository.ReviewRepository
	orders   repository.OrderRepository
	artworks repository.ArtworkRepository
	users    repository.UserRepository
}

func NewReviewService(reviews repository.ReviewRepository, orders repository.OrderRepository, artworks repository.ArtworkRepository, users repository.UserRepository) ReviewService {
	return &reviewService{reviews: reviews, orders: orders, artworks: artworks, users: users}
}

func (s *reviewService) Create(ctx context.Context, orderID, buyerID uint64, rating int, comment *string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.BuyerID != buyerID {
		return nil, ErrForbidden
	}
	if order.Status == model.OrderStatusCreated {
		return nil, errors.New("order has not been paid yet")
	}
	if _, err := s.reviews.FindByOrderID(ctx, orderID); err == nil {
		return nil, ErrReviewExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	artwork, err := s.artworks.FindByID(ctx, order.ArtworkID)
	if err != nil {
		return nil, err
	}

	rv := &model.Review{
		OrderID:   orderID,
		BuyerID:   buyerID,
		SellerID:  artwork.SellerID,
		ArtworkID: artwork.ID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrReviewExists
		}
		return nil, err
	}

	// The rating recompute is an explicit step of this use case, not a hidden
	// persistence side effect.
	if err := s.recomputeSellerRating(ctx, artwork.SellerID); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *reviewService) Approve(ctx context.Context, reviewID uint64) (*model.Review, error) {
	rv, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if rv.IsApproved {
		return rv, nil
	}
	rv.IsApproved = true
	if err := s.reviews.Save(ctx, rv); err != nil {
		return nil, err
	}
	if err := s.recomputeSellerRating(ctx, rv.SellerID); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *reviewService) recomputeSellerRating(ctx context.Context, sellerID uint64) error {
	avg, count, err := s.reviews.SellerAverage(ctx, sellerID)
	if err != nil {
		return err
	}
	if count == 0 || !avg.Valid {
		return nil
	}
	seller, err := s.users.FindByID(ctx, sellerID)
	if err != nil {
		return err
	}
	seller.Rating = avg.Decimal.Round(2)
	return s.users.Save(ctx, seller)
}

func (s *reviewService) ListApproved(ctx context.Context, limit, offset int) ([]model.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.reviews.ListApproved(ctx, limit, offset)
}

func (s *reviewService) ListBySeller(ctx context.Context, sellerID uint64) ([]model.Review, error) {
	return s.reviews.ListBySeller(ctx, sellerID)
}
