package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avelichko/gallery-market/internal/model"
	"github.com/avelichko/gallery-market/internal/pricing"
	"github.com/avelichko/gallery-market/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Flat delivery rates per method; insurance is 2% of the line price.
var shippingRates = map[model.ShippingMethod]decimal.Decimal{
	model.ShippingPickup:  decimal.Zero,
	model.ShippingCourier: decimal.NewFromInt(500),
	model.ShippingPost:    decimal.NewFromInt(300),
	model.ShippingExpress: decimal.NewFromInt(1500),
}

var insuranceRate = decimal.New(2, -2) // 0.02

type CartOptions struct {
	ShippingMethod  model.ShippingMethod
	ShippingAddress *string
	Insurance       bool
}

type CartLine struct {
	Order   model.Order
	Artwork *model.Artwork
}

type CheckoutSummary struct {
	Lines   []CartLine
	Total   decimal.Decimal
	Minimum decimal.Decimal
}

type ConfirmResult struct {
	Confirmed []model.Order
	Payments  []model.Payment
}

type CartService interface {
	Add(ctx context.Context, artworkID, buyerID uint64, opts CartOptions) (*model.Order, error)
	List(ctx context.Context, buyerID uint64) ([]CartLine, decimal.Decimal, error)
	Remove(ctx context.Context, orderID, buyerID uint64) error
	Checkout(ctx context.Context, buyerID uint64) (*CheckoutSummary, error)
	Confirm(ctx context.Context, buyerID uint64, method model.PaymentMethod) (*ConfirmResult, error)
	ExpireStale(ctx context.Context, olderThanDays int) (int64, error)
}

type cartService struct {
	orders   repository.OrderRepository
	artworks repository.ArtworkRepository
	minTotal decimal.Decimal
	now      func() time.Time
}

func NewCartService(orders repository.OrderRepository, artworks repository.ArtworkRepository, minTotal decimal.Decimal) CartService {
	return &cartService{orders: orders, artworks: artworks, minTotal: minTotal, now: time.Now}
}

// Add reserves an artwork: it snapshots the (possibly discounted) price into a new
// created-status order. The unique cart slot makes concurrent reservations race at
// the database; the loser gets ErrArtworkReserved.
func (s *cartService) Add(ctx context.Context, artworkID, buyerID uint64, opts CartOptions) (*model.Order, error) {
	artwork, err := s.artworks.FindByID(ctx, artworkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if artwork.Status != model.ArtworkStatusActive {
		return nil, ErrArtworkUnavailable
	}
	if artwork.SellerID == buyerID {
		return nil, ErrSelfPurchase
	}
	if reserved, err := s.orders.ExistsCreatedForArtwork(ctx, artworkID); err != nil {
		return nil, err
	} else if reserved {
		return nil, ErrArtworkReserved
	}

	if opts.ShippingMethod == "" {
		opts.ShippingMethod = model.ShippingPickup
	}
	if !model.ValidShippingMethod(opts.ShippingMethod) {
		return nil, errors.New("invalid shipping method")
	}

	quote := pricing.QuoteFor(artwork.Price, artwork.CreatedAt, s.now())
	insuranceCost := decimal.Zero
	if opts.Insurance {
		insuranceCost = quote.DiscountedPrice.Mul(insuranceRate).Round(2)
	}

	order := &model.Order{
		BuyerID:         buyerID,
		ArtworkID:       artworkID,
		Price:           quote.DiscountedPrice,
		ShippingAddress: opts.ShippingAddress,
		ShippingMethod:  opts.ShippingMethod,
		ShippingCost:    shippingRates[opts.ShippingMethod],
		Insurance:       opts.Insurance,
		InsuranceCost:   insuranceCost,
		Status:          model.OrderStatusCreated,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrArtworkReserved
		}
		return nil, err
	}
	return order, nil
}

func (s *cartService) List(ctx context.Context, buyerID uint64) ([]CartLine, decimal.Decimal, error) {
	orders, err := s.orders.ListByBuyerAndStatus(ctx, buyerID, model.OrderStatusCreated)
	if err != nil {
		return nil, decimal.Zero, err
	}
	lines := make([]CartLine, 0, len(orders))
	total := decimal.Zero
	for _, o := range orders {
		artwork, _ := s.artworks.FindByID(ctx, o.ArtworkID)
		lines = append(lines, CartLine{Order: o, Artwork: artwork})
		total = total.Add(o.TotalPrice)
	}
	return lines, total, nil
}

// Remove releases a cart line. Only the owning buyer may remove it, and the
// artwork itself stays active.
func (s *cartService) Remove(ctx context.Context, orderID, buyerID uint64) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if order.BuyerID != buyerID {
		return ErrForbidden
	}
	if order.Status != model.OrderStatusCreated {
		return ErrInvalidTransition
	}
	return s.orders.Delete(ctx, order.ID)
}

// Checkout validates the whole cart, in order: stale lines are deleted and fail
// the call, an empty cart fails, and a total under the minimum fails. Only a cart
// that passes all three may be confirmed.
func (s *cartService) Checkout(ctx context.Context, buyerID uint64) (*CheckoutSummary, error) {
	orders, err := s.orders.ListByBuyerAndStatus(ctx, buyerID, model.OrderStatusCreated)
	if err != nil {
		return nil, err
	}

	lines := make([]CartLine, 0, len(orders))
	var unavailable []string
	for _, o := range orders {
		artwork, err := s.artworks.FindByID(ctx, o.ArtworkID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if artwork == nil || artwork.Status != model.ArtworkStatusActive {
			title := fmt.Sprintf("#%d", o.ArtworkID)
			if artwork != nil {
				title = artwork.Title
			}
			unavailable = append(unavailable, title)
			if err := s.orders.Delete(ctx, o.ID); err != nil {
				return nil, err
			}
			continue
		}
		lines = append(lines, CartLine{Order: o, Artwork: artwork})
	}
	if len(unavailable) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrArtworkUnavailable, unavailable)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Order.TotalPrice)
	}
	if total.LessThan(s.minTotal) {
		return nil, ErrBelowMinimum
	}
	return &CheckoutSummary{Lines: lines, Total: total, Minimum: s.minTotal}, nil
}

// Confirm re-validates and then commits each order/artwork pair independently. A
// failure on one pair leaves earlier pairs committed and is reported as-is.
func (s *cartService) Confirm(ctx context.Context, buyerID uint64, method model.PaymentMethod) (*ConfirmResult, error) {
	if method == "" {
		method = model.PaymentMethodCard
	}
	if !model.ValidPaymentMethod(method) {
		return nil, errors.New("invalid payment method")
	}
	summary, err := s.Checkout(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	result := &ConfirmResult{}
	for i := range summary.Lines {
		order := summary.Lines[i].Order
		payment := &model.Payment{
			OrderID:       order.ID,
			Amount:        order.TotalPrice,
			Method:        method,
			TransactionID: uuid.NewString(),
			Status:        model.PaymentStatusPending,
		}
		if err := s.orders.ConfirmPaid(ctx, &order, payment); err != nil {
			return result, err
		}
		result.Confirmed = append(result.Confirmed, order)
		result.Payments = append(result.Payments, *payment)
	}
	return result, nil
}

// ExpireStale deletes created orders past the cart expiry age.
func (s *cartService) ExpireStale(ctx context.Context, olderThanDays int) (int64, error) {
	cutoff := s.now().AddDate(0, 0, -olderThanDays)
	return s.orders.DeleteCreatedBefore(ctx, cutoff)
}
