package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "created"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusDisputed  OrderStatus = "disputed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// orderTransitions is the full forward-only table: one step ahead, cancellation
// before shipment, dispute from any non-terminal state. Skipping states is rejected.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusCreated:   {OrderStatusPaid, OrderStatusCancelled, OrderStatusDisputed},
	OrderStatusPaid:      {OrderStatusShipped, OrderStatusCancelled, OrderStatusDisputed},
	OrderStatusShipped:   {OrderStatusDelivered, OrderStatusDisputed},
	OrderStatusDelivered: {OrderStatusCompleted, OrderStatusDisputed},
	OrderStatusDisputed:  {},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

type ShippingMethod string

const (
	ShippingPickup  ShippingMethod = "pickup"
	ShippingCourier ShippingMethod = "courier"
	ShippingPost    ShippingMethod = "post"
	ShippingExpress ShippingMethod = "express"
)

func ValidShippingMethod(m ShippingMethod) bool {
	switch m {
	case ShippingPickup, ShippingCourier, ShippingPost, ShippingExpress:
		return true
	}
	return false
}

// PaymentWindow is how long a created order may sit unpaid before it counts as expired.
const PaymentWindow = 48 * time.Hour

type Order struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	BuyerID   uint64 `gorm:"index;not null"`
	ArtworkID uint64 `gorm:"index;not null"`
	// CartSlot mirrors ArtworkID while the order is in created status and is NULL
	// otherwise. MySQL has no partial unique indexes, so the "one cart line per
	// artwork" constraint lives on this column: NULLs never collide.
	CartSlot        *uint64         `gorm:"uniqueIndex"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ShippingAddress *string         `gorm:"type:text"`
	ShippingMethod  ShippingMethod  `gorm:"size:20;not null;default:pickup"`
	ShippingCost    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00"`
	Insurance       bool            `gorm:"not null;default:false"`
	InsuranceCost   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status          OrderStatus     `gorm:"size:20;not null;default:created;index"`
	CreatedAt       time.Time       `gorm:"autoCreateTime;index"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}

// BeforeSave keeps the row consistent on every write: the total is always the sum
// of its components, and the cart slot is held only while the order is a cart line.
func (o *Order) BeforeSave(tx *gorm.DB) error {
	o.TotalPrice = o.Price.Add(o.ShippingCost).Add(o.InsuranceCost)
	if o.Status == OrderStatusCreated {
		slot := o.ArtworkID
		o.CartSlot = &slot
	} else {
		o.CartSlot = nil
	}
	return nil
}

// PaymentExpired reports whether an unpaid cart line has outlived the payment
// window. Nothing transitions on expiry; callers only query it.
func (o *Order) PaymentExpired(now time.Time) bool {
	return o.Status == OrderStatusCreated && now.Sub(o.CreatedAt) > PaymentWindow
}
