package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodPaypal PaymentMethod = "paypal"
	PaymentMethodBank   PaymentMethod = "bank"
	PaymentMethodCrypto PaymentMethod = "crypto"
)

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCard, PaymentMethodPaypal, PaymentMethodBank, PaymentMethodCrypto:
		return true
	}
	return false
}

type Payment struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement"`
	OrderID       uint64          `gorm:"uniqueIndex;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Method        PaymentMethod   `gorm:"size:50;not null"`
	TransactionID string          `gorm:"size:255;uniqueIndex;not null"`
	Status        PaymentStatus   `gorm:"size:20;not null;default:pending"`
	CompletedAt   *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Payment) TableName() string {
	return "payments"
}

// MarkCompleted is idempotent; repeated calls only refresh the completion time.
func (p *Payment) MarkCompleted(now time.Time) {
	p.Status = PaymentStatusCompleted
	p.CompletedAt = &now
}
