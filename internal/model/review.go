package model

import "time"

type Review struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	OrderID    uint64    `gorm:"uniqueIndex;not null"`
	BuyerID    uint64    `gorm:"index;not null"`
	SellerID   uint64    `gorm:"index;not null"`
	ArtworkID  uint64    `gorm:"index;not null"`
	Rating     int       `gorm:"not null"`
	Comment    *string   `gorm:"type:text"`
	IsApproved bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (Review) TableName() string {
	return "reviews"
}
