package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type ArtworkStatus string

const (
	ArtworkStatusActive   ArtworkStatus = "active"
	ArtworkStatusSold     ArtworkStatus = "sold"
	ArtworkStatusReserved ArtworkStatus = "reserved"
	ArtworkStatusArchived ArtworkStatus = "archived"
)

func ValidArtworkStatus(s ArtworkStatus) bool {
	switch s {
	case ArtworkStatusActive, ArtworkStatusSold, ArtworkStatusReserved, ArtworkStatusArchived:
		return true
	}
	return false
}

type Artwork struct {
	ID          uint64              `gorm:"primaryKey;autoIncrement"`
	SellerID    uint64              `gorm:"index;not null"`
	ArtistID    *uint64             `gorm:"index"`
	CategoryID  *uint64             `gorm:"index"`
	Title       string              `gorm:"size:120;not null"`
	Description string              `gorm:"type:text;not null"`
	ImageURL    *string             `gorm:"size:512"`
	Style       string              `gorm:"size:50"`
	Medium      string              `gorm:"size:50"`
	YearCreated int                 `gorm:"not null"`
	Width       decimal.Decimal     `gorm:"type:decimal(6,1);not null"`
	Height      decimal.Decimal     `gorm:"type:decimal(6,1);not null"`
	Depth       decimal.NullDecimal `gorm:"type:decimal(6,1)"`
	Price       decimal.Decimal     `gorm:"type:decimal(10,2);not null;index"`
	Status      ArtworkStatus       `gorm:"size:20;not null;default:active;index"`
	IsFramed    bool                `gorm:"not null;default:false"`
	IsCertified bool                `gorm:"not null;default:false"`
	CreatedAt   time.Time           `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time           `gorm:"autoUpdateTime"`
}

func (Artwork) TableName() string {
	return "artworks"
}

// Dimensions formats the physical size; depth only appears for sculptural work.
func (a *Artwork) Dimensions() string {
	if a.Depth.Valid {
		return fmt.Sprintf("%s × %s × %s cm", a.Width, a.Height, a.Depth.Decimal)
	}
	return fmt.Sprintf("%s × %s cm", a.Width, a.Height)
}
