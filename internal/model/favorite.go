package model

import "time"

type Favorite struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_favorites_user_artwork"`
	ArtworkID uint64    `gorm:"not null;uniqueIndex:idx_favorites_user_artwork"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Favorite) TableName() string {
	return "favorites"
}
