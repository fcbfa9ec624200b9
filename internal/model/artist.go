package model

import "time"

type Artist struct {
	ID           uint64  `gorm:"primaryKey;autoIncrement"`
	Name         string  `gorm:"size:100;uniqueIndex;not null"`
	Bio          *string `gorm:"type:text"`
	PhotoURL     *string `gorm:"size:512"`
	OfficialSite *string `gorm:"size:512"`
	BirthDate    *time.Time
	DeathDate    *time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Artist) TableName() string {
	return "artists"
}

func (a *Artist) IsAlive() bool {
	return a.DeathDate == nil
}
