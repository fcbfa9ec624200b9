package model

import "time"

type Category struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"size:100;uniqueIndex;not null"`
	Description *string   `gorm:"type:text"`
	Icon        *string   `gorm:"size:50"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Category) TableName() string {
	return "categories"
}
