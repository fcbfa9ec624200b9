package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleBuyer     Role = "buyer"
	RoleSeller    Role = "seller"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uint64          `gorm:"primaryKey;autoIncrement"`
	Email        string          `gorm:"size:254;uniqueIndex;not null"`
	Username     string          `gorm:"size:30;uniqueIndex;not null"`
	PasswordHash string          `gorm:"size:128;not null"`
	FirstName    string          `gorm:"size:30"`
	LastName     string          `gorm:"size:30"`
	Role         Role            `gorm:"size:20;not null;default:buyer"`
	Balance      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0.00"`
	Rating       decimal.Decimal `gorm:"type:decimal(3,2);not null;default:5.00"`
	AvatarURL    *string         `gorm:"size:512"`
	IsActive     bool            `gorm:"not null;default:true"`
	IsStaff      bool            `gorm:"not null;default:false"`
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsAdmin reports back-office access; staff flag and admin role are equivalent.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsStaff
}

func (u *User) IsModerator() bool {
	return u.Role == RoleModerator || u.IsAdmin()
}
