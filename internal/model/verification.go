package model

import "time"

type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusVerified VerificationStatus = "verified"
	VerificationStatusRejected VerificationStatus = "rejected"
)

type DocumentType string

const (
	DocumentPassport      DocumentType = "passport"
	DocumentDriverLicense DocumentType = "driver_license"
	DocumentIDCard        DocumentType = "id_card"
)

func ValidDocumentType(t DocumentType) bool {
	switch t {
	case DocumentPassport, DocumentDriverLicense, DocumentIDCard:
		return true
	}
	return false
}

type Verification struct {
	UserID         uint64             `gorm:"primaryKey"`
	DocumentType   DocumentType       `gorm:"size:50"`
	DocumentNumber string             `gorm:"size:100"`
	Status         VerificationStatus `gorm:"size:20;not null;default:pending;index"`
	ReviewedBy     *uint64
	VerifiedAt     *time.Time
	Comment        *string   `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Verification) TableName() string {
	return "verifications"
}

// AgeDays is days since the verification was confirmed; nil while unconfirmed.
func (v *Verification) AgeDays(now time.Time) *int {
	if v.VerifiedAt == nil {
		return nil
	}
	days := int(now.Sub(*v.VerifiedAt).Hours() / 24)
	return &days
}

// IsCurrent reports whether a confirmed verification is still within its one-year term.
func (v *Verification) IsCurrent(now time.Time) bool {
	age := v.AgeDays(now)
	return age != nil && *age < 365
}
