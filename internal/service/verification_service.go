package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/avelichko/gallery-market/internal/model"
	"github.com/avelichko/gallery-market/internal/repository"
	"gorm.io/gorm"
)

type VerificationService interface {
	Submit(ctx context.Context, userID uint64, docType model.DocumentType, docNumber string) (*model.Verification, error)
	Get(ctx context.Context, userID uint64) (*model.Verification, error)
	Review(ctx context.Context, userID, moderatorID uint64, approve bool, comment *string) (*model.Verification, error)
	NotifyAging(ctx context.Context, olderThanDays int) (int, error)
}

type verificationService struct {
	verifications repository.VerificationRepository
	users         repository.UserRepository
	now           func() time.Time
}

func NewVerificationService(verifications repository.VerificationRepository, users repository.UserRepository) VerificationService {
	return &verificationService{verifications: verifications, users: users, now: time.Now}
}

func (s *verificationService) Submit(ctx context.Context, userID uint64, docType model.DocumentType, docNumber string) (*model.Verification, error) {
	if !model.ValidDocumentType(docType) {
		return nil, errors.New("invalid document type")
	}
	if docNumber == "" {
		return nil, errors.New("document number is required")
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if u.Role != model.RoleSeller {
		return nil, ErrForbidden
	}

	v, err := s.verifications.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		v = &model.Verification{UserID: userID}
		v.DocumentType = docType
		v.DocumentNumber = docNumber
		v.Status = model.VerificationStatusPending
		if err := s.verifications.Create(ctx, v); err != nil {
			return nil, err
		}
		return v, nil
	}

	// Resubmission puts the record back into the moderation queue.
	v.DocumentType = docType
	v.DocumentNumber = docNumber
	v.Status = model.VerificationStatusPending
	v.ReviewedBy = nil
	v.VerifiedAt = nil
	v.Comment = nil
	if err := s.verifications.Save(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *verificationService) Get(ctx context.Context, userID uint64) (*model.Verification, error) {
	v, err := s.verifications.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *verificationService) Review(ctx context.Context, userID, moderatorID uint64, approve bool, comment *string) (*model.Verification, error) {
	v, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if approve {
		v.Status = model.VerificationStatusVerified
		v.VerifiedAt = &now
	} else {
		v.Status = model.VerificationStatusRejected
		v.VerifiedAt = nil
	}
	v.ReviewedBy = &moderatorID
	v.Comment = comment
	if err := s.verifications.Save(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// NotifyAging reports pending verifications older than the threshold. Delivery is
// out of scope, so the notification is a log line per seller.
func (s *verificationService) NotifyAging(ctx context.Context, olderThanDays int) (int, error) {
	cutoff := s.now().AddDate(0, 0, -olderThanDays)
	pending, err := s.verifications.ListPendingBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	for _, v := range pending {
		log.Printf("verification pending over %dd: user=%d submitted=%s", olderThanDays, v.UserID, v.CreatedAt.Format(time.RFC3339))
	}
	return len(pending), nil
}
