package service

import (
	"context"
	"errors"
	"strings"

	"github.com/avelichko/gallery-market/internal/model"
	"github.com/avelichko/gallery-market/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenIssuer signs access tokens; implemented by the auth middleware so the
// secret lives in one place.
type TokenIssuer interface {
	IssueToken(u *model.User) (string, error)
}

type RegisterInput struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
	Role      model.Role
}

type ProfileInput struct {
	FirstName string
	LastName  string
	AvatarURL *string
}

type TokenResult struct {
	Token  string
	UserID uint64
	Email  string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, string, error)
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	Token(ctx context.Context, username, password string) (*TokenResult, error)
	Profile(ctx context.Context, userID uint64) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uint64, in ProfileInput) (*model.User, error)
}

type authService struct {
	users         repository.UserRepository
	verifications repository.VerificationRepository
	issuer        TokenIssuer
}

func NewAuthService(users repository.UserRepository, verifications repository.VerificationRepository, issuer TokenIssuer) AuthService {
	return &authService{users: users, verifications: verifications, issuer: issuer}
}

// Register creates a buyer or seller account. A new seller immediately gets a
// pending verification record for the moderation queue.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Username = strings.TrimSpace(in.Username)
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return nil, "", errors.New("invalid email")
	}
	if in.Username == "" || len(in.Username) > 30 {
		return nil, "", errors.New("invalid username")
	}
	if len(in.Password) < 8 {
		return nil, "", errors.New("password must be at least 8 characters")
	}
	if in.Role == "" {
		in.Role = model.RoleBuyer
	}
	if in.Role != model.RoleBuyer && in.Role != model.RoleSeller {
		return nil, "", errors.New("role must be buyer or seller")
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}
	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, "", ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	u := &model.User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	// A seller account is only usable once it reaches the moderation queue, so a
	// failed verification insert fails the whole registration.
	if u.Role == model.RoleSeller {
		if err := s.verifications.Create(ctx, &model.Verification{
			UserID: u.ID,
			Status: model.VerificationStatusPending,
		}); err != nil {
			return nil, "", err
		}
	}

	token, err := s.issuer.IssueToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *authService) authenticate(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// The login field accepts email as well.
		u, err = s.users.FindByEmail(ctx, strings.ToLower(username))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidCredentials
			}
			return nil, err
		}
	}
	if !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	u, err := s.authenticate(ctx, username, password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.issuer.IssueToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *authService) Token(ctx context.Context, username, password string) (*TokenResult, error) {
	u, token, err := s.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return &TokenResult{Token: token, UserID: u.ID, Email: u.Email}, nil
}

func (s *authService) Profile(ctx context.Context, userID uint64) (*model.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID uint64, in ProfileInput) (*model.User, error) {
	u, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.FirstName = strings.TrimSpace(in.FirstName)
	u.LastName = strings.TrimSpace(in.LastName)
	u.AvatarURL = in.AvatarURL
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
