package service

import (
	"context"
	"errors"

	"github.com/avelichko/gallery-market/internal/model"
	"github.com/avelichko/gallery-market/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type DashboardStats struct {
	TotalArtworks        int64
	TotalOrders          int64
	TotalUsers           int64
	PendingVerifications int64
	RecentOrders         []model.Order
	OrdersByStatus       []repository.StatusCount
}

type AdminUserInput struct {
	Email    string
	Username string
	Password string
	Role     model.Role
}

type AdminUserUpdate struct {
	Role     *model.Role
	IsActive *bool
	IsStaff  *bool
}

type AdminService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	ListUsers(ctx context.Context, limit, offset int) ([]model.User, int64, error)
	CreateUser(ctx context.Context, in AdminUserInput) (*model.User, error)
	UpdateUser(ctx context.Context, userID uint64, in AdminUserUpdate) (*model.User, error)
}

type adminService struct {
	users         repository.UserRepository
	artworks      repository.ArtworkRepository
	orders        repository.OrderRepository
	verifications repository.VerificationRepository
}

func NewAdminService(users repository.UserRepository, artworks repository.ArtworkRepository, orders repository.OrderRepository, verifications repository.VerificationRepository) AdminService {
	return &adminService{users: users, artworks: artworks, orders: orders, verifications: verifications}
}

func (s *adminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error
	if stats.TotalArtworks, err = s.artworks.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.TotalOrders, err = s.orders.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.TotalUsers, err = s.users.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.PendingVerifications, err = s.verifications.CountPending(ctx); err != nil {
		return nil, err
	}
	if stats.RecentOrders, err = s.orders.ListRecent(ctx, 5); err != nil {
		return nil, err
	}
	if stats.OrdersByStatus, err = s.orders.CountByStatus(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *adminService) ListUsers(ctx context.Context, limit, offset int) ([]model.User, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, limit, offset)
}

func (s *adminService) CreateUser(ctx context.Context, in AdminUserInput) (*model.User, error) {
	if in.Email == "" || in.Username == "" {
		return nil, errors.New("email and username are required")
	}
	if len(in.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	if in.Role == "" {
		in.Role = model.RoleBuyer
	}
	if !model.ValidRole(in.Role) {
		return nil, errors.New("invalid role")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         in.Role,
		IsActive:     true,
		IsStaff:      in.Role == model.RoleAdmin,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (s *adminService) UpdateUser(ctx context.Context, userID uint64, in AdminUserUpdate) (*model.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if in.Role != nil {
		if !model.ValidRole(*in.Role) {
			return nil, errors.New("invalid role")
		}
		u.Role = *in.Role
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if in.IsStaff != nil {
		u.IsStaff = *in.IsStaff
	}
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
