package service

import (
	"context"
	"errors"

	"github.com/avelichko/gallery-market/internal/model"
	"github.com/avelichko/gallery-market/internal/repository"
	"gorm.io/gorm"
)

type FavoriteService interface {
	// Toggle flips the favorite state and reports whether it is now set.
	Toggle(ctx context.Context, userID, artworkID uint64) (bool, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Favorite, error)
}

type favoriteService struct {
	favorites repository.FavoriteRepository
	artworks  repository.ArtworkRepository
}

func NewFavoriteService(favorites repository.FavoriteRepository, artworks repository.ArtworkRepository) FavoriteService {
	return &favoriteService{favorites: favorites, artworks: artworks}
}

func (s *favoriteService) Toggle(ctx context.Context, userID, artworkID uint64) (bool, error) {
	if _, err := s.artworks.FindByID(ctx, artworkID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}
	exists, err := s.favorites.Exists(ctx, userID, artworkID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, s.favorites.Delete(ctx, userID, artworkID)
	}
	err = s.favorites.Create(ctx, &model.Favorite{UserID: userID, ArtworkID: artworkID})
	if errors.Is(err, repository.ErrDuplicate) {
		// Concurrent toggle already set it.
		return true, nil
	}
	return err == nil, err
}

func (s *favoriteService) ListByUser(ctx context.Context, userID uint64) ([]model.Favorite, error) {
	return s.favorites.ListByUser(ctx, userID)
}
