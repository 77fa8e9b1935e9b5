package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linemk/artosphere/internal/domain/models"
	"github.com/linemk/artosphere/internal/storage"
)

type FavoriteService interface {
	GetUserFavorites(ctx context.Context, userID string) ([]*models.Favorite, error)
	// AddFavorite возвращает storage.ErrFavoriteExists, если произведение уже в избранном.
	AddFavorite(ctx context.Context, fav *models.Favorite) (*models.Favorite, error)
	// RemoveFavorite с непустым ownerID удаляет только закладку этого пользователя.
	RemoveFavorite(ctx context.Context, id int64, ownerID string) error
	IsFavorite(ctx context.Context, userID string, artworkID int64) (bool, error)
}

type favoriteService struct {
	log          *slog.Logger
	favoriteRepo storage.FavoriteStorage
	artworkRepo  storage.ArtworkStorage
}

func NewFavoriteService(log *slog.Logger, favoriteRepo storage.FavoriteStorage, artworkRepo storage.ArtworkStorage) FavoriteService {
	return &favoriteService{
		log:          log,
		favoriteRepo: favoriteRepo,
		artworkRepo:  artworkRepo,
	}
}

func (s *favoriteService) GetUserFavorites(ctx context.Context, userID string) ([]*models.Favorite, error) {
	const op = "service.FavoriteService.GetUserFavorites"

	favorites, err := s.favoriteRepo.GetFavoritesByUserID(ctx, userID)
	if err != nil {
		s.log.Error("failed to get favorites", slog.String("op", op), slog.String("userID", userID), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return favorites, nil
}

func (s *favoriteService) AddFavorite(ctx context.Context, fav *models.Favorite) (*models.Favorite, error) {
	const op = "service.FavoriteService.AddFavorite"

	if fav == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNilBody)
	}

	logger := s.log.With(slog.String("op", op), slog.String("userID", fav.UserID), slog.Int64("artworkID", fav.ArtworkID))

	artwork, err := s.artworkRepo.GetArtworkByID(ctx, fav.ArtworkID)
	if err != nil {
		logger.Warn("artwork lookup failed", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := s.favoriteRepo.FavoriteExists(ctx, fav.UserID, fav.ArtworkID)
	if err != nil {
		logger.Error("failed to check favorite", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		logger.Info("artwork already in favorites")
		return nil, fmt.Errorf("%s: %w", op, storage.ErrFavoriteExists)
	}

	// уникальный индекс всё равно вернёт ErrFavoriteExists, если параллельный запрос успел раньше
	created, err := s.favoriteRepo.CreateFavorite(ctx, fav)
	if err != nil {
		logger.Warn("failed to add favorite", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	created.Artwork = artwork

	logger.Info("favorite added", slog.Int64("favoriteID", created.ID))
	return created, nil
}

func (s *favoriteService) RemoveFavorite(ctx context.Context, id int64, ownerID string) error {
	const op = "service.FavoriteService.RemoveFavorite"

	if err := s.favoriteRepo.DeleteFavorite(ctx, id, ownerID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *favoriteService) IsFavorite(ctx context.Context, userID string, artworkID int64) (bool, error) {
	const op = "service.FavoriteService.IsFavorite"

	exists, err := s.favoriteRepo.FavoriteExists(ctx, userID, artworkID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}
