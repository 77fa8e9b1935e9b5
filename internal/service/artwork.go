package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/linemk/artosphere/internal/domain/models"
	"github.com/linemk/artosphere/internal/storage"
)

type ArtworkService interface {
	ListArtworks(ctx context.Context) ([]*models.Artwork, error)
	GetArtwork(ctx context.Context, id int64) (*models.Artwork, error)
	CreateArtwork(ctx context.Context, artwork *models.Artwork) (*models.Artwork, error)
	UpdateArtwork(ctx context.Context, id int64, artwork *models.Artwork) error
	DeleteArtwork(ctx context.Context, id int64) error
	// ExportArtworks пишет каталог в w в формате xlsx.
	ExportArtworks(ctx context.Context, w io.Writer) error
}

type artworkService struct {
	log         *slog.Logger
	artworkRepo storage.ArtworkStorage
}

func NewArtworkService(log *slog.Logger, artworkRepo storage.ArtworkStorage) ArtworkService {
	return &artworkService{
		log:         log,
		artworkRepo: artworkRepo,
	}
}

func (s *artworkService) ListArtworks(ctx context.Context) ([]*models.Artwork, error) {
	const op = "service.ArtworkService.ListArtworks"

	artworks, err := s.artworkRepo.ListArtworks(ctx)
	if err != nil {
		s.log.Error("failed to list artworks", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return artworks, nil
}

func (s *artworkService) GetArtwork(ctx context.Context, id int64) (*models.Artwork, error) {
	const op = "service.ArtworkService.GetArtwork"

	artwork, err := s.artworkRepo.GetArtworkByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return artwork, nil
}

// CreateArtwork сохраняет новое произведение, дата создания проставляется хранилищем.
func (s *artworkService) CreateArtwork(ctx context.Context, artwork *models.Artwork) (*models.Artwork, error) {
	const op = "service.ArtworkService.CreateArtwork"
	logger := s.log.With(slog.String("op", op))

	if artwork == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNilBody)
	}
	if artwork.Price.IsNegative() {
		return nil, fmt.Errorf("%s: %w", op, ErrNegativePrice)
	}

	created, err := s.artworkRepo.CreateArtwork(ctx, artwork)
	if err != nil {
		logger.Error("failed to create artwork", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create artwork: %w", op, err)
	}

	logger.Info("artwork created", slog.Int64("artworkID", created.ID))
	return created, nil
}

// UpdateArtwork перезаписывает изменяемые поля. Идентификатор в пути и в теле должны совпадать.
func (s *artworkService) UpdateArtwork(ctx context.Context, id int64, artwork *models.Artwork) error {
	const op = "service.ArtworkService.UpdateArtwork"
	logger := s.log.With(slog.String("op", op), slog.Int64("artworkID", id))

	if artwork == nil {
		return fmt.Errorf("%s: %w", op, ErrNilBody)
	}
	if artwork.ID != id {
		return fmt.Errorf("%s: %w", op, ErrIDMismatch)
	}
	if artwork.Price.IsNegative() {
		return fmt.Errorf("%s: %w", op, ErrNegativePrice)
	}

	if err := s.artworkRepo.UpdateArtwork(ctx, artwork); err != nil {
		logger.Warn("failed to update artwork", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("artwork updated")
	return nil
}

func (s *artworkService) DeleteArtwork(ctx context.Context, id int64) error {
	const op = "service.ArtworkService.DeleteArtwork"
	logger := s.log.With(slog.String("op", op), slog.Int64("artworkID", id))

	if err := s.artworkRepo.DeleteArtwork(ctx, id); err != nil {
		logger.Warn("failed to delete artwork", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("artwork deleted")
	return nil
}
