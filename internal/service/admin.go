package service

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/linemk/artosphere/internal/domain/models"
	"github.com/linemk/artosphere/internal/storage"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed seed/artworks.yaml
var seedCatalog []byte

type seedArtwork struct {
	Title       string `yaml:"title"`
	Artist      string `yaml:"artist"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	ImageURL    string `yaml:"image_url"`
	Year        int    `yaml:"year"`
	Category    string `yaml:"category"`
}

// SeedArtworks разбирает встроенный стартовый каталог.
func SeedArtworks() ([]*models.Artwork, error) {
	var raw []seedArtwork
	if err := yaml.Unmarshal(seedCatalog, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}

	artworks := make([]*models.Artwork, 0, len(raw))
	for _, r := range raw {
		price, err := decimal.NewFromString(r.Price)
		if err != nil {
			return nil, fmt.Errorf("seed artwork %q: invalid price: %w", r.Title, err)
		}
		artworks = append(artworks, &models.Artwork{
			Title:       r.Title,
			Artist:      r.Artist,
			Description: r.Description,
			Price:       price,
			ImageURL:    r.ImageURL,
			Category:    r.Category,
			IsAvailable: true,
			CreatedDate: time.Date(r.Year, time.January, 1, 0, 0, 0, 0, time.UTC),
		})
	}
	return artworks, nil
}

type AdminService interface {
	// Seed заполняет пустой каталог и возвращает число добавленных произведений.
	Seed(ctx context.Context) (int, error)
	// Clear удаляет все данные.
	Clear(ctx context.Context) error
	Status(ctx context.Context) (*models.DatabaseStatus, error)
}

type adminService struct {
	log         *slog.Logger
	db          *sql.DB
	adminRepo   storage.AdminStorage
	artworkRepo storage.ArtworkStorage
}

func NewAdminService(log *slog.Logger, db *sql.DB, adminRepo storage.AdminStorage, artworkRepo storage.ArtworkStorage) AdminService {
	return &adminService{
		log:         log,
		db:          db,
		adminRepo:   adminRepo,
		artworkRepo: artworkRepo,
	}
}

func (s *adminService) Seed(ctx context.Context) (int, error) {
	const op = "service.AdminService.Seed"
	logger := s.log.With(slog.String("op", op))

	artworks, err := SeedArtworks()
	if err != nil {
		logger.Error("failed to load seed catalog", slog.Any("error", err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	count, err := s.artworkRepo.CountArtworksTx(ctx, tx)
	if err != nil {
		rollback(tx, logger)
		logger.Error("failed to count artworks", slog.Any("error", err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if count > 0 {
		rollback(tx, logger)
		logger.Info("database already seeded", slog.Int("artworks", count))
		return 0, fmt.Errorf("%s: %w", op, ErrAlreadySeeded)
	}

	if err := s.artworkRepo.InsertArtworksTx(ctx, tx, artworks); err != nil {
		rollback(tx, logger)
		logger.Error("failed to insert artworks", slog.Any("error", err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logger.Info("database seeded", slog.Int("count", len(artworks)))
	return len(artworks), nil
}

func (s *adminService) Clear(ctx context.Context) error {
	const op = "service.AdminService.Clear"
	logger := s.log.With(slog.String("op", op))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	if err := s.adminRepo.ClearAllTx(ctx, tx); err != nil {
		rollback(tx, logger)
		logger.Error("failed to clear database", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logger.Warn("database cleared")
	return nil
}

func (s *adminService) Status(ctx context.Context) (*models.DatabaseStatus, error) {
	const op = "service.AdminService.Status"

	status, err := s.adminRepo.GetStatus(ctx)
	if err != nil {
		s.log.Error("failed to get status", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return status, nil
}
