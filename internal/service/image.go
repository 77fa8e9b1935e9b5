package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/linemk/artosphere/internal/domain/models"
	"github.com/linemk/artosphere/internal/storage"
)

// MaxImageSize - предельный размер загружаемой картинки
const MaxImageSize int64 = 5 << 20

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

type ImageService interface {
	// UploadImage проверяет файл и сохраняет его байты в произведении. size - заявленный клиентом размер.
	UploadImage(ctx context.Context, artworkID int64, fileName string, size int64, r io.Reader) (*models.ImageUpload, error)
	// GetImage возвращает байты картинки и content-type, выведенный из imageUrl.
	GetImage(ctx context.Context, artworkID int64) ([]byte, string, error)
	DeleteImage(ctx context.Context, artworkID int64) error
}

type imageService struct {
	log         *slog.Logger
	artworkRepo storage.ArtworkStorage
}

func NewImageService(log *slog.Logger, artworkRepo storage.ArtworkStorage) ImageService {
	return &imageService{
		log:         log,
		artworkRepo: artworkRepo,
	}
}

func (s *imageService) UploadImage(ctx context.Context, artworkID int64, fileName string, size int64, r io.Reader) (*models.ImageUpload, error) {
	const op = "service.ImageService.UploadImage"
	logger := s.log.With(slog.String("op", op), slog.Int64("artworkID", artworkID), slog.String("fileName", fileName))

	// все проверки до какой-либо записи в хранилище
	if r == nil || size == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyFile)
	}
	if size > MaxImageSize {
		logger.Warn("file too large", slog.Int64("size", size))
		return nil, fmt.Errorf("%s: %w", op, ErrFileTooLarge)
	}
	if _, ok := allowedImageExtensions[strings.ToLower(filepath.Ext(fileName))]; !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrUnsupportedFile)
	}

	if _, err := s.artworkRepo.GetArtworkByID(ctx, artworkID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// заявленному размеру не доверяем, читаем не больше лимита + 1 байт
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		logger.Error("failed to read file", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to read file: %w", op, err)
	}
	if int64(len(data)) > MaxImageSize {
		logger.Warn("file too large", slog.Int("read", len(data)))
		return nil, fmt.Errorf("%s: %w", op, ErrFileTooLarge)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyFile)
	}

	if err := s.artworkRepo.SetArtworkImage(ctx, artworkID, data); err != nil {
		logger.Error("failed to store image", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("image uploaded", slog.Int("size", len(data)))
	return &models.ImageUpload{
		Message:   "Image uploaded successfully",
		ArtworkID: artworkID,
		FileSize:  int64(len(data)),
		FileName:  fileName,
	}, nil
}

func (s *imageService) GetImage(ctx context.Context, artworkID int64) ([]byte, string, error) {
	const op = "service.ImageService.GetImage"

	img, err := s.artworkRepo.GetArtworkImage(ctx, artworkID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if len(img.Data) == 0 {
		return nil, "", fmt.Errorf("%s: %w", op, ErrImageNotFound)
	}
	return img.Data, ContentTypeFor(img.ImageURL), nil
}

// DeleteImage стирает байты картинки, imageUrl остаётся.
func (s *imageService) DeleteImage(ctx context.Context, artworkID int64) error {
	const op = "service.ImageService.DeleteImage"

	if err := s.artworkRepo.ClearArtworkImage(ctx, artworkID); err != nil {
		if !errors.Is(err, storage.ErrArtworkNotFound) {
			s.log.Error("failed to delete image", slog.String("op", op), slog.Int64("artworkID", artworkID), slog.Any("error", err))
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ContentTypeFor определяет тип картинки по расширению ссылки, по умолчанию image/jpeg.
// Содержимое файла не анализируется.
func ContentTypeFor(imageURL string) string {
	u := strings.ToLower(imageURL)
	switch {
	case strings.HasSuffix(u, ".png"):
		return "image/png"
	case strings.HasSuffix(u, ".gif"):
		return "image/gif"
	case strings.HasSuffix(u, ".webp"):
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
