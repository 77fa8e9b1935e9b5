package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/linemk/artosphere/internal/service"
)

// запас на заголовки multipart поверх лимита файла
const multipartOverhead = 1 << 20

// UploadImageHandler обрабатывает POST /api/upload/artwork/{artworkId}, файл в поле "file"
func UploadImageHandler(log *slog.Logger, imageService service.ImageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UploadImageHandler"
		logger := log.With(slog.String("op", op))

		artworkID, err := pathID(r, "artworkId")
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, service.MaxImageSize+multipartOverhead)
		file, header, err := r.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			switch {
			case errors.As(err, &tooLarge):
				respondError(w, http.StatusBadRequest, service.PublicMessage(service.ErrFileTooLarge))
			case errors.Is(err, http.ErrMissingFile):
				respondError(w, http.StatusBadRequest, service.PublicMessage(service.ErrEmptyFile))
			default:
				logger.Warn("invalid multipart form", slog.Any("error", err))
				respondError(w, http.StatusBadRequest, "invalid multipart form")
			}
			return
		}
		defer file.Close()

		res, err := imageService.UploadImage(r.Context(), artworkID, header.Filename, header.Size, file)
		if err != nil {
			respondServiceError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusOK, res)
	}
}

// GetImageHandler обрабатывает GET /api/upload/artwork/{artworkId} и отдаёт сырые байты
func GetImageHandler(log *slog.Logger, imageService service.ImageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetImageHandler"
		logger := log.With(slog.String("op", op))

		artworkID, err := pathID(r, "artworkId")
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		data, contentType, err := imageService.GetImage(r.Context(), artworkID)
		if err != nil {
			respondServiceError(w, logger, err)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			logger.Error("failed to write image", slog.Any("error", err))
		}
	}
}

// DeleteImageHandler обрабатывает DELETE /api/upload/artwork/{artworkId}
func DeleteImageHandler(log *slog.Logger, imageService service.ImageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteImageHandler"
		logger := log.With(slog.String("op", op))

		artworkID, err := pathID(r, "artworkId")
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := imageService.DeleteImage(r.Context(), artworkID); err != nil {
			respondServiceError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusOK, MessageResponse{Message: "Image deleted successfully"})
	}
}
