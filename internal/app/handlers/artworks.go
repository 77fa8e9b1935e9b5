package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/linemk/artosphere/internal/domain/models"
	"github.com/linemk/artosphere/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ListArtworksHandler обрабатывает GET /api/artworks
func ListArtworksHandler(log *slog.Logger, artworkService service.ArtworkService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListArtworksHandler"
		logger := log.With(slog.String("op", op))

		artworks, err := artworkService.ListArtworks(r.Context())
		if err != nil {
			respondServiceError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusOK, artworks)
	}
}

// GetArtworkHandler обрабатывает GET /api/artworks/{id}
func GetArtworkHandler(log *slog.Logger, artworkService service.ArtworkService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetArtworkHandler"
		logger := log.With(slog.String("op", op))

		id, err := pathID(r, "id")
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		artwork, err := artworkService.GetArtwork(r.Context(), id)
		if err != nil {
			respondServiceError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusOK, artwork)
	}
}

// CreateArtworkHandler обрабатывает POST /api/artworks. Тело null отклоняется сервисом.
func CreateArtworkHandler(log *slog.Logger, artworkService service.ArtworkService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateArtworkHandler"
		logger := log.With(slog.String("op", op))

		var artwork *models.Artwork
		if err := json.NewDecoder(r.Body).Decode(&artwork); err != nil {
			logger.Warn("invalid request: decoding error", slog.Any("error", err))
			respondError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if artwork != nil {
			if err := validate.Struct(artwork); err != nil {
				respondError(w, http.StatusBadRequest, validationMessage(err))
				return
			}
		}

		created, err := artworkService.CreateArtwork(r.Context(), artwork)
		if err != nil {
			respondServiceError(w, logger, err)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("/api/artworks/%d", created.ID))
		respondJSON(w, logger, http.StatusCreated, created)
	}
}

// UpdateArtworkHandler обрабатывает PUT /api/artworks/{id}
func UpdateArtworkHandler(log *slog.Logger, artworkService service.ArtworkService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateArtworkHandler"
		logger := log.With(slog.String("op", op))

		id, err := pathID(r, "id")
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		var artwork *models.Artwork
		if err := json.NewDecoder(r.Body).Decode(&artwork); err != nil {
			logger.Warn("invalid request: decoding error", slog.Any("error", err))
			respondError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if artwork != nil {
			if err := validate.Struct(artwork); err != nil {
				respondError(w, http.StatusBadRequest, validationMessage(err))
				return
			}
		}

		if err := artworkService.UpdateArtwork(r.Context(), id, artwork); err != nil {
			respondServiceError(w, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteArtworkHandler обрабатывает DELETE /api/artworks/{id}
func DeleteArtworkHandler(log *slog.Logger, artworkService service.ArtworkService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteArtworkHandler"
		logger := log.With(slog.String("op", op))

		id, err := pathID(r, "id")
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := artworkService.DeleteArtwork(r.Context(), id); err != nil {
			respondServiceError(w, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ExportArtworksHandler обрабатывает GET /api/artworks/export и отдаёт каталог файлом xlsx
func ExportArtworksHandler(log *slog.Logger, artworkService service.ArtworkService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ExportArtworksHandler"
		logger := log.With(slog.String("op", op))

		// собираем файл целиком, чтобы при ошибке ещё можно было ответить 500
		var buf bytes.Buffer
		if err := artworkService.ExportArtworks(r.Context(), &buf); err != nil {
			respondServiceError(w, logger, err)
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="artworks.xlsx"`)
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil {
			logger.Error("failed to write export", slog.Any("error", err))
		}
	}
}
