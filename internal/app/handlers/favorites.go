package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/artosphere/internal/domain/models"
	"github.com/linemk/artosphere/internal/service"
)

// AddFavoriteRequest - тело POST /api/favorites
type AddFavoriteRequest struct {
	UserID    string `json:"userId" validate:"omitempty,userid"`
	ArtworkID int64  `json:"artworkId" validate:"required,gt=0"`
}

// GetFavoritesHandler обрабатывает GET /api/favorites/{userId}
func GetFavoritesHandler(log *slog.Logger, favoriteService service.FavoriteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetFavoritesHandler"
		logger := log.With(slog.String("op", op))

		userID, err := resolveUserID(r.Context(), chi.URLParam(r, "userId"))
		if err != nil {
			respondUserIDError(w, logger, err)
			return
		}

		favorites, err := favoriteService.GetUserFavorites(r.Context(), userID)
		if err != nil {
			respondServiceError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusOK, favorites)
	}
}

// CheckFavoriteHandler обрабатывает GET /api/favorites/{userId}/check/{artworkId}, в ответе true или false
func CheckFavoriteHandler(log *slog.Logger, favoriteService service.FavoriteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CheckFavoriteHandler"
		logger := log.With(slog.String("op", op))

		userID, err := resolveUserID(r.Context(), chi.URLParam(r, "userId"))
		if err != nil {
			respondUserIDError(w, logger, err)
			return
		}
		artworkID, err := pathID(r, "artworkId")
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		ok, err := favoriteService.IsFavorite(r.Context(), userID, artworkID)
		if err != nil {
			respondServiceError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusOK, ok)
	}
}

// AddFavoriteHandler обрабатывает POST /api/favorites. Повторное добавление даёт 409.
func AddFavoriteHandler(log *slog.Logger, favoriteService service.FavoriteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AddFavoriteHandler"
		logger := log.With(slog.String("op", op))

		var req *AddFavoriteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("invalid request: decoding error", slog.Any("error", err))
			respondError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if req == nil {
			respondError(w, http.StatusBadRequest, service.PublicMessage(service.ErrNilBody))
			return
		}
		if err := validate.Struct(req); err != nil {
			respondError(w, http.StatusBadRequest, validationMessage(err))
			return
		}

		userID, err := resolveUserID(r.Context(), req.UserID)
		if err != nil {
			respondUserIDError(w, logger, err)
			return
		}

		fav, err := favoriteService.AddFavorite(r.Context(), &models.Favorite{UserID: userID, ArtworkID: req.ArtworkID})
		if err != nil {
			respondServiceError(w, logger, err)
			return
		}

		w.Header().Set("Location", "/api/favorites/"+fav.UserID)
		respondJSON(w, logger, http.StatusCreated, fav)
	}
}

// RemoveFavoriteHandler обрабатывает DELETE /api/favorites/{id}
func RemoveFavoriteHandler(log *slog.Logger, favoriteService service.FavoriteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RemoveFavoriteHandler"
		logger := log.With(slog.String("op", op))

		id, err := pathID(r, "id")
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := favoriteService.RemoveFavorite(r.Context(), id, sessionOwner(r.Context())); err != nil {
			respondServiceError(w, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
