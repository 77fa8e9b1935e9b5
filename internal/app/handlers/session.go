package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/artosphere/internal/service"
)

// RootResponse - ответ на GET /
type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// RootHandler отвечает, что сервис жив
func RootHandler(log *slog.Logger) http.HandlerFunc {
	logger := log.With(slog.String("op", "handlers.RootHandler"))
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, logger, http.StatusOK, RootResponse{Message: "ArtoSphere API is running!", Version: "1.0"})
	}
}

// GuestSessionHandler обрабатывает POST /api/session/guest и выдаёт новый гостевой идентификатор с токеном
func GuestSessionHandler(log *slog.Logger, sessionService service.SessionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GuestSessionHandler"
		logger := log.With(slog.String("op", op))

		session, err := sessionService.NewGuestSession(r.Context())
		if err != nil {
			respondServiceError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusCreated, session)
	}
}
