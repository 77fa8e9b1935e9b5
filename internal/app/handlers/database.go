package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/artosphere/internal/service"
)

// SeedResponse - ответ на POST /api/database/seed
type SeedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// SeedDatabaseHandler обрабатывает POST /api/database/seed
func SeedDatabaseHandler(log *slog.Logger, adminService service.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SeedDatabaseHandler"
		logger := log.With(slog.String("op", op))

		count, err := adminService.Seed(r.Context())
		if err != nil {
			respondServiceError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusOK, SeedResponse{Message: "Database seeded successfully", Count: count})
	}
}

// ClearDatabaseHandler обрабатывает DELETE /api/database/clear
func ClearDatabaseHandler(log *slog.Logger, adminService service.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ClearDatabaseHandler"
		logger := log.With(slog.String("op", op))

		if err := adminService.Clear(r.Context()); err != nil {
			respondServiceError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusOK, MessageResponse{Message: "Database cleared"})
	}
}

// DatabaseStatusHandler обрабатывает GET /api/database/status
func DatabaseStatusHandler(log *slog.Logger, adminService service.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DatabaseStatusHandler"
		logger := log.With(slog.String("op", op))

		status, err := adminService.Status(r.Context())
		if err != nil {
			respondServiceError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusOK, status)
	}
}
