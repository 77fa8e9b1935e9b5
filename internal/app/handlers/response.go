package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/linemk/artosphere/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/artosphere/internal/lib/respond"
	"github.com/linemk/artosphere/internal/service"
	"github.com/linemk/artosphere/internal/storage"
)

// ErrorResponse - тело любого ответа с ошибкой, общее с middleware
type ErrorResponse = respond.ErrorResponse

// MessageResponse - тело ответа, состоящее только из сообщения
type MessageResponse struct {
	Message string `json:"message"`
}

var userIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,100}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// userid - формат идентификатора гостя
	if err := v.RegisterValidation("userid", func(fl validator.FieldLevel) bool {
		return userIDPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

var (
	errUserIDRequired = errors.New("userId is required")
	errInvalidUserID  = errors.New("invalid userId format")
	errSessionUser    = errors.New("userId does not match the session")
)

// resolveUserID сверяет userId из запроса с гостевой сессией.
// Без сессии берётся userId запроса, без userId - пользователь сессии.
func resolveUserID(ctx context.Context, requested string) (string, error) {
	sessionUserID, hasSession := jwtmiddleware.FromContext(ctx)
	if requested == "" {
		if hasSession {
			return sessionUserID, nil
		}
		return "", errUserIDRequired
	}
	if !userIDPattern.MatchString(requested) {
		return "", errInvalidUserID
	}
	if hasSession && requested != sessionUserID {
		return "", errSessionUser
	}
	return requested, nil
}

// respondUserIDError пишет ответ на ошибку resolveUserID
func respondUserIDError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if errors.Is(err, errSessionUser) {
		logger.Warn("userId does not match session")
		respondError(w, http.StatusForbidden, err.Error())
		return
	}
	respondError(w, http.StatusBadRequest, err.Error())
}

// sessionOwner - пользователь сессии или пустая строка для анонимного запроса
func sessionOwner(ctx context.Context) string {
	userID, _ := jwtmiddleware.FromContext(ctx)
	return userID
}

// pathID разбирает числовой параметр пути. Несуществующие id (0, отрицательные) уходят в хранилище
// и заканчиваются 404, 400 только для нечисловых значений.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, nil
}

func respondJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respond.Error(w, status, message)
}

// ошибки хранилища и сервиса, которые означают отсутствие ресурса
var notFoundErrors = []error{
	storage.ErrArtworkNotFound,
	storage.ErrCartItemNotFound,
	storage.ErrFavoriteNotFound,
	storage.ErrOrderNotFound,
	service.ErrImageNotFound,
}

var conflictErrors = []error{
	storage.ErrFavoriteExists,
	storage.ErrArtworkInUse,
}

// respondServiceError переводит ошибку сервиса в HTTP-ответ. Детали 500 остаются только в логе.
func respondServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if errors.Is(err, service.ErrInvalidInput) {
		respondError(w, http.StatusBadRequest, service.PublicMessage(err))
		return
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			respondError(w, http.StatusNotFound, target.Error())
			return
		}
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			respondError(w, http.StatusConflict, target.Error())
			return
		}
	}

	logger.Error("request failed", slog.Any("error", err))
	respondError(w, http.StatusInternalServerError, "internal server error")
}

// validationMessage превращает ошибку validator в короткий текст для клиента
func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return "validation error"
	}
	switch ve[0].Field() {
	case "UserID":
		return errInvalidUserID.Error()
	case "Quantity":
		return "quantity must be between 1 and 1000"
	case "ArtworkID":
		return "invalid artworkId"
	case "Title":
		return "title is required and must be at most 200 characters"
	case "Status":
		return service.ErrInvalidStatus.Error()
	}
	return fmt.Sprintf("invalid value for %s", ve[0].Field())
}
