package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/linemk/artosphere/internal/domain/models"
	security "github.com/linemk/artosphere/internal/jwt-new"
)

// GuestPrefix - префикс идентификаторов гостевых пользователей
const GuestPrefix = "guest-"

type SessionService interface {
	// NewGuestSession выдаёт новый идентификатор гостя и подписанный токен для него.
	NewGuestSession(ctx context.Context) (*models.Session, error)
}

type sessionService struct {
	log      *slog.Logger
	secret   string
	tokenTTL time.Duration
}

func NewSessionService(log *slog.Logger, secret string, tokenTTL time.Duration) SessionService {
	return &sessionService{
		log:      log,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (s *sessionService) NewGuestSession(ctx context.Context) (*models.Session, error) {
	const op = "service.SessionService.NewGuestSession"

	userID := GuestPrefix + uuid.NewString()
	token, expiresAt, err := security.NewToken(ctx, userID, s.tokenTTL, s.secret)
	if err != nil {
		s.log.Error("failed to generate token", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	s.log.Info("guest session issued", slog.String("op", op), slog.String("userID", userID))
	return &models.Session{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
