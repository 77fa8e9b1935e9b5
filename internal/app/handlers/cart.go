package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/artosphere/internal/domain/models"
	"github.com/linemk/artosphere/internal/service"
	"github.com/shopspring/decimal"
)

// AddToCartRequest - тело POST /api/cart. userId можно не передавать при наличии сессии.
type AddToCartRequest struct {
	UserID      string          `json:"userId" validate:"omitempty,userid"`
	ArtworkID   int64           `json:"artworkId" validate:"required,gt=0"`
	Quantity    int             `json:"quantity" validate:"required,min=1,max=1000"`
	PriceAtTime decimal.Decimal `json:"priceAtTime"`
}

// UpdateQuantityRequest - тело PUT /api/cart/{id}
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetCartHandler обрабатывает GET /api/cart/{userId}
func GetCartHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetCartHandler"
		logger := log.With(slog.String("op", op))

		userID, err := resolveUserID(r.Context(), chi.URLParam(r, "userId"))
		if err != nil {
			respondUserIDError(w, logger, err)
			return
		}

		items, err := cartService.GetUserCart(r.Context(), userID)
		if err != nil {
			respondServiceError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusOK, items)
	}
}

// AddToCartHandler обрабатывает POST /api/cart
func AddToCartHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AddToCartHandler"
		logger := log.With(slog.String("op", op))

		var req *AddToCartRequest
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

		item, err := cartService.AddToCart(r.Context(), &models.CartItem{
			UserID:      userID,
			ArtworkID:   req.ArtworkID,
			Quantity:    req.Quantity,
			PriceAtTime: req.PriceAtTime,
		})
		if err != nil {
			respondServiceError(w, logger, err)
			return
		}

		w.Header().Set("Location", "/api/cart/"+item.UserID)
		respondJSON(w, logger, http.StatusCreated, item)
	}
}

// UpdateCartItemHandler обрабатывает PUT /api/cart/{id}. С сессией меняется только своя позиция.
func UpdateCartItemHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateCartItemHandler"
		logger := log.With(slog.String("op", op))

		id, err := pathID(r, "id")
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		var req UpdateQuantityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("invalid request: decoding error", slog.Any("error", err))
			respondError(w, http.StatusBadRequest, "invalid request")
			return
		}

		item, err := cartService.UpdateQuantity(r.Context(), id, sessionOwner(r.Context()), req.Quantity)
		if err != nil {
			respondServiceError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusOK, item)
	}
}

// RemoveCartItemHandler обрабатывает DELETE /api/cart/{id}. С сессией удаляется только своя позиция.
func RemoveCartItemHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RemoveCartItemHandler"
		logger := log.With(slog.String("op", op))

		id, err := pathID(r, "id")
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := cartService.RemoveItem(r.Context(), id, sessionOwner(r.Context())); err != nil {
			respondServiceError(w, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ClearCartHandler обрабатывает DELETE /api/cart/user/{userId}
func ClearCartHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ClearCartHandler"
		logger := log.With(slog.String("op", op))

		userID, err := resolveUserID(r.Context(), chi.URLParam(r, "userId"))
		if err != nil {
			respondUserIDError(w, logger, err)
			return
		}

		if err := cartService.ClearCart(r.Context(), userID); err != nil {
			respondServiceError(w, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
