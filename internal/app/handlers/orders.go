package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/artosphere/internal/domain/models"
	"github.com/linemk/artosphere/internal/service"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest - тело POST /api/orders
type CreateOrderRequest struct {
	UserID      string             `json:"userId" validate:"omitempty,userid"`
	TotalAmount decimal.Decimal    `json:"totalAmount"`
	Status      models.OrderStatus `json:"status"`
	Items       []OrderItemRequest `json:"items" validate:"dive"`
}

type OrderItemRequest struct {
	ArtworkID int64           `json:"artworkId" validate:"required,gt=0"`
	Quantity  int             `json:"quantity" validate:"required,min=1,max=1000"`
	Price     decimal.Decimal `json:"price"`
}

// GetUserOrdersHandler обрабатывает GET /api/orders/user/{userId}
func GetUserOrdersHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetUserOrdersHandler"
		logger := log.With(slog.String("op", op))

		userID, err := resolveUserID(r.Context(), chi.URLParam(r, "userId"))
		if err != nil {
			respondUserIDError(w, logger, err)
			return
		}

		orders, err := orderService.GetUserOrders(r.Context(), userID)
		if err != nil {
			respondServiceError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusOK, orders)
	}
}

// GetOrderHandler обрабатывает GET /api/orders/{id}
func GetOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetOrderHandler"
		logger := log.With(slog.String("op", op))

		id, err := pathID(r, "id")
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		order, err := orderService.GetOrder(r.Context(), id)
		if err != nil {
			respondServiceError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusOK, order)
	}
}

// CreateOrderHandler обрабатывает POST /api/orders - заказ с явно переданными позициями
func CreateOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateOrderHandler"
		logger := log.With(slog.String("op", op))

		var req *CreateOrderRequest
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

		order := &models.Order{
			UserID:      userID,
			TotalAmount: req.TotalAmount,
			Status:      req.Status,
			Items:       make([]*models.OrderItem, 0, len(req.Items)),
		}
		for _, it := range req.Items {
			order.Items = append(order.Items, &models.OrderItem{
				ArtworkID: it.ArtworkID,
				Quantity:  it.Quantity,
				Price:     it.Price,
			})
		}

		created, err := orderService.CreateOrder(r.Context(), order)
		if err != nil {
			respondServiceError(w, logger, err)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("/api/orders/%d", created.ID))
		respondJSON(w, logger, http.StatusCreated, created)
	}
}

// CreateOrderFromCartHandler обрабатывает POST /api/orders/from-cart?userId=
func CreateOrderFromCartHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateOrderFromCartHandler"
		logger := log.With(slog.String("op", op))

		userID, err := resolveUserID(r.Context(), r.URL.Query().Get("userId"))
		if err != nil {
			respondUserIDError(w, logger, err)
			return
		}

		order, err := orderService.CreateOrderFromCart(r.Context(), userID)
		if err != nil {
			respondServiceError(w, logger, err)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("/api/orders/%d", order.ID))
		respondJSON(w, logger, http.StatusCreated, order)
	}
}

// UpdateOrderHandler обрабатывает PUT /api/orders/{id}. Меняются только статус и сумма.
func UpdateOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateOrderHandler"
		logger := log.With(slog.String("op", op))

		id, err := pathID(r, "id")
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		var upd models.OrderUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			logger.Warn("invalid request: decoding error", slog.Any("error", err))
			respondError(w, http.StatusBadRequest, "invalid request")
			return
		}

		order, err := orderService.UpdateOrder(r.Context(), id, upd)
		if err != nil {
			respondServiceError(w, logger, err)
			return
		}
		respondJSON(w, logger, http.StatusOK, order)
	}
}

// DeleteOrderHandler обрабатывает DELETE /api/orders/{id}
func DeleteOrderHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteOrderHandler"
		logger := log.With(slog.String("op", op))

		id, err := pathID(r, "id")
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := orderService.DeleteOrder(r.Context(), id); err != nil {
			respondServiceError(w, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
