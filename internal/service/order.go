package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/linemk/artosphere/internal/domain/models"
	"github.com/linemk/artosphere/internal/storage"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	GetUserOrders(ctx context.Context, userID string) ([]*models.Order, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	// CreateOrderFromCart превращает корзину пользователя в заказ и очищает её.
	CreateOrderFromCart(ctx context.Context, userID string) (*models.Order, error)
	UpdateOrder(ctx context.Context, id int64, upd models.OrderUpdate) (*models.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

type orderService struct {
	log       *slog.Logger
	db        *sql.DB
	orderRepo storage.OrderStorage
	cartRepo  storage.CartStorage
}

func NewOrderService(log *slog.Logger, db *sql.DB, orderRepo storage.OrderStorage, cartRepo storage.CartStorage) OrderService {
	return &orderService{
		log:       log,
		db:        db,
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
	}
}

func (s *orderService) GetUserOrders(ctx context.Context, userID string) ([]*models.Order, error) {
	const op = "service.OrderService.GetUserOrders"

	orders, err := s.orderRepo.GetOrdersByUserID(ctx, userID)
	if err != nil {
		s.log.Error("failed to get orders", slog.String("op", op), slog.String("userID", userID), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

func (s *orderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	const op = "service.OrderService.GetOrder"

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

// CreateOrder сохраняет заказ с позициями, переданными клиентом. Сумма берётся как есть.
func (s *orderService) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	const op = "service.OrderService.CreateOrder"

	if order == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNilBody)
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	if !order.Status.Valid() {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidStatus)
	}
	for _, item := range order.Items {
		if item == nil {
			return nil, fmt.Errorf("%s: %w", op, ErrNilBody)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidQuantity)
		}
	}
	if order.Items == nil {
		order.Items = make([]*models.OrderItem, 0)
	}

	logger := s.log.With(slog.String("op", op), slog.String("userID", order.UserID))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	if err := s.orderRepo.CreateOrderTx(ctx, tx, order); err != nil {
		rollback(tx, logger)
		logger.Warn("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logger.Info("order created", slog.Int64("orderID", order.ID))
	return order, nil
}

// CreateOrderFromCart в одной транзакции блокирует корзину, создаёт заказ с позициями по ценам
// из корзины и удаляет корзину. Пустая корзина даёт ErrEmptyCart, заказ не создаётся.
func (s *orderService) CreateOrderFromCart(ctx context.Context, userID string) (*models.Order, error) {
	const op = "service.OrderService.CreateOrderFromCart"
	logger := s.log.With(slog.String("op", op), slog.String("userID", userID))
	logger.Info("starting checkout transaction")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	cart, err := s.cartRepo.LockCartByUserIDTx(ctx, tx, userID)
	if err != nil {
		rollback(tx, logger)
		logger.Error("failed to read cart", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to read cart: %w", op, err)
	}

	if len(cart) == 0 {
		rollback(tx, logger)
		logger.Info("cart is empty")
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyCart)
	}

	order := &models.Order{
		UserID:      userID,
		Status:      models.OrderStatusPending,
		TotalAmount: decimal.Zero,
		Items:       make([]*models.OrderItem, 0, len(cart)),
	}
	lockedIDs := make([]int64, 0, len(cart))
	for _, c := range cart {
		lockedIDs = append(lockedIDs, c.ID)
		order.TotalAmount = order.TotalAmount.Add(models.LineTotal(c.PriceAtTime, c.Quantity))
		order.Items = append(order.Items, &models.OrderItem{
			ArtworkID: c.ArtworkID,
			Quantity:  c.Quantity,
			Price:     c.PriceAtTime,
		})
	}

	if err := s.orderRepo.CreateOrderTx(ctx, tx, order); err != nil {
		rollback(tx, logger)
		logger.Error("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create order: %w", op, err)
	}

	// удаляем только прочитанные строки: позиция, добавленная параллельно, остаётся в корзине
	if err := s.cartRepo.DeleteCartItemsTx(ctx, tx, lockedIDs); err != nil {
		rollback(tx, logger)
		logger.Error("failed to clear cart", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to clear cart: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logger.Info("order created from cart",
		slog.Int64("orderID", order.ID),
		slog.Int("items", len(order.Items)),
		slog.String("total", order.TotalAmount.StringFixed(2)),
	)
	return order, nil
}

// UpdateOrder меняет статус и сумму и возвращает заказ целиком.
func (s *orderService) UpdateOrder(ctx context.Context, id int64, upd models.OrderUpdate) (*models.Order, error) {
	const op = "service.OrderService.UpdateOrder"

	if !upd.Status.Valid() {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidStatus)
	}

	if err := s.orderRepo.UpdateOrder(ctx, id, upd); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("order updated", slog.String("op", op), slog.Int64("orderID", id), slog.String("status", string(upd.Status)))
	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id int64) error {
	const op = "service.OrderService.DeleteOrder"

	if err := s.orderRepo.DeleteOrder(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("order deleted", slog.String("op", op), slog.Int64("orderID", id))
	return nil
}

func rollback(tx *sql.Tx, logger *slog.Logger) {
	if rbErr := tx.Rollback(); rbErr != nil {
		logger.Error("transaction rollback failed", slog.Any("error", rbErr))
	}
}
