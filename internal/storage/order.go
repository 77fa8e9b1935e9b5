package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/linemk/artosphere/internal/domain/models"
)

// OrderStorage описывает методы для работы с заказами.
type OrderStorage interface {
	// CreateOrderTx вставляет заказ вместе с позициями в рамках транзакции.
	CreateOrderTx(ctx context.Context, tx *sql.Tx, order *models.Order) error
	// GetOrdersByUserID возвращает заказы пользователя, новые первыми, с позициями.
	GetOrdersByUserID(ctx context.Context, userID string) ([]*models.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	// UpdateOrder меняет только статус и сумму, позиции неизменяемы.
	UpdateOrder(ctx context.Context, id int64, upd models.OrderUpdate) error
	DeleteOrder(ctx context.Context, id int64) error
}

// orderRepository — конкретная реализация OrderStorage.
type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт новый репозиторий заказов.
func NewOrderRepository(db *sql.DB) OrderStorage {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrderTx(ctx context.Context, tx *sql.Tx, order *models.Order) error {
	query := `INSERT INTO orders (user_id, order_date, total_amount, status)
	          VALUES ($1, NOW(), $2, $3) RETURNING id, order_date`
	err := tx.QueryRowContext(ctx, query, order.UserID, order.TotalAmount, order.Status).
		Scan(&order.ID, &order.OrderDate)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `INSERT INTO order_items (order_id, artwork_id, quantity, price)
	              VALUES ($1, $2, $3, $4) RETURNING id`
	for _, item := range order.Items {
		item.OrderID = order.ID
		err := tx.QueryRowContext(ctx, itemQuery, order.ID, item.ArtworkID, item.Quantity, item.Price).Scan(&item.ID)
		if err != nil {
			if pqCode(err) == pqForeignKeyViolation {
				return fmt.Errorf("artwork %d: %w", item.ArtworkID, ErrArtworkNotFound)
			}
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}
	return nil
}

func (r *orderRepository) GetOrdersByUserID(ctx context.Context, userID string) ([]*models.Order, error) {
	query := `
		SELECT id, user_id, order_date, total_amount, status
		FROM orders
		WHERE user_id = $1
		ORDER BY order_date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*models.Order, 0)
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.UserID, &order.OrderDate, &order.TotalAmount, &order.Status); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	order := &models.Order{}
	row := r.db.QueryRowContext(ctx, "SELECT id, user_id, order_date, total_amount, status FROM orders WHERE id = $1", id)
	if err := row.Scan(&order.ID, &order.UserID, &order.OrderDate, &order.TotalAmount, &order.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if err := r.loadItems(ctx, []*models.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

// loadItems подтягивает позиции одним запросом для всех переданных заказов
func (r *orderRepository) loadItems(ctx context.Context, orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[int64]*models.Order, len(orders))
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		o.Items = make([]*models.OrderItem, 0)
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	query := `
		SELECT oi.id, oi.order_id, oi.artwork_id, oi.quantity, oi.price, ` + artworkColumns + `
		FROM order_items oi
		JOIN artworks a ON a.id = oi.artwork_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := &models.OrderItem{Artwork: &models.Artwork{}}
		dest := append([]any{&item.ID, &item.OrderID, &item.ArtworkID, &item.Quantity, &item.Price}, artworkDest(item.Artwork)...)
		if err := rows.Scan(dest...); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

func (r *orderRepository) UpdateOrder(ctx context.Context, id int64, upd models.OrderUpdate) error {
	res, err := r.db.ExecContext(ctx, "UPDATE orders SET status = $1, total_amount = $2 WHERE id = $3",
		upd.Status, upd.TotalAmount, id)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return expectAffected(res, ErrOrderNotFound)
}

// DeleteOrder удаляет заказ, позиции уходят каскадом.
func (r *orderRepository) DeleteOrder(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return expectAffected(res, ErrOrderNotFound)
}
