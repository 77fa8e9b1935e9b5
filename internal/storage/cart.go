package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/linemk/artosphere/internal/domain/models"
)

// CartStorage описывает методы для работы с корзинами.
type CartStorage interface {
	// GetCartByUserID возвращает корзину пользователя вместе с данными произведений.
	GetCartByUserID(ctx context.Context, userID string) ([]*models.CartItem, error)
	// LockCartByUserIDTx читает и блокирует строки корзины внутри транзакции.
	LockCartByUserIDTx(ctx context.Context, tx *sql.Tx, userID string) ([]*models.CartItem, error)
	// UpsertCartItem добавляет позицию или увеличивает количество уже существующей.
	UpsertCartItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
	// UpdateCartItemQuantity и DeleteCartItem с непустым ownerID трогают только строки этого пользователя,
	// чужая строка выглядит как отсутствующая.
	UpdateCartItemQuantity(ctx context.Context, id int64, ownerID string, quantity int) (*models.CartItem, error)
	DeleteCartItem(ctx context.Context, id int64, ownerID string) error
	DeleteCartByUserID(ctx context.Context, userID string) error
	// DeleteCartItemsTx удаляет ровно перечисленные строки, например заблокированные при оформлении заказа.
	DeleteCartItemsTx(ctx context.Context, tx *sql.Tx, ids []int64) error
}

type cartRepository struct {
	db *sql.DB
}

// NewCartRepository создаёт новый репозиторий корзин.
func NewCartRepository(db *sql.DB) CartStorage {
	return &cartRepository{db: db}
}

const cartColumns = `id, user_id, artwork_id, quantity, price_at_time, added_date`

func cartDest(c *models.CartItem) []any {
	return []any{&c.ID, &c.UserID, &c.ArtworkID, &c.Quantity, &c.PriceAtTime, &c.AddedDate}
}

func scanCartItem(s rowScanner) (*models.CartItem, error) {
	item := &models.CartItem{}
	if err := s.Scan(cartDest(item)...); err != nil {
		return nil, err
	}
	item.ComputeSubtotal()
	return item, nil
}

func (r *cartRepository) GetCartByUserID(ctx context.Context, userID string) ([]*models.CartItem, error) {
	query := `
		SELECT c.id, c.user_id, c.artwork_id, c.quantity, c.price_at_time, c.added_date, ` + artworkColumns + `
		FROM cart_items c
		JOIN artworks a ON a.id = c.artwork_id
		WHERE c.user_id = $1
		ORDER BY c.added_date, c.id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	defer rows.Close()

	items := make([]*models.CartItem, 0)
	for rows.Next() {
		item := &models.CartItem{Artwork: &models.Artwork{}}
		dest := append(cartDest(item), artworkDest(item.Artwork)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		item.ComputeSubtotal()
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cartRepository) LockCartByUserIDTx(ctx context.Context, tx *sql.Tx, userID string) ([]*models.CartItem, error) {
	query := `SELECT ` + cartColumns + ` FROM cart_items WHERE user_id = $1 ORDER BY id FOR UPDATE`
	rows, err := tx.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock cart: %w", err)
	}
	defer rows.Close()

	var items []*models.CartItem
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpsertCartItem опирается на уникальный индекс (user_id, artwork_id): повторное добавление
// прибавляет количество, а цена и дата остаются от первого добавления.
func (r *cartRepository) UpsertCartItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	query := `INSERT INTO cart_items (user_id, artwork_id, quantity, price_at_time, added_date)
	          VALUES ($1, $2, $3, $4, NOW())
	          ON CONFLICT (user_id, artwork_id)
	          DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	          RETURNING ` + cartColumns
	row := r.db.QueryRowContext(ctx, query, item.UserID, item.ArtworkID, item.Quantity, item.PriceAtTime)
	saved, err := scanCartItem(row)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return nil, ErrArtworkNotFound
		}
		return nil, fmt.Errorf("failed to upsert cart item: %w", err)
	}
	return saved, nil
}

func (r *cartRepository) UpdateCartItemQuantity(ctx context.Context, id int64, ownerID string, quantity int) (*models.CartItem, error) {
	query := `UPDATE cart_items SET quantity = $1 WHERE id = $2 AND ($3 = '' OR user_id = $3) RETURNING ` + cartColumns
	item, err := scanCartItem(r.db.QueryRowContext(ctx, query, quantity, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	return item, nil
}

func (r *cartRepository) DeleteCartItem(ctx context.Context, id int64, ownerID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cart_items WHERE id = $1 AND ($2 = '' OR user_id = $2)", id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	return expectAffected(res, ErrCartItemNotFound)
}

// DeleteCartByUserID очищает корзину; пустая корзина - не ошибка.
func (r *cartRepository) DeleteCartByUserID(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM cart_items WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (r *cartRepository) DeleteCartItemsTx(ctx context.Context, tx *sql.Tx, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM cart_items WHERE id = ANY($1)", pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to delete cart items: %w", err)
	}
	return nil
}
