package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/linemk/artosphere/internal/domain/models"
)

// AdminStorage - служебные операции над всей базой.
type AdminStorage interface {
	GetStatus(ctx context.Context) (*models.DatabaseStatus, error)
	// ClearAllTx удаляет все данные каталога, корзин, избранного и заказов.
	ClearAllTx(ctx context.Context, tx *sql.Tx) error
}

type adminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) AdminStorage {
	return &adminRepository{db: db}
}

func (r *adminRepository) GetStatus(ctx context.Context) (*models.DatabaseStatus, error) {
	status := &models.DatabaseStatus{}
	query := `SELECT
		(SELECT COUNT(*) FROM artworks),
		(SELECT COUNT(*) FROM cart_items),
		(SELECT COUNT(*) FROM favorites),
		(SELECT COUNT(*) FROM orders)`
	err := r.db.QueryRowContext(ctx, query).Scan(&status.Artworks, &status.CartItems, &status.Favorites, &status.Orders)
	if err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}
	return status, nil
}

// порядок важен: order_items ссылаются на artworks с RESTRICT
var clearStatements = []string{
	"DELETE FROM order_items",
	"DELETE FROM orders",
	"DELETE FROM favorites",
	"DELETE FROM cart_items",
	"DELETE FROM artworks",
}

func (r *adminRepository) ClearAllTx(ctx context.Context, tx *sql.Tx) error {
	for _, stmt := range clearStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute %q: %w", stmt, err)
		}
	}
	return nil
}
