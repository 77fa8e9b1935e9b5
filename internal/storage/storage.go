package storage

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrArtworkNotFound  = errors.New("artwork not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrFavoriteExists   = errors.New("this artwork is already in favorites")
	ErrArtworkInUse     = errors.New("artwork is referenced by existing orders")
)

// коды ошибок postgres, которые разбираем явно
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}
