package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/linemk/artosphere/internal/domain/models"
)

// FavoriteStorage описывает методы для работы с избранным.
type FavoriteStorage interface {
	GetFavoritesByUserID(ctx context.Context, userID string) ([]*models.Favorite, error)
	FavoriteExists(ctx context.Context, userID string, artworkID int64) (bool, error)
	// CreateFavorite возвращает ErrFavoriteExists, если пара уже сохранена.
	CreateFavorite(ctx context.Context, fav *models.Favorite) (*models.Favorite, error)
	// DeleteFavorite с непустым ownerID удаляет только закладку этого пользователя.
	DeleteFavorite(ctx context.Context, id int64, ownerID string) error
}

type favoriteRepository struct {
	db *sql.DB
}

func NewFavoriteRepository(db *sql.DB) FavoriteStorage {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) GetFavoritesByUserID(ctx context.Context, userID string) ([]*models.Favorite, error) {
	query := `
		SELECT f.id, f.user_id, f.artwork_id, f.added_date, ` + artworkColumns + `
		FROM favorites f
		JOIN artworks a ON a.id = f.artwork_id
		WHERE f.user_id = $1
		ORDER BY f.added_date DESC, f.id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]*models.Favorite, 0)
	for rows.Next() {
		fav := &models.Favorite{Artwork: &models.Artwork{}}
		dest := append([]any{&fav.ID, &fav.UserID, &fav.ArtworkID, &fav.AddedDate}, artworkDest(fav.Artwork)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *favoriteRepository) FavoriteExists(ctx context.Context, userID string, artworkID int64) (bool, error) {
	var exists bool
	query := "SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND artwork_id = $2)"
	if err := r.db.QueryRowContext(ctx, query, userID, artworkID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

func (r *favoriteRepository) CreateFavorite(ctx context.Context, fav *models.Favorite) (*models.Favorite, error) {
	query := `INSERT INTO favorites (user_id, artwork_id, added_date) VALUES ($1, $2, NOW())
	          RETURNING id, added_date`
	err := r.db.QueryRowContext(ctx, query, fav.UserID, fav.ArtworkID).Scan(&fav.ID, &fav.AddedDate)
	if err != nil {
		switch pqCode(err) {
		case pqUniqueViolation:
			return nil, ErrFavoriteExists
		case pqForeignKeyViolation:
			return nil, ErrArtworkNotFound
		}
		return nil, fmt.Errorf("failed to create favorite: %w", err)
	}
	return fav, nil
}

func (r *favoriteRepository) DeleteFavorite(ctx context.Context, id int64, ownerID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM favorites WHERE id = $1 AND ($2 = '' OR user_id = $2)", id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	return expectAffected(res, ErrFavoriteNotFound)
}
