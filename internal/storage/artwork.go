package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/linemk/artosphere/internal/domain/models"
)

// ArtworkStorage описывает методы для работы с таблицей artworks.
type ArtworkStorage interface {
	ListArtworks(ctx context.Context) ([]*models.Artwork, error)
	GetArtworkByID(ctx context.Context, id int64) (*models.Artwork, error)
	CreateArtwork(ctx context.Context, artwork *models.Artwork) (*models.Artwork, error)
	// UpdateArtwork перезаписывает все изменяемые поля, кроме картинки.
	UpdateArtwork(ctx context.Context, artwork *models.Artwork) error
	DeleteArtwork(ctx context.Context, id int64) error

	GetArtworkImage(ctx context.Context, id int64) (*models.ArtworkImage, error)
	SetArtworkImage(ctx context.Context, id int64, data []byte) error
	ClearArtworkImage(ctx context.Context, id int64) error

	// CountArtworksTx и InsertArtworksTx используются при заполнении каталога внутри транзакции.
	CountArtworksTx(ctx context.Context, tx *sql.Tx) (int, error)
	InsertArtworksTx(ctx context.Context, tx *sql.Tx, artworks []*models.Artwork) error
}

type artworkRepository struct {
	db *sql.DB
}

// NewArtworkRepository создаёт новый репозиторий каталога.
func NewArtworkRepository(db *sql.DB) ArtworkStorage {
	return &artworkRepository{db: db}
}

// колонки произведения, таблица всегда под алиасом a
const artworkColumns = `a.id, a.title, a.artist, a.description, a.price, a.image_url, a.category,
	a.is_available, a.created_date, COALESCE(octet_length(a.image_data), 0) > 0`

// artworkDest - приёмники для artworkColumns в том же порядке
func artworkDest(a *models.Artwork) []any {
	return []any{&a.ID, &a.Title, &a.Artist, &a.Description, &a.Price, &a.ImageURL, &a.Category,
		&a.IsAvailable, &a.CreatedDate, &a.HasImage}
}

func scanArtwork(s rowScanner) (*models.Artwork, error) {
	a := &models.Artwork{}
	if err := s.Scan(artworkDest(a)...); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *artworkRepository) ListArtworks(ctx context.Context) ([]*models.Artwork, error) {
	query := `SELECT ` + artworkColumns + ` FROM artworks a ORDER BY a.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query artworks: %w", err)
	}
	defer rows.Close()

	artworks := make([]*models.Artwork, 0)
	for rows.Next() {
		a, err := scanArtwork(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan artwork: %w", err)
		}
		artworks = append(artworks, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return artworks, nil
}

func (r *artworkRepository) GetArtworkByID(ctx context.Context, id int64) (*models.Artwork, error) {
	query := `SELECT ` + artworkColumns + ` FROM artworks a WHERE a.id = $1`
	a, err := scanArtwork(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtworkNotFound
		}
		return nil, err
	}
	return a, nil
}

// CreateArtwork вставляет произведение, дата создания ставится на стороне БД.
func (r *artworkRepository) CreateArtwork(ctx context.Context, artwork *models.Artwork) (*models.Artwork, error) {
	query := `INSERT INTO artworks (title, artist, description, price, image_url, category, is_available, created_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NOW()) RETURNING id, created_date`
	err := r.db.QueryRowContext(ctx, query,
		artwork.Title, artwork.Artist, artwork.Description, artwork.Price,
		artwork.ImageURL, artwork.Category, artwork.IsAvailable,
	).Scan(&artwork.ID, &artwork.CreatedDate)
	if err != nil {
		return nil, fmt.Errorf("failed to create artwork: %w", err)
	}
	return artwork, nil
}

func (r *artworkRepository) UpdateArtwork(ctx context.Context, artwork *models.Artwork) error {
	query := `UPDATE artworks
	          SET title = $1, artist = $2, description = $3, price = $4, image_url = $5, category = $6, is_available = $7
	          WHERE id = $8`
	res, err := r.db.ExecContext(ctx, query,
		artwork.Title, artwork.Artist, artwork.Description, artwork.Price,
		artwork.ImageURL, artwork.Category, artwork.IsAvailable, artwork.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update artwork: %w", err)
	}
	return expectAffected(res, ErrArtworkNotFound)
}

// DeleteArtwork удаляет произведение. Корзины и избранное чистятся каскадом,
// а пока на произведение ссылаются заказы, удаление запрещено.
func (r *artworkRepository) DeleteArtwork(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM artworks WHERE id = $1", id)
	if err != nil {
		if pqCode(err) == pqForeignKeyViolation {
			return ErrArtworkInUse
		}
		return fmt.Errorf("failed to delete artwork: %w", err)
	}
	return expectAffected(res, ErrArtworkNotFound)
}

func (r *artworkRepository) GetArtworkImage(ctx context.Context, id int64) (*models.ArtworkImage, error) {
	img := &models.ArtworkImage{}
	row := r.db.QueryRowContext(ctx, "SELECT id, image_url, image_data FROM artworks WHERE id = $1", id)
	if err := row.Scan(&img.ArtworkID, &img.ImageURL, &img.Data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtworkNotFound
		}
		return nil, err
	}
	return img, nil
}

func (r *artworkRepository) SetArtworkImage(ctx context.Context, id int64, data []byte) error {
	res, err := r.db.ExecContext(ctx, "UPDATE artworks SET image_data = $1 WHERE id = $2", data, id)
	if err != nil {
		return fmt.Errorf("failed to store artwork image: %w", err)
	}
	return expectAffected(res, ErrArtworkNotFound)
}

func (r *artworkRepository) ClearArtworkImage(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "UPDATE artworks SET image_data = NULL WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to clear artwork image: %w", err)
	}
	return expectAffected(res, ErrArtworkNotFound)
}

func (r *artworkRepository) CountArtworksTx(ctx context.Context, tx *sql.Tx) (int, error) {
	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM artworks").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count artworks: %w", err)
	}
	return count, nil
}

// InsertArtworksTx вставляет готовый набор произведений вместе с их датами.
func (r *artworkRepository) InsertArtworksTx(ctx context.Context, tx *sql.Tx, artworks []*models.Artwork) error {
	query := `INSERT INTO artworks (title, artist, description, price, image_url, category, is_available, created_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	for _, a := range artworks {
		err := tx.QueryRowContext(ctx, query,
			a.Title, a.Artist, a.Description, a.Price, a.ImageURL, a.Category, a.IsAvailable, a.CreatedDate,
		).Scan(&a.ID)
		if err != nil {
			return fmt.Errorf("failed to insert artwork %q: %w", a.Title, err)
		}
	}
	return nil
}

// expectAffected возвращает notFound, если запрос не затронул ни одной строки
func expectAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
