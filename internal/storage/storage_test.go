package storage_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/linemk/artosphere/internal/domain/models"
	"github.com/linemk/artosphere/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var artworkCols = []string{"id", "title", "artist", "description", "price", "image_url", "category",
	"is_available", "created_date", "has_image"}

func artworkRow(id int64, title string, price string) []driver.Value {
	return []driver.Value{id, title, "Artist", "Description", price, "img/a.jpg", "Painting", true,
		time.Date(1889, 1, 1, 0, 0, 0, 0, time.UTC), false}
}

func TestListArtworks_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewArtworkRepository(db)

	rows := sqlmock.NewRows(artworkCols).
		AddRow(artworkRow(1, "Starry Night", "2000000.00")...).
		AddRow(artworkRow(2, "The Night Watch", "60000.00")...)
	mock.ExpectQuery("SELECT .+ FROM artworks a ORDER BY a.id").WillReturnRows(rows)

	artworks, err := repo.ListArtworks(context.Background())
	assert.NoError(t, err)
	assert.Len(t, artworks, 2)
	assert.Equal(t, "Starry Night", artworks[0].Title)
	assert.True(t, decimal.NewFromInt(2000000).Equal(artworks[0].Price), "price should be scanned as decimal")
	assert.Equal(t, int64(2), artworks[1].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListArtworks_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewArtworkRepository(db)
	mock.ExpectQuery("SELECT .+ FROM artworks a").WillReturnRows(sqlmock.NewRows(artworkCols))

	artworks, err := repo.ListArtworks(context.Background())
	assert.NoError(t, err)
	// пустой каталог отдаётся как [], а не null
	assert.NotNil(t, artworks)
	assert.Len(t, artworks, 0)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetArtworkByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewArtworkRepository(db)
	mock.ExpectQuery("SELECT .+ FROM artworks a WHERE a.id = \\$1").
		WithArgs(int64(42)).WillReturnRows(sqlmock.NewRows(artworkCols))

	artwork, err := repo.GetArtworkByID(context.Background(), 42)
	assert.Nil(t, artwork)
	assert.True(t, errors.Is(err, storage.ErrArtworkNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateArtwork_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewArtworkRepository(db)
	created := time.Now()
	artwork := &models.Artwork{
		Title:       "Starry Night",
		Artist:      "Vincent van Gogh",
		Price:       decimal.NewFromInt(2000000),
		ImageURL:    "/img/starry-night.jpg",
		Category:    "Post-Impressionism",
		IsAvailable: true,
	}

	query := regexp.QuoteMeta(`INSERT INTO artworks (title, artist, description, price, image_url, category, is_available, created_date)`)
	mock.ExpectQuery(query).
		WithArgs("Starry Night", "Vincent van Gogh", "", decimal.NewFromInt(2000000), "/img/starry-night.jpg", "Post-Impressionism", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_date"}).AddRow(7, created))

	saved, err := repo.CreateArtwork(context.Background(), artwork)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), saved.ID)
	assert.Equal(t, created, saved.CreatedDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateArtwork_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewArtworkRepository(db)
	mock.ExpectExec("UPDATE artworks").WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateArtwork(context.Background(), &models.Artwork{ID: 99, Title: "x"})
	assert.True(t, errors.Is(err, storage.ErrArtworkNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteArtwork(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "deleted",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM artworks WHERE id = $1")).
					WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM artworks WHERE id = $1")).
					WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: storage.ErrArtworkNotFound,
		},
		{
			name: "referenced by order",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM artworks WHERE id = $1")).
					WithArgs(int64(1)).WillReturnError(&pq.Error{Code: "23503"})
			},
			wantErr: storage.ErrArtworkInUse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			tt.setup(mock)
			err = storage.NewArtworkRepository(db).DeleteArtwork(context.Background(), 1)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestArtworkImage_SetGetClear(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewArtworkRepository(db)
	ctx := context.Background()
	data := []byte{0xFF, 0xD8, 0xFF}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE artworks SET image_data = $1 WHERE id = $2")).
		WithArgs(data, int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, image_url, image_data FROM artworks WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "image_url", "image_data"}).AddRow(3, "img/f1.png", data))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE artworks SET image_data = NULL WHERE id = $1")).
		WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.SetArtworkImage(ctx, 3, data))

	img, err := repo.GetArtworkImage(ctx, 3)
	assert.NoError(t, err)
	assert.Equal(t, "img/f1.png", img.ImageURL)
	assert.Equal(t, data, img.Data)

	assert.NoError(t, repo.ClearArtworkImage(ctx, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertArtworksTx_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewArtworkRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM artworks")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("INSERT INTO artworks").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery("INSERT INTO artworks").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))

	count, err := repo.CountArtworksTx(ctx, tx)
	assert.NoError(t, err)
	assert.Equal(t, 0, count)

	artworks := []*models.Artwork{{Title: "A"}, {Title: "B"}}
	assert.NoError(t, repo.InsertArtworksTx(ctx, tx, artworks))
	assert.Equal(t, int64(1), artworks[0].ID)
	assert.Equal(t, int64(2), artworks[1].ID)

	mock.ExpectCommit()
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

var cartCols = []string{"id", "user_id", "artwork_id", "quantity", "price_at_time", "added_date"}

func TestGetCartByUserID_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCartRepository(db)
	now := time.Now()

	cols := append(append([]string{}, cartCols...), artworkCols...)
	values := append([]driver.Value{int64(1), "default-user", int64(3), 2, "100.00", now}, artworkRow(3, "The Birth of Venus", "8000000.00")...)
	mock.ExpectQuery("FROM cart_items c\\s+JOIN artworks a ON a.id = c.artwork_id\\s+WHERE c.user_id = \\$1").
		WithArgs("default-user").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(values...))

	items, err := repo.GetCartByUserID(context.Background(), "default-user")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, decimal.NewFromInt(200).Equal(items[0].Subtotal), "subtotal should be price * quantity")
	if assert.NotNil(t, items[0].Artwork) {
		assert.Equal(t, "The Birth of Venus", items[0].Artwork.Title)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertCartItem_MergesOnConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCartRepository(db)
	now := time.Now()

	// повторное добавление: БД возвращает строку с суммарным количеством
	mock.ExpectQuery("INSERT INTO cart_items .+ ON CONFLICT \\(user_id, artwork_id\\)\\s+DO UPDATE SET quantity = cart_items.quantity \\+ EXCLUDED.quantity").
		WithArgs("default-user", int64(3), 2, decimal.NewFromInt(100)).
		WillReturnRows(sqlmock.NewRows(cartCols).AddRow(1, "default-user", 3, 4, "100.00", now))

	item, err := repo.UpsertCartItem(context.Background(), &models.CartItem{
		UserID: "default-user", ArtworkID: 3, Quantity: 2, PriceAtTime: decimal.NewFromInt(100),
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), item.ID)
	assert.Equal(t, 4, item.Quantity)
	assert.True(t, decimal.NewFromInt(400).Equal(item.Subtotal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertCartItem_ArtworkMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCartRepository(db)
	mock.ExpectQuery("INSERT INTO cart_items").WillReturnError(&pq.Error{Code: "23503"})

	item, err := repo.UpsertCartItem(context.Background(), &models.CartItem{UserID: "u", ArtworkID: 5, Quantity: 1})
	assert.Nil(t, item)
	assert.True(t, errors.Is(err, storage.ErrArtworkNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCartItemQuantity_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCartRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE cart_items SET quantity = $1 WHERE id = $2 AND ($3 = '' OR user_id = $3)")).
		WithArgs(5, int64(10), "").WillReturnRows(sqlmock.NewRows(cartCols))

	item, err := repo.UpdateCartItemQuantity(context.Background(), 10, "", 5)
	assert.Nil(t, item)
	assert.True(t, errors.Is(err, storage.ErrCartItemNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCartItem_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCartRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart_items WHERE id = $1 AND ($2 = '' OR user_id = $2)")).
		WithArgs(int64(10), "").WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.DeleteCartItem(context.Background(), 10, "")
	assert.True(t, errors.Is(err, storage.ErrCartItemNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCartItem_ForeignOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCartRepository(db)
	// строка 10 принадлежит другому гостю, под фильтром по владельцу она не находится
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart_items WHERE id = $1 AND ($2 = '' OR user_id = $2)")).
		WithArgs(int64(10), "guest-b").WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.DeleteCartItem(context.Background(), 10, "guest-b")
	assert.True(t, errors.Is(err, storage.ErrCartItemNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCartItemQuantity_Owner(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCartRepository(db)
	rows := sqlmock.NewRows(cartCols).AddRow(int64(10), "guest-a", int64(1), 3, "100.00", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE cart_items SET quantity = $1 WHERE id = $2 AND ($3 = '' OR user_id = $3)")).
		WithArgs(3, int64(10), "guest-a").WillReturnRows(rows)

	item, err := repo.UpdateCartItemQuantity(context.Background(), 10, "guest-a", 3)
	assert.NoError(t, err)
	if assert.NotNil(t, item) {
		assert.Equal(t, 3, item.Quantity)
		assert.True(t, decimal.RequireFromString("300").Equal(item.Subtotal))
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCartItemsTx_OnlyListedIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCartRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart_items WHERE id = ANY($1)")).
		WithArgs(pq.Array([]int64{4, 9})).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)
	assert.NoError(t, repo.DeleteCartItemsTx(ctx, tx, []int64{4, 9}))
	// пустой список ничего не отправляет в базу
	assert.NoError(t, repo.DeleteCartItemsTx(ctx, tx, nil))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCartByUserID_EmptyCartIsNotAnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCartRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart_items WHERE user_id = $1")).
		WithArgs("nobody").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.DeleteCartByUserID(context.Background(), "nobody"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockCartByUserIDTx_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCartRepository(db)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	mock.ExpectQuery("SELECT .+ FROM cart_items WHERE user_id = \\$1 ORDER BY id FOR UPDATE").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(cartCols).
			AddRow(1, "u1", 3, 2, "100.00", now).
			AddRow(2, "u1", 4, 1, "50.50", now))

	items, err := repo.LockCartByUserIDTx(ctx, tx, "u1")
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.True(t, decimal.RequireFromString("50.50").Equal(items[1].PriceAtTime))

	mock.ExpectRollback()
	assert.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFavorite(t *testing.T) {
	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{name: "created"},
		{name: "duplicate", dbErr: &pq.Error{Code: "23505"}, wantErr: storage.ErrFavoriteExists},
		{name: "artwork missing", dbErr: &pq.Error{Code: "23503"}, wantErr: storage.ErrArtworkNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			expect := mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO favorites (user_id, artwork_id, added_date) VALUES ($1, $2, NOW())")).
				WithArgs("u1", int64(3))
			if tt.dbErr != nil {
				expect.WillReturnError(tt.dbErr)
			} else {
				expect.WillReturnRows(sqlmock.NewRows([]string{"id", "added_date"}).AddRow(11, time.Now()))
			}

			fav, err := storage.NewFavoriteRepository(db).CreateFavorite(context.Background(), &models.Favorite{UserID: "u1", ArtworkID: 3})
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, fav)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(11), fav.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFavoriteExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewFavoriteRepository(db)
	mock.ExpectQuery("SELECT EXISTS").WithArgs("u1", int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.FavoriteExists(context.Background(), "u1", 3)
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFavoritesByUserID_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewFavoriteRepository(db)
	cols := append([]string{"id", "user_id", "artwork_id", "added_date"}, artworkCols...)
	values := append([]driver.Value{int64(5), "u1", int64(2), time.Now()}, artworkRow(2, "Maestà", "420000")...)
	mock.ExpectQuery("FROM favorites f\\s+JOIN artworks a").WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(values...))

	favs, err := repo.GetFavoritesByUserID(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Len(t, favs, 1)
	assert.Equal(t, "Maestà", favs[0].Artwork.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFavorite_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM favorites WHERE id = $1 AND ($2 = '' OR user_id = $2)")).
		WithArgs(int64(9), "guest-a").WillReturnResult(sqlmock.NewResult(0, 0))

	err = storage.NewFavoriteRepository(db).DeleteFavorite(context.Background(), 9, "guest-a")
	assert.True(t, errors.Is(err, storage.ErrFavoriteNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderTx_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders (user_id, order_date, total_amount, status)")).
		WithArgs("u1", decimal.NewFromInt(250), models.OrderStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_date"}).AddRow(10, now))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO order_items (order_id, artwork_id, quantity, price)")).
		WithArgs(int64(10), int64(3), 2, decimal.NewFromInt(100)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO order_items (order_id, artwork_id, quantity, price)")).
		WithArgs(int64(10), int64(4), 1, decimal.NewFromInt(50)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101))

	order := &models.Order{
		UserID:      "u1",
		TotalAmount: decimal.NewFromInt(250),
		Status:      models.OrderStatusPending,
		Items: []*models.OrderItem{
			{ArtworkID: 3, Quantity: 2, Price: decimal.NewFromInt(100)},
			{ArtworkID: 4, Quantity: 1, Price: decimal.NewFromInt(50)},
		},
	}
	assert.NoError(t, repo.CreateOrderTx(ctx, tx, order))
	assert.Equal(t, int64(10), order.ID)
	assert.Equal(t, now, order.OrderDate)
	assert.Equal(t, int64(10), order.Items[1].OrderID)
	assert.Equal(t, int64(101), order.Items[1].ID)

	mock.ExpectCommit()
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderTx_UnknownArtwork(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_date"}).AddRow(10, time.Now()))
	mock.ExpectQuery("INSERT INTO order_items").WillReturnError(&pq.Error{Code: "23503"})

	order := &models.Order{UserID: "u1", Status: models.OrderStatusPending,
		Items: []*models.OrderItem{{ArtworkID: 999, Quantity: 1}}}
	err = repo.CreateOrderTx(ctx, tx, order)
	assert.True(t, errors.Is(err, storage.ErrArtworkNotFound))

	mock.ExpectRollback()
	assert.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

var orderCols = []string{"id", "user_id", "order_date", "total_amount", "status"}

func orderItemCols() []string {
	return append([]string{"id", "order_id", "artwork_id", "quantity", "price"}, artworkCols...)
}

func TestGetOrdersByUserID_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)
	now := time.Now()

	mock.ExpectQuery("SELECT id, user_id, order_date, total_amount, status\\s+FROM orders\\s+WHERE user_id = \\$1").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow(2, "u1", now, "50.00", "Completed").
			AddRow(1, "u1", now.Add(-time.Hour), "200.00", "Pending"))

	itemRows := sqlmock.NewRows(orderItemCols()).
		AddRow(append([]driver.Value{int64(10), int64(1), int64(3), 2, "100.00"}, artworkRow(3, "Fayum Portrait", "500000")...)...).
		AddRow(append([]driver.Value{int64(11), int64(2), int64(4), 1, "50.00"}, artworkRow(4, "Maestà", "420000")...)...)
	mock.ExpectQuery("FROM order_items oi\\s+JOIN artworks a ON a.id = oi.artwork_id\\s+WHERE oi.order_id = ANY\\(\\$1\\)").
		WithArgs(pq.Array([]int64{2, 1})).
		WillReturnRows(itemRows)

	orders, err := repo.GetOrdersByUserID(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, models.OrderStatusCompleted, orders[0].Status)
	assert.Len(t, orders[0].Items, 1)
	assert.Equal(t, int64(4), orders[0].Items[0].ArtworkID)
	assert.Len(t, orders[1].Items, 1)
	assert.Equal(t, "Fayum Portrait", orders[1].Items[0].Artwork.Title)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrdersByUserID_NoOrdersSkipsItemsQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM orders").WithArgs("u1").WillReturnRows(sqlmock.NewRows(orderCols))

	orders, err := storage.NewOrderRepository(db).GetOrdersByUserID(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Len(t, orders, 0)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, order_date, total_amount, status FROM orders WHERE id = $1")).
		WithArgs(int64(5)).WillReturnRows(sqlmock.NewRows(orderCols))

	order, err := storage.NewOrderRepository(db).GetOrderByID(context.Background(), 5)
	assert.Nil(t, order)
	assert.True(t, errors.Is(err, storage.ErrOrderNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrder_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status = $1, total_amount = $2 WHERE id = $3")).
		WithArgs(models.OrderStatusCompleted, decimal.NewFromInt(300), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = storage.NewOrderRepository(db).UpdateOrder(context.Background(), 5, models.OrderUpdate{
		Status: models.OrderStatusCompleted, TotalAmount: decimal.NewFromInt(300),
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOrder_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM orders WHERE id = $1")).
		WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 0))

	err = storage.NewOrderRepository(db).DeleteOrder(context.Background(), 5)
	assert.True(t, errors.Is(err, storage.ErrOrderNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStatus_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT\\s+\\(SELECT COUNT\\(\\*\\) FROM artworks\\)").
		WillReturnRows(sqlmock.NewRows([]string{"a", "c", "f", "o"}).AddRow(11, 2, 1, 3))

	status, err := storage.NewAdminRepository(db).GetStatus(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, &models.DatabaseStatus{Artworks: 11, CartItems: 2, Favorites: 1, Orders: 3}, status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearAllTx_DeletesInDependencyOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	for _, table := range []string{"order_items", "orders", "favorites", "cart_items", "artworks"} {
		mock.ExpectExec("DELETE FROM " + table + "$").WillReturnResult(sqlmock.NewResult(0, 1))
	}

	assert.NoError(t, storage.NewAdminRepository(db).ClearAllTx(context.Background(), tx))

	mock.ExpectCommit()
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
