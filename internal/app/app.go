package app

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/linemk/artosphere/internal/config"
	"github.com/linemk/artosphere/internal/service"
	"github.com/linemk/artosphere/internal/storage"
	"github.com/pkg/errors"
)

// MigrationsTable - таблица версий golang-migrate, общая с cmd/migrator
const MigrationsTable = "migrations"

type App struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *sql.DB
	Router http.Handler
}

// NewApp создаёт новый экземпляр App: подключение к БД, миграции при необходимости и роутер
func NewApp(log *slog.Logger, cfg *config.Config) (*App, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	if cfg.Migrations.Auto {
		if err := runMigrations(log, db, cfg.Migrations.Path); err != nil {
			db.Close()
			return nil, err
		}
	}

	app := &App{
		Config: cfg,
		Logger: log,
		DB:     db,
	}
	app.Router = NewRouter(log, cfg, newServices(log, cfg, db))

	return app, nil
}

// newServices связывает репозитории и сервисы
func newServices(log *slog.Logger, cfg *config.Config, db *sql.DB) Services {
	artworkRepo := storage.NewArtworkRepository(db)
	cartRepo := storage.NewCartRepository(db)
	favoriteRepo := storage.NewFavoriteRepository(db)
	orderRepo := storage.NewOrderRepository(db)
	adminRepo := storage.NewAdminRepository(db)

	return Services{
		Artworks:  service.NewArtworkService(log, artworkRepo),
		Cart:      service.NewCartService(log, cartRepo, artworkRepo),
		Favorites: service.NewFavoriteService(log, favoriteRepo, artworkRepo),
		Orders:    service.NewOrderService(log, db, orderRepo, cartRepo),
		Images:    service.NewImageService(log, artworkRepo),
		Admin:     service.NewAdminService(log, db, adminRepo, artworkRepo),
		Sessions:  service.NewSessionService(log, cfg.JWT.Secret, time.Duration(cfg.JWT.TokenTTL)*time.Minute),
	}
}

// runMigrations применяет миграции поверх уже открытого подключения.
// migrate.Close не вызываем, он закрыл бы и db.
func runMigrations(log *slog.Logger, db *sql.DB, path string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: MigrationsTable})
	if err != nil {
		return errors.Wrap(err, "failed to create migrate driver")
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+path, "postgres", driver)
	if err != nil {
		return errors.Wrap(err, "failed to create migrate instance")
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("no migrations to apply")
			return nil
		}
		return errors.Wrap(err, "migration failed")
	}

	log.Info("migrations applied", slog.String("path", path))
	return nil
}
