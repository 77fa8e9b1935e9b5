package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/linemk/artosphere/internal/app/handlers"
	"github.com/linemk/artosphere/internal/config"
	"github.com/linemk/artosphere/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/artosphere/internal/lib/adminkey"
	"github.com/linemk/artosphere/internal/lib/logger/handlers/urllog"
	"github.com/linemk/artosphere/internal/service"
)

// Services - набор сервисов, которые обслуживает HTTP-слой
type Services struct {
	Artworks  service.ArtworkService
	Cart      service.CartService
	Favorites service.FavoriteService
	Orders    service.OrderService
	Images    service.ImageService
	Admin     service.AdminService
	Sessions  service.SessionService
}

// NewRouter собирает все маршруты API
func NewRouter(log *slog.Logger, cfg *config.Config, svc Services) http.Handler {
	router := chi.NewRouter()

	// настройка middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", adminkey.Header},
		ExposedHeaders: []string{"Location"},
		MaxAge:         300,
	}))
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)

	router.Get("/", handlers.RootHandler(log))

	router.Route("/api", func(r chi.Router) {
		r.Use(jwtmiddleware.NewSessionMiddleware(cfg.JWT.Secret))

		r.Post("/session/guest", handlers.GuestSessionHandler(log, svc.Sessions))

		r.Route("/artworks", func(r chi.Router) {
			r.Get("/", handlers.ListArtworksHandler(log, svc.Artworks))
			r.Post("/", handlers.CreateArtworkHandler(log, svc.Artworks))
			r.Get("/export", handlers.ExportArtworksHandler(log, svc.Artworks))
			r.Get("/{id}", handlers.GetArtworkHandler(log, svc.Artworks))
			r.Put("/{id}", handlers.UpdateArtworkHandler(log, svc.Artworks))
			r.Delete("/{id}", handlers.DeleteArtworkHandler(log, svc.Artworks))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Post("/", handlers.AddToCartHandler(log, svc.Cart))
			r.Get("/{userId}", handlers.GetCartHandler(log, svc.Cart))
			r.Put("/{id}", handlers.UpdateCartItemHandler(log, svc.Cart))
			r.Delete("/{id}", handlers.RemoveCartItemHandler(log, svc.Cart))
			r.Delete("/user/{userId}", handlers.ClearCartHandler(log, svc.Cart))
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Post("/", handlers.AddFavoriteHandler(log, svc.Favorites))
			r.Get("/{userId}", handlers.GetFavoritesHandler(log, svc.Favorites))
			r.Get("/{userId}/check/{artworkId}", handlers.CheckFavoriteHandler(log, svc.Favorites))
			r.Delete("/{id}", handlers.RemoveFavoriteHandler(log, svc.Favorites))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", handlers.CreateOrderHandler(log, svc.Orders))
			r.Post("/from-cart", handlers.CreateOrderFromCartHandler(log, svc.Orders))
			r.Get("/user/{userId}", handlers.GetUserOrdersHandler(log, svc.Orders))
			r.Get("/{id}", handlers.GetOrderHandler(log, svc.Orders))
			r.Put("/{id}", handlers.UpdateOrderHandler(log, svc.Orders))
			r.Delete("/{id}", handlers.DeleteOrderHandler(log, svc.Orders))
		})

		r.Route("/upload/artwork/{artworkId}", func(r chi.Router) {
			r.Post("/", handlers.UploadImageHandler(log, svc.Images))
			r.Get("/", handlers.GetImageHandler(log, svc.Images))
			r.Delete("/", handlers.DeleteImageHandler(log, svc.Images))
		})

		// служебные операции, под ключом администратора, если он настроен
		r.Group(func(r chi.Router) {
			r.Use(adminkey.Middleware(log, cfg.Admin.KeyHash))
			r.Post("/database/seed", handlers.SeedDatabaseHandler(log, svc.Admin))
			r.Delete("/database/clear", handlers.ClearDatabaseHandler(log, svc.Admin))
			r.Get("/database/status", handlers.DatabaseStatusHandler(log, svc.Admin))
		})
	})

	return router
}
