package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linemk/artosphere/internal/domain/models"
	"github.com/linemk/artosphere/internal/storage"
)

type CartService interface {
	GetUserCart(ctx context.Context, userID string) ([]*models.CartItem, error)
	// AddToCart добавляет позицию; повторное добавление того же произведения увеличивает количество.
	AddToCart(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
	// UpdateQuantity и RemoveItem с непустым ownerID работают только со строками этого пользователя.
	UpdateQuantity(ctx context.Context, id int64, ownerID string, quantity int) (*models.CartItem, error)
	RemoveItem(ctx context.Context, id int64, ownerID string) error
	ClearCart(ctx context.Context, userID string) error
}

type cartService struct {
	log         *slog.Logger
	cartRepo    storage.CartStorage
	artworkRepo storage.ArtworkStorage
}

func NewCartService(log *slog.Logger, cartRepo storage.CartStorage, artworkRepo storage.ArtworkStorage) CartService {
	return &cartService{
		log:         log,
		cartRepo:    cartRepo,
		artworkRepo: artworkRepo,
	}
}

func (s *cartService) GetUserCart(ctx context.Context, userID string) ([]*models.CartItem, error) {
	const op = "service.CartService.GetUserCart"

	items, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		s.log.Error("failed to get cart", slog.String("op", op), slog.String("userID", userID), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

func (s *cartService) AddToCart(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	const op = "service.CartService.AddToCart"

	if item == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNilBody)
	}
	if item.Quantity <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidQuantity)
	}

	logger := s.log.With(slog.String("op", op), slog.String("userID", item.UserID), slog.Int64("artworkID", item.ArtworkID))

	artwork, err := s.artworkRepo.GetArtworkByID(ctx, item.ArtworkID)
	if err != nil {
		logger.Warn("artwork lookup failed", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// цена фиксируется на момент добавления; если клиент её не передал, берём текущую
	if !item.PriceAtTime.IsPositive() {
		item.PriceAtTime = artwork.Price
	}

	saved, err := s.cartRepo.UpsertCartItem(ctx, item)
	if err != nil {
		logger.Error("failed to add cart item", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to add cart item: %w", op, err)
	}
	saved.Artwork = artwork

	logger.Info("cart item saved", slog.Int64("cartItemID", saved.ID), slog.Int("quantity", saved.Quantity))
	return saved, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, id int64, ownerID string, quantity int) (*models.CartItem, error) {
	const op = "service.CartService.UpdateQuantity"

	if quantity <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidQuantity)
	}

	item, err := s.cartRepo.UpdateCartItemQuantity(ctx, id, ownerID, quantity)
	if err != nil {
		s.log.Warn("failed to update cart item", slog.String("op", op), slog.Int64("cartItemID", id), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

func (s *cartService) RemoveItem(ctx context.Context, id int64, ownerID string) error {
	const op = "service.CartService.RemoveItem"

	if err := s.cartRepo.DeleteCartItem(ctx, id, ownerID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *cartService) ClearCart(ctx context.Context, userID string) error {
	const op = "service.CartService.ClearCart"

	if err := s.cartRepo.DeleteCartByUserID(ctx, userID); err != nil {
		s.log.Error("failed to clear cart", slog.String("op", op), slog.String("userID", userID), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
