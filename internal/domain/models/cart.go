package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem - позиция корзины пользователя. Пара (UserID, ArtworkID) уникальна
type CartItem struct {
	ID          int64           `json:"id"`
	UserID      string          `json:"userId"`
	ArtworkID   int64           `json:"artworkId"`
	Quantity    int             `json:"quantity"`
	PriceAtTime decimal.Decimal `json:"priceAtTime"` // цена на момент добавления
	AddedDate   time.Time       `json:"addedDate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Artwork     *Artwork        `json:"artwork,omitempty"` // заполняется через JOIN
}

// ComputeSubtotal пересчитывает Subtotal по цене и количеству
func (c *CartItem) ComputeSubtotal() {
	c.Subtotal = LineTotal(c.PriceAtTime, c.Quantity)
}
