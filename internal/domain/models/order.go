package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order представляет заказ. После создания меняются только Status и TotalAmount
type Order struct {
	ID          int64           `json:"id"`
	UserID      string          `json:"userId"`
	OrderDate   time.Time       `json:"orderDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      OrderStatus     `json:"status"`
	Items       []*OrderItem    `json:"items"`
}

// OrderItem - снимок цены и количества на момент оформления
type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"orderId"`
	ArtworkID int64           `json:"artworkId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Artwork   *Artwork        `json:"artwork,omitempty"`
}

// OrderUpdate - изменяемые поля заказа
type OrderUpdate struct {
	Status      OrderStatus     `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}
