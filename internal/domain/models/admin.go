package models

import "time"

// DatabaseStatus - количество строк по основным таблицам
type DatabaseStatus struct {
	Artworks  int `json:"artworks"`
	CartItems int `json:"cartItems"`
	Favorites int `json:"favorites"`
	Orders    int `json:"orders"`
}

// Session - гостевая сессия вместо полноценных аккаунтов
type Session struct {
	UserID    string    `json:"userId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
