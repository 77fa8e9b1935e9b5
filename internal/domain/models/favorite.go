package models

import "time"

// Favorite - закладка пользователя на произведение, не больше одной на пару
type Favorite struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	ArtworkID int64     `json:"artworkId"`
	AddedDate time.Time `json:"addedDate"`
	Artwork   *Artwork  `json:"artwork,omitempty"`
}
