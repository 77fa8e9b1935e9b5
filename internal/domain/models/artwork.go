package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Artwork представляет произведение искусства из каталога
type Artwork struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title" validate:"required,max=200"`
	Artist      string          `json:"artist" validate:"max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	Category    string          `json:"category" validate:"max=100"`
	IsAvailable bool            `json:"isAvailable"`
	CreatedDate time.Time       `json:"createdDate"`
	HasImage    bool            `json:"hasImage"` // есть ли загруженная картинка; сами байты в JSON не отдаём
}

// ArtworkImage - загруженная картинка вместе со ссылкой, по которой определяется content-type
type ArtworkImage struct {
	ArtworkID int64
	ImageURL  string
	Data      []byte
}

// ImageUpload - ответ на успешную загрузку картинки
type ImageUpload struct {
	Message   string `json:"message"`
	ArtworkID int64  `json:"artworkId"`
	FileSize  int64  `json:"fileSize"`
	FileName  string `json:"fileName"`
}
