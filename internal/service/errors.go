package service

import (
	"errors"
	"fmt"
)

// ErrInvalidInput - общий признак ошибки клиента, errors.Is(err, ErrInvalidInput) верно для всех ошибок ниже.
var ErrInvalidInput = errors.New("invalid input")

// inputError - ошибка ввода, текст которой можно показывать клиенту
type inputError struct {
	msg string
}

func (e *inputError) Error() string { return e.msg }

func (e *inputError) Is(target error) bool { return target == ErrInvalidInput }

func newInputError(format string, args ...any) error {
	return &inputError{msg: fmt.Sprintf(format, args...)}
}

var (
	ErrNilBody         = newInputError("request body is required")
	ErrIDMismatch      = newInputError("id mismatch")
	ErrNegativePrice   = newInputError("price must not be negative")
	ErrInvalidQuantity = newInputError("quantity must be greater than zero")
	ErrInvalidStatus   = newInputError("status must be one of Pending, Completed, Cancelled")
	ErrEmptyCart       = newInputError("cart is empty")
	ErrEmptyFile       = newInputError("no file uploaded")
	ErrFileTooLarge    = newInputError("file size exceeds %dMB limit", MaxImageSize>>20)
	ErrUnsupportedFile = newInputError("only image files are allowed (jpg, png, gif, webp)")
	ErrAlreadySeeded   = newInputError("database already seeded")
)

// ErrImageNotFound - у произведения нет загруженной картинки
var ErrImageNotFound = errors.New("no image available for this artwork")

// PublicMessage возвращает текст ошибки ввода без префиксов op.
// Для остальных ошибок возвращает пустую строку.
func PublicMessage(err error) string {
	var ie *inputError
	if errors.As(err, &ie) {
		return ie.msg
	}
	return ""
}
