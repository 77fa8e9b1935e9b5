// Package respond - единый формат ошибок API: {"message": "..."}.
package respond

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse - тело любого ответа с ошибкой
type ErrorResponse struct {
	Message string `json:"message"`
}

// Error пишет статус и JSON-тело с сообщением
func Error(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Message: message})
}
