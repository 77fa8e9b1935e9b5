package adminkey

import (
	"log/slog"
	"net/http"

	"github.com/linemk/artosphere/internal/lib/respond"
	"golang.org/x/crypto/bcrypt"
)

// Header - заголовок с ключом администратора
const Header = "X-API-Key"

// Middleware пропускает запрос, только если X-API-Key совпадает с bcrypt-хэшем.
// С пустым хэшем проверка выключена.
func Middleware(log *slog.Logger, keyHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if keyHash == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(Header)
			if key == "" {
				respond.Error(w, http.StatusUnauthorized, "missing api key")
				return
			}
			if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
				log.Warn("invalid admin key",
					slog.String("op", "adminkey.Middleware"),
					slog.String("url", r.URL.Path),
				)
				respond.Error(w, http.StatusUnauthorized, "invalid api key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
