package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jla-rentals/JLA-BookingService/internal/api/handlers"
)

// StaffTokenHeader заголовок с токеном сотрудника
const StaffTokenHeader = "X-Staff-Token"

// StaffAuth проверяет токен сотрудника на защищенных маршрутах.
// Сравнение токенов константное по времени.
func StaffAuth(expectedToken string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(StaffTokenHeader)
			if token == "" {
				handlers.RespondUnauthorized(w, "staff token is required")
				return
			}
			if subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) != 1 {
				handlers.RespondForbidden(w, "invalid staff token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
