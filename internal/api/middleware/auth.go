package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/api/handlers"
)

// adminTokenHeader заголовок с токеном администратора практики
const adminTokenHeader = "X-Admin-Token"

const msgUnauthorized = "geen toegang"

// AdminAuth middleware для административных маршрутов.
// Сайт практики обслуживает одного администратора - статический токен
// из конфигурации достаточен, полноценный IdP здесь избыточен
func AdminAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(adminTokenHeader)
			if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
