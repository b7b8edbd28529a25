// internal/middleware/auth.go

package middleware

import (
	"net/http"
	"strings"

	"github.com/openfrag/fraghouse/internal/auth"
)

// AuthMiddleware requires a valid admin JWT on every request, taken from the
// auth_token cookie or an Authorization: Bearer header.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if c, err := r.Cookie("auth_token"); err == nil {
			token = c.Value
		} else if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimPrefix(h, "Bearer ")
		}
		if token == "" {
			http.Error(w, "missing auth token", http.StatusUnauthorized)
			return
		}
		if _, err := auth.AuthenticateJWT(token); err != nil {
			http.Error(w, "invalid auth token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
