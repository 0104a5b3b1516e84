package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/apifuse/apifuse/internal/models"
)

var publicPaths = map[string]bool{
	"/":       true,
	"/health": true,
}

// Auth guards the tool routes with a single shared API key. Discovery and
// health stay public so orchestrators can probe the server before
// authenticating.
func Auth(apiKey, headerName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get(headerName)
			if key == "" {
				models.WriteError(w, http.StatusUnauthorized, models.ErrorBody{
					Kind:    "unauthorized",
					Message: "API key required",
				})
				return
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				models.WriteError(w, http.StatusForbidden, models.ErrorBody{
					Kind:    "forbidden",
					Message: "invalid API key",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
