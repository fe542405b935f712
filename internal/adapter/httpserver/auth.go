package httpserver

import (
	"crypto/subtle"
	"net/http"

	"github.com/fairyhunter13/ai-match-engine/internal/config"
)

// AdminGuard protects admin routes with HTTP basic auth. Credentials come
// from configuration; comparison is constant-time to avoid leaking either
// value through response timing.
func AdminGuard(cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			userOK := subtle.ConstantTimeCompare([]byte(user), []byte(cfg.AdminUsername)) == 1
			passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(cfg.AdminPassword)) == 1
			if !ok || !userOK || !passOK {
				w.Header().Set("WWW-Authenticate", `Basic realm="admin", charset="UTF-8"`)
				writeJSON(w, http.StatusUnauthorized, errorEnvelope{Error: apiError{
					Code:    "UNAUTHORIZED",
					Message: "admin credentials required",
				}})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
