package httpx

import (
	"net/http"
	"strings"

	"libraryql/internal/auth"
)

const bearerPrefix = "bearer "

// AuthMiddleware attaches the caller identity to the request context when a
// valid bearer token is presented. A missing, malformed, or unverifiable
// credential yields an anonymous request, never a transport error: only
// operations that require authentication reject anonymous callers.
func AuthMiddleware(authSvc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if len(header) > len(bearerPrefix) && strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
				token := header[len(bearerPrefix):]
				if u, err := authSvc.Authenticate(r.Context(), token); err == nil {
					r = r.WithContext(auth.WithUser(r.Context(), u))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
