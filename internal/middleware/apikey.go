package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/georgemunganga/hospo-ops/internal/httpx"
	"github.com/georgemunganga/hospo-ops/internal/logging"
)

// HeaderAPIKey carries the shared API key.
const HeaderAPIKey = "X-Api-Key"

// APIKey requires the configured key on every non-anonymous path. With no key
// configured it denies everything (401). A missing header is 401, a wrong key 403.
func APIKey(configured string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsAnonymous(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			if strings.TrimSpace(configured) == "" {
				logging.FromContext(r.Context()).Warn("API key not configured; denying all non-anonymous requests")
				httpx.ErrorJSON(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			vals, ok := r.Header[http.CanonicalHeaderKey(HeaderAPIKey)]
			if !ok {
				httpx.ErrorJSON(w, http.StatusUnauthorized, "Missing X-Api-Key header.")
				return
			}
			incoming := strings.Join(vals, ",")
			if subtle.ConstantTimeCompare([]byte(incoming), []byte(configured)) != 1 {
				httpx.ErrorJSON(w, http.StatusForbidden, "Invalid API key.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
