package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS echoes Access-Control-Allow-Origin only for origins on the allow-list
// and answers preflight requests with 204. Wildcards are dropped.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	origins := make([]string, 0, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o != "" && o != "*" {
			origins = append(origins, o)
		}
	}
	opts := cors.Options{
		AllowedOrigins:     origins,
		AllowedMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:     []string{"Accept", "Content-Type", HeaderAPIKey, HeaderCorrelationID},
		ExposedHeaders:     []string{HeaderCorrelationID, "Retry-After"},
		AllowCredentials:   false,
		MaxAge:             600,
		OptionsPassthrough: true,
	}
	if len(origins) == 0 {
		// an empty list means "allow all" to go-chi/cors
		opts.AllowOriginFunc = func(*http.Request, string) bool { return false }
	}
	handler := cors.Handler(opts)
	return func(next http.Handler) http.Handler {
		return handler(preflight(next))
	}
}

// preflight ends CORS preflight requests with 204 once go-chi/cors has set
// the Access-Control-* headers. go-chi/cors itself always answers 200.
func preflight(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPreflight(r) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// isPreflight reports whether r is a CORS preflight request.
func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
}
