// Package middleware holds the request pipeline that wraps every route.
//
// Stage order is fixed: correlation id first so every response (including
// rejections) carries it, rate limiting before authentication so unauthenticated
// floods are still throttled, and panic recovery innermost around the router.
package middleware

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options configures the pipeline stages.
type Options struct {
	Logger         *logrus.Logger
	APIKey         string
	AllowedOrigins []string
	Limiter        *FixedWindowLimiter
}

// Pipeline returns the stages in the order they must be installed.
func Pipeline(opts Options) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		CorrelationID(opts.Logger),
		RequestLog,
		SecurityHeaders,
		CORS(opts.AllowedOrigins),
		RateLimit(opts.Limiter),
		APIKey(opts.APIKey),
		Recoverer,
	}
}

// anonymousPaths are reachable without an API key and are never throttled.
var anonymousPaths = []string{"/health", "/swagger"}

// IsAnonymous reports whether path is /health, /swagger or below them.
func IsAnonymous(path string) bool {
	for _, p := range anonymousPaths {
		if hasSegmentPrefix(path, p) {
			return true
		}
	}
	return false
}

func hasSegmentPrefix(path, prefix string) bool {
	if len(path) < len(prefix) || !strings.EqualFold(path[:len(prefix)], prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}
