package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/georgemunganga/hospo-ops/internal/httpx"
	"github.com/georgemunganga/hospo-ops/internal/logging"
)

// Recoverer turns a panic in a handler into a logged, redacted 500.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logging.FromContext(r.Context()).
				WithField("method", r.Method).
				WithField("path", r.URL.Path).
				WithField("stack", string(debug.Stack())).
				WithError(fmt.Errorf("panic: %v", rec)).
				Error("unhandled panic")
			httpx.ErrorJSON(w, http.StatusInternalServerError, "Internal Server Error")
		}()
		next.ServeHTTP(w, r)
	})
}
