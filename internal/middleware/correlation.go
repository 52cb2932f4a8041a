package middleware

import (
	"net/http"

	"github.com/georgemunganga/hospo-ops/internal/logging"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// HeaderCorrelationID carries the correlation id on requests and responses.
const HeaderCorrelationID = "X-Correlation-Id"

// CorrelationID reuses a well-formed incoming X-Correlation-Id or mints one,
// stores it and a tagged logger entry on the context, and guarantees the
// response header is present when the response starts.
func CorrelationID(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := ""
			if id, err := uuid.Parse(r.Header.Get(HeaderCorrelationID)); err == nil {
				cid = id.String()
			} else {
				cid = uuid.NewString()
			}

			ctx := logging.WithCorrelationID(r.Context(), cid)
			if logger != nil {
				ctx = logging.WithEntry(ctx, logger.WithField(logging.FieldCorrelationID, cid))
			}

			w.Header().Set(HeaderCorrelationID, cid)
			next.ServeHTTP(&headerHookWriter{ResponseWriter: w, cid: cid}, r.WithContext(ctx))
		})
	}
}

// headerHookWriter re-adds the correlation header right before the status
// line goes out, in case a later stage removed it.
type headerHookWriter struct {
	http.ResponseWriter
	cid         string
	wroteHeader bool
}

func (w *headerHookWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		if w.Header().Get(HeaderCorrelationID) == "" {
			w.Header().Set(HeaderCorrelationID, w.cid)
		}
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *headerHookWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *headerHookWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
