// Package logging threads a request-scoped logrus entry and correlation id
// through context.Context.
package logging

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

type ctxKey int

const (
	entryKey ctxKey = iota
	correlationKey
)

// FieldCorrelationID is the log field carrying the request correlation id.
const FieldCorrelationID = "correlation_id"

// WithEntry stores a logger entry on ctx.
func WithEntry(ctx context.Context, e *logrus.Entry) context.Context {
	return context.WithValue(ctx, entryKey, e)
}

// FromContext returns the entry stored on ctx, or a discarding entry.
func FromContext(ctx context.Context) *logrus.Entry {
	if e, ok := ctx.Value(entryKey).(*logrus.Entry); ok && e != nil {
		return e
	}
	return logrus.NewEntry(discard)
}

// WithCorrelationID stores the correlation id on ctx.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey, id)
}

// CorrelationID returns the id stored on ctx, or "".
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey).(string)
	return id
}

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()
