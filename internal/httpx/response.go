// Package httpx writes the API's response shapes: plain JSON, conflicts,
// RFC 7807 validation problems and redacted server errors.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/georgemunganga/hospo-ops/internal/apperr"
	"github.com/georgemunganga/hospo-ops/internal/logging"
	"github.com/georgemunganga/hospo-ops/internal/validation"
)

const (
	ContentTypeJSON    = "application/json; charset=utf-8"
	ContentTypeProblem = "application/problem+json; charset=utf-8"

	problemType  = "https://tools.ietf.org/html/rfc9110#section-15.5.1"
	problemTitle = "One or more validation errors occurred."
)

// ErrorBody is the generic {"error": "..."} body.
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody is the {"message": "..."} body used for conflicts.
type MessageBody struct {
	Message string `json:"message"`
}

// Problem is a validation problem document.
type Problem struct {
	Type    string              `json:"type"`
	Title   string              `json:"title"`
	Status  int                 `json:"status"`
	Errors  map[string][]string `json:"errors"`
	TraceID string              `json:"traceId,omitempty"`
}

// JSON writes body as JSON with status.
func JSON(w http.ResponseWriter, status int, body any) {
	write(w, status, ContentTypeJSON, body)
}

// ErrorJSON writes {"error": msg}.
func ErrorJSON(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorBody{Error: msg})
}

// ValidationProblem writes a 400 problem+json document for ve.
func ValidationProblem(w http.ResponseWriter, r *http.Request, ve *validation.Errors) {
	write(w, http.StatusBadRequest, ContentTypeProblem, Problem{
		Type:    problemType,
		Title:   problemTitle,
		Status:  http.StatusBadRequest,
		Errors:  ve.Fields(),
		TraceID: logging.CorrelationID(r.Context()),
	})
}

// Conflict writes a 409 {"message": msg}.
func Conflict(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusConflict, MessageBody{Message: msg})
}

// NotFound writes an empty 404.
func NotFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
}

// ServerError logs err with the request's context and writes a redacted 500.
func ServerError(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromContext(r.Context()).
		WithError(err).
		WithField("method", r.Method).
		WithField("path", r.URL.Path).
		Error("unhandled error")
	ErrorJSON(w, http.StatusInternalServerError, "Internal Server Error")
}

// Error maps err onto the response taxonomy.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := validation.As(err); ok {
		ValidationProblem(w, r, ve)
		return
	}
	var conflict *apperr.ConflictError
	if errors.As(err, &conflict) {
		Conflict(w, conflict.Message)
		return
	}
	if errors.Is(err, apperr.ErrNotFound) {
		NotFound(w)
		return
	}
	ServerError(w, r, err)
}

func write(w http.ResponseWriter, status int, contentType string, body any) {
	buf, err := json.Marshal(body)
	if err != nil {
		http.Error(w, `{"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(buf)
}
