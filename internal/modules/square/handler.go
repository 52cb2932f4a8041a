package square

import (
	"errors"
	"io"
	"net/http"

	"github.com/georgemunganga/hospo-ops/internal/httpx"
	"github.com/go-chi/chi/v5"
)

const (
	HeaderSignature = "X-Square-HmacSHA256-Signature"
	HeaderEventType = "X-Square-Event-Type"

	maxBodyBytes = 1 << 20
)

// Handler exposes the Square webhook endpoint.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/square/webhook", h.receive) // POST /square/webhook
}

func (h *Handler) receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	var tooLarge *http.MaxBytesError
	truncated := errors.As(err, &tooLarge)
	if err != nil && !truncated {
		httpx.ErrorJSON(w, http.StatusBadRequest, "Could not read request body.")
		return
	}

	eventType := r.Header.Get(HeaderEventType)
	if eventType == "" {
		eventType = "unknown"
	}
	valid, err := h.service.Receive(r.Context(), Delivery{
		EventType: eventType,
		Signature: r.Header.Get(HeaderSignature),
		Body:      body,
		Truncated: truncated,
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	if truncated {
		httpx.ErrorJSON(w, http.StatusRequestEntityTooLarge, "Payload too large.")
		return
	}
	if !valid {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
