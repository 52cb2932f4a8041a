// Package system serves the anonymous operational endpoints: the health check
// and the API documentation under /swagger.
package system

import (
	_ "embed"
	"net/http"
	"time"

	"github.com/georgemunganga/hospo-ops/internal/httpx"
	"github.com/go-chi/chi/v5"
)

const (
	DocsPath = "/swagger/index.html"
	SpecPath = "/swagger/v1/swagger.json"
)

var (
	//go:embed openapi.json
	openAPI []byte
	//go:embed index.html
	indexHTML []byte
)

// Health is the /health response body.
type Health struct {
	OK bool      `json:"ok"`
	TS time.Time `json:"ts"`
}

// Handler exposes /health and the documentation routes.
type Handler struct{ now func() time.Time }

func NewHandler() *Handler { return &Handler{now: time.Now} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.health) // GET /health
	r.Route("/swagger", func(r chi.Router) {
		r.Get("/", h.redirect)            // GET /swagger
		r.Get("/index.html", h.docs)      // GET /swagger/index.html
		r.Get("/v1/swagger.json", h.spec) // GET /swagger/v1/swagger.json
	})
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, Health{OK: true, TS: h.now().UTC()})
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, DocsPath, http.StatusMovedPermanently)
}

func (h *Handler) docs(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexHTML)
}

func (h *Handler) spec(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", httpx.ContentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openAPI)
}
