package employee

import (
	"net/http"
	"strconv"

	"github.com/georgemunganga/hospo-ops/internal/httpx"
	"github.com/go-chi/chi/v5"
)

// Handler exposes employee HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/employees", func(r chi.Router) {
		r.Get("/", h.list)          // GET    /api/employees?storeId&active&name&page&pageSize
		r.Post("/", h.create)       // POST   /api/employees
		r.Get("/{id}", h.get)       // GET    /api/employees/{id}
		r.Put("/{id}", h.update)    // PUT    /api/employees/{id}
		r.Delete("/{id}", h.delete) // DELETE /api/employees/{id}
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	p, err := httpx.ParsePaging(r)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	var f Filter
	if f.StoreID, err = httpx.IntQuery(r, "storeId"); err != nil {
		httpx.Error(w, r, err)
		return
	}
	if f.Active, err = httpx.BoolQuery(r, "active"); err != nil {
		httpx.Error(w, r, err)
		return
	}
	f.Name = r.URL.Query().Get("name")

	employees, total, err := h.service.List(r.Context(), f, p.Page, p.PageSize)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.NewPage(employees, total, p))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w)
		return
	}
	e, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, e)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	e, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/employees/"+strconv.Itoa(e.ID))
	httpx.JSON(w, http.StatusCreated, e)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w)
		return
	}
	var req Request
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	e, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, e)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (int, bool) { return httpx.PathID(r, "id") }
