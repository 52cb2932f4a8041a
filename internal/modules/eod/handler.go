package eod

import (
	"net/http"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/georgemunganga/hospo-ops/internal/httpx"
	"github.com/georgemunganga/hospo-ops/internal/validation"
	"github.com/go-chi/chi/v5"
)

// Handler exposes EOD report HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/eod", func(r chi.Router) {
		r.Get("/", h.list)                         // GET    /api/eod?storeId&from&to&page&pageSize
		r.Post("/", h.create)                      // POST   /api/eod
		r.Get("/{id}", h.get)                      // GET    /api/eod/{id}
		r.Put("/{id}", h.update)                   // PUT    /api/eod/{id}
		r.Delete("/{id}", h.delete)                // DELETE /api/eod/{id}
		r.Get("/{storeId}/{bizDate}", h.getByDate) // GET    /api/eod/{storeId}/{bizDate}
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
	if f.From, err = dateQuery(r, "from"); err != nil {
		httpx.Error(w, r, err)
		return
	}
	if f.To, err = dateQuery(r, "to"); err != nil {
		httpx.Error(w, r, err)
		return
	}

	reports, total, err := h.service.List(r.Context(), f, p.Page, p.PageSize)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.NewPage(reports, total, p))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.NotFound(w)
		return
	}
	rep, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rep)
}

func (h *Handler) getByDate(w http.ResponseWriter, r *http.Request) {
	storeID, ok := httpx.PathID(r, "storeId")
	if !ok {
		httpx.NotFound(w)
		return
	}
	raw := chi.URLParam(r, "bizDate")
	bizDate, err := validation.ParseDate(raw)
	if err != nil {
		httpx.Error(w, r, validation.Field("bizDate", "BizDate must be in yyyy-MM-dd format."))
		return
	}
	rep, err := h.service.GetByStoreAndDate(r.Context(), storeID, bizDate)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rep)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}
	rep, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/eod/"+strconv.FormatInt(rep.ID, 10))
	httpx.JSON(w, http.StatusCreated, rep)
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
	rep, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rep)
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

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func dateQuery(r *http.Request, name string) (*civil.Date, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	d, err := validation.ParseDate(raw)
	if err != nil {
		return nil, validation.Field(name, "The value '"+raw+"' is not valid. Use yyyy-MM-dd.")
	}
	return &d, nil
}
