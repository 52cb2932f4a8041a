package eod

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/georgemunganga/hospo-ops/internal/httpx"
	"github.com/georgemunganga/hospo-ops/internal/modules/store"
	"github.com/go-chi/chi/v5"
)

func newRouter(t *testing.T) (http.Handler, *store.MemoryRepository) {
	t.Helper()
	stores := store.NewMemoryRepository()
	if err := stores.Create(context.Background(), &store.Store{Name: "A"}); err != nil {
		t.Fatal(err)
	}
	repo := NewMemoryRepository(stores)
	stores.OnDelete(repo.DeleteByStore)

	r := chi.NewRouter()
	NewHandler(NewService(repo, stores)).RegisterRoutes(r)
	return r, stores
}

func send(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandlerCreateAndGet(t *testing.T) {
	h, _ := newRouter(t)

	rec := send(h, http.MethodPost, "/api/eod", `{"storeId":1,"bizDate":"2025-01-01","netSales":123.4,"tickets":7}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", rec.Code, rec.Body)
	}
	body := rec.Body.String()
	for _, want := range []string{`"netSales":123.40`, `"bizDate":"2025-01-01"`, `"storeId":1`, `"tickets":7`, `"createdAt":"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("body %s missing %s", body, want)
		}
	}
	if loc := rec.Header().Get("Location"); loc != "/api/eod/1" {
		t.Fatalf("Location = %q", loc)
	}

	if rec := send(h, http.MethodGet, "/api/eod/1", ""); rec.Code != http.StatusOK {
		t.Fatalf("get by id = %d", rec.Code)
	}
	if rec := send(h, http.MethodGet, "/api/eod/1/2025-01-01", ""); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"id":1`) {
		t.Fatalf("get by date = %d %s", rec.Code, rec.Body)
	}
	if rec := send(h, http.MethodGet, "/api/eod/1/2025-01-02", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("absent date = %d", rec.Code)
	}
	for _, p := range []string{"/api/eod/3000000000/2025-01-01", "/api/eod/0/2025-01-01", "/api/eod/0", "/api/eod/-5"} {
		if rec := send(h, http.MethodGet, p, ""); rec.Code != http.StatusNotFound {
			t.Fatalf("%s = %d", p, rec.Code)
		}
	}
	if rec := send(h, http.MethodGet, "/api/eod/1/01-02-2025", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date = %d", rec.Code)
	}

	// netSales as a string is accepted too
	rec = send(h, http.MethodPost, "/api/eod", `{"storeId":1,"bizDate":"2025-01-02","netSales":"0.5"}`)
	if rec.Code != http.StatusCreated || !strings.Contains(rec.Body.String(), `"netSales":0.50`) {
		t.Fatalf("string sales = %d %s", rec.Code, rec.Body)
	}

	dup := send(h, http.MethodPost, "/api/eod", `{"storeId":1,"bizDate":"2025-01-01","netSales":1}`)
	if dup.Code != http.StatusConflict || !strings.Contains(dup.Body.String(), "EOD report already exists for this store and date.") {
		t.Fatalf("duplicate = %d %s", dup.Code, dup.Body)
	}
}

func TestHandlerNegativeSalesProblem(t *testing.T) {
	h, _ := newRouter(t)
	rec := send(h, http.MethodPost, "/api/eod", `{"storeId":1,"bizDate":"2025-01-01","netSales":-1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/problem+json") {
		t.Fatalf("content type = %q", ct)
	}
	var p httpx.Problem
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if p.Status != http.StatusBadRequest || p.Title == "" || p.Errors["netSales"][0] != "NetSales cannot be negative." {
		t.Fatalf("problem = %+v", p)
	}
}

func TestHandlerInt4Bounds(t *testing.T) {
	h, _ := newRouter(t)
	tests := []struct {
		body  string
		field string
	}{
		{`{"storeId":3000000000,"bizDate":"2025-01-01","netSales":1}`, "storeId"},
		{`{"storeId":1,"bizDate":"2025-01-01","netSales":1,"tickets":3000000000}`, "tickets"},
	}
	for _, tc := range tests {
		rec := send(h, http.MethodPost, "/api/eod", tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d", tc.body, rec.Code)
		}
		var p httpx.Problem
		if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
			t.Fatal(err)
		}
		if len(p.Errors[tc.field]) == 0 {
			t.Fatalf("%s: errors = %v", tc.body, p.Errors)
		}
	}
	rec := send(h, http.MethodPost, "/api/eod", `{"storeId":1,"bizDate":"2025-01-01","netSales":1,"tickets":2147483647}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("max tickets = %d %s", rec.Code, rec.Body)
	}
}

func TestHandlerUpdateDeleteAndCascade(t *testing.T) {
	h, stores := newRouter(t)
	send(h, http.MethodPost, "/api/eod", `{"storeId":1,"bizDate":"2025-01-01","netSales":1}`)

	rec := send(h, http.MethodPut, "/api/eod/1", `{"storeId":1,"bizDate":"2025-01-05","netSales":2.25,"tickets":3}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"bizDate":"2025-01-05"`) {
		t.Fatalf("update = %d %s", rec.Code, rec.Body)
	}
	if rec := send(h, http.MethodPut, "/api/eod/77", `{"storeId":1,"bizDate":"2025-01-05"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("update missing = %d", rec.Code)
	}

	send(h, http.MethodPost, "/api/eod", `{"storeId":1,"bizDate":"2025-01-06","netSales":1}`)
	if rec := send(h, http.MethodDelete, "/api/eod/2", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete = %d", rec.Code)
	}
	if rec := send(h, http.MethodDelete, "/api/eod/2", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("delete again = %d", rec.Code)
	}

	if err := stores.Delete(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if rec := send(h, http.MethodGet, "/api/eod/1", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("after store delete = %d", rec.Code)
	}
}

func TestHandlerListQuery(t *testing.T) {
	h, _ := newRouter(t)
	send(h, http.MethodPost, "/api/eod", `{"storeId":1,"bizDate":"2025-01-01","netSales":1}`)
	send(h, http.MethodPost, "/api/eod", `{"storeId":1,"bizDate":"2025-02-01","netSales":1}`)

	rec := send(h, http.MethodGet, "/api/eod?from=2025-01-15&to=2025-12-31", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list = %d", rec.Code)
	}
	var page struct {
		Total int `json:"total"`
		Items []struct {
			BizDate string `json:"bizDate"`
		} `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || page.Items[0].BizDate != "2025-02-01" {
		t.Fatalf("page = %+v", page)
	}

	for _, q := range []string{"from=2025/01/01", "to=yesterday", "storeId=x", "storeId=3000000000", "page=0"} {
		if rec := send(h, http.MethodGet, "/api/eod?"+q, ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s = %d", q, rec.Code)
		}
	}
}
