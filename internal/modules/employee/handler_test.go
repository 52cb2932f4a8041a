package employee

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

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	stores := store.NewMemoryRepository()
	if err := stores.Create(context.Background(), &store.Store{Name: "Main"}); err != nil {
		t.Fatal(err)
	}
	repo := NewMemoryRepository(stores)
	stores.OnDelete(repo.DeleteByStore)

	r := chi.NewRouter()
	NewHandler(NewService(repo, stores)).RegisterRoutes(r)
	return r
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

func TestHandlerCRUD(t *testing.T) {
	h := newRouter(t)

	rec := send(h, http.MethodPost, "/api/employees", `{"storeId":1,"fullName":"Ana","role":"Chef","hireDate":"2024-01-15"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", rec.Code, rec.Body)
	}
	var raw map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &raw)
	if raw["hireDate"] != "2024-01-15" || raw["active"] != true || raw["fullName"] != "Ana" || raw["storeId"] != float64(1) {
		t.Fatalf("body = %v", raw)
	}
	if loc := rec.Header().Get("Location"); loc != "/api/employees/1" {
		t.Fatalf("Location = %q", loc)
	}

	rec = send(h, http.MethodPost, "/api/employees", `{"storeId":1,"fullName":"Bo"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d", rec.Code)
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &raw)
	if raw["hireDate"] != nil {
		t.Fatalf("hireDate = %v", raw["hireDate"])
	}

	rec = send(h, http.MethodPut, "/api/employees/2", `{"storeId":1,"fullName":"Ana"}`)
	if rec.Code != http.StatusConflict || !strings.Contains(rec.Body.String(), "Another employee with same name exists in this store.") {
		t.Fatalf("rename conflict = %d %s", rec.Code, rec.Body)
	}

	rec = send(h, http.MethodPut, "/api/employees/2", `{"storeId":1,"fullName":"Bo","active":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update = %d %s", rec.Code, rec.Body)
	}

	if rec := send(h, http.MethodGet, "/api/employees/2", ""); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"active":false`) {
		t.Fatalf("get = %d %s", rec.Code, rec.Body)
	}
	if rec := send(h, http.MethodDelete, "/api/employees/2", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete = %d", rec.Code)
	}
	if rec := send(h, http.MethodGet, "/api/employees/2", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("get deleted = %d", rec.Code)
	}
	for _, id := range []string{"abc", "0", "3000000000"} {
		if rec := send(h, http.MethodGet, "/api/employees/"+id, ""); rec.Code != http.StatusNotFound {
			t.Fatalf("id %s = %d", id, rec.Code)
		}
	}
}

func TestHandlerValidation(t *testing.T) {
	h := newRouter(t)

	tests := []struct {
		name  string
		body  string
		field string
		msg   string
	}{
		{"unknown store", `{"storeId":42,"fullName":"Ana"}`, "storeId", "Store not found."},
		{"bad date", `{"storeId":1,"fullName":"Ana","hireDate":"15/01/2024"}`, "hireDate", "HireDate must be yyyy-MM-dd."},
		{"wrong type", `{"storeId":"one","fullName":"Ana"}`, "storeId", ""},
		{"store id beyond int4", `{"storeId":3000000000,"fullName":"Ana"}`, "storeId", "'storeId' must be less than or equal to '2147483647'."},
		{"malformed", `{"storeId":`, "body", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := send(h, http.MethodPost, "/api/employees", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d %s", rec.Code, rec.Body)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/problem+json") {
				t.Fatalf("content type = %q", ct)
			}
			var p httpx.Problem
			if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
				t.Fatal(err)
			}
			msgs := p.Errors[tc.field]
			if len(msgs) == 0 {
				t.Fatalf("errors = %v", p.Errors)
			}
			if tc.msg != "" && msgs[0] != tc.msg {
				t.Fatalf("message = %q", msgs[0])
			}
		})
	}
}

func TestHandlerListQuery(t *testing.T) {
	h := newRouter(t)
	send(h, http.MethodPost, "/api/employees", `{"storeId":1,"fullName":"Zoe"}`)
	send(h, http.MethodPost, "/api/employees", `{"storeId":1,"fullName":"Adam","active":false}`)

	rec := send(h, http.MethodGet, "/api/employees?storeId=1&active=true", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list = %d", rec.Code)
	}
	var page httpx.Page[Employee]
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || page.Items[0].FullName != "Zoe" || page.PageSize != 50 {
		t.Fatalf("page = %+v", page)
	}

	for _, q := range []string{"storeId=x", "storeId=3000000000", "active=maybe", "page=0", "pageSize=-1"} {
		if rec := send(h, http.MethodGet, "/api/employees?"+q, ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s = %d", q, rec.Code)
		}
	}

	rec = send(h, http.MethodGet, "/api/employees?storeId=7", "")
	_ = json.Unmarshal(rec.Body.Bytes(), &page)
	if page.Total != 0 || page.Items == nil {
		t.Fatalf("empty page = %+v", page)
	}
}
