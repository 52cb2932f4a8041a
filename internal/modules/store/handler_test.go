package store

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newRouter() http.Handler {
	r := chi.NewRouter()
	NewHandler(NewService(NewMemoryRepository())).RegisterRoutes(r)
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
	h := newRouter()

	rec := send(h, http.MethodPost, "/api/stores", `{"name":"A"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", rec.Code, rec.Body)
	}
	var created Store
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.ID <= 0 || created.Name != "A" {
		t.Fatalf("created = %+v", created)
	}
	if loc := rec.Header().Get("Location"); loc != "/api/stores/"+strconv.Itoa(created.ID) {
		t.Fatalf("Location = %q", loc)
	}

	dup := send(h, http.MethodPost, "/api/stores", `{"name":"A"}`)
	if dup.Code != http.StatusConflict {
		t.Fatalf("duplicate = %d", dup.Code)
	}
	if ct := dup.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("conflict content type = %q", ct)
	}
	var msg map[string]string
	_ = json.Unmarshal(dup.Body.Bytes(), &msg)
	if msg["message"] != "Store name already exists." {
		t.Fatalf("conflict body = %s", dup.Body)
	}

	path := "/api/stores/" + strconv.Itoa(created.ID)
	get := send(h, http.MethodGet, path, "")
	var fetched Store
	_ = json.Unmarshal(get.Body.Bytes(), &fetched)
	if get.Code != http.StatusOK || fetched != created {
		t.Fatalf("get = %d %+v", get.Code, fetched)
	}

	if rec := send(h, http.MethodPut, path, `{"name":"A"}`); rec.Code != http.StatusOK {
		t.Fatalf("put same name = %d", rec.Code)
	}
	if rec := send(h, http.MethodPut, "/api/stores/999", `{"name":"Z"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("put missing = %d", rec.Code)
	}
	if rec := send(h, http.MethodDelete, path, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete = %d", rec.Code)
	}
	if rec := send(h, http.MethodGet, path, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("get deleted = %d", rec.Code)
	}
	// ids outside the SERIAL range never reach storage
	for _, id := range []string{"abc", "0", "-1", "3000000000", "99999999999999999999"} {
		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
			if rec := send(h, method, "/api/stores/"+id, `{"name":"Z"}`); rec.Code != http.StatusNotFound {
				t.Fatalf("%s /api/stores/%s = %d", method, id, rec.Code)
			}
		}
	}
}

func TestHandlerValidationProblem(t *testing.T) {
	h := newRouter()
	for _, body := range []string{`{"name":""}`, `{"name":`, `{"name":5}`, ``} {
		rec := send(h, http.MethodPost, "/api/stores", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status %d", body, rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/problem+json") {
			t.Fatalf("body %q: content type %q", body, ct)
		}
		var problem struct {
			Status int                 `json:"status"`
			Title  string              `json:"title"`
			Errors map[string][]string `json:"errors"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
			t.Fatal(err)
		}
		if problem.Status != 400 || problem.Title == "" || len(problem.Errors) == 0 {
			t.Fatalf("body %q: problem = %+v", body, problem)
		}
	}
}

func TestHandlerPaging(t *testing.T) {
	h := newRouter()
	for _, n := range []string{"A", "B", "C"} {
		send(h, http.MethodPost, "/api/stores", `{"name":"`+n+`"}`)
	}
	rec := send(h, http.MethodGet, "/api/stores?page=1&pageSize=2", "")
	var page struct {
		Total    int64   `json:"total"`
		Page     int     `json:"page"`
		PageSize int     `json:"pageSize"`
		Items    []Store `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatal(err)
	}
	if page.Total != 3 || page.Page != 1 || page.PageSize != 2 || len(page.Items) != 2 {
		t.Fatalf("page = %+v", page)
	}
	if page.Items[0].ID >= page.Items[1].ID {
		t.Fatalf("not ordered by id: %+v", page.Items)
	}

	empty := send(h, http.MethodGet, "/api/stores?page=9", "")
	if !strings.Contains(empty.Body.String(), `"items":[]`) {
		t.Fatalf("empty page body = %s", empty.Body)
	}

	for _, q := range []string{
		"page=0", "pageSize=0", "page=-1", "pageSize=x", "pageSize=1001",
		// offsets that would overflow int
		"page=3&pageSize=9223372036854775807",
		"page=3&pageSize=4611686018427387904",
		"page=9223372036854775807",
	} {
		if rec := send(h, http.MethodGet, "/api/stores?"+q, ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d", q, rec.Code)
		}
	}
}
