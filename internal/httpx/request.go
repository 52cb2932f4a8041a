package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/georgemunganga/hospo-ops/internal/validation"
	"github.com/go-chi/chi/v5"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 50
	MaxPageSize     = 1000
	MaxOffset       = math.MaxInt32
	maxBodyBytes    = 1 << 20
)

// Page is the list envelope returned by every paginated endpoint.
type Page[T any] struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Items    []T   `json:"items"`
}

// NewPage builds a Page, turning a nil slice into an empty one.
func NewPage[T any](items []T, total int64, p Paging) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Total: total, Page: p.Page, PageSize: p.PageSize, Items: items}
}

// Paging holds validated page parameters.
type Paging struct {
	Page     int
	PageSize int
}

// Offset returns the number of rows to skip.
func (p Paging) Offset() int { return (p.Page - 1) * p.PageSize }

// ParsePaging reads page and pageSize; both must be positive integers,
// pageSize at most MaxPageSize and (page-1)*pageSize at most MaxOffset.
func ParsePaging(r *http.Request) (Paging, error) {
	q := r.URL.Query()
	p := Paging{Page: DefaultPage, PageSize: DefaultPageSize}
	ve := &validation.Errors{}
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			ve.Add("page", "page must be a positive integer.")
		}
		p.Page = n
	}
	if raw := q.Get("pageSize"); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil || n <= 0:
			ve.Add("pageSize", "pageSize must be a positive integer.")
		case n > MaxPageSize:
			ve.Add("pageSize", "pageSize must be "+strconv.Itoa(MaxPageSize)+" or less.")
		}
		p.PageSize = n
	}
	if ve.Empty() && p.Page-1 > MaxOffset/p.PageSize {
		ve.Add("page", "page is out of range.")
	}
	if !ve.Empty() {
		return Paging{}, ve
	}
	return p, nil
}

// DecodeJSON decodes the request body into dst. Malformed bodies become a
// validation error on the "body" field.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		msg := "A non-empty request body is required."
		var syntax *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typeErr) && typeErr.Field != "":
			return validation.Field(typeErr.Field, "The value is not valid for "+typeErr.Field+".")
		case errors.As(err, &syntax), errors.Is(err, io.ErrUnexpectedEOF):
			msg = "The request body is not valid JSON."
		case !errors.Is(err, io.EOF):
			msg = strings.TrimPrefix(err.Error(), "json: ")
		}
		return validation.Field("body", msg)
	}
	return nil
}

// PathID parses the chi URL parameter name as a positive 32-bit id, the range
// of the SERIAL key columns.
func PathID(r *http.Request, name string) (int, bool) {
	n, err := strconv.ParseInt(chi.URLParam(r, name), 10, 32)
	return int(n), err == nil && n > 0
}

// IntQuery parses an optional 32-bit integer query parameter.
func IntQuery(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	n64, err := strconv.ParseInt(raw, 10, 32)
	n := int(n64)
	if err != nil {
		return nil, validation.Field(name, "The value '"+raw+"' is not valid.")
	}
	return &n, nil
}

// BoolQuery parses an optional boolean query parameter.
func BoolQuery(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, validation.Field(name, "The value '"+raw+"' is not valid.")
	}
	return &b, nil
}
