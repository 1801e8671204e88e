package helpers

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	"multitrackscheduling/internal/domain"
)

// Page size used when page_size is missing or invalid, and its upper bound.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is one page cut from an in-memory list.
type Page[T any] struct {
	Items      []T            `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// PaginationMeta locates a Page within the full list.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// PageOf returns the page of items selected by the page and page_size query
// parameters of r. Missing or non-positive values fall back to page 1 and
// DefaultPageSize; page_size is capped at MaxPageSize. A page past the end is empty.
func PageOf[T any](r *http.Request, items []T) Page[T] {
	p := pageParams(r.URL.Query())
	totalPages := (len(items) + p.PageSize - 1) / p.PageSize
	return Page[T]{
		Items: domain.Paginate(items, p),
		Pagination: PaginationMeta{
			Page:       p.Page,
			PageSize:   p.PageSize,
			Total:      len(items),
			TotalPages: totalPages,
			HasNext:    p.Page < totalPages,
		},
	}
}

func pageParams(q url.Values) domain.PaginationParams {
	return domain.PaginationParams{
		Page:     positiveInt(q, "page", 1, math.MaxInt32),
		PageSize: positiveInt(q, "page_size", DefaultPageSize, MaxPageSize),
	}
}

// positiveInt reads key from q, capped at limit, or returns def.
func positiveInt(q url.Values, key string, def, limit int) int {
	v, err := strconv.Atoi(q.Get(key))
	if err != nil || v < 1 {
		return def
	}
	return min(v, limit)
}
