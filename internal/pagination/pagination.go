// Package pagination normalizes page/limit/sort/order input into a canonical query.
package pagination

import "strings"

const (
	DefaultSortField = "createdAt"
	DefaultLimit     = 20
	MaxLimit         = 100
)

// Query is the canonical paging and ordering request shared by search and listing.
type Query struct {
	Page      int
	Offset    int
	Limit     int
	SortField string
	Ascending bool
}

// Resolve converts a 1-based page into an offset and fills defaults.
// Sort defaults to createdAt, order to descending unless "asc" is given.
func Resolve(page, limit int, sortField, order string) Query {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	sortField = strings.TrimSpace(sortField)
	if sortField == "" {
		sortField = DefaultSortField
	}
	return Query{
		Page:      page,
		Offset:    (page - 1) * limit,
		Limit:     limit,
		SortField: sortField,
		Ascending: strings.EqualFold(strings.TrimSpace(order), "asc"),
	}
}

// Page is one page of results.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// NewPage wraps items fetched for q out of total matching rows.
func NewPage[T any](items []T, q Query, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if q.Limit > 0 {
		pages = int((total + int64(q.Limit) - 1) / int64(q.Limit))
	}
	return Page[T]{
		Content:       items,
		Page:          q.Page,
		Size:          q.Limit,
		TotalElements: total,
		TotalPages:    pages,
		First:         q.Page <= 1,
		Last:          q.Page >= pages,
	}
}

// Map converts the content of a page, keeping its paging metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Content))
	for i, v := range p.Content {
		out[i] = fn(v)
	}
	return Page[U]{
		Content:       out,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		First:         p.First,
		Last:          p.Last,
	}
}
