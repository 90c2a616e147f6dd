package v1

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/helixml/docnav/infrastructure/api/jsonapi"
)

// Page size bounds for list endpoints.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationParams selects a 1-indexed page of a listing.
type PaginationParams struct {
	page int
	size int
}

// NewPaginationParams returns the first page at the default size.
func NewPaginationParams() PaginationParams {
	return PaginationParams{page: 1, size: DefaultPageSize}
}

// ParsePagination reads page and page_size from the query. Values that are
// not positive integers are ignored.
func ParsePagination(r *http.Request) PaginationParams {
	q := r.URL.Query()
	p := NewPaginationParams()
	if n, ok := positiveInt(q, "page"); ok {
		p = p.WithPage(n)
	}
	if n, ok := positiveInt(q, "page_size"); ok {
		p = p.WithPageSize(n)
	}
	return p
}

func positiveInt(q url.Values, key string) (int, bool) {
	n, err := strconv.Atoi(q.Get(key))
	return n, err == nil && n >= 1
}

// Page returns the page number.
func (p PaginationParams) Page() int { return p.page }

// PageSize returns the number of items per page.
func (p PaginationParams) PageSize() int { return p.size }

// WithPage returns a copy on the given page, at least 1.
func (p PaginationParams) WithPage(page int) PaginationParams {
	p.page = max(page, 1)
	return p
}

// WithPageSize returns a copy with the given size, capped at MaxPageSize.
func (p PaginationParams) WithPageSize(size int) PaginationParams {
	if size < 1 {
		size = DefaultPageSize
	}
	p.size = min(size, MaxPageSize)
	return p
}

// Slice returns the [start, end) window of n items this page covers.
func (p PaginationParams) Slice(n int) (int, int) {
	start := min((p.page-1)*p.size, n)
	return start, min(start+p.size, n)
}

// Pages returns how many pages total items fill.
func (p PaginationParams) Pages(total int) int {
	return (total + p.size - 1) / p.size
}

// PaginationMeta describes the page and the listing size.
func PaginationMeta(p PaginationParams, total int) *jsonapi.Meta {
	return &jsonapi.Meta{
		"page":        p.page,
		"page_size":   p.size,
		"total_count": total,
		"total_pages": p.Pages(total),
	}
}

// PaginationLinks returns self, first, last, prev and next links that keep
// the request's other query parameters.
func PaginationLinks(r *http.Request, p PaginationParams, total int) *jsonapi.Links {
	at := func(page int) string {
		q := r.URL.Query()
		q.Set("page", strconv.Itoa(page))
		q.Set("page_size", strconv.Itoa(p.size))
		return r.URL.Path + "?" + q.Encode()
	}

	pages := p.Pages(total)
	links := jsonapi.Links{Self: at(p.page), First: at(1)}
	if pages > 0 {
		links.Last = at(pages)
	}
	if p.page > 1 {
		links.Prev = at(p.page - 1)
	}
	if p.page < pages {
		links.Next = at(p.page + 1)
	}
	return &links
}
