package params

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// URL: /products?page=2&limit=12
// → ParsePagination() → Pagination{Page:2, Limit:12, Offset:12}
// → SQL: SELECT ... LIMIT 12 OFFSET 12
// → DB returns rows + total count
// → ComputeMeta(total) → fills TotalPages, HasNextPage, HasPreviousPage
// Pagination holds the requested window and its computed metadata.
type Pagination struct {
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	Offset          int  `json:"-"`
	TotalCount      int  `json:"totalCount"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

const (
	DefaultPage  = 1
	DefaultLimit = 12
)

// ParsePagination parses ?page=...&limit=... safely. Malformed or
// out-of-range values fall back to the defaults instead of erroring.
func ParsePagination(q url.Values) Pagination {
	p := Pagination{
		Page:  DefaultPage,
		Limit: DefaultLimit,
	}

	if pageStr := strings.TrimSpace(q.Get("page")); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page >= 1 {
			p.Page = page
		}
	}

	if limitStr := strings.TrimSpace(q.Get("limit")); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit >= 1 {
			p.Limit = limit
		}
	}

	p.Offset = (p.Page - 1) * p.Limit
	return p
}

// ComputeMeta fills in the metadata once the total count is known.
// totalPages = ceil(totalCount/limit); hasNextPage iff page < totalPages.
func (p *Pagination) ComputeMeta(total int) {
	p.TotalCount = total
	if p.Limit > 0 {
		p.TotalPages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	p.HasNextPage = p.Page < p.TotalPages
	p.HasPreviousPage = p.Page > 1
}
