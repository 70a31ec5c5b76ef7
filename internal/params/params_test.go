package params

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults when absent", query: "", wantPage: 1, wantLimit: 12, wantOffset: 0},
		{name: "explicit values", query: "page=3&limit=20", wantPage: 3, wantLimit: 20, wantOffset: 40},
		{name: "malformed page falls back", query: "page=abc&limit=5", wantPage: 1, wantLimit: 5, wantOffset: 0},
		{name: "malformed limit falls back", query: "page=2&limit=xyz", wantPage: 2, wantLimit: 12, wantOffset: 12},
		{name: "zero page falls back", query: "page=0", wantPage: 1, wantLimit: 12, wantOffset: 0},
		{name: "negative limit falls back", query: "limit=-4", wantPage: 1, wantLimit: 12, wantOffset: 0},
		{name: "large limit is kept", query: "limit=500", wantPage: 1, wantLimit: 500, wantOffset: 0},
		{name: "whitespace trimmed", query: "page=%202%20", wantPage: 2, wantLimit: 12, wantOffset: 12},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q, err := url.ParseQuery(tc.query)
			assert.NoError(t, err)

			p := ParsePagination(q)
			assert.Equal(t, tc.wantPage, p.Page)
			assert.Equal(t, tc.wantLimit, p.Limit)
			assert.Equal(t, tc.wantOffset, p.Offset)
		})
	}
}

func TestComputeMeta(t *testing.T) {
	tests := []struct {
		name         string
		page, limit  int
		total        int
		wantPages    int
		wantNext     bool
		wantPrevious bool
	}{
		{name: "first of many", page: 1, limit: 12, total: 100, wantPages: 9, wantNext: true, wantPrevious: false},
		{name: "last page", page: 9, limit: 12, total: 100, wantPages: 9, wantNext: false, wantPrevious: true},
		{name: "middle page", page: 5, limit: 12, total: 100, wantPages: 9, wantNext: true, wantPrevious: true},
		{name: "exact multiple", page: 2, limit: 10, total: 20, wantPages: 2, wantNext: false, wantPrevious: true},
		{name: "empty result", page: 1, limit: 12, total: 0, wantPages: 0, wantNext: false, wantPrevious: false},
		{name: "page beyond total", page: 50, limit: 12, total: 30, wantPages: 3, wantNext: false, wantPrevious: true},
		{name: "single row", page: 1, limit: 12, total: 1, wantPages: 1, wantNext: false, wantPrevious: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Pagination{Page: tc.page, Limit: tc.limit}
			p.ComputeMeta(tc.total)

			assert.Equal(t, tc.total, p.TotalCount)
			assert.Equal(t, tc.wantPages, p.TotalPages)
			assert.Equal(t, tc.wantNext, p.HasNextPage)
			assert.Equal(t, tc.wantPrevious, p.HasPreviousPage)
		})
	}
}
