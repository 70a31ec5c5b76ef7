package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ahmadnk31/bandencentrale-sub001/internal/store"
)

type fakeProductsStore struct {
	lastFQ     store.ProductFilterQuery
	lastLimit  int
	lastOffset int
	listCalled int

	listFn func(ctx context.Context, fq store.ProductFilterQuery, limit, offset int) ([]*store.Product, int, error)
	getFn  func(ctx context.Context, slug string) (*store.Product, error)
}

func (f *fakeProductsStore) List(ctx context.Context, fq store.ProductFilterQuery, limit, offset int) ([]*store.Product, int, error) {
	f.listCalled++
	f.lastFQ = fq
	f.lastLimit = limit
	f.lastOffset = offset
	if f.listFn != nil {
		return f.listFn(ctx, fq, limit, offset)
	}
	return []*store.Product{}, 0, nil
}

func (f *fakeProductsStore) GetBySlug(ctx context.Context, slug string) (*store.Product, error) {
	if f.getFn != nil {
		return f.getFn(ctx, slug)
	}
	return nil, store.ErrNotFound
}

func (f *fakeProductsStore) GetByID(ctx context.Context, id int64) (*store.Product, error) {
	return nil, store.ErrNotFound
}

func (f *fakeProductsStore) Create(ctx context.Context, p *store.Product) (*store.Product, error) {
	return p, nil
}

func (f *fakeProductsStore) Update(ctx context.Context, p *store.Product) (*store.Product, error) {
	return p, nil
}

func (f *fakeProductsStore) Deactivate(ctx context.Context, id int64) error { return nil }

func (f *fakeProductsStore) SlugExists(ctx context.Context, slug string, excludeID *int64) (bool, error) {
	return false, nil
}

// withURLParam attaches a chi route parameter to a bare test request.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func newTestApplication(products *fakeProductsStore) *application {
	return &application{
		config: config{env: "test"},
		store:  store.Storage{Products: products},
		logger: zap.NewNop().Sugar(),
	}
}

func TestListProductsHandler(t *testing.T) {
	t.Run("empty catalog returns success envelope", func(t *testing.T) {
		fake := &fakeProductsStore{}
		app := newTestApplication(fake)

		r := httptest.NewRequest("GET", "/api/products", nil)
		w := httptest.NewRecorder()
		app.listProductsHandler(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var resp productListResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

		assert.True(t, resp.Success)
		assert.Empty(t, resp.Data)
		assert.Equal(t, 1, resp.Pagination.Page)
		assert.Equal(t, 12, resp.Pagination.Limit)
		assert.Equal(t, 0, resp.Pagination.TotalCount)
		assert.Equal(t, 0, resp.Pagination.TotalPages)
		assert.False(t, resp.Pagination.HasNextPage)
		assert.False(t, resp.Pagination.HasPreviousPage)
	})

	t.Run("pagination and filters are forwarded to the store", func(t *testing.T) {
		fake := &fakeProductsStore{}
		app := newTestApplication(fake)

		r := httptest.NewRequest("GET",
			"/api/products?page=3&limit=5&brand=Michelin&season=winter&inStock=true&sortBy=price&sortOrder=desc", nil)
		w := httptest.NewRecorder()
		app.listProductsHandler(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, fake.listCalled)
		assert.Equal(t, 5, fake.lastLimit)
		assert.Equal(t, 10, fake.lastOffset)
		assert.Equal(t, "Michelin", fake.lastFQ.Brand)
		assert.Equal(t, "winter", fake.lastFQ.Season)
		assert.True(t, fake.lastFQ.InStock)
		assert.Equal(t, "price", fake.lastFQ.SortBy)
		assert.Equal(t, "desc", fake.lastFQ.SortOrder)
		assert.False(t, fake.lastFQ.IncludeInactive)
	})

	t.Run("pagination metadata reflects the total", func(t *testing.T) {
		fake := &fakeProductsStore{
			listFn: func(ctx context.Context, fq store.ProductFilterQuery, limit, offset int) ([]*store.Product, int, error) {
				return []*store.Product{{ID: 1, Name: "Pilot Sport 4"}}, 100, nil
			},
		}
		app := newTestApplication(fake)

		r := httptest.NewRequest("GET", "/api/products?page=2&limit=12", nil)
		w := httptest.NewRecorder()
		app.listProductsHandler(w, r)

		require.Equal(t, http.StatusOK, w.Code)

		var resp productListResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

		assert.Len(t, resp.Data, 1)
		assert.Equal(t, 100, resp.Pagination.TotalCount)
		assert.Equal(t, 9, resp.Pagination.TotalPages)
		assert.True(t, resp.Pagination.HasNextPage)
		assert.True(t, resp.Pagination.HasPreviousPage)
	})

	t.Run("malformed paging falls back to defaults", func(t *testing.T) {
		fake := &fakeProductsStore{}
		app := newTestApplication(fake)

		r := httptest.NewRequest("GET", "/api/products?page=banana&limit=-3", nil)
		w := httptest.NewRecorder()
		app.listProductsHandler(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 12, fake.lastLimit)
		assert.Equal(t, 0, fake.lastOffset)
	})

	t.Run("store failure yields opaque 500", func(t *testing.T) {
		fake := &fakeProductsStore{
			listFn: func(ctx context.Context, fq store.ProductFilterQuery, limit, offset int) ([]*store.Product, int, error) {
				return nil, 0, errors.New("connection refused")
			},
		}
		app := newTestApplication(fake)

		r := httptest.NewRequest("GET", "/api/products", nil)
		w := httptest.NewRecorder()
		app.listProductsHandler(w, r)

		require.Equal(t, http.StatusInternalServerError, w.Code)

		var resp map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, map[string]string{"error": "Failed to fetch products"}, resp)
	})
}

func TestAdminListProductsHandler(t *testing.T) {
	fake := &fakeProductsStore{}
	app := newTestApplication(fake)

	r := httptest.NewRequest("GET", "/api/admin/products", nil)
	w := httptest.NewRecorder()
	app.adminListProductsHandler(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, fake.lastFQ.IncludeInactive)
}

func TestGetProductHandler(t *testing.T) {
	t.Run("unknown slug is a 404", func(t *testing.T) {
		app := newTestApplication(&fakeProductsStore{})

		r := withURLParam(httptest.NewRequest("GET", "/api/products/no-such-tire", nil), "slug", "no-such-tire")
		w := httptest.NewRecorder()
		app.getProductHandler(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("found product is wrapped in data envelope", func(t *testing.T) {
		fake := &fakeProductsStore{
			getFn: func(ctx context.Context, slug string) (*store.Product, error) {
				return &store.Product{ID: 9, Slug: slug, Name: "CrossClimate 2"}, nil
			},
		}
		app := newTestApplication(fake)

		r := withURLParam(httptest.NewRequest("GET", "/api/products/crossclimate-2", nil), "slug", "crossclimate-2")
		w := httptest.NewRecorder()
		app.getProductHandler(w, r)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data store.Product `json:"data"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "CrossClimate 2", resp.Data.Name)
	})
}

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Michelin Pilot Sport 4", "michelin-pilot-sport-4"},
		{"  Continental  WinterContact ", "continental-wintercontact"},
		{"205/55R16 All-Season!", "205-55r16-all-season"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, generateSlug(tc.in))
	}
}