package store

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func int64Ptr(v int64) *int64 { return &v }

func TestProductFilterQueryParse(t *testing.T) {
	t.Run("defaults on empty query", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/products", nil)
		fq := ProductFilterQuery{}.Parse(r)

		assert.Empty(t, fq.Search)
		assert.Empty(t, fq.Brand)
		assert.Nil(t, fq.MinPrice)
		assert.Nil(t, fq.MaxPrice)
		assert.Equal(t, "name", fq.SortBy)
		assert.Equal(t, "asc", fq.SortOrder)
		assert.False(t, fq.InStock)
	})

	t.Run("all filters set", func(t *testing.T) {
		r := httptest.NewRequest("GET",
			"/api/products?search=pilot&brand=Michelin&category=Summer+Tires&season=summer&size=225/45R17&minPrice=50&maxPrice=200&sortBy=price&sortOrder=desc&inStock=true", nil)
		fq := ProductFilterQuery{}.Parse(r)

		assert.Equal(t, "pilot", fq.Search)
		assert.Equal(t, "Michelin", fq.Brand)
		assert.Equal(t, "Summer Tires", fq.Category)
		assert.Equal(t, "summer", fq.Season)
		assert.Equal(t, "225/45R17", fq.Size)
		assert.Equal(t, 50.0, *fq.MinPrice)
		assert.Equal(t, 200.0, *fq.MaxPrice)
		assert.Equal(t, "price", fq.SortBy)
		assert.Equal(t, "desc", fq.SortOrder)
		assert.True(t, fq.InStock)
	})

	t.Run("malformed prices are dropped", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/products?minPrice=abc&maxPrice=", nil)
		fq := ProductFilterQuery{}.Parse(r)

		assert.Nil(t, fq.MinPrice)
		assert.Nil(t, fq.MaxPrice)
	})

	t.Run("unknown sort values coerced to defaults", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/products?sortBy=rating&sortOrder=sideways", nil)
		fq := ProductFilterQuery{}.Parse(r)

		assert.Equal(t, "name", fq.SortBy)
		assert.Equal(t, "asc", fq.SortOrder)
	})

	t.Run("inStock only on literal true", func(t *testing.T) {
		for _, v := range []string{"TRUE", "1", "yes", "false"} {
			r := httptest.NewRequest("GET", "/api/products?inStock="+v, nil)
			fq := ProductFilterQuery{}.Parse(r)
			assert.False(t, fq.InStock, "inStock=%s", v)
		}
	})
}

func TestProductFilterQueryBuildWhere(t *testing.T) {
	t.Run("public listing always filters active", func(t *testing.T) {
		where, args := ProductFilterQuery{}.buildWhere(nil, nil)
		assert.Equal(t, "p.is_active = true", where)
		assert.Empty(t, args)
	})

	t.Run("admin listing lifts active predicate", func(t *testing.T) {
		where, args := ProductFilterQuery{IncludeInactive: true}.buildWhere(nil, nil)
		assert.Equal(t, "TRUE", where)
		assert.Empty(t, args)
	})

	t.Run("search matches name or description", func(t *testing.T) {
		where, args := ProductFilterQuery{Search: "pilot"}.buildWhere(nil, nil)
		assert.Contains(t, where, "p.name ILIKE '%' || $1 || '%'")
		assert.Contains(t, where, "p.description ILIKE '%' || $1 || '%'")
		assert.Equal(t, []any{"pilot"}, args)
	})

	t.Run("resolved ids become equality predicates", func(t *testing.T) {
		where, args := ProductFilterQuery{}.buildWhere(int64Ptr(7), int64Ptr(3))
		assert.Contains(t, where, "p.brand_id = $1")
		assert.Contains(t, where, "p.category_id = $2")
		assert.Equal(t, []any{int64(7), int64(3)}, args)
	})

	t.Run("price bounds are inclusive", func(t *testing.T) {
		fq := ProductFilterQuery{MinPrice: floatPtr(50), MaxPrice: floatPtr(200)}
		where, args := fq.buildWhere(nil, nil)
		assert.Contains(t, where, "p.price >= $1")
		assert.Contains(t, where, "p.price <= $2")
		assert.Equal(t, []any{50.0, 200.0}, args)
	})

	t.Run("inStock adds quantity predicate without args", func(t *testing.T) {
		where, args := ProductFilterQuery{InStock: true}.buildWhere(nil, nil)
		assert.Contains(t, where, "p.stock_quantity >= 1")
		assert.Empty(t, args)
	})

	t.Run("predicates are ANDed in order", func(t *testing.T) {
		fq := ProductFilterQuery{Season: "winter", Size: "205/55R16", InStock: true}
		where, args := fq.buildWhere(nil, nil)
		assert.Equal(t,
			"p.is_active = true AND p.season = $1 AND p.size = $2 AND p.stock_quantity >= 1",
			where)
		assert.Equal(t, []any{"winter", "205/55R16"}, args)
	})
}

func TestProductFilterQueryOrderBy(t *testing.T) {
	tests := []struct {
		sortBy, sortOrder string
		want              string
	}{
		{"name", "asc", "p.name ASC, p.id ASC"},
		{"name", "desc", "p.name DESC, p.id ASC"},
		{"price", "asc", "p.price ASC, p.id ASC"},
		{"price", "desc", "p.price DESC, p.id ASC"},
		{"", "", "p.name ASC, p.id ASC"},
	}

	for _, tc := range tests {
		fq := ProductFilterQuery{SortBy: tc.sortBy, SortOrder: tc.sortOrder}
		assert.Equal(t, tc.want, fq.orderBy())
	}
}

func TestTransitionAllowed(t *testing.T) {
	t.Run("orders", func(t *testing.T) {
		assert.True(t, transitionAllowed(orderTransitions, OrderPending, OrderProcessing))
		assert.True(t, transitionAllowed(orderTransitions, OrderPending, OrderCancelled))
		assert.True(t, transitionAllowed(orderTransitions, OrderProcessing, OrderShipped))
		assert.True(t, transitionAllowed(orderTransitions, OrderShipped, OrderDelivered))

		assert.False(t, transitionAllowed(orderTransitions, OrderPending, OrderDelivered))
		assert.False(t, transitionAllowed(orderTransitions, OrderShipped, OrderCancelled))
		assert.False(t, transitionAllowed(orderTransitions, OrderDelivered, OrderPending))
		assert.False(t, transitionAllowed(orderTransitions, OrderCancelled, OrderProcessing))
	})

	t.Run("bookings", func(t *testing.T) {
		assert.True(t, transitionAllowed(bookingTransitions, BookingPending, BookingConfirmed))
		assert.True(t, transitionAllowed(bookingTransitions, BookingPending, BookingCancelled))
		assert.True(t, transitionAllowed(bookingTransitions, BookingConfirmed, BookingCompleted))
		assert.True(t, transitionAllowed(bookingTransitions, BookingConfirmed, BookingCancelled))

		assert.False(t, transitionAllowed(bookingTransitions, BookingPending, BookingCompleted))
		assert.False(t, transitionAllowed(bookingTransitions, BookingCompleted, BookingPending))
		assert.False(t, transitionAllowed(bookingTransitions, BookingCancelled, BookingConfirmed))
	})
}
