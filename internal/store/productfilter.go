package store

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ProductFilterQuery carries the optional filters of the public tire listing.
// Zero values mean "no filter".
type ProductFilterQuery struct {
	Search    string   // case-insensitive substring on name OR description
	Brand     string   // exact Brand.name; unresolvable names drop the filter
	Category  string   // exact Category.name; same resolution rule as Brand
	Season    string   // summer | winter | all-season
	Size      string   // e.g. "225/45R17"
	MinPrice  *float64 // inclusive lower bound
	MaxPrice  *float64 // inclusive upper bound
	SortBy    string   // name | price
	SortOrder string   // asc | desc
	InStock   bool     // stock_quantity >= 1 when true

	// IncludeInactive lifts the is_active predicate for the back-office
	// listing. Never set from public input.
	IncludeInactive bool
}

// Parse extracts the filter parameters from the request URL. Malformed
// values are coerced to their defaults rather than rejected, so Parse
// never fails a request.
func (q ProductFilterQuery) Parse(r *http.Request) ProductFilterQuery {
	values := r.URL.Query()

	q.Search = strings.TrimSpace(values.Get("search"))
	q.Brand = strings.TrimSpace(values.Get("brand"))
	q.Category = strings.TrimSpace(values.Get("category"))
	q.Season = strings.TrimSpace(values.Get("season"))
	q.Size = strings.TrimSpace(values.Get("size"))

	if minStr := values.Get("minPrice"); minStr != "" {
		if min, err := strconv.ParseFloat(minStr, 64); err == nil {
			q.MinPrice = &min
		}
	}
	if maxStr := values.Get("maxPrice"); maxStr != "" {
		if max, err := strconv.ParseFloat(maxStr, 64); err == nil {
			q.MaxPrice = &max
		}
	}

	q.SortBy = "name"
	if values.Get("sortBy") == "price" {
		q.SortBy = "price"
	}
	q.SortOrder = "asc"
	if values.Get("sortOrder") == "desc" {
		q.SortOrder = "desc"
	}

	q.InStock = values.Get("inStock") == "true"

	return q
}

// buildWhere assembles the WHERE clause for the product queries. Brand and
// category arrive pre-resolved to ids; a nil id means the name lookup missed
// and the filter is dropped entirely.
func (q ProductFilterQuery) buildWhere(brandID, categoryID *int64) (string, []any) {
	conds := make([]string, 0, 8)
	args := make([]any, 0, 8)

	if !q.IncludeInactive {
		conds = append(conds, "p.is_active = true")
	}

	if q.Search != "" {
		args = append(args, q.Search)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(p.name ILIKE '%%' || $%d || '%%' OR p.description ILIKE '%%' || $%d || '%%')", n, n))
	}
	if brandID != nil {
		args = append(args, *brandID)
		conds = append(conds, fmt.Sprintf("p.brand_id = $%d", len(args)))
	}
	if categoryID != nil {
		args = append(args, *categoryID)
		conds = append(conds, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if q.Season != "" {
		args = append(args, q.Season)
		conds = append(conds, fmt.Sprintf("p.season = $%d", len(args)))
	}
	if q.Size != "" {
		args = append(args, q.Size)
		conds = append(conds, fmt.Sprintf("p.size = $%d", len(args)))
	}
	if q.MinPrice != nil {
		args = append(args, *q.MinPrice)
		conds = append(conds, fmt.Sprintf("p.price >= $%d", len(args)))
	}
	if q.MaxPrice != nil {
		args = append(args, *q.MaxPrice)
		conds = append(conds, fmt.Sprintf("p.price <= $%d", len(args)))
	}
	if q.InStock {
		conds = append(conds, "p.stock_quantity >= 1")
	}

	if len(conds) == 0 {
		return "TRUE", args
	}
	return strings.Join(conds, " AND "), args
}

// orderBy maps the sort spec onto a deterministic ORDER BY clause. The id
// tie-break keeps pagination stable when many rows share a price or name.
func (q ProductFilterQuery) orderBy() string {
	col := "p.name"
	if q.SortBy == "price" {
		col = "p.price"
	}
	dir := "ASC"
	if q.SortOrder == "desc" {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s, p.id ASC", col, dir)
}
