package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProductImage is one entry of a product's ordered image list, stored as jsonb.
type ProductImage struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type Product struct {
	ID               int64             `json:"id"`
	Slug             string            `json:"slug"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	ShortDescription string            `json:"shortDescription"`
	SKU              string            `json:"sku"`
	Price            float64           `json:"price"`
	CompareAtPrice   *float64          `json:"compareAtPrice"`
	Images           []ProductImage    `json:"images"`
	Size             string            `json:"size"`
	Season           string            `json:"season"`
	SpeedRating      string            `json:"speedRating"`
	LoadIndex        int               `json:"loadIndex"`
	RunFlat          bool              `json:"runFlat"`
	Features         []string          `json:"features"`
	Specifications   map[string]string `json:"specifications"`
	InStock          bool              `json:"inStock"`
	StockQuantity    int               `json:"stockQuantity"`
	IsFeatured       bool              `json:"isFeatured"`
	IsActive         bool              `json:"isActive"`
	BrandID          *int64            `json:"brandId,omitempty"`
	CategoryID       *int64            `json:"categoryId,omitempty"`
	Brand            *string           `json:"brand"`
	BrandLogo        *string           `json:"brandLogo"`
	Category         *string           `json:"category"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

type ProductsStore struct {
	db *pgxpool.Pool
}

// productColumns is the shared select list of both the page query and the
// single-product queries. Keep the scan order in scanProduct in sync.
const productColumns = `
	p.id, p.slug, p.name, p.description, p.short_description, p.sku,
	p.price, p.compare_at_price, p.images, p.size, p.season,
	p.speed_rating, p.load_index, p.run_flat, p.features, p.specifications,
	p.stock_quantity, p.is_featured, p.is_active,
	p.brand_id, p.category_id, b.name AS brand_name, b.logo_url AS brand_logo,
	c.name AS category_name,
	p.created_at, p.updated_at`

const productJoins = `
	FROM products p
	LEFT JOIN brands b ON b.id = p.brand_id
	LEFT JOIN categories c ON c.id = p.category_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var (
		p                       Product
		imagesData              []byte
		featuresData, specsData []byte
	)
	if err := row.Scan(
		&p.ID, &p.Slug, &p.Name, &p.Description, &p.ShortDescription, &p.SKU,
		&p.Price, &p.CompareAtPrice, &imagesData, &p.Size, &p.Season,
		&p.SpeedRating, &p.LoadIndex, &p.RunFlat, &featuresData, &specsData,
		&p.StockQuantity, &p.IsFeatured, &p.IsActive,
		&p.BrandID, &p.CategoryID, &p.Brand, &p.BrandLogo,
		&p.Category,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(imagesData) > 0 {
		if err := json.Unmarshal(imagesData, &p.Images); err != nil {
			return nil, fmt.Errorf("unmarshal images: %w", err)
		}
	}
	if len(featuresData) > 0 {
		if err := json.Unmarshal(featuresData, &p.Features); err != nil {
			return nil, fmt.Errorf("unmarshal features: %w", err)
		}
	}
	if len(specsData) > 0 {
		if err := json.Unmarshal(specsData, &p.Specifications); err != nil {
			return nil, fmt.Errorf("unmarshal specifications: %w", err)
		}
	}

	// Derived, never stored.
	p.InStock = p.StockQuantity > 0

	return &p, nil
}

// List runs the storefront filter query: resolves brand/category names,
// counts the matching rows and fetches one page joined with brand and
// category. The count and the page are two separate reads; a write landing
// between them can momentarily skew totals, which is accepted on this path.
func (s *ProductsStore) List(ctx context.Context, fq ProductFilterQuery, limit, offset int) ([]*Product, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var brandID, categoryID *int64
	if fq.Brand != "" {
		id, err := s.lookupIDByName(ctx, "brands", fq.Brand)
		if err != nil {
			return nil, 0, fmt.Errorf("resolve brand: %w", err)
		}
		// A name that matches nothing drops the filter instead of
		// forcing an empty result set.
		brandID = id
	}
	if fq.Category != "" {
		id, err := s.lookupIDByName(ctx, "categories", fq.Category)
		if err != nil {
			return nil, 0, fmt.Errorf("resolve category: %w", err)
		}
		categoryID = id
	}

	where, args := fq.buildWhere(brandID, categoryID)

	countSQL := `SELECT COUNT(*) ` + productJoins + ` WHERE ` + where
	var total int
	if err := s.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	dataSQL := fmt.Sprintf(
		`SELECT %s %s WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		productColumns, productJoins, where, fq.orderBy(), len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]*Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	return products, total, nil
}

// lookupIDByName resolves a brand or category name to its id. Returns
// (nil, nil) when the name matches no row.
func (s *ProductsStore) lookupIDByName(ctx context.Context, table, name string) (*int64, error) {
	var id int64
	query := fmt.Sprintf(`SELECT id FROM %s WHERE name = $1`, table)
	if err := s.db.QueryRow(ctx, query, name).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &id, nil
}

func (s *ProductsStore) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `SELECT ` + productColumns + productJoins + ` WHERE p.slug = $1 AND p.is_active = true`
	p, err := scanProduct(s.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product by slug: %w", err)
	}
	return p, nil
}

func (s *ProductsStore) GetByID(ctx context.Context, id int64) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `SELECT ` + productColumns + productJoins + ` WHERE p.id = $1`
	p, err := scanProduct(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (s *ProductsStore) Create(ctx context.Context, p *Product) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	images, features, specs, err := marshalProductJSON(p)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO products
			(slug, name, description, short_description, sku, price, compare_at_price,
			 images, size, season, speed_rating, load_index, run_flat, features,
			 specifications, stock_quantity, is_featured, is_active, brand_id, category_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		RETURNING id, created_at, updated_at`
	if err := s.db.QueryRow(ctx, query,
		p.Slug, p.Name, p.Description, p.ShortDescription, p.SKU, p.Price, p.CompareAtPrice,
		images, p.Size, p.Season, p.SpeedRating, p.LoadIndex, p.RunFlat, features,
		specs, p.StockQuantity, p.IsFeatured, p.IsActive, p.BrandID, p.CategoryID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create product: %w", err)
	}
	p.InStock = p.StockQuantity > 0
	return p, nil
}

func (s *ProductsStore) Update(ctx context.Context, p *Product) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	images, features, specs, err := marshalProductJSON(p)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE products SET
			slug=$1, name=$2, description=$3, short_description=$4, sku=$5,
			price=$6, compare_at_price=$7, images=$8, size=$9, season=$10,
			speed_rating=$11, load_index=$12, run_flat=$13, features=$14,
			specifications=$15, stock_quantity=$16, is_featured=$17, is_active=$18,
			brand_id=$19, category_id=$20, updated_at=now()
		WHERE id=$21
		RETURNING updated_at`
	if err := s.db.QueryRow(ctx, query,
		p.Slug, p.Name, p.Description, p.ShortDescription, p.SKU,
		p.Price, p.CompareAtPrice, images, p.Size, p.Season,
		p.SpeedRating, p.LoadIndex, p.RunFlat, features,
		specs, p.StockQuantity, p.IsFeatured, p.IsActive,
		p.BrandID, p.CategoryID, p.ID,
	).Scan(&p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	p.InStock = p.StockQuantity > 0
	return p, nil
}

// Deactivate soft-deletes a product so past orders keep their reference.
func (s *ProductsStore) Deactivate(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	cmd, err := s.db.Exec(ctx, `UPDATE products SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProductsStore) SlugExists(ctx context.Context, slug string, excludeID *int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var query string
	var args []any
	if excludeID != nil {
		query = `SELECT EXISTS(SELECT 1 FROM products WHERE slug = $1 AND id <> $2)`
		args = []any{slug, *excludeID}
	} else {
		query = `SELECT EXISTS(SELECT 1 FROM products WHERE slug = $1)`
		args = []any{slug}
	}

	var exists bool
	err := s.db.QueryRow(ctx, query, args...).Scan(&exists)
	return exists, err
}

func marshalProductJSON(p *Product) (images, features, specs []byte, err error) {
	if images, err = json.Marshal(p.Images); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal images: %w", err)
	}
	if features, err = json.Marshal(p.Features); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal features: %w", err)
	}
	if specs, err = json.Marshal(p.Specifications); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal specifications: %w", err)
	}
	return images, features, specs, nil
}
