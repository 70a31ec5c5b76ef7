package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Brand struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	LogoURL      *string   `json:"logo"`
	ProductCount int       `json:"productCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type BrandsStore struct {
	db *pgxpool.Pool
}

// List returns every brand with its active-product count, ordered by name.
func (s *BrandsStore) List(ctx context.Context) ([]*Brand, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT b.id, b.name, b.logo_url,
		       COUNT(p.id) FILTER (WHERE p.is_active) AS product_count,
		       b.created_at, b.updated_at
		FROM brands b
		LEFT JOIN products p ON p.brand_id = b.id
		GROUP BY b.id
		ORDER BY LOWER(b.name) ASC, b.id ASC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var brands []*Brand
	for rows.Next() {
		var b Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.LogoURL, &b.ProductCount, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return brands, nil
}

func (s *BrandsStore) GetByID(ctx context.Context, id int64) (*Brand, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	b := &Brand{}
	query := `SELECT id, name, logo_url, created_at, updated_at FROM brands WHERE id = $1`
	if err := s.db.QueryRow(ctx, query, id).
		Scan(&b.ID, &b.Name, &b.LogoURL, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return b, nil
}

func (s *BrandsStore) Create(ctx context.Context, b *Brand) (*Brand, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO brands (name, logo_url)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`
	if err := s.db.QueryRow(ctx, query, b.Name, b.LogoURL).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create brand: %w", err)
	}
	return b, nil
}

func (s *BrandsStore) Update(ctx context.Context, b *Brand) (*Brand, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		UPDATE brands SET name = $1, logo_url = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at`
	if err := s.db.QueryRow(ctx, query, b.Name, b.LogoURL, b.ID).Scan(&b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("update brand: %w", err)
	}
	return b, nil
}

func (s *BrandsStore) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	cmd, err := s.db.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrHasProducts
		}
		return fmt.Errorf("delete brand: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// 23505 = unique_violation
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// 23503 = foreign_key_violation
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
