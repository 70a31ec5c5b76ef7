package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CategoriesStore struct {
	db *pgxpool.Pool
}

func (s *CategoriesStore) List(ctx context.Context, includeInactive bool) ([]*Category, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM categories
		WHERE ($1 OR is_active = true)
		ORDER BY LOWER(name) ASC, id ASC`

	rows, err := s.db.Query(ctx, query, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var list []*Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return list, nil
}

func (s *CategoriesStore) GetByID(ctx context.Context, id int64) (*Category, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	c := &Category{}
	query := `SELECT id, name, description, is_active, created_at, updated_at FROM categories WHERE id = $1`
	if err := s.db.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (s *CategoriesStore) Create(ctx context.Context, c *Category) (*Category, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO categories (name, description, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`
	if err := s.db.QueryRow(ctx, query, c.Name, c.Description, c.IsActive).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

func (s *CategoriesStore) Update(ctx context.Context, c *Category) (*Category, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		UPDATE categories SET name = $1, description = $2, is_active = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at`
	if err := s.db.QueryRow(ctx, query, c.Name, c.Description, c.IsActive, c.ID).Scan(&c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

func (s *CategoriesStore) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	cmd, err := s.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrHasProducts
		}
		return fmt.Errorf("delete category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
