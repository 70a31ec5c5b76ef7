package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Service is a bookable workshop service (fitting, balancing, alignment...).
type Service struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"durationMinutes"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type ServicesStore struct {
	db *pgxpool.Pool
}

func (s *ServicesStore) List(ctx context.Context, includeInactive bool) ([]*Service, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT id, name, description, price, duration_minutes, is_active, created_at, updated_at
		FROM services
		WHERE ($1 OR is_active = true)
		ORDER BY LOWER(name) ASC, id ASC`

	rows, err := s.db.Query(ctx, query, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var list []*Service
	for rows.Next() {
		var sv Service
		if err := rows.Scan(&sv.ID, &sv.Name, &sv.Description, &sv.Price,
			&sv.DurationMinutes, &sv.IsActive, &sv.CreatedAt, &sv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, &sv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return list, nil
}

func (s *ServicesStore) GetByID(ctx context.Context, id int64) (*Service, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	sv := &Service{}
	query := `SELECT id, name, description, price, duration_minutes, is_active, created_at, updated_at
		FROM services WHERE id = $1`
	if err := s.db.QueryRow(ctx, query, id).Scan(&sv.ID, &sv.Name, &sv.Description,
		&sv.Price, &sv.DurationMinutes, &sv.IsActive, &sv.CreatedAt, &sv.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return sv, nil
}

func (s *ServicesStore) Create(ctx context.Context, sv *Service) (*Service, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO services (name, description, price, duration_minutes, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	if err := s.db.QueryRow(ctx, query, sv.Name, sv.Description, sv.Price,
		sv.DurationMinutes, sv.IsActive).Scan(&sv.ID, &sv.CreatedAt, &sv.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create service: %w", err)
	}
	return sv, nil
}

func (s *ServicesStore) Update(ctx context.Context, sv *Service) (*Service, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		UPDATE services SET name = $1, description = $2, price = $3,
			duration_minutes = $4, is_active = $5, updated_at = now()
		WHERE id = $6
		RETURNING updated_at`
	if err := s.db.QueryRow(ctx, query, sv.Name, sv.Description, sv.Price,
		sv.DurationMinutes, sv.IsActive, sv.ID).Scan(&sv.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update service: %w", err)
	}
	return sv, nil
}

func (s *ServicesStore) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	cmd, err := s.db.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrHasProducts
		}
		return fmt.Errorf("delete service: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
