package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Banner is a hero banner on the storefront landing page.
type Banner struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Subtitle  *string   `json:"subtitle,omitempty"`
	ImageURL  string    `json:"imageUrl"`
	LinkURL   *string   `json:"linkUrl,omitempty"`
	SortOrder int       `json:"sortOrder"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type BannersStore struct {
	db *pgxpool.Pool
}

const bannerColumns = `id, title, subtitle, image_url, link_url, sort_order, is_active, created_at, updated_at`

func (s *BannersStore) ListActive(ctx context.Context) ([]*Banner, error) {
	return s.listWhere(ctx, `WHERE is_active = true`)
}

func (s *BannersStore) List(ctx context.Context) ([]*Banner, error) {
	return s.listWhere(ctx, ``)
}

func (s *BannersStore) listWhere(ctx context.Context, where string) ([]*Banner, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM hero_banners %s ORDER BY sort_order ASC, id ASC`, bannerColumns, where)
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	defer rows.Close()

	var banners []*Banner
	for rows.Next() {
		var b Banner
		if err := rows.Scan(&b.ID, &b.Title, &b.Subtitle, &b.ImageURL, &b.LinkURL,
			&b.SortOrder, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan banner: %w", err)
		}
		banners = append(banners, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return banners, nil
}

func (s *BannersStore) GetByID(ctx context.Context, id int64) (*Banner, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	b := &Banner{}
	query := fmt.Sprintf(`SELECT %s FROM hero_banners WHERE id = $1`, bannerColumns)
	if err := s.db.QueryRow(ctx, query, id).Scan(&b.ID, &b.Title, &b.Subtitle, &b.ImageURL,
		&b.LinkURL, &b.SortOrder, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get banner: %w", err)
	}
	return b, nil
}

func (s *BannersStore) Create(ctx context.Context, b *Banner) (*Banner, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO hero_banners (title, subtitle, image_url, link_url, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	if err := s.db.QueryRow(ctx, query, b.Title, b.Subtitle, b.ImageURL, b.LinkURL,
		b.SortOrder, b.IsActive).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, fmt.Errorf("create banner: %w", err)
	}
	return b, nil
}

func (s *BannersStore) Update(ctx context.Context, b *Banner) (*Banner, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		UPDATE hero_banners
		SET title = $1, subtitle = $2, image_url = $3, link_url = $4,
		    sort_order = $5, is_active = $6, updated_at = now()
		WHERE id = $7
		RETURNING updated_at`
	if err := s.db.QueryRow(ctx, query, b.Title, b.Subtitle, b.ImageURL, b.LinkURL,
		b.SortOrder, b.IsActive, b.ID).Scan(&b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update banner: %w", err)
	}
	return b, nil
}

func (s *BannersStore) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	cmd, err := s.db.Exec(ctx, `DELETE FROM hero_banners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
