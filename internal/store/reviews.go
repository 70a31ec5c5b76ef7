package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

type Review struct {
	ID         int64     `json:"id"`
	ProductID  int64     `json:"productId"`
	AuthorName string    `json:"authorName"`
	Email      string    `json:"-"`
	Rating     int       `json:"rating"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Status     string    `json:"status,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ReviewsStore struct {
	db *pgxpool.Pool
}

func (s *ReviewsStore) Create(ctx context.Context, rv *Review) (*Review, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO reviews (product_id, author_name, email, rating, title, body, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	if err := s.db.QueryRow(ctx, query,
		rv.ProductID, rv.AuthorName, rv.Email, rv.Rating, rv.Title, rv.Body, ReviewPending,
	).Scan(&rv.ID, &rv.CreatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("create review: %w", err)
	}
	rv.Status = ReviewPending
	return rv, nil
}

// ListByProduct returns approved reviews only, newest first.
func (s *ReviewsStore) ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]*Review, int, error) {
	return s.list(ctx, `WHERE product_id = $1 AND status = 'approved'`, []any{productID}, limit, offset)
}

func (s *ReviewsStore) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Review, int, error) {
	return s.list(ctx, `WHERE ($1 = '' OR status = $1)`, []any{status}, limit, offset)
}

func (s *ReviewsStore) list(ctx context.Context, where string, args []any, limit, offset int) ([]*Review, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT id, product_id, author_name, email, rating, title, body, status, created_at,
		       COUNT(*) OVER() AS total_count
		FROM reviews
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var (
		reviews []*Review
		total   int
	)
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.AuthorName, &rv.Email,
			&rv.Rating, &rv.Title, &rv.Body, &rv.Status, &rv.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, &rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}
	return reviews, total, nil
}

func (s *ReviewsStore) SetStatus(ctx context.Context, id int64, status string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	cmd, err := s.db.Exec(ctx, `UPDATE reviews SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("set review status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
