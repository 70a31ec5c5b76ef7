package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Subscriber struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	IsActive       bool       `json:"isActive"`
	SubscribedAt   time.Time  `json:"subscribedAt"`
	UnsubscribedAt *time.Time `json:"unsubscribedAt,omitempty"`
}

type NewsletterStore struct {
	db *pgxpool.Pool
}

// Subscribe upserts by email so re-subscribing a previously unsubscribed
// address reactivates it instead of erroring on the unique constraint.
func (s *NewsletterStore) Subscribe(ctx context.Context, email string) (*Subscriber, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	sub := &Subscriber{}
	query := `
		INSERT INTO newsletter_subscribers (email, is_active, subscribed_at)
		VALUES ($1, true, now())
		ON CONFLICT (email) DO UPDATE
		SET is_active = true, subscribed_at = now(), unsubscribed_at = NULL
		RETURNING id, email, is_active, subscribed_at, unsubscribed_at`
	if err := s.db.QueryRow(ctx, query, email).
		Scan(&sub.ID, &sub.Email, &sub.IsActive, &sub.SubscribedAt, &sub.UnsubscribedAt); err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	return sub, nil
}

func (s *NewsletterStore) Unsubscribe(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	cmd, err := s.db.Exec(ctx, `
		UPDATE newsletter_subscribers
		SET is_active = false, unsubscribed_at = now()
		WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *NewsletterStore) ListActive(ctx context.Context, limit, offset int) ([]*Subscriber, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT id, email, is_active, subscribed_at, unsubscribed_at,
		       COUNT(*) OVER() AS total_count
		FROM newsletter_subscribers
		WHERE is_active = true
		ORDER BY subscribed_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	var (
		subs  []*Subscriber
		total int
	)
	for rows.Next() {
		var sub Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.IsActive, &sub.SubscribedAt,
			&sub.UnsubscribedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan subscriber: %w", err)
		}
		subs = append(subs, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}
	return subs, total, nil
}
