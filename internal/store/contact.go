package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

type ContactStore struct {
	db *pgxpool.Pool
}

func (s *ContactStore) Create(ctx context.Context, m *ContactMessage) (*ContactMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO contact_messages (name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	if err := s.db.QueryRow(ctx, query, m.Name, m.Email, m.Subject, m.Message).
		Scan(&m.ID, &m.CreatedAt); err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}
	return m, nil
}

func (s *ContactStore) List(ctx context.Context, limit, offset int) ([]*ContactMessage, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT id, name, email, subject, message, is_read, created_at,
		       COUNT(*) OVER() AS total_count
		FROM contact_messages
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var (
		messages []*ContactMessage
		total    int
	)
	for rows.Next() {
		var m ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message,
			&m.IsRead, &m.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan contact message: %w", err)
		}
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}
	return messages, total, nil
}

func (s *ContactStore) MarkRead(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	cmd, err := s.db.Exec(ctx, `UPDATE contact_messages SET is_read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark contact message read: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
