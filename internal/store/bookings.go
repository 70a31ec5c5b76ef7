package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

var ErrInvalidTransition = errors.New("invalid status transition")

var bookingTransitions = map[string][]string{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

type Booking struct {
	ID           int64     `json:"id"`
	Reference    string    `json:"reference"`
	CustomerName string    `json:"customerName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	ServiceID    int64     `json:"serviceId"`
	ServiceName  string    `json:"serviceName,omitempty"`
	ProductID    *int64    `json:"productId,omitempty"`
	ScheduledAt  time.Time `json:"scheduledAt"`
	Status       string    `json:"status"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type BookingsStore struct {
	db *pgxpool.Pool
}

func (s *BookingsStore) Create(ctx context.Context, b *Booking) (*Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO bookings (reference, customer_name, email, phone, service_id, product_id, scheduled_at, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	if err := s.db.QueryRow(ctx, query,
		b.Reference, b.CustomerName, b.Email, b.Phone, b.ServiceID, b.ProductID,
		b.ScheduledAt, BookingPending, b.Notes,
	).Scan(&b.ID, &b.CreatedAt); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	b.Status = BookingPending
	return b, nil
}

func (s *BookingsStore) List(ctx context.Context, status string, limit, offset int) ([]*Booking, int, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT b.id, b.reference, b.customer_name, b.email, b.phone,
		       b.service_id, s.name, b.product_id, b.scheduled_at, b.status, b.notes, b.created_at,
		       COUNT(*) OVER() AS total_count
		FROM bookings b
		JOIN services s ON s.id = b.service_id
		WHERE ($1 = '' OR b.status = $1)
		ORDER BY b.scheduled_at ASC, b.id ASC
		LIMIT $2 OFFSET $3`

	rows, err := s.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var (
		bookings []*Booking
		total    int
	)
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.Reference, &b.CustomerName, &b.Email, &b.Phone,
			&b.ServiceID, &b.ServiceName, &b.ProductID, &b.ScheduledAt, &b.Status,
			&b.Notes, &b.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}
	return bookings, total, nil
}

func (s *BookingsStore) GetByID(ctx context.Context, id int64) (*Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	b := &Booking{}
	query := `
		SELECT b.id, b.reference, b.customer_name, b.email, b.phone,
		       b.service_id, s.name, b.product_id, b.scheduled_at, b.status, b.notes, b.created_at
		FROM bookings b
		JOIN services s ON s.id = b.service_id
		WHERE b.id = $1`
	if err := s.db.QueryRow(ctx, query, id).Scan(&b.ID, &b.Reference, &b.CustomerName,
		&b.Email, &b.Phone, &b.ServiceID, &b.ServiceName, &b.ProductID, &b.ScheduledAt,
		&b.Status, &b.Notes, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// UpdateStatus enforces pending→confirmed|cancelled and confirmed→completed|cancelled.
func (s *BookingsStore) UpdateStatus(ctx context.Context, id int64, status string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var current string
	if err := s.db.QueryRow(ctx, `SELECT status FROM bookings WHERE id = $1`, id).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get booking status: %w", err)
	}

	if !transitionAllowed(bookingTransitions, current, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, status)
	}

	if _, err := s.db.Exec(ctx,
		`UPDATE bookings SET status = $1 WHERE id = $2`, status, id); err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	return nil
}

func transitionAllowed(transitions map[string][]string, from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
