package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type AdminUser struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  password  `json:"-"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type password struct {
	hash []byte
}

func (p *password) Set(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.hash = hash
	return nil
}

func (p *password) Matches(plain string) bool {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(plain)) == nil
}

type UsersStore struct {
	db *pgxpool.Pool
}

func (s *UsersStore) Create(ctx context.Context, u *AdminUser) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO admin_users (email, name, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, true)
		RETURNING id, created_at`
	if err := s.db.QueryRow(ctx, query, u.Email, u.Name, u.Password.hash, u.Role).
		Scan(&u.ID, &u.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("create admin user: %w", err)
	}
	u.IsActive = true
	return nil
}

func (s *UsersStore) GetByEmail(ctx context.Context, email string) (*AdminUser, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	u := &AdminUser{}
	query := `SELECT id, email, name, password_hash, role, is_active, created_at
		FROM admin_users WHERE email = $1 AND is_active = true`
	if err := s.db.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.Name,
		&u.Password.hash, &u.Role, &u.IsActive, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get admin user: %w", err)
	}
	return u, nil
}

func (s *UsersStore) GetByID(ctx context.Context, id int64) (*AdminUser, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	u := &AdminUser{}
	query := `SELECT id, email, name, password_hash, role, is_active, created_at
		FROM admin_users WHERE id = $1 AND is_active = true`
	if err := s.db.QueryRow(ctx, query, id).Scan(&u.ID, &u.Email, &u.Name,
		&u.Password.hash, &u.Role, &u.IsActive, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get admin user: %w", err)
	}
	return u, nil
}
