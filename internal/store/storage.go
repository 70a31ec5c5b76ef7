package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("resource already exists")
	ErrHasProducts       = errors.New("resource has associated products")
	QueryTimeoutDuration = time.Second * 5
)

type Storage struct {
	Products interface {
		List(ctx context.Context, fq ProductFilterQuery, limit, offset int) ([]*Product, int, error)
		GetBySlug(ctx context.Context, slug string) (*Product, error)
		GetByID(ctx context.Context, id int64) (*Product, error)
		Create(ctx context.Context, p *Product) (*Product, error)
		Update(ctx context.Context, p *Product) (*Product, error)
		Deactivate(ctx context.Context, id int64) error
		SlugExists(ctx context.Context, slug string, excludeID *int64) (bool, error)
	}
	Brands interface {
		List(ctx context.Context) ([]*Brand, error)
		GetByID(ctx context.Context, id int64) (*Brand, error)
		Create(ctx context.Context, b *Brand) (*Brand, error)
		Update(ctx context.Context, b *Brand) (*Brand, error)
		Delete(ctx context.Context, id int64) error
	}
	Categories interface {
		List(ctx context.Context, includeInactive bool) ([]*Category, error)
		GetByID(ctx context.Context, id int64) (*Category, error)
		Create(ctx context.Context, c *Category) (*Category, error)
		Update(ctx context.Context, c *Category) (*Category, error)
		Delete(ctx context.Context, id int64) error
	}
	Services interface {
		List(ctx context.Context, includeInactive bool) ([]*Service, error)
		GetByID(ctx context.Context, id int64) (*Service, error)
		Create(ctx context.Context, s *Service) (*Service, error)
		Update(ctx context.Context, s *Service) (*Service, error)
		Delete(ctx context.Context, id int64) error
	}
	Bookings interface {
		Create(ctx context.Context, b *Booking) (*Booking, error)
		List(ctx context.Context, status string, limit, offset int) ([]*Booking, int, error)
		GetByID(ctx context.Context, id int64) (*Booking, error)
		UpdateStatus(ctx context.Context, id int64, status string) error
	}
	Orders interface {
		List(ctx context.Context, status string, limit, offset int) ([]*Order, int, error)
		GetByID(ctx context.Context, id int64) (*Order, error)
		UpdateStatus(ctx context.Context, id int64, status string) error
	}
	Reviews interface {
		Create(ctx context.Context, rv *Review) (*Review, error)
		ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]*Review, int, error)
		ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Review, int, error)
		SetStatus(ctx context.Context, id int64, status string) error
	}
	Contact interface {
		Create(ctx context.Context, m *ContactMessage) (*ContactMessage, error)
		List(ctx context.Context, limit, offset int) ([]*ContactMessage, int, error)
		MarkRead(ctx context.Context, id int64) error
	}
	Newsletter interface {
		Subscribe(ctx context.Context, email string) (*Subscriber, error)
		Unsubscribe(ctx context.Context, email string) error
		ListActive(ctx context.Context, limit, offset int) ([]*Subscriber, int, error)
	}
	Users interface {
		Create(ctx context.Context, u *AdminUser) error
		GetByEmail(ctx context.Context, email string) (*AdminUser, error)
		GetByID(ctx context.Context, id int64) (*AdminUser, error)
	}
	Settings interface {
		GetAll(ctx context.Context) (map[string]string, error)
		Get(ctx context.Context, key string) (string, error)
		Set(ctx context.Context, key, value string) error
	}
	Banners interface {
		ListActive(ctx context.Context) ([]*Banner, error)
		List(ctx context.Context) ([]*Banner, error)
		GetByID(ctx context.Context, id int64) (*Banner, error)
		Create(ctx context.Context, b *Banner) (*Banner, error)
		Update(ctx context.Context, b *Banner) (*Banner, error)
		Delete(ctx context.Context, id int64) error
	}
	AuditLogs interface {
		Append(ctx context.Context, e *AuditEntry) error
		List(ctx context.Context, limit, offset int) ([]*AuditEntry, int, error)
	}
	Dashboard interface {
		Summary(ctx context.Context, lowStockThreshold int) (*DashboardSummary, error)
	}
}

func NewStorage(db *pgxpool.Pool) Storage {
	return Storage{
		Products:   &ProductsStore{db},
		Brands:     &BrandsStore{db},
		Categories: &CategoriesStore{db},
		Services:   &ServicesStore{db},
		Bookings:   &BookingsStore{db},
		Orders:     &OrdersStore{db},
		Reviews:    &ReviewsStore{db},
		Contact:    &ContactStore{db},
		Newsletter: &NewsletterStore{db},
		Users:      &UsersStore{db},
		Settings:   &SettingsStore{db},
		Banners:    &BannersStore{db},
		AuditLogs:  &AuditLogsStore{db},
		Dashboard:  &DashboardStore{db},
	}
}
