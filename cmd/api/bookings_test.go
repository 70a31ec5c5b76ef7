package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ahmadnk31/bandencentrale-sub001/internal/reference"
	"github.com/ahmadnk31/bandencentrale-sub001/internal/store"
)

type fakeBookingsStore struct {
	created    *store.Booking
	lastStatus string
	statusErr  error
}

func (f *fakeBookingsStore) Create(ctx context.Context, b *store.Booking) (*store.Booking, error) {
	b.ID = 1
	b.Status = store.BookingPending
	b.CreatedAt = time.Now()
	f.created = b
	return b, nil
}

func (f *fakeBookingsStore) List(ctx context.Context, status string, limit, offset int) ([]*store.Booking, int, error) {
	return []*store.Booking{}, 0, nil
}

func (f *fakeBookingsStore) GetByID(ctx context.Context, id int64) (*store.Booking, error) {
	if f.created != nil && f.created.ID == id {
		return f.created, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeBookingsStore) UpdateStatus(ctx context.Context, id int64, status string) error {
	f.lastStatus = status
	return f.statusErr
}

type fakeServicesStore struct {
	service *store.Service
}

func (f *fakeServicesStore) List(ctx context.Context, includeInactive bool) ([]*store.Service, error) {
	return nil, nil
}

func (f *fakeServicesStore) GetByID(ctx context.Context, id int64) (*store.Service, error) {
	if f.service == nil || f.service.ID != id {
		return nil, store.ErrNotFound
	}
	return f.service, nil
}

func (f *fakeServicesStore) Create(ctx context.Context, s *store.Service) (*store.Service, error) {
	return s, nil
}

func (f *fakeServicesStore) Update(ctx context.Context, s *store.Service) (*store.Service, error) {
	return s, nil
}

func (f *fakeServicesStore) Delete(ctx context.Context, id int64) error { return nil }

func newBookingTestApplication(t *testing.T, bookings *fakeBookingsStore, services *fakeServicesStore) *application {
	t.Helper()

	gen, err := reference.NewGenerator("BC", "test-salt")
	require.NoError(t, err)

	return &application{
		config:     config{env: "test"},
		store:      store.Storage{Bookings: bookings, Services: services},
		logger:     zap.NewNop().Sugar(),
		references: gen,
	}
}

func postJSON(t *testing.T, path string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	r := httptest.NewRequest("POST", path, strings.NewReader(string(body)))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestCreateBookingHandler(t *testing.T) {
	activeService := &store.Service{ID: 2, Name: "Wheel Alignment", IsActive: true}

	validPayload := func() map[string]any {
		return map[string]any{
			"customerName": "Jan Peeters",
			"email":        "jan@example.com",
			"phone":        "+32 470 12 34 56",
			"serviceId":    2,
			"scheduledAt":  time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		}
	}

	t.Run("creates pending booking with reference", func(t *testing.T) {
		bookings := &fakeBookingsStore{}
		app := newBookingTestApplication(t, bookings, &fakeServicesStore{service: activeService})

		w := httptest.NewRecorder()
		app.createBookingHandler(w, postJSON(t, "/api/bookings", validPayload()))

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, bookings.created)
		assert.Equal(t, store.BookingPending, bookings.created.Status)
		assert.True(t, strings.HasPrefix(bookings.created.Reference, "BC-"))
		assert.Equal(t, "Wheel Alignment", bookings.created.ServiceName)
	})

	t.Run("rejects past scheduledAt", func(t *testing.T) {
		app := newBookingTestApplication(t, &fakeBookingsStore{}, &fakeServicesStore{service: activeService})

		payload := validPayload()
		payload["scheduledAt"] = time.Now().Add(-time.Hour).Format(time.RFC3339)

		w := httptest.NewRecorder()
		app.createBookingHandler(w, postJSON(t, "/api/bookings", payload))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects unknown service", func(t *testing.T) {
		app := newBookingTestApplication(t, &fakeBookingsStore{}, &fakeServicesStore{})

		w := httptest.NewRecorder()
		app.createBookingHandler(w, postJSON(t, "/api/bookings", validPayload()))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects inactive service", func(t *testing.T) {
		inactive := &store.Service{ID: 2, Name: "Retired", IsActive: false}
		app := newBookingTestApplication(t, &fakeBookingsStore{}, &fakeServicesStore{service: inactive})

		w := httptest.NewRecorder()
		app.createBookingHandler(w, postJSON(t, "/api/bookings", validPayload()))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		app := newBookingTestApplication(t, &fakeBookingsStore{}, &fakeServicesStore{service: activeService})

		w := httptest.NewRecorder()
		app.createBookingHandler(w, postJSON(t, "/api/bookings", map[string]any{"email": "jan@example.com"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateBookingStatusHandler(t *testing.T) {
	t.Run("invalid transition is a 400", func(t *testing.T) {
		bookings := &fakeBookingsStore{statusErr: store.ErrInvalidTransition}
		app := newBookingTestApplication(t, bookings, &fakeServicesStore{})

		r := withURLParam(postJSON(t, "/api/admin/bookings/1/status", map[string]string{"status": "completed"}), "bookingID", "1")
		w := httptest.NewRecorder()
		app.updateBookingStatusHandler(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown booking is a 404", func(t *testing.T) {
		bookings := &fakeBookingsStore{statusErr: store.ErrNotFound}
		app := newBookingTestApplication(t, bookings, &fakeServicesStore{})

		r := withURLParam(postJSON(t, "/api/admin/bookings/99/status", map[string]string{"status": "confirmed"}), "bookingID", "99")
		w := httptest.NewRecorder()
		app.updateBookingStatusHandler(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
