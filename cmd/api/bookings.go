package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ahmadnk31/bandencentrale-sub001/internal/mailer"
	"github.com/ahmadnk31/bandencentrale-sub001/internal/params"
	"github.com/ahmadnk31/bandencentrale-sub001/internal/store"
)

type createBookingPayload struct {
	CustomerName string    `json:"customerName" validate:"required,min=2,max=100"`
	Email        string    `json:"email" validate:"required,email,max=255"`
	Phone        string    `json:"phone" validate:"required,min=6,max=30"`
	ServiceID    int64     `json:"serviceId" validate:"required,gt=0"`
	ProductID    *int64    `json:"productId" validate:"omitempty,gt=0"`
	ScheduledAt  time.Time `json:"scheduledAt" validate:"required"`
	Notes        *string   `json:"notes" validate:"omitempty,max=1000"`
}

func (app *application) createBookingHandler(w http.ResponseWriter, r *http.Request) {
	var payload createBookingPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if payload.ScheduledAt.Before(time.Now()) {
		app.badRequestResponse(w, r, errors.New("scheduledAt must be in the future"))
		return
	}

	service, err := app.store.Services.GetByID(r.Context(), payload.ServiceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.badRequestResponse(w, r, fmt.Errorf("unknown service %d", payload.ServiceID))
			return
		}
		app.internalServerError(w, r, err)
		return
	}
	if !service.IsActive {
		app.badRequestResponse(w, r, fmt.Errorf("service '%s' is not bookable", service.Name))
		return
	}

	ref, err := app.references.Generate()
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	booking := &store.Booking{
		Reference:    ref,
		CustomerName: payload.CustomerName,
		Email:        payload.Email,
		Phone:        payload.Phone,
		ServiceID:    payload.ServiceID,
		ProductID:    payload.ProductID,
		ScheduledAt:  payload.ScheduledAt,
		Notes:        payload.Notes,
	}

	created, err := app.store.Bookings.Create(r.Context(), booking)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	created.ServiceName = service.Name

	// The confirmation mail must not hold up or fail the booking.
	if app.mailer != nil {
		go func(b store.Booking) {
			vars := struct {
				CustomerName string
				Reference    string
				ServiceName  string
				ScheduledAt  string
			}{
				CustomerName: b.CustomerName,
				Reference:    b.Reference,
				ServiceName:  b.ServiceName,
				ScheduledAt:  b.ScheduledAt.Format("Monday, 2 January 2006 at 15:04"),
			}
			status, err := app.mailer.Send(mailer.BookingConfirmationTemplate, b.CustomerName, b.Email, vars)
			if err != nil {
				app.logger.Errorw("booking confirmation email failed", "reference", b.Reference, "error", err.Error())
				return
			}
			app.logger.Infow("booking confirmation email sent", "reference", b.Reference, "status_code", status)
		}(*created)
	}

	app.jsonResponse(w, http.StatusCreated, created)
}

func (app *application) listBookingsHandler(w http.ResponseWriter, r *http.Request) {
	pagination := params.ParsePagination(r.URL.Query())
	status := r.URL.Query().Get("status")

	bookings, total, err := app.store.Bookings.List(r.Context(), status, pagination.Limit, pagination.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	pagination.ComputeMeta(total)
	app.paginatedResponse(w, http.StatusOK, bookings, pagination)
}

type statusPayload struct {
	Status string `json:"status" validate:"required"`
}

func (app *application) updateBookingStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "bookingID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload statusPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Bookings.UpdateStatus(r.Context(), id, payload.Status); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, store.ErrInvalidTransition):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.audit(r, "status_change", "booking", id, map[string]any{"status": payload.Status})

	booking, err := app.store.Bookings.GetByID(r.Context(), id)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, booking)
}
