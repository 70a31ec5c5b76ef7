package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ahmadnk31/bandencentrale-sub001/internal/store"
)

func (app *application) listServicesHandler(w http.ResponseWriter, r *http.Request) {
	services, err := app.store.Services.List(r.Context(), false)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, services); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) adminListServicesHandler(w http.ResponseWriter, r *http.Request) {
	services, err := app.store.Services.List(r.Context(), true)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, services); err != nil {
		app.internalServerError(w, r, err)
	}
}

type servicePayload struct {
	Name            string  `json:"name" validate:"required,min=2,max=100"`
	Description     *string `json:"description" validate:"omitempty,max=1000"`
	Price           float64 `json:"price" validate:"gte=0"`
	DurationMinutes int     `json:"durationMinutes" validate:"gt=0,lte=480"`
	IsActive        *bool   `json:"isActive"`
}

func (p servicePayload) toService() *store.Service {
	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}
	return &store.Service{
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		DurationMinutes: p.DurationMinutes,
		IsActive:        active,
	}
}

func (app *application) createServiceHandler(w http.ResponseWriter, r *http.Request) {
	var payload servicePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	created, err := app.store.Services.Create(r.Context(), payload.toService())
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			app.conflictResponse(w, r, fmt.Errorf("service '%s' already exists", payload.Name))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.audit(r, "create", "service", created.ID, map[string]any{"name": created.Name})

	w.Header().Set("Location", fmt.Sprintf("/api/admin/services/%d", created.ID))
	app.jsonResponse(w, http.StatusCreated, created)
}

func (app *application) updateServiceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "serviceID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload servicePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	service := payload.toService()
	service.ID = id

	updated, err := app.store.Services.Update(r.Context(), service)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, store.ErrConflict):
			app.conflictResponse(w, r, fmt.Errorf("service '%s' already exists", payload.Name))
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.audit(r, "update", "service", id, map[string]any{"name": updated.Name})

	app.jsonResponse(w, http.StatusOK, updated)
}

func (app *application) deleteServiceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "serviceID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Services.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, store.ErrHasProducts):
			app.conflictResponse(w, r, errors.New("cannot delete service with existing bookings"))
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.audit(r, "delete", "service", id, nil)

	w.WriteHeader(http.StatusNoContent)
}
