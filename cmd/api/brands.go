package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ahmadnk31/bandencentrale-sub001/internal/store"
)

func (app *application) listBrandsHandler(w http.ResponseWriter, r *http.Request) {
	brands, err := app.store.Brands.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, brands); err != nil {
		app.internalServerError(w, r, err)
	}
}

type brandPayload struct {
	Name    string  `json:"name" validate:"required,min=2,max=100"`
	LogoURL *string `json:"logo" validate:"omitempty,url"`
}

func (app *application) createBrandHandler(w http.ResponseWriter, r *http.Request) {
	var payload brandPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	brand := &store.Brand{Name: payload.Name, LogoURL: payload.LogoURL}

	created, err := app.store.Brands.Create(r.Context(), brand)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			app.conflictResponse(w, r, fmt.Errorf("brand '%s' already exists", payload.Name))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.audit(r, "create", "brand", created.ID, map[string]any{"name": created.Name})

	w.Header().Set("Location", fmt.Sprintf("/api/admin/brands/%d", created.ID))
	app.jsonResponse(w, http.StatusCreated, created)
}

func (app *application) updateBrandHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "brandID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload brandPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	brand := &store.Brand{ID: id, Name: payload.Name, LogoURL: payload.LogoURL}

	updated, err := app.store.Brands.Update(r.Context(), brand)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, store.ErrConflict):
			app.conflictResponse(w, r, fmt.Errorf("brand '%s' already exists", payload.Name))
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.audit(r, "update", "brand", id, map[string]any{"name": updated.Name})

	app.jsonResponse(w, http.StatusOK, updated)
}

func (app *application) deleteBrandHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "brandID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Brands.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, store.ErrHasProducts):
			app.conflictResponse(w, r, errors.New("cannot delete brand with associated products"))
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.audit(r, "delete", "brand", id, nil)

	w.WriteHeader(http.StatusNoContent)
}
