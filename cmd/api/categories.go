package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ahmadnk31/bandencentrale-sub001/internal/store"
)

func (app *application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := app.store.Categories.List(r.Context(), false)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, categories); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) adminListCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := app.store.Categories.List(r.Context(), true)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, categories); err != nil {
		app.internalServerError(w, r, err)
	}
}

type categoryPayload struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"isActive"`
}

func (p categoryPayload) toCategory() *store.Category {
	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}
	return &store.Category{Name: p.Name, Description: p.Description, IsActive: active}
}

func (app *application) createCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var payload categoryPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	created, err := app.store.Categories.Create(r.Context(), payload.toCategory())
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			app.conflictResponse(w, r, fmt.Errorf("category '%s' already exists", payload.Name))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.audit(r, "create", "category", created.ID, map[string]any{"name": created.Name})

	w.Header().Set("Location", fmt.Sprintf("/api/admin/categories/%d", created.ID))
	app.jsonResponse(w, http.StatusCreated, created)
}

func (app *application) updateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "categoryID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload categoryPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	category := payload.toCategory()
	category.ID = id

	updated, err := app.store.Categories.Update(r.Context(), category)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, store.ErrConflict):
			app.conflictResponse(w, r, fmt.Errorf("category '%s' already exists", payload.Name))
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.audit(r, "update", "category", id, map[string]any{"name": updated.Name})

	app.jsonResponse(w, http.StatusOK, updated)
}

func (app *application) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "categoryID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Categories.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, store.ErrHasProducts):
			app.conflictResponse(w, r, errors.New("cannot delete category with associated products"))
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.audit(r, "delete", "category", id, nil)

	w.WriteHeader(http.StatusNoContent)
}
