package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ahmadnk31/bandencentrale-sub001/internal/store"
)

func (app *application) listBannersHandler(w http.ResponseWriter, r *http.Request) {
	banners, err := app.store.Banners.ListActive(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, banners); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) adminListBannersHandler(w http.ResponseWriter, r *http.Request) {
	banners, err := app.store.Banners.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, banners); err != nil {
		app.internalServerError(w, r, err)
	}
}

type bannerPayload struct {
	Title     string  `json:"title" validate:"required,min=2,max=150"`
	Subtitle  *string `json:"subtitle" validate:"omitempty,max=300"`
	ImageURL  string  `json:"imageUrl" validate:"required,url"`
	LinkURL   *string `json:"linkUrl" validate:"omitempty,url"`
	SortOrder int     `json:"sortOrder" validate:"gte=0"`
	IsActive  *bool   `json:"isActive"`
}

func (p bannerPayload) toBanner() *store.Banner {
	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}
	return &store.Banner{
		Title:     p.Title,
		Subtitle:  p.Subtitle,
		ImageURL:  p.ImageURL,
		LinkURL:   p.LinkURL,
		SortOrder: p.SortOrder,
		IsActive:  active,
	}
}

func (app *application) createBannerHandler(w http.ResponseWriter, r *http.Request) {
	var payload bannerPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	created, err := app.store.Banners.Create(r.Context(), payload.toBanner())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.audit(r, "create", "banner", created.ID, map[string]any{"title": created.Title})

	w.Header().Set("Location", fmt.Sprintf("/api/admin/banners/%d", created.ID))
	app.jsonResponse(w, http.StatusCreated, created)
}

func (app *application) updateBannerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "bannerID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload bannerPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	banner := payload.toBanner()
	banner.ID = id

	updated, err := app.store.Banners.Update(r.Context(), banner)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.audit(r, "update", "banner", id, map[string]any{"title": updated.Title})

	app.jsonResponse(w, http.StatusOK, updated)
}

func (app *application) deleteBannerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "bannerID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Banners.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.audit(r, "delete", "banner", id, nil)

	w.WriteHeader(http.StatusNoContent)
}
