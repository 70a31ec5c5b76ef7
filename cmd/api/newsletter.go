package main

import (
	"errors"
	"net/http"

	"github.com/ahmadnk31/bandencentrale-sub001/internal/params"
	"github.com/ahmadnk31/bandencentrale-sub001/internal/store"
)

type newsletterPayload struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

func (app *application) subscribeHandler(w http.ResponseWriter, r *http.Request) {
	var payload newsletterPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	sub, err := app.store.Newsletter.Subscribe(r.Context(), payload.Email)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, sub)
}

func (app *application) unsubscribeHandler(w http.ResponseWriter, r *http.Request) {
	var payload newsletterPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Newsletter.Unsubscribe(r.Context(), payload.Email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) listSubscribersHandler(w http.ResponseWriter, r *http.Request) {
	pagination := params.ParsePagination(r.URL.Query())

	subs, total, err := app.store.Newsletter.ListActive(r.Context(), pagination.Limit, pagination.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	pagination.ComputeMeta(total)
	app.paginatedResponse(w, http.StatusOK, subs, pagination)
}
