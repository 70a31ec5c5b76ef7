package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (app *application) getSettingsHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := app.store.Settings.GetAll(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, settings); err != nil {
		app.internalServerError(w, r, err)
	}
}

type settingPayload struct {
	Value string `json:"value" validate:"required,max=2000"`
}

func (app *application) setSettingHandler(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		app.badRequestResponse(w, r, errors.New("setting key is required"))
		return
	}

	var payload settingPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Settings.Set(r.Context(), key, payload.Value); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.audit(r, "update", "setting", 0, map[string]any{"key": key})

	app.jsonResponse(w, http.StatusOK, map[string]string{"key": key, "value": payload.Value})
}
