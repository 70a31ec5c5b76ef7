package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ahmadnk31/bandencentrale-sub001/internal/store"
)

type createUserPayload struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=admin staff"`
}

func (app *application) createUserHandler(w http.ResponseWriter, r *http.Request) {
	var payload createUserPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := &store.AdminUser{
		Email: payload.Email,
		Name:  payload.Name,
		Role:  payload.Role,
	}
	if err := user.Password.Set(payload.Password); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Users.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			app.conflictResponse(w, r, fmt.Errorf("a user with email %s already exists", payload.Email))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.audit(r, "create", "user", user.ID, map[string]any{"email": user.Email, "role": user.Role})

	app.jsonResponse(w, http.StatusCreated, user)
}
