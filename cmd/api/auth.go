package main

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ahmadnk31/bandencentrale-sub001/internal/store"
)

type loginPayload struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user, err := app.store.Users.GetByEmail(r.Context(), payload.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.unauthorizedErrorResponse(w, r, errors.New("invalid credentials"))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if !user.Password.Matches(payload.Password) {
		app.unauthorizedErrorResponse(w, r, errors.New("invalid credentials"))
		return
	}

	access, refresh, err := app.authenticator.GenerateTokens(user.ID, user.Role)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

type refreshPayload struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

func (app *application) refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var payload refreshPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	token, err := app.authenticator.ValidateRefreshToken(payload.RefreshToken)
	if err != nil {
		app.unauthorizedErrorResponse(w, r, err)
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		app.unauthorizedErrorResponse(w, r, errors.New("invalid token claims"))
		return
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		app.unauthorizedErrorResponse(w, r, errors.New("invalid subject claim"))
		return
	}
	userID := int64(sub)

	user, err := app.store.Users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.unauthorizedErrorResponse(w, r, errors.New("user no longer active"))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	access, refresh, err := app.authenticator.GenerateTokens(user.ID, user.Role)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
	})
}
