package main

import (
	"errors"
	"net/http"

	"github.com/ahmadnk31/bandencentrale-sub001/internal/mailer"
	"github.com/ahmadnk31/bandencentrale-sub001/internal/params"
	"github.com/ahmadnk31/bandencentrale-sub001/internal/store"
)

type createContactPayload struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Subject string `json:"subject" validate:"required,min=2,max=200"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

func (app *application) createContactMessageHandler(w http.ResponseWriter, r *http.Request) {
	var payload createContactPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	message := &store.ContactMessage{
		Name:    payload.Name,
		Email:   payload.Email,
		Subject: payload.Subject,
		Message: payload.Message,
	}

	created, err := app.store.Contact.Create(r.Context(), message)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	// Notify the shop inbox out of band.
	if app.mailer != nil && app.config.contactInbox != "" {
		go func(m store.ContactMessage) {
			vars := struct {
				Name    string
				Email   string
				Subject string
				Message string
			}{
				Name:    m.Name,
				Email:   m.Email,
				Subject: m.Subject,
				Message: m.Message,
			}
			if _, err := app.mailer.Send(mailer.ContactNotificationTemplate, mailer.FromName, app.config.contactInbox, vars); err != nil {
				app.logger.Errorw("contact notification email failed", "message_id", m.ID, "error", err.Error())
			}
		}(*created)
	}

	app.jsonResponse(w, http.StatusCreated, created)
}

func (app *application) listContactMessagesHandler(w http.ResponseWriter, r *http.Request) {
	pagination := params.ParsePagination(r.URL.Query())

	messages, total, err := app.store.Contact.List(r.Context(), pagination.Limit, pagination.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	pagination.ComputeMeta(total)
	app.paginatedResponse(w, http.StatusOK, messages, pagination)
}

func (app *application) markContactMessageReadHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "messageID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Contact.MarkRead(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
