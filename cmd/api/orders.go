package main

import (
	"errors"
	"net/http"

	"github.com/ahmadnk31/bandencentrale-sub001/internal/params"
	"github.com/ahmadnk31/bandencentrale-sub001/internal/store"
)

func (app *application) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	pagination := params.ParsePagination(r.URL.Query())
	status := r.URL.Query().Get("status")

	orders, total, err := app.store.Orders.List(r.Context(), status, pagination.Limit, pagination.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	pagination.ComputeMeta(total)
	app.paginatedResponse(w, http.StatusOK, orders, pagination)
}

func (app *application) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "orderID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.store.Orders.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, order); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) updateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "orderID")
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

	if err := app.store.Orders.UpdateStatus(r.Context(), id, payload.Status); err != nil {
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

	app.audit(r, "status_change", "order", id, map[string]any{"status": payload.Status})

	order, err := app.store.Orders.GetByID(r.Context(), id)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, order)
}
