package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ahmadnk31/bandencentrale-sub001/internal/store"
)

const defaultLowStockThreshold = 5

func (app *application) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	threshold := defaultLowStockThreshold
	if raw, err := app.store.Settings.Get(r.Context(), "low_stock_threshold"); err == nil {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			threshold = n
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		app.internalServerError(w, r, err)
		return
	}

	summary, err := app.store.Dashboard.Summary(r.Context(), threshold)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, summary); err != nil {
		app.internalServerError(w, r, err)
	}
}
