package main

import (
	"net/http"

	"github.com/ahmadnk31/bandencentrale-sub001/internal/params"
)

func (app *application) listAuditLogsHandler(w http.ResponseWriter, r *http.Request) {
	pagination := params.ParsePagination(r.URL.Query())

	entries, total, err := app.store.AuditLogs.List(r.Context(), pagination.Limit, pagination.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	pagination.ComputeMeta(total)
	app.paginatedResponse(w, http.StatusOK, entries, pagination)
}
