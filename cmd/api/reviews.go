package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ahmadnk31/bandencentrale-sub001/internal/params"
	"github.com/ahmadnk31/bandencentrale-sub001/internal/store"
)

func (app *application) listProductReviewsHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := app.store.Products.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	pagination := params.ParsePagination(r.URL.Query())

	reviews, total, err := app.store.Reviews.ListByProduct(r.Context(), product.ID, pagination.Limit, pagination.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	pagination.ComputeMeta(total)
	app.paginatedResponse(w, http.StatusOK, reviews, pagination)
}

type createReviewPayload struct {
	AuthorName string `json:"authorName" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
	Title      string `json:"title" validate:"required,min=2,max=150"`
	Body       string `json:"body" validate:"required,min=10,max=3000"`
}

// createReviewHandler accepts a customer review for moderation. The review
// is not visible on the storefront until an admin approves it.
func (app *application) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := app.store.Products.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	var payload createReviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	review := &store.Review{
		ProductID:  product.ID,
		AuthorName: payload.AuthorName,
		Email:      payload.Email,
		Rating:     payload.Rating,
		Title:      payload.Title,
		Body:       payload.Body,
	}

	created, err := app.store.Reviews.Create(r.Context(), review)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, created)
}

func (app *application) adminListReviewsHandler(w http.ResponseWriter, r *http.Request) {
	pagination := params.ParsePagination(r.URL.Query())
	status := r.URL.Query().Get("status")

	reviews, total, err := app.store.Reviews.ListByStatus(r.Context(), status, pagination.Limit, pagination.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	pagination.ComputeMeta(total)
	app.paginatedResponse(w, http.StatusOK, reviews, pagination)
}

type moderateReviewPayload struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

func (app *application) moderateReviewHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "reviewID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload moderateReviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Reviews.SetStatus(r.Context(), id, payload.Status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.audit(r, "status_change", "review", id, map[string]any{"status": payload.Status})

	app.jsonResponse(w, http.StatusOK, map[string]any{"id": id, "status": payload.Status})
}
