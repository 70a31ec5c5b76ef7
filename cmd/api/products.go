package main

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ahmadnk31/bandencentrale-sub001/internal/params"
	"github.com/ahmadnk31/bandencentrale-sub001/internal/store"
)

// productListResponse is the wire contract of the public tire listing; the
// storefront pages page through it.
type productListResponse struct {
	Success    bool              `json:"success"`
	Data       []*store.Product  `json:"data"`
	Pagination params.Pagination `json:"pagination"`
}

// listProductsHandler serves GET /api/products, the storefront search.
// All filters are optional; malformed values fall back to defaults. Any
// backend failure is a plain 500 with a fixed message so no query detail
// leaks to the client.
func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	pagination := params.ParsePagination(r.URL.Query())
	fq := store.ProductFilterQuery{}.Parse(r)

	products, total, err := app.store.Products.List(r.Context(), fq, pagination.Limit, pagination.Offset)
	if err != nil {
		app.logger.Errorw("product query failed", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch products"})
		return
	}

	pagination.ComputeMeta(total)

	writeJSON(w, http.StatusOK, productListResponse{
		Success:    true,
		Data:       products,
		Pagination: pagination,
	})
}

func (app *application) getProductHandler(w http.ResponseWriter, r *http.Request) {
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

	if err := app.jsonResponse(w, http.StatusOK, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

// ---------- Admin: Products ----------

func (app *application) adminListProductsHandler(w http.ResponseWriter, r *http.Request) {
	pagination := params.ParsePagination(r.URL.Query())
	fq := store.ProductFilterQuery{IncludeInactive: true}.Parse(r)

	products, total, err := app.store.Products.List(r.Context(), fq, pagination.Limit, pagination.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	pagination.ComputeMeta(total)

	writeJSON(w, http.StatusOK, productListResponse{
		Success:    true,
		Data:       products,
		Pagination: pagination,
	})
}

type productPayload struct {
	Slug             string               `json:"slug" validate:"omitempty,min=3,max=120"`
	Name             string               `json:"name" validate:"required,min=2,max=200"`
	Description      string               `json:"description"`
	ShortDescription string               `json:"shortDescription" validate:"max=300"`
	SKU              string               `json:"sku" validate:"required,max=60"`
	Price            float64              `json:"price" validate:"required,gt=0"`
	CompareAtPrice   *float64             `json:"compareAtPrice" validate:"omitempty,gt=0"`
	Images           []store.ProductImage `json:"images"`
	Size             string               `json:"size" validate:"required,tiresize"`
	Season           string               `json:"season" validate:"required,oneof=summer winter all-season"`
	SpeedRating      string               `json:"speedRating" validate:"max=3"`
	LoadIndex        int                  `json:"loadIndex" validate:"gte=0,lte=200"`
	RunFlat          bool                 `json:"runFlat"`
	Features         []string             `json:"features"`
	Specifications   map[string]string    `json:"specifications"`
	StockQuantity    int                  `json:"stockQuantity" validate:"gte=0"`
	IsFeatured       bool                 `json:"isFeatured"`
	IsActive         *bool                `json:"isActive"`
	BrandID          *int64               `json:"brandId"`
	CategoryID       *int64               `json:"categoryId"`
}

func generateSlug(name string) string {
	slug := strings.ToLower(name)
	slug = regexp.MustCompile(`[^a-z0-9]+`).ReplaceAllString(slug, "-")
	slug = regexp.MustCompile(`^-|-$`).ReplaceAllString(slug, "")
	return slug
}

func (p productPayload) toProduct() *store.Product {
	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}
	slug := p.Slug
	if slug == "" {
		slug = generateSlug(p.Name)
	}
	return &store.Product{
		Slug:             slug,
		Name:             p.Name,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		SKU:              p.SKU,
		Price:            p.Price,
		CompareAtPrice:   p.CompareAtPrice,
		Images:           p.Images,
		Size:             p.Size,
		Season:           p.Season,
		SpeedRating:      p.SpeedRating,
		LoadIndex:        p.LoadIndex,
		RunFlat:          p.RunFlat,
		Features:         p.Features,
		Specifications:   p.Specifications,
		StockQuantity:    p.StockQuantity,
		IsFeatured:       p.IsFeatured,
		IsActive:         active,
		BrandID:          p.BrandID,
		CategoryID:       p.CategoryID,
	}
}

func (app *application) createProductHandler(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	product := payload.toProduct()

	exists, err := app.store.Products.SlugExists(r.Context(), product.Slug, nil)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if exists {
		app.conflictResponse(w, r, fmt.Errorf("product with slug '%s' already exists", product.Slug))
		return
	}

	created, err := app.store.Products.Create(r.Context(), product)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			app.conflictResponse(w, r, errors.New("product with this slug or SKU already exists"))
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.audit(r, "create", "product", created.ID, map[string]any{"name": created.Name, "sku": created.SKU})

	w.Header().Set("Location", fmt.Sprintf("/api/admin/products/%d", created.ID))
	app.jsonResponse(w, http.StatusCreated, created)
}

func (app *application) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "productID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload productPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	existing, err := app.store.Products.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	product := payload.toProduct()
	product.ID = id

	if product.Slug != existing.Slug {
		exists, err := app.store.Products.SlugExists(r.Context(), product.Slug, &id)
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}
		if exists {
			app.conflictResponse(w, r, fmt.Errorf("product with slug '%s' already exists", product.Slug))
			return
		}
	}

	updated, err := app.store.Products.Update(r.Context(), product)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, store.ErrConflict):
			app.conflictResponse(w, r, errors.New("product with this slug or SKU already exists"))
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.audit(r, "update", "product", updated.ID, map[string]any{"name": updated.Name})

	app.jsonResponse(w, http.StatusOK, updated)
}

// deleteProductHandler deactivates rather than deletes, so order history
// keeps pointing at a real row.
func (app *application) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "productID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Products.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.audit(r, "delete", "product", id, nil)

	w.WriteHeader(http.StatusNoContent)
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %s", name, idStr)
	}
	return id, nil
}

// audit appends a back-office audit entry; failures are logged, never
// surfaced, so bookkeeping cannot fail the mutation it records.
func (app *application) audit(r *http.Request, action, entity string, entityID int64, detail map[string]any) {
	user := getUserFromContext(r)
	if user == nil {
		return
	}

	entry := &store.AuditEntry{
		ActorID:  user.ID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Detail:   detail,
	}
	if err := app.store.AuditLogs.Append(r.Context(), entry); err != nil {
		app.logger.Errorw("audit log append failed", "entity", entity, "entity_id", entityID, "error", err.Error())
	}
}
