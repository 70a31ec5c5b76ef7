package main

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/ahmadnk31/bandencentrale-sub001/internal/params"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	// Tire size designation, e.g. 225/45R17
	Validate.RegisterValidation("tiresize", func(fl validator.FieldLevel) bool {
		matched, _ := regexp.MatchString(`^[0-9]{3}/[0-9]{2}R[0-9]{2}$`, fl.Field().String())
		return matched
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1_048_576 // 1mb
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(data)
}

func writeJSONError(w http.ResponseWriter, status int, message string) error {
	type envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Status  int    `json:"status"`
	}

	return writeJSON(w, status, &envelope{
		Success: false,
		Message: message,
		Status:  status,
	})
}

func (app *application) jsonResponse(w http.ResponseWriter, status int, data any) error {
	type envelope struct {
		Data any `json:"data"`
	}
	return writeJSON(w, status, &envelope{Data: data})
}

func (app *application) paginatedResponse(w http.ResponseWriter, status int, data any, pagination params.Pagination) error {
	type envelope struct {
		Success    bool              `json:"success"`
		Data       any               `json:"data"`
		Pagination params.Pagination `json:"pagination"`
	}
	return writeJSON(w, status, &envelope{Success: true, Data: data, Pagination: pagination})
}
