// Package api implements the HTTP layer of the sales backend.
//
// The package is responsible for:
//   - handling incoming requests and producing responses (JSON, statuses);
//   - input validation with per-field, localized messages;
//   - mapping domain errors (service/repository) to HTTP status codes;
//   - exposing the middleware dependencies to the router.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/pdv-labs/api-sales/internal/server/middleware"
	"github.com/pdv-labs/api-sales/internal/server/service"
	serr "github.com/pdv-labs/api-sales/internal/shared/errors"
	"github.com/pdv-labs/api-sales/internal/shared/logger"
)

// Every response body is JSON.
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// Handler aggregates the dependencies of the HTTP layer.
//
// Handler holds:
//   - Svc: the service layer (business logic);
//   - Log: logger for events and errors;
//   - Verifier: JWT verification used by the guard middleware.
type Handler struct {
	Svc      *service.Services
	Log      *logger.HTTPLogger
	Verifier *middleware.JWTVerifier
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(svc *service.Services, log *logger.HTTPLogger, verifier *middleware.JWTVerifier) *Handler {
	return &Handler{
		Svc:      svc,
		Log:      log,
		Verifier: verifier,
	}
}

// ErrorResponse is the standard API error format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse aggregates per-field validation messages:
//
//	{"errors": {"email": "É Necessário informar um e-mail válido"}}
type ValidationErrorResponse struct {
	Errors validation.Errors `json:"errors"`
}

// WriteError writes a single-message error response.
func WriteError(w http.ResponseWriter, status int, err error) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: err.Error(),
	})
}

// WriteValidationError writes the aggregated per-field messages of an
// ozzo validation failure, or a plain 400 for anything else.
func WriteValidationError(w http.ResponseWriter, err error) {
	verrs, ok := err.(validation.Errors)
	if !ok {
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		return
	}

	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(ValidationErrorResponse{Errors: verrs})
}

// WriteJSON writes v as the JSON response body.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// idParam parses the {id} URL parameter. A non-numeric id behaves like a
// missing record, callers translate the error to 404.
func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, serr.ErrNotFound
	}
	return id, nil
}
