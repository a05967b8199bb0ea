package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/emberhq/portfolio-api/internal/api/middleware"
	"github.com/emberhq/portfolio-api/internal/api/shared"
	"github.com/emberhq/portfolio-api/internal/store"
)

// Thin wrappers over the shared helpers so handlers in this package can
// call them unqualified.

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	shared.RespondWithJSON(w, r, status, data)
}

// RespondWithError writes a JSON error response with the given status code
// and message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	shared.RespondWithError(w, r, status, message)
}

// RespondWithErrorAndLog writes a JSON error response and logs the detailed
// internal error.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
	opts ...shared.ResponseOption,
) {
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err, opts...)
}

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	return shared.DecodeJSON(r, v)
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v interface{}) error {
	return shared.ValidateRequest(v)
}

// ParsePage reads the page/per_page query parameters.
func ParsePage(r *http.Request) store.Page {
	return shared.ParsePage(r)
}

// NewPagination computes the page envelope for a listing result.
func NewPagination(total int64, page store.Page) shared.Pagination {
	return shared.NewPagination(total, page)
}

// decodeAndValidate combines body decoding and validation, writing the 400
// response itself on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := DecodeJSON(r, v); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := ValidateRequest(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		} else {
			// Custom Validate() hooks produce user-facing messages.
			RespondWithError(w, r, http.StatusBadRequest, err.Error())
		}
		return false
	}
	return true
}

// getUserIDFromContext extracts the authenticated user's ID, writing the
// 401 response itself when the ID is missing. Routes behind Authenticate
// always have it; this guards against misconfigured routing.
func getUserIDFromContext(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

// getPathUUID parses the named chi URL parameter as a UUID, writing the 400
// response itself on failure.
func getPathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}
