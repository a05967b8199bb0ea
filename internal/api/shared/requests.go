package shared

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/emberhq/portfolio-api/internal/store"
)

// Pagination limits applied to every list endpoint.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Global validator instance for reuse
var validate = validator.New()

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v interface{}) error {
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}
	return validate.Struct(v)
}

// ParsePage reads the page/per_page query parameters, applying the default
// size and the hard cap.
func ParsePage(r *http.Request) store.Page {
	page := store.Page{Number: 1, Size: DefaultPageSize}

	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page.Number = n
		}
	}
	if raw := r.URL.Query().Get("per_page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page.Size = n
		}
	}
	if page.Size > MaxPageSize {
		page.Size = MaxPageSize
	}

	return page
}
