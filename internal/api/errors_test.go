package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emberhq/portfolio-api/internal/domain"
	"github.com/emberhq/portfolio-api/internal/service/auth"
	"github.com/emberhq/portfolio-api/internal/store"
	"github.com/emberhq/portfolio-api/internal/task"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"wrong token type", auth.ErrWrongTokenType, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusForbidden},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"task not found", task.ErrTaskNotFound, http.StatusNotFound},
		{"duplicate username", store.ErrUsernameExists, http.StatusConflict},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"insufficient stock", domain.ErrInsufficientStock, http.StatusBadRequest},
		{"not cancellable", task.ErrNotCancellable, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{
			"wrapped store error",
			fmt.Errorf("loading order: %w", store.ErrOrderNotFound),
			http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"user not found", store.ErrUserNotFound, "User not found"},
		{"duplicate email", store.ErrEmailExists, "Email already exists"},
		{"product unavailable", domain.ErrProductNotAvailable, "Product is not available"},
		{"not cancellable", task.ErrNotCancellable, "Task cannot be cancelled"},
		{
			"internal details stay hidden",
			errors.New("pq: connection refused on 10.0.0.5"),
			"An unexpected error occurred",
		},
		{
			"wrapped sentinel",
			fmt.Errorf("creating user: %w", store.ErrUsernameExists),
			"Username already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"required tag",
			errors.New(
				"Key: 'LoginRequest.Password' Error:Field validation for 'Password' failed on the 'required' tag",
			),
			"Invalid Password: required field",
		},
		{
			"email tag",
			errors.New(
				"Key: 'RegisterRequest.Email' Error:Field validation for 'Email' failed on the 'email' tag",
			),
			"Invalid Email: invalid email format",
		},
		{
			"unrecognized format",
			errors.New("something else entirely"),
			"Validation error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeValidationError(tt.err))
		})
	}
}
