package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberhq/portfolio-api/internal/config"
	"github.com/emberhq/portfolio-api/internal/domain"
	"github.com/emberhq/portfolio-api/internal/mocks"
	"github.com/emberhq/portfolio-api/internal/service"
	"github.com/emberhq/portfolio-api/internal/task"
)

// newTestApplication builds an application over in-memory stores so the
// router can be exercised without a database.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Port = 8080
	cfg.RateLimit.Enabled = false

	postStore := mocks.NewMockBlogPostStore()
	blogService, err := service.NewBlogService(postStore, nil)
	require.NoError(t, err)

	registry := task.NewRegistry()

	return &application{
		config:           cfg,
		logger:           slog.New(slog.NewJSONHandler(io.Discard, nil)),
		userStore:        mocks.NewMockUserStore(),
		productStore:     mocks.NewMockProductStore(),
		orderStore:       mocks.NewMockOrderStore(),
		postStore:        postStore,
		jwtService:       mocks.NewMockJWTService(),
		passwordVerifier: &mocks.MockPasswordVerifier{},
		blogService:      blogService,
		taskRegistry:     registry,
		taskRunner:       task.NewRunner(registry, task.DefaultRunnerConfig(), nil),
	}
}

func TestRouterHealth(t *testing.T) {
	t.Parallel()

	router := newTestApplication(t).setupRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"healthy","version":"1.0.0"}`, recorder.Body.String())
}

func TestRouterPublicRoutes(t *testing.T) {
	t.Parallel()

	router := newTestApplication(t).setupRouter()

	tests := []struct {
		name   string
		method string
		target string
	}{
		{"product listing", "GET", "/api/products"},
		{"product categories", "GET", "/api/products/categories"},
		{"blog listing", "GET", "/api/blog"},
		{"blog tags", "GET", "/api/blog/tags"},
		{"weather cities", "GET", "/api/weather/cities"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, http.StatusOK, recorder.Code)
		})
	}
}

func TestRouterRequiresAuthentication(t *testing.T) {
	t.Parallel()

	router := newTestApplication(t).setupRouter()

	tests := []struct {
		name   string
		method string
		target string
	}{
		{"current user", "GET", "/api/auth/me"},
		{"user listing", "GET", "/api/users"},
		{"order listing", "GET", "/api/orders"},
		{"task listing", "GET", "/api/tasks"},
		{"product creation", "POST", "/api/products"},
		{"blog creation", "POST", "/api/blog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		})
	}
}

func TestRouterAdminOnlyRoutes(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)

	user := &domain.User{
		ID:             uuid.New(),
		Username:       "plain",
		Email:          "plain@example.com",
		HashedPassword: "hashed",
		Role:           domain.RoleUser,
		IsActive:       true,
	}
	app.userStore.(*mocks.MockUserStore).Users[user.ID] = user

	router := app.setupRouter()

	tests := []struct {
		name   string
		method string
		target string
	}{
		{"user listing", "GET", "/api/users"},
		{"user deletion", "DELETE", "/api/users/" + uuid.New().String()},
		{"product creation", "POST", "/api/products"},
		{"blog deletion", "DELETE", "/api/blog/" + uuid.New().String()},
		{"order status update", "PUT", "/api/orders/" + uuid.New().String() + "/status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			req.Header.Set("Authorization", "Bearer token-"+user.ID.String())
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, http.StatusForbidden, recorder.Code)
		})
	}
}

func TestRouterRateLimit(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	app.config.RateLimit.Enabled = true
	app.config.RateLimit.RequestsPerMinute = 2
	router := app.setupRouter()

	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/api/products", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		last = recorder.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}
