package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/emberhq/portfolio-api/internal/api/shared"
	"github.com/emberhq/portfolio-api/internal/domain"
)

// jsonRequest builds a request carrying the given payload as a JSON body.
func jsonRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// asUser stamps the request context with an authenticated identity, the
// way the auth middleware would.
func asUser(req *http.Request, userID uuid.UUID, role, username string) *http.Request {
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	ctx = context.WithValue(ctx, shared.UserRoleContextKey, role)
	ctx = context.WithValue(ctx, shared.UsernameContextKey, username)
	return req.WithContext(ctx)
}

// withPathParam adds a chi URL parameter to the request context.
func withPathParam(req *http.Request, name, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(name, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// decodeBody unmarshals the recorded response body into a generic map.
func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	return body
}

// seedUser builds a stored user whose password verifies against the mock
// password verifier.
func seedUser(t *testing.T, username, email, hashedPassword, role string, active bool) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:             uuid.New(),
		Username:       username,
		Email:          email,
		HashedPassword: hashedPassword,
		Role:           role,
		IsActive:       active,
	}
	return user
}
