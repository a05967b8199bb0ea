package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberhq/portfolio-api/internal/domain"
	"github.com/emberhq/portfolio-api/internal/mocks"
)

func newAuthHandlerForTest(userStore *mocks.MockUserStore) *AuthHandler {
	return NewAuthHandler(userStore, mocks.NewMockJWTService(), &mocks.MockPasswordVerifier{}, nil)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
		wantError  string
	}{
		{
			name: "valid registration",
			payload: map[string]interface{}{
				"username":         "newuser",
				"email":            "new@example.com",
				"password":         "Password1",
				"password_confirm": "Password1",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "duplicate username",
			payload: map[string]interface{}{
				"username":         "existing",
				"email":            "other@example.com",
				"password":         "Password1",
				"password_confirm": "Password1",
			},
			wantStatus: http.StatusConflict,
			wantError:  "Username already exists",
		},
		{
			name: "duplicate email",
			payload: map[string]interface{}{
				"username":         "someoneelse",
				"email":            "existing@example.com",
				"password":         "Password1",
				"password_confirm": "Password1",
			},
			wantStatus: http.StatusConflict,
			wantError:  "Email already exists",
		},
		{
			name: "invalid email",
			payload: map[string]interface{}{
				"username":         "newuser",
				"email":            "not-an-email",
				"password":         "Password1",
				"password_confirm": "Password1",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "weak password",
			payload: map[string]interface{}{
				"username":         "newuser",
				"email":            "new@example.com",
				"password":         "alllowercase1",
				"password_confirm": "alllowercase1",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing username",
			payload: map[string]interface{}{
				"email":            "new@example.com",
				"password":         "Password1",
				"password_confirm": "Password1",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "first name too long",
			payload: map[string]interface{}{
				"username":         "newuser",
				"email":            "new@example.com",
				"password":         "Password1",
				"password_confirm": "Password1",
				"first_name":       strings.Repeat("a", 51),
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "password confirmation mismatch",
			payload: map[string]interface{}{
				"username":         "newuser",
				"email":            "new@example.com",
				"password":         "Password1",
				"password_confirm": "Different999",
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid PasswordConfirm: fields do not match",
		},
		{
			name: "missing password confirmation",
			payload: map[string]interface{}{
				"username": "newuser",
				"email":    "new@example.com",
				"password": "Password1",
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid PasswordConfirm: required field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStore := mocks.NewMockUserStore()
			existing := seedUser(t, "existing", "existing@example.com", "x", domain.RoleUser, true)
			userStore.Users[existing.ID] = existing

			handler := newAuthHandlerForTest(userStore)

			recorder := httptest.NewRecorder()
			handler.Register(recorder, jsonRequest(t, "POST", "/api/auth/register", tt.payload))

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp AuthResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, "User registered successfully", resp.Message)
				assert.NotEmpty(t, resp.AccessToken)
				assert.NotEmpty(t, resp.RefreshToken)
				require.NotNil(t, resp.User)
				assert.Equal(t, "newuser", resp.User.Username)
				assert.Equal(t, domain.RoleUser, resp.User.Role)
			} else {
				if tt.wantError != "" {
					body := decodeBody(t, recorder)
					assert.Equal(t, tt.wantError, body["error"])
				}
				assert.Len(t, userStore.Users, 1, "no account is created on rejection")
			}
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	newStore := func() *mocks.MockUserStore {
		userStore := mocks.NewMockUserStore()
		active := seedUser(t,
			"alice", "alice@example.com",
			mocks.HashForPassword("Password1"), domain.RoleUser, true)
		disabled := seedUser(t,
			"mallory", "mallory@example.com",
			mocks.HashForPassword("Password1"), domain.RoleUser, false)
		userStore.Users[active.ID] = active
		userStore.Users[disabled.ID] = disabled
		return userStore
	}

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
		wantError  string
	}{
		{
			name: "login by username",
			payload: map[string]interface{}{
				"username": "alice",
				"password": "Password1",
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "login by email",
			payload: map[string]interface{}{
				"email":    "alice@example.com",
				"password": "Password1",
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "wrong password",
			payload: map[string]interface{}{
				"username": "alice",
				"password": "WrongPass1",
			},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid credentials",
		},
		{
			name: "unknown user",
			payload: map[string]interface{}{
				"username": "nobody",
				"password": "Password1",
			},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid credentials",
		},
		{
			name: "disabled account",
			payload: map[string]interface{}{
				"username": "mallory",
				"password": "Password1",
			},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Account is disabled",
		},
		{
			name: "missing identifier",
			payload: map[string]interface{}{
				"password": "Password1",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing password",
			payload: map[string]interface{}{
				"username": "alice",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newAuthHandlerForTest(newStore())

			recorder := httptest.NewRecorder()
			handler.Login(recorder, jsonRequest(t, "POST", "/api/auth/login", tt.payload))

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusOK {
				var resp AuthResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, "Login successful", resp.Message)
				assert.NotEmpty(t, resp.AccessToken)
				assert.NotEmpty(t, resp.RefreshToken)
			} else if tt.wantError != "" {
				body := decodeBody(t, recorder)
				assert.Equal(t, tt.wantError, body["error"])
			}
		})
	}
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	user := seedUser(t, "alice", "alice@example.com", "x", domain.RoleUser, true)
	userStore.Users[user.ID] = user

	handler := newAuthHandlerForTest(userStore)

	t.Run("valid refresh token", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.Refresh(recorder, jsonRequest(t, "POST", "/api/auth/refresh", map[string]interface{}{
			"refresh_token": "refresh-" + user.ID.String(),
		}))

		require.Equal(t, http.StatusOK, recorder.Code)

		var resp AuthResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, "Token refreshed successfully", resp.Message)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Empty(t, resp.RefreshToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.Refresh(recorder, jsonRequest(t, "POST", "/api/auth/refresh", map[string]interface{}{
			"refresh_token": "garbage",
		}))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("refresh token for deleted account", func(t *testing.T) {
		ghost := seedUser(t, "ghost", "ghost@example.com", "x", domain.RoleUser, true)

		recorder := httptest.NewRecorder()
		handler.Refresh(recorder, jsonRequest(t, "POST", "/api/auth/refresh", map[string]interface{}{
			"refresh_token": "refresh-" + ghost.ID.String(),
		}))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Invalid refresh token", body["error"])
	})

	t.Run("refresh token for disabled account", func(t *testing.T) {
		disabled := seedUser(t, "mallory", "mallory@example.com", "x", domain.RoleUser, false)
		userStore.Users[disabled.ID] = disabled

		recorder := httptest.NewRecorder()
		handler.Refresh(recorder, jsonRequest(t, "POST", "/api/auth/refresh", map[string]interface{}{
			"refresh_token": "refresh-" + disabled.ID.String(),
		}))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "Account is disabled", body["error"])
	})
}

func TestMe(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	user := seedUser(t, "alice", "alice@example.com", "x", domain.RoleUser, true)
	userStore.Users[user.ID] = user

	handler := newAuthHandlerForTest(userStore)

	t.Run("authenticated", func(t *testing.T) {
		req := asUser(jsonRequest(t, "GET", "/api/auth/me", nil), user.ID, user.Role, user.Username)

		recorder := httptest.NewRecorder()
		handler.Me(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		got, ok := body["user"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "alice", got["username"])
	})

	t.Run("account deleted after token issued", func(t *testing.T) {
		ghost := seedUser(t, "ghost", "ghost@example.com", "x", domain.RoleUser, true)
		req := asUser(jsonRequest(t, "GET", "/api/auth/me", nil), ghost.ID, ghost.Role, ghost.Username)

		recorder := httptest.NewRecorder()
		handler.Me(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, "User not found", body["error"])
	})

	t.Run("unauthenticated", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.Me(recorder, jsonRequest(t, "GET", "/api/auth/me", nil))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
