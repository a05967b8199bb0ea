package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/emberhq/portfolio-api/internal/domain"
	"github.com/emberhq/portfolio-api/internal/redact"
	"github.com/emberhq/portfolio-api/internal/service/auth"
	"github.com/emberhq/portfolio-api/internal/store"
)

// AuthHandler handles registration, login, token refresh and the
// current-user endpoint.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	logger           *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		logger:           logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := domain.NewUser(req.Username, req.Email, req.Password)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	user.FirstName = req.FirstName
	user.LastName = req.LastName

	if err := h.userStore.Create(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameExists):
			RespondWithError(w, r, http.StatusConflict, "Username already exists")
		case errors.Is(err, store.ErrEmailExists):
			RespondWithError(w, r, http.StatusConflict, "Email already exists")
		default:
			RespondWithMappedError(w, r, err)
		}
		return
	}

	accessToken, refreshToken, ok := h.issueTokens(w, r, user)
	if !ok {
		return
	}

	h.logger.Info("user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))

	RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		Message:      "User registered successfully",
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.lookupAccount(r, &req)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		RespondWithMappedError(w, r, err)
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !user.IsActive {
		RespondWithError(w, r, http.StatusUnauthorized, "Account is disabled")
		return
	}

	accessToken, refreshToken, ok := h.issueTokens(w, r, user)
	if !ok {
		return
	}

	h.logger.Info("user logged in", slog.String("user_id", user.ID.String()))

	RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		Message:      "Login successful",
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Refresh handles POST /api/auth/refresh. It validates the refresh token
// and issues a new access token for the account behind it.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	// The account may have been deleted or disabled since the refresh
	// token was issued.
	user, err := h.userStore.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			RespondWithError(w, r, http.StatusUnauthorized, "Invalid refresh token")
			return
		}
		RespondWithMappedError(w, r, err)
		return
	}
	if !user.IsActive {
		RespondWithError(w, r, http.StatusUnauthorized, "Account is disabled")
		return
	}

	accessToken, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("failed to generate access token", "error", redact.Error(err))
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		Message:     "Token refreshed successfully",
		AccessToken: accessToken,
	})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			RespondWithError(w, r, http.StatusNotFound, "User not found")
			return
		}
		RespondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"user": user})
}

// lookupAccount resolves the login identifier to an account, preferring the
// username and falling back to the email address.
func (h *AuthHandler) lookupAccount(r *http.Request, req *LoginRequest) (*domain.User, error) {
	if req.Username != "" {
		return h.userStore.GetByUsername(r.Context(), req.Username)
	}
	return h.userStore.GetByEmail(r.Context(), req.Email)
}

// issueTokens generates the access/refresh token pair, writing the error
// response itself on failure.
func (h *AuthHandler) issueTokens(
	w http.ResponseWriter,
	r *http.Request,
	user *domain.User,
) (accessToken, refreshToken string, ok bool) {
	accessToken, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err == nil {
		refreshToken, err = h.jwtService.GenerateRefreshToken(r.Context(), user.ID)
	}
	if err != nil {
		h.logger.Error("failed to generate tokens",
			slog.String("user_id", user.ID.String()),
			slog.String("error", redact.Error(err)))
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate tokens")
		return "", "", false
	}
	return accessToken, refreshToken, true
}
