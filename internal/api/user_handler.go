package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/emberhq/portfolio-api/internal/api/middleware"
	"github.com/emberhq/portfolio-api/internal/domain"
	"github.com/emberhq/portfolio-api/internal/store"
)

// UserHandler handles user management endpoints. Listing and deletion are
// admin only; reads and updates are allowed for the user themselves.
type UserHandler struct {
	userStore store.UserStore
	logger    *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userStore store.UserStore, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userStore: userStore,
		logger:    logger.With(slog.String("component", "user_handler")),
	}
}

// List handles GET /api/users (admin only).
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.UserFilter{Role: r.URL.Query().Get("role")}
	page := ParsePage(r)

	users, total, err := h.userStore.List(r.Context(), filter, page)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, UserListResponse{
		Users:      users,
		Pagination: NewPagination(total, page),
	})
}

// Get handles GET /api/users/{id} (self or admin).
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.userStore.GetByID(r.Context(), id)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	callerID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}
	if !middleware.IsAdmin(r) && callerID != id {
		RespondWithError(w, r, http.StatusForbidden, "Not authorized to access this user")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"user": user})
}

// Update handles PUT /api/users/{id} (self or admin). Role and activation
// changes are accepted from admins only.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.userStore.GetByID(r.Context(), id)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	callerID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}
	isAdmin := middleware.IsAdmin(r)
	if !isAdmin && callerID != id {
		RespondWithError(w, r, http.StatusForbidden, "Not authorized to update this user")
		return
	}

	var req UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	applyUserUpdate(user, &req, isAdmin)
	user.UpdatedAt = time.Now().UTC()

	if err := h.userStore.Update(r.Context(), user); err != nil {
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

	h.logger.Info("user updated",
		slog.String("user_id", id.String()),
		slog.String("updated_by", callerID.String()))

	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "User updated successfully",
		"user":    user,
	})
}

// Delete handles DELETE /api/users/{id} (admin only).
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.userStore.Delete(r.Context(), id); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	h.logger.Info("user deleted", slog.String("user_id", id.String()))

	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "User deleted successfully",
	})
}

// applyUserUpdate copies the non-nil request fields onto the user.
func applyUserUpdate(user *domain.User, req *UpdateUserRequest, isAdmin bool) {
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		// The store hashes the plaintext before persisting.
		user.Password = *req.Password
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if isAdmin {
		if req.Role != nil {
			user.Role = *req.Role
		}
		if req.IsActive != nil {
			user.IsActive = *req.IsActive
		}
	}
}
