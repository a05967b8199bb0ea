package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/emberhq/portfolio-api/internal/domain"
)

// UserFilter narrows List results.
type UserFilter struct {
	// Role restricts the listing to users with the given role when non-empty.
	Role string
}

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// It handles domain validation and password hashing internally.
	// Returns ErrUsernameExists or ErrEmailExists when those fields are taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by their username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns a page of users matching the filter and the total match
	// count, newest first.
	List(ctx context.Context, filter UserFilter, page Page) ([]domain.User, int64, error)

	// Update modifies an existing user's details. The caller provides a
	// complete user object. If a plaintext Password is set it is hashed and
	// replaces the stored hash.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrUsernameExists or ErrEmailExists when moving to taken values.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new UserStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) UserStore
}
