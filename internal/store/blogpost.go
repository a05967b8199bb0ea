package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/emberhq/portfolio-api/internal/domain"
)

// PostFilter narrows List results.
type PostFilter struct {
	// Status restricts the listing to a publication status when non-empty.
	// Public listings always set PostStatusPublished.
	Status domain.PostStatus

	// Tag matches posts whose tag string contains the given tag when non-empty.
	Tag string

	// Featured restricts the listing to (non-)featured posts when non-nil.
	Featured *bool
}

// BlogPostStore defines the interface for blog post data persistence.
type BlogPostStore interface {
	// Create saves a new blog post to the store.
	// Returns ErrSlugExists when the slug is already taken.
	Create(ctx context.Context, post *domain.BlogPost) error

	// GetByID retrieves a blog post by its unique ID.
	// Returns ErrPostNotFound if the post does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error)

	// GetBySlug retrieves a blog post by its slug.
	// Returns ErrPostNotFound if the post does not exist.
	GetBySlug(ctx context.Context, slug string) (*domain.BlogPost, error)

	// List returns a page of posts matching the filter and the total match
	// count, most recently published first.
	List(ctx context.Context, filter PostFilter, page Page) ([]domain.BlogPost, int64, error)

	// Update modifies an existing blog post.
	// Returns ErrPostNotFound if the post does not exist.
	// Returns ErrSlugExists when moving to a taken slug.
	Update(ctx context.Context, post *domain.BlogPost) error

	// Delete removes a blog post from the store by its ID.
	// Returns ErrPostNotFound if the post does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementViewCount bumps the view counter of a post by one.
	IncrementViewCount(ctx context.Context, id uuid.UUID) error

	// PublishedTagStrings returns the raw tag strings of all published
	// posts. Callers aggregate these into tag counts.
	PublishedTagStrings(ctx context.Context) ([]string, error)

	// WithTx returns a new BlogPostStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) BlogPostStore
}
