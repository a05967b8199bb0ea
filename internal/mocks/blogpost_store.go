package mocks

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/emberhq/portfolio-api/internal/domain"
	"github.com/emberhq/portfolio-api/internal/store"
)

// MockBlogPostStore implements store.BlogPostStore for testing
type MockBlogPostStore struct {
	// Function fields for customizable behavior
	CreateFn              func(ctx context.Context, post *domain.BlogPost) error
	GetByIDFn             func(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error)
	GetBySlugFn           func(ctx context.Context, slug string) (*domain.BlogPost, error)
	ListFn                func(ctx context.Context, filter store.PostFilter, page store.Page) ([]domain.BlogPost, int64, error)
	UpdateFn              func(ctx context.Context, post *domain.BlogPost) error
	DeleteFn              func(ctx context.Context, id uuid.UUID) error
	IncrementViewCountFn  func(ctx context.Context, id uuid.UUID) error
	PublishedTagStringsFn func(ctx context.Context) ([]string, error)

	// Posts backs the default in-memory implementation, keyed by ID.
	Posts map[uuid.UUID]*domain.BlogPost
}

// NewMockBlogPostStore creates a new mock store with initialized defaults
func NewMockBlogPostStore() *MockBlogPostStore {
	return &MockBlogPostStore{
		Posts: make(map[uuid.UUID]*domain.BlogPost),
	}
}

// Ensure MockBlogPostStore implements store.BlogPostStore
var _ store.BlogPostStore = (*MockBlogPostStore)(nil)

// Create implements the BlogPostStore interface
func (m *MockBlogPostStore) Create(ctx context.Context, post *domain.BlogPost) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, post)
	}

	for _, existing := range m.Posts {
		if existing.Slug == post.Slug {
			return store.ErrSlugExists
		}
	}

	copied := *post
	m.Posts[post.ID] = &copied
	return nil
}

// GetByID implements the BlogPostStore interface
func (m *MockBlogPostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	post, exists := m.Posts[id]
	if !exists {
		return nil, store.ErrPostNotFound
	}
	copied := *post
	return &copied, nil
}

// GetBySlug implements the BlogPostStore interface
func (m *MockBlogPostStore) GetBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	if m.GetBySlugFn != nil {
		return m.GetBySlugFn(ctx, slug)
	}

	for _, post := range m.Posts {
		if post.Slug == slug {
			copied := *post
			return &copied, nil
		}
	}
	return nil, store.ErrPostNotFound
}

// List implements the BlogPostStore interface
func (m *MockBlogPostStore) List(
	ctx context.Context,
	filter store.PostFilter,
	page store.Page,
) ([]domain.BlogPost, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter, page)
	}

	matched := []domain.BlogPost{}
	for _, post := range m.Posts {
		if filter.Status != "" && post.Status != filter.Status {
			continue
		}
		if filter.Tag != "" && !strings.Contains(post.Tags, filter.Tag) {
			continue
		}
		if filter.Featured != nil && post.IsFeatured != *filter.Featured {
			continue
		}
		matched = append(matched, *post)
	}
	sort.Slice(matched, func(i, j int) bool {
		ti, tj := matched[i].CreatedAt, matched[j].CreatedAt
		if matched[i].PublishedAt != nil {
			ti = *matched[i].PublishedAt
		}
		if matched[j].PublishedAt != nil {
			tj = *matched[j].PublishedAt
		}
		return ti.After(tj)
	})

	return paginate(matched, page), int64(len(matched)), nil
}

// Update implements the BlogPostStore interface
func (m *MockBlogPostStore) Update(ctx context.Context, post *domain.BlogPost) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, post)
	}

	if _, exists := m.Posts[post.ID]; !exists {
		return store.ErrPostNotFound
	}
	for _, existing := range m.Posts {
		if existing.ID != post.ID && existing.Slug == post.Slug {
			return store.ErrSlugExists
		}
	}

	copied := *post
	m.Posts[post.ID] = &copied
	return nil
}

// Delete implements the BlogPostStore interface
func (m *MockBlogPostStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Posts[id]; !exists {
		return store.ErrPostNotFound
	}
	delete(m.Posts, id)
	return nil
}

// IncrementViewCount implements the BlogPostStore interface
func (m *MockBlogPostStore) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	if m.IncrementViewCountFn != nil {
		return m.IncrementViewCountFn(ctx, id)
	}

	post, exists := m.Posts[id]
	if !exists {
		return store.ErrPostNotFound
	}
	post.ViewCount++
	return nil
}

// PublishedTagStrings implements the BlogPostStore interface
func (m *MockBlogPostStore) PublishedTagStrings(ctx context.Context) ([]string, error) {
	if m.PublishedTagStringsFn != nil {
		return m.PublishedTagStringsFn(ctx)
	}

	tagStrings := []string{}
	for _, post := range m.Posts {
		if post.Status == domain.PostStatusPublished && post.Tags != "" {
			tagStrings = append(tagStrings, post.Tags)
		}
	}
	return tagStrings, nil
}

// WithTx implements the BlogPostStore interface. The mock has no
// transactions, so it returns itself.
func (m *MockBlogPostStore) WithTx(tx *sql.Tx) store.BlogPostStore {
	return m
}
