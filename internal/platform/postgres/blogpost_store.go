package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/emberhq/portfolio-api/internal/domain"
	"github.com/emberhq/portfolio-api/internal/store"
)

// postColumns is the column list shared by all blog post SELECT statements.
const postColumns = `id, title, slug, content, summary, featured_image,
	author_id, status, view_count, is_featured, tags, created_at, updated_at,
	published_at`

// PostgresBlogPostStore implements the store.BlogPostStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBlogPostStore struct {
	db store.DBTX
}

// NewPostgresBlogPostStore creates a new PostgreSQL implementation of the
// BlogPostStore interface.
func NewPostgresBlogPostStore(db store.DBTX) *PostgresBlogPostStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &PostgresBlogPostStore{db: db}
}

// Ensure PostgresBlogPostStore implements store.BlogPostStore interface
var _ store.BlogPostStore = (*PostgresBlogPostStore)(nil)

// WithTx implements store.BlogPostStore.WithTx
func (s *PostgresBlogPostStore) WithTx(tx *sql.Tx) store.BlogPostStore {
	return &PostgresBlogPostStore{db: tx}
}

// Create implements store.BlogPostStore.Create
func (s *PostgresBlogPostStore) Create(ctx context.Context, post *domain.BlogPost) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO blog_posts (id, title, slug, content, summary,
			featured_image, author_id, status, view_count, is_featured, tags,
			created_at, updated_at, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := s.db.ExecContext(ctx, query,
		post.ID,
		post.Title,
		post.Slug,
		post.Content,
		post.Summary,
		post.FeaturedImage,
		post.AuthorID,
		post.Status,
		post.ViewCount,
		post.IsFeatured,
		post.Tags,
		post.CreatedAt,
		post.UpdatedAt,
		post.PublishedAt,
	)
	if err != nil {
		return s.mapSlugConflict(err)
	}

	return nil
}

// GetByID implements store.BlogPostStore.GetByID
func (s *PostgresBlogPostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.BlogPost, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts WHERE id = $1`
	return s.scanPost(s.db.QueryRowContext(ctx, query, id))
}

// GetBySlug implements store.BlogPostStore.GetBySlug
func (s *PostgresBlogPostStore) GetBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts WHERE slug = $1`
	return s.scanPost(s.db.QueryRowContext(ctx, query, slug))
}

// List implements store.BlogPostStore.List
// Results are ordered by publication time, newest first, with unpublished
// posts falling back to their creation time.
func (s *PostgresBlogPostStore) List(
	ctx context.Context,
	filter store.PostFilter,
	page store.Page,
) ([]domain.BlogPost, int64, error) {
	conds := []string{}
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Tag != "" {
		args = append(args, "%"+filter.Tag+"%")
		conds = append(conds, fmt.Sprintf("tags LIKE $%d", len(args)))
	}
	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		conds = append(conds, fmt.Sprintf("is_featured = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	countQuery := `SELECT count(*) FROM blog_posts` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count blog posts: %w", MapError(err))
	}

	query := fmt.Sprintf(
		`SELECT %s FROM blog_posts%s
		ORDER BY COALESCE(published_at, created_at) DESC LIMIT $%d OFFSET $%d`,
		postColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, page.Size, page.Offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query blog posts: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	posts := []domain.BlogPost{}
	for rows.Next() {
		var post domain.BlogPost
		if err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Slug,
			&post.Content,
			&post.Summary,
			&post.FeaturedImage,
			&post.AuthorID,
			&post.Status,
			&post.ViewCount,
			&post.IsFeatured,
			&post.Tags,
			&post.CreatedAt,
			&post.UpdatedAt,
			&post.PublishedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan blog post row: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating blog post rows: %w", err)
	}

	return posts, total, nil
}

// Update implements store.BlogPostStore.Update
func (s *PostgresBlogPostStore) Update(ctx context.Context, post *domain.BlogPost) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE blog_posts
		SET title = $1, slug = $2, content = $3, summary = $4,
			featured_image = $5, status = $6, is_featured = $7, tags = $8,
			updated_at = $9, published_at = $10
		WHERE id = $11
	`

	result, err := s.db.ExecContext(ctx, query,
		post.Title,
		post.Slug,
		post.Content,
		post.Summary,
		post.FeaturedImage,
		post.Status,
		post.IsFeatured,
		post.Tags,
		post.UpdatedAt,
		post.PublishedAt,
		post.ID,
	)
	if err != nil {
		return s.mapSlugConflict(err)
	}

	return CheckRowsAffected(result, store.ErrPostNotFound)
}

// Delete implements store.BlogPostStore.Delete
func (s *PostgresBlogPostStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrPostNotFound)
}

// IncrementViewCount implements store.BlogPostStore.IncrementViewCount
// The bump happens in a single UPDATE so concurrent reads never lose counts.
func (s *PostgresBlogPostStore) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE blog_posts SET view_count = view_count + 1 WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrPostNotFound)
}

// PublishedTagStrings implements store.BlogPostStore.PublishedTagStrings
func (s *PostgresBlogPostStore) PublishedTagStrings(ctx context.Context) ([]string, error) {
	query := `SELECT tags FROM blog_posts WHERE status = $1 AND tags <> ''`

	rows, err := s.db.QueryContext(ctx, query, domain.PostStatusPublished)
	if err != nil {
		return nil, fmt.Errorf("failed to query post tags: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tagStrings := []string{}
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, fmt.Errorf("failed to scan tags row: %w", err)
		}
		tagStrings = append(tagStrings, tags)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags rows: %w", err)
	}

	return tagStrings, nil
}

// scanPost reads one post row, translating sql.ErrNoRows to ErrPostNotFound.
func (s *PostgresBlogPostStore) scanPost(row *sql.Row) (*domain.BlogPost, error) {
	var post domain.BlogPost
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.Content,
		&post.Summary,
		&post.FeaturedImage,
		&post.AuthorID,
		&post.Status,
		&post.ViewCount,
		&post.IsFeatured,
		&post.Tags,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.PublishedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrPostNotFound
		}
		return nil, MapError(err)
	}
	return &post, nil
}

// mapSlugConflict resolves unique violations on the blog_posts slug to the
// slug-specific duplicate error.
func (s *PostgresBlogPostStore) mapSlugConflict(err error) error {
	if IsUniqueViolation(err) && strings.Contains(ConstraintName(err), "slug") {
		return fmt.Errorf("%w: %v", store.ErrSlugExists, err)
	}
	return MapError(err)
}
