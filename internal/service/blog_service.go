package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/emberhq/portfolio-api/internal/domain"
	"github.com/emberhq/portfolio-api/internal/platform/logger"
	"github.com/emberhq/portfolio-api/internal/store"
)

// CreatePostInput carries a new blog post request into the service.
type CreatePostInput struct {
	Title         string
	Slug          string
	Content       string
	Summary       string
	FeaturedImage string
	Status        domain.PostStatus
	Tags          []string
	Featured      bool
}

// UpdatePostInput carries a partial blog post update. Nil fields are left
// unchanged.
type UpdatePostInput struct {
	Title         *string
	Content       *string
	Summary       *string
	FeaturedImage *string
	Status        *domain.PostStatus
	Tags          []string
	Featured      *bool
}

// TagCount pairs a tag with the number of published posts carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// BlogService provides blog post operations with the slug and publication
// rules that sit above plain storage.
type BlogService interface {
	// CreatePost creates a post for the given author. An empty slug is
	// derived from the title; a slug already in use gets a timestamp
	// suffix. Creating with published status stamps the publication time.
	CreatePost(ctx context.Context, authorID uuid.UUID, input CreatePostInput) (*domain.BlogPost, error)

	// UpdatePost applies a partial update. A title change re-derives the
	// slug under the same collision rule, and a move to published status
	// stamps the publication time if the post was never published.
	UpdatePost(ctx context.Context, postID uuid.UUID, input UpdatePostInput) (*domain.BlogPost, error)

	// ViewPost fetches a post for reading and bumps its view counter.
	// Unless includeUnpublished is set, posts that are not published are
	// reported as not found.
	ViewPost(ctx context.Context, postID uuid.UUID, includeUnpublished bool) (*domain.BlogPost, error)

	// TagCounts aggregates the tags of published posts, most used first.
	TagCounts(ctx context.Context) ([]TagCount, error)
}

// blogServiceImpl implements the BlogService interface
type blogServiceImpl struct {
	posts    store.BlogPostStore
	logger   *slog.Logger
	timeFunc func() time.Time
}

// NewBlogService creates a new BlogService.
func NewBlogService(posts store.BlogPostStore, log *slog.Logger) (BlogService, error) {
	if posts == nil {
		return nil, fmt.Errorf("posts store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &blogServiceImpl{
		posts:    posts,
		logger:   log.With(slog.String("component", "blog_service")),
		timeFunc: time.Now,
	}, nil
}

// CreatePost implements BlogService.CreatePost
func (s *blogServiceImpl) CreatePost(
	ctx context.Context,
	authorID uuid.UUID,
	input CreatePostInput,
) (*domain.BlogPost, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	slug, err := s.availableSlug(ctx, input.Slug, input.Title, uuid.Nil)
	if err != nil {
		return nil, err
	}

	post, err := domain.NewBlogPost(authorID, input.Title, slug, input.Content)
	if err != nil {
		return nil, err
	}

	post.Summary = input.Summary
	post.FeaturedImage = input.FeaturedImage
	post.IsFeatured = input.Featured
	post.SetTags(input.Tags)

	if input.Status != "" {
		if !input.Status.IsValid() {
			return nil, domain.ErrInvalidPostStatus
		}
		post.Status = input.Status
	}
	if post.Status == domain.PostStatusPublished {
		post.Publish(s.timeFunc())
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	log.Info("blog post created",
		slog.String("post_id", post.ID.String()),
		slog.String("slug", post.Slug),
		slog.String("status", string(post.Status)))

	return post, nil
}

// UpdatePost implements BlogService.UpdatePost
func (s *blogServiceImpl) UpdatePost(
	ctx context.Context,
	postID uuid.UUID,
	input UpdatePostInput,
) (*domain.BlogPost, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil && *input.Title != post.Title {
		post.Title = *input.Title
		slug, err := s.availableSlug(ctx, "", post.Title, post.ID)
		if err != nil {
			return nil, err
		}
		post.Slug = slug
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Summary != nil {
		post.Summary = *input.Summary
	}
	if input.FeaturedImage != nil {
		post.FeaturedImage = *input.FeaturedImage
	}
	if input.Featured != nil {
		post.IsFeatured = *input.Featured
	}
	if input.Tags != nil {
		post.SetTags(input.Tags)
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, domain.ErrInvalidPostStatus
		}
		if *input.Status == domain.PostStatusPublished {
			post.Publish(s.timeFunc())
		} else {
			post.Status = *input.Status
		}
	}

	post.UpdatedAt = s.timeFunc().UTC()

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	log.Info("blog post updated",
		slog.String("post_id", post.ID.String()),
		slog.String("slug", post.Slug))

	return post, nil
}

// ViewPost implements BlogService.ViewPost
func (s *blogServiceImpl) ViewPost(
	ctx context.Context,
	postID uuid.UUID,
	includeUnpublished bool,
) (*domain.BlogPost, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.Status != domain.PostStatusPublished && !includeUnpublished {
		return nil, store.ErrPostNotFound
	}

	if err := s.posts.IncrementViewCount(ctx, postID); err != nil {
		// The read itself succeeded; a lost view count bump is not worth
		// failing the request over.
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to increment view count",
			slog.String("post_id", postID.String()),
			slog.String("error", err.Error()))
	} else {
		post.ViewCount++
	}

	return post, nil
}

// TagCounts implements BlogService.TagCounts
func (s *blogServiceImpl) TagCounts(ctx context.Context) ([]TagCount, error) {
	tagStrings, err := s.posts.PublishedTagStrings(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, raw := range tagStrings {
		post := domain.BlogPost{Tags: raw}
		for _, tag := range post.TagList() {
			counts[tag]++
		}
	}

	result := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		result = append(result, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Tag < result[j].Tag
	})

	return result, nil
}

// availableSlug resolves the slug to store for a post: the explicit slug if
// given, otherwise one derived from the title. A slug already used by a
// different post gets a timestamp suffix, matching how duplicate titles are
// disambiguated.
func (s *blogServiceImpl) availableSlug(
	ctx context.Context,
	explicit, title string,
	excludeID uuid.UUID,
) (string, error) {
	slug := explicit
	if slug == "" {
		slug = domain.Slugify(title)
	}

	existing, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return slug, nil
		}
		return "", err
	}

	if existing.ID == excludeID {
		return slug, nil
	}

	return fmt.Sprintf("%s-%d", slug, s.timeFunc().UTC().Unix()), nil
}
