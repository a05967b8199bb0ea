package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PostStatus represents the publication state of a blog post.
type PostStatus string

// Possible blog post status values.
const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
)

// IsValid reports whether the status is one of the known post statuses.
func (s PostStatus) IsValid() bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return true
	}
	return false
}

// Blog post validation errors.
var (
	ErrEmptyPostID      = errors.New("post ID cannot be empty")
	ErrEmptyPostTitle   = errors.New("post title cannot be empty")
	ErrPostTitleTooLong = errors.New("post title must be at most 200 characters long")
	ErrPostTitleTooShort = errors.New(
		"post title must be at least 3 characters long",
	)
	ErrEmptyPostContent = errors.New("post content cannot be empty")
	ErrEmptyPostSlug    = errors.New("post slug cannot be empty")
	ErrInvalidSlug      = errors.New("slug must contain only lowercase letters, numbers and hyphens")
	ErrEmptyAuthorID    = errors.New("post author ID cannot be empty")
)

var slugFormat = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var (
	slugSpaces     = regexp.MustCompile(`\s+`)
	slugDisallowed = regexp.MustCompile(`[^a-z0-9-]`)
	slugRepeats    = regexp.MustCompile(`-+`)
)

// BlogPost represents a content entry authored by a user. Tags are stored
// as a comma-separated string; use TagList/SetTags for slice access.
type BlogPost struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content"`
	Summary       string     `json:"summary"`
	FeaturedImage string     `json:"featured_image"`
	AuthorID      uuid.UUID  `json:"author_id"`
	Status        PostStatus `json:"status"`
	ViewCount     int        `json:"view_count"`
	IsFeatured    bool       `json:"is_featured"`
	Tags          string     `json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	PublishedAt   *time.Time `json:"published_at"`
}

// NewBlogPost creates a draft BlogPost for the given author. An empty slug is
// derived from the title. Publishing is a separate step (see Publish).
func NewBlogPost(authorID uuid.UUID, title, slug, content string) (*BlogPost, error) {
	if slug == "" {
		slug = Slugify(title)
	}

	now := time.Now().UTC()
	post := &BlogPost{
		ID:        uuid.New(),
		Title:     title,
		Slug:      slug,
		Content:   content,
		AuthorID:  authorID,
		Status:    PostStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	return post, nil
}

// Validate checks if the BlogPost has valid data.
func (p *BlogPost) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPostID
	}

	switch {
	case p.Title == "":
		return ErrEmptyPostTitle
	case len(p.Title) < 3:
		return ErrPostTitleTooShort
	case len(p.Title) > 200:
		return ErrPostTitleTooLong
	}

	if p.Content == "" {
		return ErrEmptyPostContent
	}
	if p.Slug == "" {
		return ErrEmptyPostSlug
	}
	if !slugFormat.MatchString(p.Slug) {
		return ErrInvalidSlug
	}
	if p.AuthorID == uuid.Nil {
		return ErrEmptyAuthorID
	}
	if !p.Status.IsValid() {
		return ErrInvalidPostStatus
	}

	return nil
}

// Publish marks the post published and stamps PublishedAt if it has not
// been published before.
func (p *BlogPost) Publish(now time.Time) {
	p.Status = PostStatusPublished
	if p.PublishedAt == nil {
		published := now.UTC()
		p.PublishedAt = &published
	}
}

// TagList returns the post's tags as a slice, or an empty slice when the
// post has no tags.
func (p *BlogPost) TagList() []string {
	if p.Tags == "" {
		return []string{}
	}

	parts := strings.Split(p.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, tag := range parts {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// SetTags stores the given tags in the comma-separated storage format.
func (p *BlogPost) SetTags(tags []string) {
	p.Tags = strings.Join(tags, ",")
}

// Slugify converts free text to slug format: lowercase, spaces collapsed to
// single hyphens, everything outside [a-z0-9-] dropped.
func Slugify(text string) string {
	slug := strings.ToLower(text)
	slug = slugSpaces.ReplaceAllString(slug, "-")
	slug = slugDisallowed.ReplaceAllString(slug, "")
	slug = slugRepeats.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
