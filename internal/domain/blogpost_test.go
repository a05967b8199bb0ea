package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Spaces   everywhere  ", "spaces-everywhere"},
		{"Special!@# Characters", "special-characters"},
		{"Already-Hyphenated--Title", "already-hyphenated-title"},
		{"MixedCASE 123", "mixedcase-123"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewBlogPostDerivesSlug(t *testing.T) {
	post, err := NewBlogPost(uuid.New(), "My First Post", "", "some content")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if post.Slug != "my-first-post" {
		t.Errorf("Expected derived slug, got %q", post.Slug)
	}
	if post.Status != PostStatusDraft {
		t.Errorf("Expected draft status, got %s", post.Status)
	}
	if post.PublishedAt != nil {
		t.Error("Expected no published_at on draft")
	}
}

func TestNewBlogPostValidation(t *testing.T) {
	authorID := uuid.New()

	tests := []struct {
		name    string
		title   string
		slug    string
		content string
		wantErr error
	}{
		{"empty title", "", "", "content", ErrEmptyPostTitle},
		{"short title", "ab", "", "content", ErrPostTitleTooShort},
		{"empty content", "A valid title", "", "", ErrEmptyPostContent},
		{"bad slug", "A valid title", "Bad Slug!", "content", ErrInvalidSlug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBlogPost(authorID, tt.title, tt.slug, tt.content)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestPublishStampsOnce(t *testing.T) {
	post, err := NewBlogPost(uuid.New(), "Publishing test", "", "content")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	first := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	post.Publish(first)
	if post.PublishedAt == nil || !post.PublishedAt.Equal(first) {
		t.Fatalf("Expected published_at %v, got %v", first, post.PublishedAt)
	}

	// Re-publishing keeps the original timestamp.
	post.Publish(first.Add(time.Hour))
	if !post.PublishedAt.Equal(first) {
		t.Errorf("Expected published_at to stay %v, got %v", first, post.PublishedAt)
	}
}

func TestTagListRoundTrip(t *testing.T) {
	post := BlogPost{}
	if got := post.TagList(); len(got) != 0 {
		t.Errorf("Expected empty tag list, got %v", got)
	}

	post.SetTags([]string{"go", "testing", "api"})
	if post.Tags != "go,testing,api" {
		t.Errorf("Unexpected storage format: %q", post.Tags)
	}

	tags := post.TagList()
	if len(tags) != 3 || tags[0] != "go" || tags[2] != "api" {
		t.Errorf("Unexpected tag list: %v", tags)
	}

	// Stray whitespace and empty segments are dropped on read.
	post.Tags = " go , ,api"
	tags = post.TagList()
	if len(tags) != 2 || tags[0] != "go" || tags[1] != "api" {
		t.Errorf("Unexpected tag list: %v", tags)
	}
}
