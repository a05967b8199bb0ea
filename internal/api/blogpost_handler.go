package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/emberhq/portfolio-api/internal/api/middleware"
	"github.com/emberhq/portfolio-api/internal/domain"
	"github.com/emberhq/portfolio-api/internal/service"
	"github.com/emberhq/portfolio-api/internal/store"
)

// BlogPostHandler handles blog endpoints. Reads are public but limited to
// published posts unless the caller is an admin; writes are admin only.
type BlogPostHandler struct {
	postStore   store.BlogPostStore
	blogService service.BlogService
	logger      *slog.Logger
}

// NewBlogPostHandler creates a new BlogPostHandler with the given dependencies.
func NewBlogPostHandler(
	postStore store.BlogPostStore,
	blogService service.BlogService,
	logger *slog.Logger,
) *BlogPostHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BlogPostHandler{
		postStore:   postStore,
		blogService: blogService,
		logger:      logger.With(slog.String("component", "blogpost_handler")),
	}
}

// List handles GET /api/blog. The status filter is honored for admins
// only; everyone else sees published posts.
func (h *BlogPostHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := store.PostFilter{
		Status: domain.PostStatusPublished,
		Tag:    q.Get("tag"),
	}
	if middleware.IsAdmin(r) {
		status := q.Get("status")
		if status == "" {
			status = string(domain.PostStatusPublished)
		}
		filter.Status = domain.PostStatus(status)
	}
	if raw := q.Get("featured"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filter.Featured = &v
		}
	}
	page := ParsePage(r)

	posts, total, err := h.postStore.List(r.Context(), filter, page)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	items := make([]PostResponse, 0, len(posts))
	for i := range posts {
		items = append(items, NewPostResponse(&posts[i]))
	}

	RespondWithJSON(w, r, http.StatusOK, PostListResponse{
		Posts:      items,
		Pagination: NewPagination(total, page),
	})
}

// Get handles GET /api/blog/{id}. Reading a post bumps its view counter.
// Unpublished posts are visible to admins only and reported as not found
// to everyone else.
func (h *BlogPostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	post, err := h.blogService.ViewPost(r.Context(), id, middleware.IsAdmin(r))
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			RespondWithError(w, r, http.StatusNotFound, "Blog post not found")
			return
		}
		RespondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"blog_post": NewPostResponse(post),
	})
}

// Create handles POST /api/blog (admin only).
func (h *BlogPostHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}

	var req CreatePostRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	status := domain.PostStatus(req.Status)
	if req.Status == "" {
		status = domain.PostStatusDraft
	}

	post, err := h.blogService.CreatePost(r.Context(), callerID, service.CreatePostInput{
		Title:         req.Title,
		Slug:          req.Slug,
		Content:       req.Content,
		Summary:       req.Summary,
		FeaturedImage: req.FeaturedImage,
		Status:        status,
		Tags:          req.Tags,
		Featured:      req.IsFeatured,
	})
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	h.logger.Info("blog post created",
		slog.String("post_id", post.ID.String()),
		slog.String("slug", post.Slug))

	RespondWithJSON(w, r, http.StatusCreated, map[string]interface{}{
		"message":   "Blog post created successfully",
		"blog_post": NewPostResponse(post),
	})
}

// Update handles PUT /api/blog/{id} (admin only).
func (h *BlogPostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdatePostRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	input := service.UpdatePostInput{
		Title:         req.Title,
		Content:       req.Content,
		Summary:       req.Summary,
		FeaturedImage: req.FeaturedImage,
		Tags:          req.Tags,
		Featured:      req.IsFeatured,
	}
	if req.Status != nil {
		status := domain.PostStatus(*req.Status)
		input.Status = &status
	}

	post, err := h.blogService.UpdatePost(r.Context(), id, input)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			RespondWithError(w, r, http.StatusNotFound, "Blog post not found")
			return
		}
		RespondWithMappedError(w, r, err)
		return
	}

	h.logger.Info("blog post updated", slog.String("post_id", id.String()))

	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"message":   "Blog post updated successfully",
		"blog_post": NewPostResponse(post),
	})
}

// Delete handles DELETE /api/blog/{id} (admin only).
func (h *BlogPostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.postStore.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			RespondWithError(w, r, http.StatusNotFound, "Blog post not found")
			return
		}
		RespondWithMappedError(w, r, err)
		return
	}

	h.logger.Info("blog post deleted", slog.String("post_id", id.String()))

	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "Blog post deleted successfully",
	})
}

// Tags handles GET /api/blog/tags.
func (h *BlogPostHandler) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.blogService.TagCounts(r.Context())
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, TagListResponse{Tags: tags})
}
