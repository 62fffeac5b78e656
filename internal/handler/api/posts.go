// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/folio-go/internal/markdown"
	"github.com/olegiv/folio-go/internal/middleware"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
)

// PostResponse represents a post in API responses. Content is only
// populated on detail reads, rendered to HTML.
type PostResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Content       string    `json:"content,omitempty"`
	ContentFormat string    `json:"content_format"`
	Keywords      string    `json:"keywords,omitempty"`
	Slug          string    `json:"slug"`
	CategoryID    string    `json:"category_id"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func postToResponse(p *model.Post, withContent bool) PostResponse {
	resp := PostResponse{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		ContentFormat: p.ContentFormat,
		Keywords:      p.Keywords,
		Slug:          p.Slug,
		CategoryID:    p.CategoryID,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if withContent {
		rendered, err := markdown.Render(p.Content, p.ContentFormat)
		if err != nil {
			rendered = p.Content
		}
		resp.Content = rendered
	}
	return resp
}

// CreatePostRequest represents the request body for creating a post.
type CreatePostRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Content       string `json:"content"`
	ContentFormat string `json:"content_format"`
	Keywords      string `json:"keywords"`
	Slug          string `json:"slug"`
	CategoryID    string `json:"category_id"`
	Status        string `json:"status"`
}

// UpdatePostRequest represents the request body for updating a post.
// Omitted fields are left unchanged; the slug is never updated.
type UpdatePostRequest struct {
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	Content       *string `json:"content,omitempty"`
	ContentFormat *string `json:"content_format,omitempty"`
	Keywords      *string `json:"keywords,omitempty"`
	CategoryID    *string `json:"category_id,omitempty"`
	Status        *string `json:"status,omitempty"`
}

// ListPosts handles GET /api/v1/blog/posts.
// Public requests see published posts only; authenticated requests may
// pass ?all=1 to list every status for editing.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := ParsePageParam(r)
	perPage := ParsePerPageParam(r)
	offset := (page - 1) * perPage
	categorySlug := r.URL.Query().Get("category")

	if r.URL.Query().Get("all") == "1" {
		if middleware.GetAPIKey(r) == nil {
			WriteError(w, http.StatusForbidden, "forbidden", "Authentication required to list unpublished posts", nil)
			return
		}
		posts, err := h.store.Posts.List(ctx, perPage, offset)
		if err != nil {
			WriteInternalError(w, "Failed to list posts")
			return
		}
		total, err := h.store.Posts.Count(ctx)
		if err != nil {
			WriteInternalError(w, "Failed to count posts")
			return
		}
		WriteSuccess(w, postsToResponses(posts), &Meta{
			Total: total, Page: page, PerPage: perPage, Pages: totalPages(total, perPage),
		})
		return
	}

	posts, err := h.store.Posts.ListPublished(ctx, categorySlug, perPage, offset)
	if err != nil {
		WriteInternalError(w, "Failed to list posts")
		return
	}
	total, err := h.store.Posts.CountPublished(ctx, categorySlug)
	if err != nil {
		WriteInternalError(w, "Failed to count posts")
		return
	}

	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	h.analytics.TrackImpressions(ctx, ids, r.UserAgent())

	WriteSuccess(w, postsToResponses(posts), &Meta{
		Total: total, Page: page, PerPage: perPage, Pages: totalPages(total, perPage),
	})
}

func postsToResponses(posts []model.Post) []PostResponse {
	responses := make([]PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, postToResponse(&posts[i], false))
	}
	return responses
}

// GetPost handles GET /api/v1/blog/posts/{slug}.
// A successful read counts a click and, per IP, a unique view.
// Authenticated requests may also read unpublished posts; those reads
// are not counted.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	post, err := h.store.Posts.GetPublishedBySlug(ctx, slug)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve post")
		return
	}
	if post == nil {
		if middleware.GetAPIKey(r) != nil {
			draft, err := h.store.Posts.GetBySlug(ctx, slug)
			if err != nil {
				WriteInternalError(w, "Failed to retrieve post")
				return
			}
			if draft != nil {
				WriteSuccess(w, postToResponse(draft, true), nil)
				return
			}
		}
		WriteNotFound(w, "Post not found")
		return
	}

	h.analytics.TrackClick(ctx, post.ID, r.UserAgent())
	h.analytics.TrackUniqueView(ctx, post.ID, middleware.GetClientIP(r), r.UserAgent())

	WriteSuccess(w, postToResponse(post, true), nil)
}

// ListHeadings handles GET /api/v1/blog/posts/{slug}/headings.
func (h *Handler) ListHeadings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	post, ok := h.requirePublishedPost(w, r)
	if !ok {
		return
	}
	headings, err := h.store.Headings.ListByPost(ctx, post.ID)
	if err != nil {
		WriteInternalError(w, "Failed to list headings")
		return
	}
	WriteSuccess(w, headings, nil)
}

// CreatePost handles POST /api/v1/blog/posts.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	fieldErrors := make(map[string]string)
	if req.Title == "" {
		fieldErrors["title"] = "required"
	}
	if req.CategoryID == "" {
		fieldErrors["category_id"] = "required"
	}
	if req.Status != "" && !model.IsValidPostStatus(req.Status) {
		fieldErrors["status"] = "must be one of draft, published, deleted"
	}
	if req.ContentFormat != "" &&
		req.ContentFormat != model.ContentFormatHTML &&
		req.ContentFormat != model.ContentFormatMarkdown {
		fieldErrors["content_format"] = "must be html or markdown"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	category, err := h.store.Categories.GetByID(ctx, req.CategoryID)
	if err != nil {
		WriteInternalError(w, "Failed to verify category")
		return
	}
	if category == nil {
		WriteValidationError(w, map[string]string{"category_id": "unknown category"})
		return
	}

	post := &model.Post{
		Title:         req.Title,
		Description:   req.Description,
		Content:       req.Content,
		ContentFormat: req.ContentFormat,
		Keywords:      req.Keywords,
		Slug:          req.Slug,
		CategoryID:    req.CategoryID,
		Status:        req.Status,
	}
	if post.ContentFormat == "" || post.ContentFormat == model.ContentFormatHTML {
		post.Content = markdown.Sanitize(post.Content)
	}

	if err := h.store.Posts.Create(ctx, post); err != nil {
		WriteInternalError(w, "Failed to create post")
		return
	}
	WriteCreated(w, postToResponse(post, false))
}

// UpdatePost handles PUT /api/v1/blog/posts/{slug}.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	post, ok := h.requirePostBySlug(w, r)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Description != nil {
		post.Description = *req.Description
	}
	if req.ContentFormat != nil {
		if *req.ContentFormat != model.ContentFormatHTML && *req.ContentFormat != model.ContentFormatMarkdown {
			WriteValidationError(w, map[string]string{"content_format": "must be html or markdown"})
			return
		}
		post.ContentFormat = *req.ContentFormat
	}
	if req.Content != nil {
		post.Content = *req.Content
		if post.ContentFormat == model.ContentFormatHTML {
			post.Content = markdown.Sanitize(post.Content)
		}
	}
	if req.Keywords != nil {
		post.Keywords = *req.Keywords
	}
	if req.CategoryID != nil {
		category, err := h.store.Categories.GetByID(ctx, *req.CategoryID)
		if err != nil {
			WriteInternalError(w, "Failed to verify category")
			return
		}
		if category == nil {
			WriteValidationError(w, map[string]string{"category_id": "unknown category"})
			return
		}
		post.CategoryID = *req.CategoryID
	}
	if req.Status != nil {
		if !model.IsValidPostStatus(*req.Status) {
			WriteValidationError(w, map[string]string{"status": "must be one of draft, published, deleted"})
			return
		}
		post.Status = *req.Status
	}

	if err := h.store.Posts.Update(ctx, post); err != nil {
		WriteInternalError(w, "Failed to update post")
		return
	}
	WriteSuccess(w, postToResponse(post, false), nil)
}

// DeletePost handles DELETE /api/v1/blog/posts/{slug}.
// Posts with headings or recorded views cannot be deleted.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	post, ok := h.requirePostBySlug(w, r)
	if !ok {
		return
	}
	if err := h.store.Posts.Delete(ctx, post.ID); err != nil {
		if errors.Is(err, store.ErrProtected) {
			WriteConflict(w, "Post has headings or recorded views and cannot be deleted")
			return
		}
		WriteInternalError(w, "Failed to delete post")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HeadingRequest is one entry of a headings replacement.
type HeadingRequest struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Level int    `json:"level"`
	Ord   int    `json:"order"`
}

// ReplaceHeadings handles POST /api/v1/blog/posts/{slug}/headings,
// replacing the post's heading list atomically.
func (h *Handler) ReplaceHeadings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	post, ok := h.requirePostBySlug(w, r)
	if !ok {
		return
	}

	var reqs []HeadingRequest
	if err := decodeJSON(r, &reqs); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	headings := make([]model.Heading, 0, len(reqs))
	for i, hr := range reqs {
		if hr.Title == "" {
			WriteValidationError(w, map[string]string{"title": "required"})
			return
		}
		if hr.Level < model.HeadingLevelMin || hr.Level > model.HeadingLevelMax {
			WriteValidationError(w, map[string]string{"level": "must be between 1 and 6"})
			return
		}
		ord := hr.Ord
		if ord == 0 {
			ord = i + 1
		}
		headings = append(headings, model.Heading{
			Title: hr.Title,
			Slug:  hr.Slug,
			Level: hr.Level,
			Ord:   ord,
		})
	}

	if err := h.store.Headings.ReplaceForPost(ctx, post.ID, headings); err != nil {
		WriteInternalError(w, "Failed to replace headings")
		return
	}
	stored, err := h.store.Headings.ListByPost(ctx, post.ID)
	if err != nil {
		WriteInternalError(w, "Failed to list headings")
		return
	}
	WriteSuccess(w, stored, nil)
}

// PostStatsResponse is the operator analytics payload for one post.
type PostStatsResponse struct {
	PostID           string    `json:"post_id"`
	Impressions      int64     `json:"impressions"`
	Clicks           int64     `json:"clicks"`
	UniqueViews      int64     `json:"unique_views"`
	ClickThroughRate float64   `json:"click_through_rate"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// GetPostStats handles GET /api/v1/blog/posts/{slug}/stats.
func (h *Handler) GetPostStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	post, ok := h.requirePostBySlug(w, r)
	if !ok {
		return
	}
	stats, err := h.analytics.Stats(ctx, post.ID)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve stats")
		return
	}
	WriteSuccess(w, PostStatsResponse{
		PostID:           post.ID,
		Impressions:      stats.Impressions,
		Clicks:           stats.Clicks,
		UniqueViews:      stats.UniqueViews,
		ClickThroughRate: stats.ClickThroughRatio(),
		UpdatedAt:        stats.UpdatedAt,
	}, nil)
}

// SuggestMeta handles POST /api/v1/blog/posts/{slug}/suggest-meta.
// Returns 503 when no OpenAI key is configured.
func (h *Handler) SuggestMeta(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.ai == nil {
		WriteServiceUnavailable(w, "Metadata suggestions are not configured")
		return
	}
	post, ok := h.requirePostBySlug(w, r)
	if !ok {
		return
	}
	suggestion, err := h.ai.SuggestMeta(ctx, post.Title, post.Content)
	if err != nil {
		WriteError(w, http.StatusBadGateway, "upstream_error", "Suggestion request failed", nil)
		return
	}
	WriteSuccess(w, suggestion, nil)
}

// requirePostBySlug fetches a post of any status for write and operator
// endpoints. Writes the error response itself on failure.
func (h *Handler) requirePostBySlug(w http.ResponseWriter, r *http.Request) (*model.Post, bool) {
	post, err := h.store.Posts.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		WriteInternalError(w, "Failed to retrieve post")
		return nil, false
	}
	if post == nil {
		WriteNotFound(w, "Post not found")
		return nil, false
	}
	return post, true
}

// requirePublishedPost fetches a published post for public
// sub-resources. Authenticated requests may also reach drafts.
func (h *Handler) requirePublishedPost(w http.ResponseWriter, r *http.Request) (*model.Post, bool) {
	slug := chi.URLParam(r, "slug")
	post, err := h.store.Posts.GetPublishedBySlug(r.Context(), slug)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve post")
		return nil, false
	}
	if post == nil && middleware.GetAPIKey(r) != nil {
		post, err = h.store.Posts.GetBySlug(r.Context(), slug)
		if err != nil {
			WriteInternalError(w, "Failed to retrieve post")
			return nil, false
		}
	}
	if post == nil {
		WriteNotFound(w, "Post not found")
		return nil, false
	}
	return post, true
}
