// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
)

// CategoryResponse represents a category in API responses. Children is
// populated only on the tree listing.
type CategoryResponse struct {
	ID          string             `json:"id"`
	ParentID    string             `json:"parent_id,omitempty"`
	Name        string             `json:"name"`
	Title       string             `json:"title,omitempty"`
	Description string             `json:"description,omitempty"`
	Slug        string             `json:"slug"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Children    []CategoryResponse `json:"children,omitempty"`
}

func categoryToResponse(c *model.Category) CategoryResponse {
	resp := CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Title:       c.Title,
		Description: c.Description,
		Slug:        c.Slug,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.ParentID.Valid {
		resp.ParentID = c.ParentID.String
	}
	return resp
}

// CategoryRequest represents the request body for creating or updating
// a category.
type CategoryRequest struct {
	ParentID    string `json:"parent_id"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
}

// ListCategories handles GET /api/v1/blog/categories.
// With ?tree=1 the flat list is nested by parent.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.Categories.List(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list categories")
		return
	}

	if r.URL.Query().Get("tree") == "1" {
		WriteSuccess(w, buildCategoryTree(categories), nil)
		return
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, categoryToResponse(&categories[i]))
	}
	WriteSuccess(w, responses, nil)
}

// buildCategoryTree nests categories under their parents. Categories
// whose parent is missing from the list are treated as roots.
func buildCategoryTree(categories []model.Category) []CategoryResponse {
	byParent := make(map[string][]*model.Category)
	ids := make(map[string]bool, len(categories))
	for i := range categories {
		ids[categories[i].ID] = true
	}
	for i := range categories {
		parent := ""
		if categories[i].ParentID.Valid && ids[categories[i].ParentID.String] {
			parent = categories[i].ParentID.String
		}
		byParent[parent] = append(byParent[parent], &categories[i])
	}

	var build func(parentID string) []CategoryResponse
	build = func(parentID string) []CategoryResponse {
		children := byParent[parentID]
		if len(children) == 0 {
			return nil
		}
		nodes := make([]CategoryResponse, 0, len(children))
		for _, c := range children {
			node := categoryToResponse(c)
			node.Children = build(c.ID)
			nodes = append(nodes, node)
		}
		return nodes
	}
	return build("")
}

// GetCategory handles GET /api/v1/blog/categories/{slug}, returning the
// category together with its published posts.
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	category, err := h.store.Categories.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		WriteInternalError(w, "Failed to retrieve category")
		return
	}
	if category == nil {
		WriteNotFound(w, "Category not found")
		return
	}

	page := ParsePageParam(r)
	perPage := ParsePerPageParam(r)
	posts, err := h.store.Posts.ListPublished(ctx, category.Slug, perPage, (page-1)*perPage)
	if err != nil {
		WriteInternalError(w, "Failed to list category posts")
		return
	}
	total, err := h.store.Posts.CountPublished(ctx, category.Slug)
	if err != nil {
		WriteInternalError(w, "Failed to count category posts")
		return
	}

	type categoryDetail struct {
		CategoryResponse
		Posts []PostResponse `json:"posts"`
	}
	WriteSuccess(w, categoryDetail{
		CategoryResponse: categoryToResponse(category),
		Posts:            postsToResponses(posts),
	}, &Meta{Total: total, Page: page, PerPage: perPage, Pages: totalPages(total, perPage)})
}

// CreateCategory handles POST /api/v1/blog/categories.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if req.Name == "" {
		WriteValidationError(w, map[string]string{"name": "required"})
		return
	}

	category := &model.Category{
		Name:        req.Name,
		Title:       req.Title,
		Description: req.Description,
		Slug:        req.Slug,
	}
	if req.ParentID != "" {
		parent, err := h.store.Categories.GetByID(ctx, req.ParentID)
		if err != nil {
			WriteInternalError(w, "Failed to verify parent category")
			return
		}
		if parent == nil {
			WriteValidationError(w, map[string]string{"parent_id": "unknown category"})
			return
		}
		category.ParentID = sql.NullString{String: req.ParentID, Valid: true}
	}

	if err := h.store.Categories.Create(ctx, category); err != nil {
		if store.IsUniqueViolation(err) {
			WriteValidationError(w, map[string]string{"name": "already exists"})
			return
		}
		WriteInternalError(w, "Failed to create category")
		return
	}
	WriteCreated(w, categoryToResponse(category))
}

// UpdateCategory handles PUT /api/v1/blog/categories/{slug}.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	category, err := h.store.Categories.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		WriteInternalError(w, "Failed to retrieve category")
		return
	}
	if category == nil {
		WriteNotFound(w, "Category not found")
		return
	}

	var req CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Title != "" {
		category.Title = req.Title
	}
	if req.Description != "" {
		category.Description = req.Description
	}
	if req.ParentID != "" {
		if req.ParentID == category.ID {
			WriteValidationError(w, map[string]string{"parent_id": "category cannot be its own parent"})
			return
		}
		parent, err := h.store.Categories.GetByID(ctx, req.ParentID)
		if err != nil {
			WriteInternalError(w, "Failed to verify parent category")
			return
		}
		if parent == nil {
			WriteValidationError(w, map[string]string{"parent_id": "unknown category"})
			return
		}
		category.ParentID = sql.NullString{String: req.ParentID, Valid: true}
	}

	if err := h.store.Categories.Update(ctx, category); err != nil {
		if store.IsUniqueViolation(err) {
			WriteValidationError(w, map[string]string{"name": "already exists"})
			return
		}
		WriteInternalError(w, "Failed to update category")
		return
	}
	WriteSuccess(w, categoryToResponse(category), nil)
}

// DeleteCategory handles DELETE /api/v1/blog/categories/{slug}.
// Deleting a category with posts is rejected; child categories are
// removed by cascade.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	category, err := h.store.Categories.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		WriteInternalError(w, "Failed to retrieve category")
		return
	}
	if category == nil {
		WriteNotFound(w, "Category not found")
		return
	}

	if err := h.store.Categories.Delete(ctx, category.ID); err != nil {
		if errors.Is(err, store.ErrProtected) {
			WriteConflict(w, "Category still has posts and cannot be deleted")
			return
		}
		WriteInternalError(w, "Failed to delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
