// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/folio-go/internal/middleware"
)

// Routes builds the /api/v1 route tree: public reads with per-IP rate
// limiting, write and operator endpoints behind Bearer API key auth
// with per-key rate limiting.
func (h *Handler) Routes(db *sql.DB) chi.Router {
	r := chi.NewRouter()

	globalLimiter := middleware.NewGlobalRateLimiter(10, 20)
	r.Use(globalLimiter.Middleware())

	r.Get("/status", h.Status)

	// Blog - public read endpoints (optional auth for draft access)
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAPIKeyAuth(db))
		r.Get("/blog/posts", h.ListPosts)
		r.Get("/blog/posts/{slug}", h.GetPost)
		r.Get("/blog/posts/{slug}/headings", h.ListHeadings)
	})
	r.Get("/blog/categories", h.ListCategories)
	r.Get("/blog/categories/{slug}", h.GetCategory)

	// Curriculum - public read endpoints
	r.Get("/curriculum/perfil/{slug}", h.GetProfile)
	r.Get("/curriculum/proyectos", h.ListProjects)
	r.Get("/curriculum/proyectos/{slug}", h.GetProject)
	r.Get("/curriculum/habilidades", h.ListSkills)
	r.Get("/curriculum/experiencias", h.ListExperiences)
	r.Get("/curriculum/educaciones", h.ListEducations)

	// Contact intake
	r.Post("/contact", h.SubmitContact)

	// Protected endpoints (API key required)
	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(db))
		r.Use(middleware.APIRateLimit(10, 20))

		r.Post("/blog/posts", h.CreatePost)
		r.Put("/blog/posts/{slug}", h.UpdatePost)
		r.Delete("/blog/posts/{slug}", h.DeletePost)
		r.Post("/blog/posts/{slug}/headings", h.ReplaceHeadings)
		r.Get("/blog/posts/{slug}/stats", h.GetPostStats)
		r.Post("/blog/posts/{slug}/suggest-meta", h.SuggestMeta)

		r.Post("/blog/categories", h.CreateCategory)
		r.Put("/blog/categories/{slug}", h.UpdateCategory)
		r.Delete("/blog/categories/{slug}", h.DeleteCategory)

		r.Post("/curriculum/perfil", h.CreateProfile)
		r.Put("/curriculum/perfil/{slug}", h.UpdateProfile)
		r.Post("/curriculum/proyectos", h.CreateProject)
		r.Put("/curriculum/proyectos/{slug}", h.UpdateProject)
		r.Delete("/curriculum/proyectos/{slug}", h.DeleteProject)
		r.Post("/curriculum/habilidades", h.CreateSkill)
		r.Delete("/curriculum/habilidades/{slug}", h.DeleteSkill)
		r.Post("/curriculum/experiencias", h.CreateExperience)
		r.Put("/curriculum/experiencias/{slug}", h.UpdateExperience)
		r.Delete("/curriculum/experiencias/{slug}", h.DeleteExperience)
		r.Post("/curriculum/educaciones", h.CreateEducation)
		r.Put("/curriculum/educaciones/{slug}", h.UpdateEducation)
		r.Delete("/curriculum/educaciones/{slug}", h.DeleteEducation)
		r.Get("/curriculum/empresas", h.ListCompanies)
		r.Post("/curriculum/empresas", h.CreateCompany)
		r.Delete("/curriculum/empresas/{id}", h.DeleteCompany)

		r.Get("/contact/messages", h.ListContactMessages)
		r.Post("/contact/messages/{id}/read", h.MarkContactMessageRead)

		r.Get("/events", h.ListEvents)
	})

	return r
}
