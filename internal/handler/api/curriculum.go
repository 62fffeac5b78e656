// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/folio-go/internal/markdown"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
)

const dateLayout = "2006-01-02"

// parseDate parses a required YYYY-MM-DD value.
func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

// parseNullDate parses an optional YYYY-MM-DD value; empty means NULL.
func parseNullDate(value string) (sql.NullTime, error) {
	if value == "" {
		return sql.NullTime{}, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return sql.NullTime{}, err
	}
	return sql.NullTime{Time: t, Valid: true}, nil
}

func formatNullDate(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format(dateLayout)
}

// ExperienceResponse augments the model with the formatted end date and
// a current-position flag.
type ExperienceResponse struct {
	*model.Experience
	FechaFin string `json:"fecha_fin,omitempty"`
	Actual   bool   `json:"actual"`
}

func experienceToResponse(e *model.Experience) ExperienceResponse {
	return ExperienceResponse{
		Experience: e,
		FechaFin:   formatNullDate(e.FechaFin),
		Actual:     e.IsCurrent(),
	}
}

// EducationResponse augments the model with the formatted end date and
// an in-progress flag.
type EducationResponse struct {
	*model.Education
	FechaFin string `json:"fecha_fin,omitempty"`
	Actual   bool   `json:"actual"`
}

func educationToResponse(e *model.Education) EducationResponse {
	return EducationResponse{
		Education: e,
		FechaFin:  formatNullDate(e.FechaFin),
		Actual:    e.IsCurrent(),
	}
}

// requireProfile loads the site profile for endpoints that attach
// entities to it. Writes the error response itself on failure.
func (h *Handler) requireProfile(w http.ResponseWriter, r *http.Request) (*model.Profile, bool) {
	profile, err := h.store.Profiles.Get(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to retrieve profile")
		return nil, false
	}
	if profile == nil {
		WriteError(w, http.StatusConflict, "no_profile", "No profile exists yet", nil)
		return nil, false
	}
	return profile, true
}

// resolveSkills maps skill slugs to stored skills, rejecting unknowns.
func (h *Handler) resolveSkills(r *http.Request, slugs []string) ([]model.Skill, error) {
	skills := make([]model.Skill, 0, len(slugs))
	for _, slug := range slugs {
		skill, err := h.store.Skills.GetBySlug(r.Context(), slug)
		if err != nil {
			return nil, err
		}
		if skill == nil {
			return nil, fmt.Errorf("unknown skill %q", slug)
		}
		skills = append(skills, *skill)
	}
	return skills, nil
}

// resolveCompanies maps company names to stored companies, creating
// unseen ones on the fly.
func (h *Handler) resolveCompanies(r *http.Request, names []string) ([]model.Company, error) {
	companies := make([]model.Company, 0, len(names))
	for _, name := range names {
		company, err := h.store.Companies.GetOrCreateByName(r.Context(), name)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *company)
	}
	return companies, nil
}

// ProfileRequest represents the request body for creating or updating
// the profile.
type ProfileRequest struct {
	Nombre          string `json:"nombre"`
	Apellido1       string `json:"apellido_1"`
	Apellido2       string `json:"apellido_2"`
	Email           string `json:"email"`
	Telefono        string `json:"telefono"`
	FechaNacimiento string `json:"fecha_nacimiento"`
	LinkedIn        string `json:"linkedin"`
	GitHub          string `json:"github"`
	WebPersonal     string `json:"web_personal"`
	Direccion       string `json:"direccion"`
	MetaDescription string `json:"meta_description"`
	OGTitle         string `json:"og_title"`
	OGDescription   string `json:"og_description"`
}

// GetProfile handles GET /api/v1/curriculum/perfil/{slug}.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.store.Profiles.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		WriteInternalError(w, "Failed to retrieve profile")
		return
	}
	if profile == nil {
		WriteNotFound(w, "Profile not found")
		return
	}
	WriteSuccess(w, profile, nil)
}

// CreateProfile handles POST /api/v1/curriculum/perfil.
func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	fieldErrors := make(map[string]string)
	if req.Nombre == "" {
		fieldErrors["nombre"] = "required"
	}
	if req.Apellido1 == "" {
		fieldErrors["apellido_1"] = "required"
	}
	if req.Email == "" {
		fieldErrors["email"] = "required"
	}
	nacimiento, err := parseNullDate(req.FechaNacimiento)
	if err != nil {
		fieldErrors["fecha_nacimiento"] = "must be YYYY-MM-DD"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	profile := &model.Profile{
		Nombre:          req.Nombre,
		Apellido1:       req.Apellido1,
		Apellido2:       req.Apellido2,
		Email:           req.Email,
		Telefono:        req.Telefono,
		FechaNacimiento: nacimiento,
		LinkedIn:        req.LinkedIn,
		GitHub:          req.GitHub,
		WebPersonal:     req.WebPersonal,
		Direccion:       req.Direccion,
		SEOMeta: model.SEOMeta{
			MetaDescription: req.MetaDescription,
			OGTitle:         req.OGTitle,
			OGDescription:   req.OGDescription,
		},
	}
	if err := h.store.Profiles.Create(ctx, profile); err != nil {
		if store.IsUniqueViolation(err) {
			WriteValidationError(w, map[string]string{"email": "already exists"})
			return
		}
		WriteInternalError(w, "Failed to create profile")
		return
	}
	WriteCreated(w, profile)
}

// UpdateProfile handles PUT /api/v1/curriculum/perfil/{slug}.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profile, err := h.store.Profiles.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		WriteInternalError(w, "Failed to retrieve profile")
		return
	}
	if profile == nil {
		WriteNotFound(w, "Profile not found")
		return
	}

	var req ProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if req.Nombre != "" {
		profile.Nombre = req.Nombre
	}
	if req.Apellido1 != "" {
		profile.Apellido1 = req.Apellido1
	}
	if req.Apellido2 != "" {
		profile.Apellido2 = req.Apellido2
	}
	if req.Email != "" {
		profile.Email = req.Email
	}
	if req.Telefono != "" {
		profile.Telefono = req.Telefono
	}
	if req.FechaNacimiento != "" {
		nacimiento, err := parseNullDate(req.FechaNacimiento)
		if err != nil {
			WriteValidationError(w, map[string]string{"fecha_nacimiento": "must be YYYY-MM-DD"})
			return
		}
		profile.FechaNacimiento = nacimiento
	}
	if req.LinkedIn != "" {
		profile.LinkedIn = req.LinkedIn
	}
	if req.GitHub != "" {
		profile.GitHub = req.GitHub
	}
	if req.WebPersonal != "" {
		profile.WebPersonal = req.WebPersonal
	}
	if req.Direccion != "" {
		profile.Direccion = req.Direccion
	}
	if req.MetaDescription != "" {
		profile.MetaDescription = req.MetaDescription
	}
	if req.OGTitle != "" {
		profile.OGTitle = req.OGTitle
	}
	if req.OGDescription != "" {
		profile.OGDescription = req.OGDescription
	}

	if err := h.store.Profiles.Update(ctx, profile); err != nil {
		if store.IsUniqueViolation(err) {
			WriteValidationError(w, map[string]string{"email": "already exists"})
			return
		}
		WriteInternalError(w, "Failed to update profile")
		return
	}
	WriteSuccess(w, profile, nil)
}

// ProjectRequest represents the request body for creating or updating a
// project. Skills are referenced by slug, companies by name.
type ProjectRequest struct {
	Nombre           string   `json:"nombre"`
	Title            string   `json:"title"`
	Tipo             string   `json:"tipo"`
	URLProyecto      string   `json:"url_proyecto"`
	URLDemo          string   `json:"url_proyecto_demo"`
	Introduccion     string   `json:"introduccion"`
	Descripcion      string   `json:"descripcion"`
	TextoEnriquecido string   `json:"texto_enriquecido"`
	MetaDescription  string   `json:"meta_description"`
	OGTitle          string   `json:"og_title"`
	OGDescription    string   `json:"og_description"`
	Habilidades      []string `json:"habilidades"`
	Empresas         []string `json:"empresas"`
}

// ListProjects handles GET /api/v1/curriculum/proyectos.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.Projects.List(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list projects")
		return
	}
	WriteSuccess(w, projects, nil)
}

// GetProject handles GET /api/v1/curriculum/proyectos/{slug}.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.store.Projects.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		WriteInternalError(w, "Failed to retrieve project")
		return
	}
	if project == nil {
		WriteNotFound(w, "Project not found")
		return
	}
	WriteSuccess(w, project, nil)
}

// CreateProject handles POST /api/v1/curriculum/proyectos.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profile, ok := h.requireProfile(w, r)
	if !ok {
		return
	}

	var req ProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if req.Nombre == "" {
		WriteValidationError(w, map[string]string{"nombre": "required"})
		return
	}
	if req.Tipo != "" && !model.IsValidProjectType(req.Tipo) {
		WriteValidationError(w, map[string]string{"tipo": "must be one of web, app, desktop, otro"})
		return
	}

	skills, err := h.resolveSkills(r, req.Habilidades)
	if err != nil {
		WriteValidationError(w, map[string]string{"habilidades": err.Error()})
		return
	}
	companies, err := h.resolveCompanies(r, req.Empresas)
	if err != nil {
		WriteInternalError(w, "Failed to resolve companies")
		return
	}

	project := &model.Project{
		Nombre:           req.Nombre,
		Title:            req.Title,
		ProfileID:        profile.ID,
		Tipo:             req.Tipo,
		URLProyecto:      req.URLProyecto,
		URLDemo:          req.URLDemo,
		Introduccion:     req.Introduccion,
		Descripcion:      req.Descripcion,
		TextoEnriquecido: markdown.Sanitize(req.TextoEnriquecido),
		SEOMeta: model.SEOMeta{
			MetaDescription: req.MetaDescription,
			OGTitle:         req.OGTitle,
			OGDescription:   req.OGDescription,
		},
		Skills:    skills,
		Companies: companies,
	}
	if err := h.store.Projects.Create(ctx, project); err != nil {
		WriteInternalError(w, "Failed to create project")
		return
	}
	WriteCreated(w, project)
}

// UpdateProject handles PUT /api/v1/curriculum/proyectos/{slug}.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	project, err := h.store.Projects.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		WriteInternalError(w, "Failed to retrieve project")
		return
	}
	if project == nil {
		WriteNotFound(w, "Project not found")
		return
	}

	var req ProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if req.Nombre != "" {
		project.Nombre = req.Nombre
	}
	if req.Title != "" {
		project.Title = req.Title
	}
	if req.Tipo != "" {
		if !model.IsValidProjectType(req.Tipo) {
			WriteValidationError(w, map[string]string{"tipo": "must be one of web, app, desktop, otro"})
			return
		}
		project.Tipo = req.Tipo
	}
	if req.URLProyecto != "" {
		project.URLProyecto = req.URLProyecto
	}
	if req.URLDemo != "" {
		project.URLDemo = req.URLDemo
	}
	if req.Introduccion != "" {
		project.Introduccion = req.Introduccion
	}
	if req.Descripcion != "" {
		project.Descripcion = req.Descripcion
	}
	if req.TextoEnriquecido != "" {
		project.TextoEnriquecido = markdown.Sanitize(req.TextoEnriquecido)
	}
	if req.MetaDescription != "" {
		project.MetaDescription = req.MetaDescription
	}
	if req.OGTitle != "" {
		project.OGTitle = req.OGTitle
	}
	if req.OGDescription != "" {
		project.OGDescription = req.OGDescription
	}
	if req.Habilidades != nil {
		skills, err := h.resolveSkills(r, req.Habilidades)
		if err != nil {
			WriteValidationError(w, map[string]string{"habilidades": err.Error()})
			return
		}
		project.Skills = skills
	}
	if req.Empresas != nil {
		companies, err := h.resolveCompanies(r, req.Empresas)
		if err != nil {
			WriteInternalError(w, "Failed to resolve companies")
			return
		}
		project.Companies = companies
	}

	if err := h.store.Projects.Update(ctx, project); err != nil {
		WriteInternalError(w, "Failed to update project")
		return
	}
	WriteSuccess(w, project, nil)
}

// DeleteProject handles DELETE /api/v1/curriculum/proyectos/{slug}.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	project, err := h.store.Projects.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		WriteInternalError(w, "Failed to retrieve project")
		return
	}
	if project == nil {
		WriteNotFound(w, "Project not found")
		return
	}
	if err := h.store.Projects.Delete(ctx, project.ID); err != nil {
		WriteInternalError(w, "Failed to delete project")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SkillRequest represents the request body for creating a skill.
type SkillRequest struct {
	Nombre string `json:"nombre"`
}

// ListSkills handles GET /api/v1/curriculum/habilidades.
func (h *Handler) ListSkills(w http.ResponseWriter, r *http.Request) {
	profile, err := h.store.Profiles.Get(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to retrieve profile")
		return
	}
	if profile == nil {
		WriteSuccess(w, []model.Skill{}, nil)
		return
	}
	skills, err := h.store.Skills.ListByProfile(r.Context(), profile.ID)
	if err != nil {
		WriteInternalError(w, "Failed to list skills")
		return
	}
	WriteSuccess(w, skills, nil)
}

// CreateSkill handles POST /api/v1/curriculum/habilidades.
func (h *Handler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.requireProfile(w, r)
	if !ok {
		return
	}

	var req SkillRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if req.Nombre == "" {
		WriteValidationError(w, map[string]string{"nombre": "required"})
		return
	}

	skill := &model.Skill{Nombre: req.Nombre, ProfileID: profile.ID}
	if err := h.store.Skills.Create(r.Context(), skill); err != nil {
		if store.IsUniqueViolation(err) {
			WriteValidationError(w, map[string]string{"nombre": "already exists"})
			return
		}
		WriteInternalError(w, "Failed to create skill")
		return
	}
	WriteCreated(w, skill)
}

// DeleteSkill handles DELETE /api/v1/curriculum/habilidades/{slug}.
func (h *Handler) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	skill, err := h.store.Skills.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		WriteInternalError(w, "Failed to retrieve skill")
		return
	}
	if skill == nil {
		WriteNotFound(w, "Skill not found")
		return
	}
	if err := h.store.Skills.Delete(ctx, skill.ID); err != nil {
		WriteInternalError(w, "Failed to delete skill")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExperienceRequest represents the request body for creating or
// updating an experience. The company is referenced by name and created
// when unseen; skills are referenced by slug.
type ExperienceRequest struct {
	Puesto      string   `json:"puesto"`
	Empresa     string   `json:"empresa"`
	FechaInicio string   `json:"fecha_inicio"`
	FechaFin    string   `json:"fecha_fin"`
	Descripcion string   `json:"descripcion"`
	Habilidades []string `json:"habilidades"`
}

// ListExperiences handles GET /api/v1/curriculum/experiencias.
func (h *Handler) ListExperiences(w http.ResponseWriter, r *http.Request) {
	experiences, err := h.store.Experiences.List(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list experiences")
		return
	}
	responses := make([]ExperienceResponse, 0, len(experiences))
	for i := range experiences {
		responses = append(responses, experienceToResponse(&experiences[i]))
	}
	WriteSuccess(w, responses, nil)
}

// CreateExperience handles POST /api/v1/curriculum/experiencias.
func (h *Handler) CreateExperience(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profile, ok := h.requireProfile(w, r)
	if !ok {
		return
	}

	var req ExperienceRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	fieldErrors := make(map[string]string)
	if req.Puesto == "" {
		fieldErrors["puesto"] = "required"
	}
	inicio, err := parseDate(req.FechaInicio)
	if err != nil {
		fieldErrors["fecha_inicio"] = "must be YYYY-MM-DD"
	}
	fin, err := parseNullDate(req.FechaFin)
	if err != nil {
		fieldErrors["fecha_fin"] = "must be YYYY-MM-DD"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	skills, err := h.resolveSkills(r, req.Habilidades)
	if err != nil {
		WriteValidationError(w, map[string]string{"habilidades": err.Error()})
		return
	}

	experience := &model.Experience{
		ProfileID:   profile.ID,
		Puesto:      req.Puesto,
		FechaInicio: inicio,
		FechaFin:    fin,
		Descripcion: req.Descripcion,
		Skills:      skills,
	}
	if req.Empresa != "" {
		company, err := h.store.Companies.GetOrCreateByName(ctx, req.Empresa)
		if err != nil {
			WriteInternalError(w, "Failed to resolve company")
			return
		}
		experience.CompanyID = company.ID
		experience.Company = company
	}

	if err := h.store.Experiences.Create(ctx, experience); err != nil {
		WriteInternalError(w, "Failed to create experience")
		return
	}
	WriteCreated(w, experienceToResponse(experience))
}

// UpdateExperience handles PUT /api/v1/curriculum/experiencias/{slug}.
func (h *Handler) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	experience, err := h.store.Experiences.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		WriteInternalError(w, "Failed to retrieve experience")
		return
	}
	if experience == nil {
		WriteNotFound(w, "Experience not found")
		return
	}

	var req ExperienceRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if req.Puesto != "" {
		experience.Puesto = req.Puesto
	}
	if req.FechaInicio != "" {
		inicio, err := parseDate(req.FechaInicio)
		if err != nil {
			WriteValidationError(w, map[string]string{"fecha_inicio": "must be YYYY-MM-DD"})
			return
		}
		experience.FechaInicio = inicio
	}
	if req.FechaFin != "" {
		fin, err := parseNullDate(req.FechaFin)
		if err != nil {
			WriteValidationError(w, map[string]string{"fecha_fin": "must be YYYY-MM-DD"})
			return
		}
		experience.FechaFin = fin
	}
	if req.Descripcion != "" {
		experience.Descripcion = req.Descripcion
	}
	if req.Empresa != "" {
		company, err := h.store.Companies.GetOrCreateByName(ctx, req.Empresa)
		if err != nil {
			WriteInternalError(w, "Failed to resolve company")
			return
		}
		experience.CompanyID = company.ID
		experience.Company = company
	}
	if req.Habilidades != nil {
		skills, err := h.resolveSkills(r, req.Habilidades)
		if err != nil {
			WriteValidationError(w, map[string]string{"habilidades": err.Error()})
			return
		}
		experience.Skills = skills
	}

	if err := h.store.Experiences.Update(ctx, experience); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Experience not found")
			return
		}
		WriteInternalError(w, "Failed to update experience")
		return
	}
	WriteSuccess(w, experienceToResponse(experience), nil)
}

// DeleteExperience handles DELETE /api/v1/curriculum/experiencias/{slug}.
func (h *Handler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	experience, err := h.store.Experiences.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		WriteInternalError(w, "Failed to retrieve experience")
		return
	}
	if experience == nil {
		WriteNotFound(w, "Experience not found")
		return
	}
	if err := h.store.Experiences.Delete(ctx, experience.ID); err != nil {
		WriteInternalError(w, "Failed to delete experience")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EducationRequest represents the request body for creating or updating
// an education entry.
type EducationRequest struct {
	Institucion string `json:"institucion"`
	Titulo      string `json:"titulo"`
	FechaInicio string `json:"fecha_inicio"`
	FechaFin    string `json:"fecha_fin"`
	Descripcion string `json:"descripcion"`
}

// ListEducations handles GET /api/v1/curriculum/educaciones.
func (h *Handler) ListEducations(w http.ResponseWriter, r *http.Request) {
	educations, err := h.store.Educations.List(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list educations")
		return
	}
	responses := make([]EducationResponse, 0, len(educations))
	for i := range educations {
		responses = append(responses, educationToResponse(&educations[i]))
	}
	WriteSuccess(w, responses, nil)
}

// CreateEducation handles POST /api/v1/curriculum/educaciones.
func (h *Handler) CreateEducation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profile, ok := h.requireProfile(w, r)
	if !ok {
		return
	}

	var req EducationRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	fieldErrors := make(map[string]string)
	if req.Institucion == "" {
		fieldErrors["institucion"] = "required"
	}
	if req.Titulo == "" {
		fieldErrors["titulo"] = "required"
	}
	inicio, err := parseDate(req.FechaInicio)
	if err != nil {
		fieldErrors["fecha_inicio"] = "must be YYYY-MM-DD"
	}
	fin, err := parseNullDate(req.FechaFin)
	if err != nil {
		fieldErrors["fecha_fin"] = "must be YYYY-MM-DD"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	education := &model.Education{
		ProfileID:   profile.ID,
		Institucion: req.Institucion,
		Titulo:      req.Titulo,
		FechaInicio: inicio,
		FechaFin:    fin,
		Descripcion: req.Descripcion,
	}
	if err := h.store.Educations.Create(ctx, education); err != nil {
		WriteInternalError(w, "Failed to create education")
		return
	}
	WriteCreated(w, educationToResponse(education))
}

// UpdateEducation handles PUT /api/v1/curriculum/educaciones/{slug}.
func (h *Handler) UpdateEducation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	education, err := h.store.Educations.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		WriteInternalError(w, "Failed to retrieve education")
		return
	}
	if education == nil {
		WriteNotFound(w, "Education not found")
		return
	}

	var req EducationRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if req.Institucion != "" {
		education.Institucion = req.Institucion
	}
	if req.Titulo != "" {
		education.Titulo = req.Titulo
	}
	if req.FechaInicio != "" {
		inicio, err := parseDate(req.FechaInicio)
		if err != nil {
			WriteValidationError(w, map[string]string{"fecha_inicio": "must be YYYY-MM-DD"})
			return
		}
		education.FechaInicio = inicio
	}
	if req.FechaFin != "" {
		fin, err := parseNullDate(req.FechaFin)
		if err != nil {
			WriteValidationError(w, map[string]string{"fecha_fin": "must be YYYY-MM-DD"})
			return
		}
		education.FechaFin = fin
	}
	if req.Descripcion != "" {
		education.Descripcion = req.Descripcion
	}

	if err := h.store.Educations.Update(ctx, education); err != nil {
		WriteInternalError(w, "Failed to update education")
		return
	}
	WriteSuccess(w, educationToResponse(education), nil)
}

// DeleteEducation handles DELETE /api/v1/curriculum/educaciones/{slug}.
func (h *Handler) DeleteEducation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	education, err := h.store.Educations.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		WriteInternalError(w, "Failed to retrieve education")
		return
	}
	if education == nil {
		WriteNotFound(w, "Education not found")
		return
	}
	if err := h.store.Educations.Delete(ctx, education.ID); err != nil {
		WriteInternalError(w, "Failed to delete education")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CompanyRequest represents the request body for creating or updating a
// company.
type CompanyRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Website     string `json:"website"`
}

// ListCompanies handles GET /api/v1/curriculum/empresas.
func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.store.Companies.List(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list companies")
		return
	}
	WriteSuccess(w, companies, nil)
}

// CreateCompany handles POST /api/v1/curriculum/empresas.
func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req CompanyRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if req.Nombre == "" {
		WriteValidationError(w, map[string]string{"nombre": "required"})
		return
	}

	company := &model.Company{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Website:     req.Website,
	}
	if err := h.store.Companies.Create(r.Context(), company); err != nil {
		if store.IsUniqueViolation(err) {
			WriteValidationError(w, map[string]string{"nombre": "already exists"})
			return
		}
		WriteInternalError(w, "Failed to create company")
		return
	}
	WriteCreated(w, company)
}

// DeleteCompany handles DELETE /api/v1/curriculum/empresas/{id}.
// Companies referenced by experiences cannot be deleted.
func (h *Handler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	company, err := h.store.Companies.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		WriteInternalError(w, "Failed to retrieve company")
		return
	}
	if company == nil {
		WriteNotFound(w, "Company not found")
		return
	}
	if err := h.store.Companies.Delete(ctx, company.ID); err != nil {
		if errors.Is(err, store.ErrProtected) {
			WriteConflict(w, "Company is referenced by experiences and cannot be deleted")
			return
		}
		WriteInternalError(w, "Failed to delete company")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
