// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Project types
const (
	ProjectTypeWeb     = "web"
	ProjectTypeApp     = "app"
	ProjectTypeDesktop = "desktop"
	ProjectTypeOther   = "otro"
)

// ValidProjectTypes returns all valid project types.
func ValidProjectTypes() []string {
	return []string{ProjectTypeWeb, ProjectTypeApp, ProjectTypeDesktop, ProjectTypeOther}
}

// IsValidProjectType checks if a project type is valid.
func IsValidProjectType(tipo string) bool {
	for _, t := range ValidProjectTypes() {
		if t == tipo {
			return true
		}
	}
	return false
}

// SEOMeta holds the optional SEO metadata shared by profiles and projects.
type SEOMeta struct {
	MetaDescription string `json:"meta_description,omitempty"`
	OGTitle         string `json:"og_title,omitempty"`
	OGDescription   string `json:"og_description,omitempty"`
}

// Profile represents the owner of the curriculum: personal data plus
// social links. Field names follow the original public API (Spanish).
type Profile struct {
	ID              string         `json:"id"`
	Slug            string         `json:"slug"`
	Nombre          string         `json:"nombre"`
	Apellido1       string         `json:"apellido_1"`
	Apellido2       string         `json:"apellido_2,omitempty"`
	Email           string         `json:"email"`
	Telefono        string         `json:"telefono,omitempty"`
	FechaNacimiento sql.NullTime   `json:"-"`
	LinkedIn        string         `json:"linkedin,omitempty"`
	GitHub          string         `json:"github,omitempty"`
	WebPersonal     string         `json:"web_personal,omitempty"`
	Direccion       string         `json:"direccion,omitempty"`
	SEOMeta
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// FullName returns the display name used for slug generation.
func (p *Profile) FullName() string {
	return p.Nombre + " " + p.Apellido1
}

// Skill represents a technology or ability attached to a profile.
type Skill struct {
	ID         string    `json:"id"`
	Slug       string    `json:"slug"`
	Nombre     string    `json:"nombre"`
	ProfileID  string    `json:"perfil_id"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Company represents an employer or client referenced by experiences and projects.
type Company struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Website     string `json:"website,omitempty"`
}

// Project represents a portfolio project with associated skills and companies.
type Project struct {
	ID               string `json:"id"`
	Slug             string `json:"slug"`
	Nombre           string `json:"nombre"`
	Title            string `json:"title,omitempty"`
	ProfileID        string `json:"perfil_id"`
	Tipo             string `json:"tipo"`
	URLProyecto      string `json:"url_proyecto,omitempty"`
	URLDemo          string `json:"url_proyecto_demo,omitempty"`
	Introduccion     string `json:"introduccion,omitempty"`
	Descripcion      string `json:"descripcion"`
	TextoEnriquecido string `json:"texto_enriquecido,omitempty"`
	SEOMeta
	Skills     []Skill   `json:"habilidades,omitempty"`
	Companies  []Company `json:"empresas,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Experience represents a work position at a company. A NULL end date means
// the position is current.
type Experience struct {
	ID          string       `json:"id"`
	Slug        string       `json:"slug"`
	ProfileID   string       `json:"perfil_id"`
	CompanyID   string       `json:"-"`
	Puesto      string       `json:"puesto"`
	FechaInicio time.Time    `json:"fecha_inicio"`
	FechaFin    sql.NullTime `json:"-"`
	Descripcion string       `json:"descripcion"`
	Company     *Company     `json:"empresa,omitempty"`
	Skills      []Skill      `json:"habilidades,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	ModifiedAt  time.Time    `json:"modified_at"`
}

// IsCurrent returns true if the experience has no end date or ends in the future.
func (e *Experience) IsCurrent() bool {
	return !e.FechaFin.Valid || e.FechaFin.Time.After(time.Now())
}

// Education represents a degree or formal education entry.
type Education struct {
	ID          string       `json:"id"`
	Slug        string       `json:"slug"`
	ProfileID   string       `json:"perfil_id"`
	Institucion string       `json:"institucion"`
	Titulo      string       `json:"titulo"`
	FechaInicio time.Time    `json:"fecha_inicio"`
	FechaFin    sql.NullTime `json:"-"`
	Descripcion string       `json:"descripcion,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	ModifiedAt  time.Time    `json:"modified_at"`
}

// IsCurrent returns true if the education has no end date or ends in the future.
func (e *Education) IsCurrent() bool {
	return !e.FechaFin.Valid || e.FechaFin.Time.After(time.Now())
}
