// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/util"
)

// ProjectStore handles portfolio project database operations, including
// the skill and company link tables.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new ProjectStore.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

const projectColumns = `id, slug, nombre, title, profile_id, tipo, url_proyecto,
	url_demo, introduccion, descripcion, texto_enriquecido,
	meta_description, og_title, og_description, created_at, modified_at`

func scanProject(row interface{ Scan(...any) error }) (*model.Project, error) {
	p := &model.Project{}
	err := row.Scan(&p.ID, &p.Slug, &p.Nombre, &p.Title, &p.ProfileID, &p.Tipo,
		&p.URLProyecto, &p.URLDemo, &p.Introduccion, &p.Descripcion,
		&p.TextoEnriquecido, &p.MetaDescription, &p.OGTitle, &p.OGDescription,
		&p.CreatedAt, &p.ModifiedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns all projects ordered by title descending, with skills
// and companies attached.
func (s *ProjectStore) List(ctx context.Context) ([]model.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		ORDER BY title DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var items []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		if err := s.loadRelations(ctx, &items[i]); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// GetBySlug retrieves a project by slug with relations attached. Returns
// nil if not found.
func (s *ProjectStore) GetBySlug(ctx context.Context, slug string) (*model.Project, error) {
	p, err := scanProject(s.db.QueryRowContext(ctx, `
		SELECT `+projectColumns+`
		FROM projects WHERE slug = ?
	`, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project by slug: %w", err)
	}
	if err := s.loadRelations(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID retrieves a project by ID with relations attached. Returns nil
// if not found.
func (s *ProjectStore) GetByID(ctx context.Context, id string) (*model.Project, error) {
	p, err := scanProject(s.db.QueryRowContext(ctx, `
		SELECT `+projectColumns+`
		FROM projects WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project by id: %w", err)
	}
	if err := s.loadRelations(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a project and its skill and company links. An empty slug
// is derived from the name.
func (s *ProjectStore) Create(ctx context.Context, p *model.Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Tipo == "" {
		p.Tipo = model.ProjectTypeWeb
	}
	if !model.IsValidProjectType(p.Tipo) {
		return fmt.Errorf("invalid project type %q", p.Tipo)
	}
	base := p.Slug
	if base == "" {
		base = util.GenerateSlug(p.Nombre)
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.ModifiedAt = now

	slug, err := insertWithUniqueSlug(ctx, base, s.slugExists, func(slug string) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		_, err = tx.ExecContext(ctx, `
			INSERT INTO projects (id, slug, nombre, title, profile_id, tipo, url_proyecto,
				url_demo, introduccion, descripcion, texto_enriquecido,
				meta_description, og_title, og_description, created_at, modified_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, p.ID, slug, p.Nombre, p.Title, p.ProfileID, p.Tipo, p.URLProyecto,
			p.URLDemo, p.Introduccion, p.Descripcion, p.TextoEnriquecido,
			p.MetaDescription, p.OGTitle, p.OGDescription, p.CreatedAt, p.ModifiedAt)
		if err != nil {
			return err
		}

		if err := linkRows(ctx, tx, `INSERT INTO project_skills (project_id, skill_id) VALUES (?, ?)`,
			p.ID, skillIDs(p.Skills)); err != nil {
			return err
		}
		if err := linkRows(ctx, tx, `INSERT INTO project_companies (project_id, company_id) VALUES (?, ?)`,
			p.ID, companyIDs(p.Companies)); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	p.Slug = slug
	return nil
}

// Update modifies a project and replaces its skill and company links.
func (s *ProjectStore) Update(ctx context.Context, p *model.Project) error {
	if !model.IsValidProjectType(p.Tipo) {
		return fmt.Errorf("invalid project type %q", p.Tipo)
	}
	p.ModifiedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update project: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE projects
		SET nombre = ?, title = ?, tipo = ?, url_proyecto = ?, url_demo = ?,
			introduccion = ?, descripcion = ?, texto_enriquecido = ?,
			meta_description = ?, og_title = ?, og_description = ?, modified_at = ?
		WHERE id = ?
	`, p.Nombre, p.Title, p.Tipo, p.URLProyecto, p.URLDemo,
		p.Introduccion, p.Descripcion, p.TextoEnriquecido,
		p.MetaDescription, p.OGTitle, p.OGDescription, p.ModifiedAt, p.ID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM project_skills WHERE project_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clear project skills: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM project_companies WHERE project_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clear project companies: %w", err)
	}
	if err := linkRows(ctx, tx, `INSERT INTO project_skills (project_id, skill_id) VALUES (?, ?)`,
		p.ID, skillIDs(p.Skills)); err != nil {
		return err
	}
	if err := linkRows(ctx, tx, `INSERT INTO project_companies (project_id, company_id) VALUES (?, ?)`,
		p.ID, companyIDs(p.Companies)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update project: %w", err)
	}
	return nil
}

// Delete removes a project. Link rows go with it through the cascade.
func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

func (s *ProjectStore) loadRelations(ctx context.Context, p *model.Project) error {
	skills, err := s.loadSkills(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Skills = skills

	companies, err := s.loadCompanies(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Companies = companies
	return nil
}

func (s *ProjectStore) loadSkills(ctx context.Context, projectID string) ([]model.Skill, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sk.id, sk.slug, sk.nombre, sk.profile_id, sk.created_at, sk.modified_at
		FROM skills sk
		JOIN project_skills ps ON ps.skill_id = sk.id
		WHERE ps.project_id = ?
		ORDER BY sk.nombre
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("load project skills: %w", err)
	}
	defer rows.Close()

	var items []model.Skill
	for rows.Next() {
		var sk model.Skill
		if err := rows.Scan(&sk.ID, &sk.Slug, &sk.Nombre, &sk.ProfileID,
			&sk.CreatedAt, &sk.ModifiedAt); err != nil {
			return nil, fmt.Errorf("scan project skill: %w", err)
		}
		items = append(items, sk)
	}
	return items, rows.Err()
}

func (s *ProjectStore) loadCompanies(ctx context.Context, projectID string) ([]model.Company, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.nombre, c.descripcion, c.website
		FROM companies c
		JOIN project_companies pc ON pc.company_id = c.id
		WHERE pc.project_id = ?
		ORDER BY c.nombre
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("load project companies: %w", err)
	}
	defer rows.Close()

	var items []model.Company
	for rows.Next() {
		var c model.Company
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.Website); err != nil {
			return nil, fmt.Errorf("scan project company: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (s *ProjectStore) slugExists(ctx context.Context, slug string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects WHERE slug = ?`, slug).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func linkRows(ctx context.Context, tx *sql.Tx, query, ownerID string, ids []string) error {
	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, query, ownerID, id); err != nil {
			return fmt.Errorf("link row: %w", err)
		}
	}
	return nil
}

func skillIDs(skills []model.Skill) []string {
	ids := make([]string, 0, len(skills))
	for _, sk := range skills {
		ids = append(ids, sk.ID)
	}
	return ids
}

func companyIDs(companies []model.Company) []string {
	ids := make([]string, 0, len(companies))
	for _, c := range companies {
		ids = append(ids, c.ID)
	}
	return ids
}
