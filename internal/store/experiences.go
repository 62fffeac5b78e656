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

// ExperienceStore handles work experience database operations.
type ExperienceStore struct {
	db *sql.DB
}

// NewExperienceStore creates a new ExperienceStore.
func NewExperienceStore(db *sql.DB) *ExperienceStore {
	return &ExperienceStore{db: db}
}

// List returns all experiences, most recent start date first, with the
// company and skills attached.
func (s *ExperienceStore) List(ctx context.Context) ([]model.Experience, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.slug, e.profile_id, e.company_id, e.puesto,
			e.fecha_inicio, e.fecha_fin, e.descripcion, e.created_at, e.modified_at,
			c.id, c.nombre, c.descripcion, c.website
		FROM experiences e
		LEFT JOIN companies c ON c.id = e.company_id
		ORDER BY e.fecha_inicio DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list experiences: %w", err)
	}
	defer rows.Close()

	var items []model.Experience
	for rows.Next() {
		e, err := scanExperienceWithCompany(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		skills, err := s.loadSkills(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Skills = skills
	}
	return items, nil
}

// GetBySlug retrieves an experience by slug with relations attached.
// Returns nil if not found.
func (s *ExperienceStore) GetBySlug(ctx context.Context, slug string) (*model.Experience, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT e.id, e.slug, e.profile_id, e.company_id, e.puesto,
			e.fecha_inicio, e.fecha_fin, e.descripcion, e.created_at, e.modified_at,
			c.id, c.nombre, c.descripcion, c.website
		FROM experiences e
		LEFT JOIN companies c ON c.id = e.company_id
		WHERE e.slug = ?
	`, slug)
	e, err := scanExperienceWithCompany(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	skills, err := s.loadSkills(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	e.Skills = skills
	return e, nil
}

func scanExperienceWithCompany(row interface{ Scan(...any) error }) (*model.Experience, error) {
	e := &model.Experience{}
	var companyID sql.NullString
	var cID, cNombre, cDescripcion, cWebsite sql.NullString
	err := row.Scan(&e.ID, &e.Slug, &e.ProfileID, &companyID, &e.Puesto,
		&e.FechaInicio, &e.FechaFin, &e.Descripcion, &e.CreatedAt, &e.ModifiedAt,
		&cID, &cNombre, &cDescripcion, &cWebsite)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan experience: %w", err)
	}
	e.CompanyID = companyID.String
	if cID.Valid {
		e.Company = &model.Company{
			ID:          cID.String,
			Nombre:      cNombre.String,
			Descripcion: cDescripcion.String,
			Website:     cWebsite.String,
		}
	}
	return e, nil
}

// Create inserts an experience and its skill links. The slug is derived
// from the position title.
func (s *ExperienceStore) Create(ctx context.Context, e *model.Experience) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	base := e.Slug
	if base == "" {
		base = util.GenerateSlug(e.Puesto)
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.ModifiedAt = now

	var companyID sql.NullString
	if e.CompanyID != "" {
		companyID = sql.NullString{String: e.CompanyID, Valid: true}
	}

	slug, err := insertWithUniqueSlug(ctx, base, s.slugExists, func(slug string) error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		_, err = tx.ExecContext(ctx, `
			INSERT INTO experiences (id, slug, profile_id, company_id, puesto,
				fecha_inicio, fecha_fin, descripcion, created_at, modified_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, e.ID, slug, e.ProfileID, companyID, e.Puesto,
			e.FechaInicio, e.FechaFin, e.Descripcion, e.CreatedAt, e.ModifiedAt)
		if err != nil {
			return err
		}

		if err := linkRows(ctx, tx, `INSERT INTO experience_skills (experience_id, skill_id) VALUES (?, ?)`,
			e.ID, skillIDs(e.Skills)); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create experience: %w", err)
	}
	e.Slug = slug
	return nil
}

// Update modifies an experience and replaces its skill links.
func (s *ExperienceStore) Update(ctx context.Context, e *model.Experience) error {
	e.ModifiedAt = time.Now().UTC()

	var companyID sql.NullString
	if e.CompanyID != "" {
		companyID = sql.NullString{String: e.CompanyID, Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update experience: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE experiences
		SET company_id = ?, puesto = ?, fecha_inicio = ?, fecha_fin = ?,
			descripcion = ?, modified_at = ?
		WHERE id = ?
	`, companyID, e.Puesto, e.FechaInicio, e.FechaFin,
		e.Descripcion, e.ModifiedAt, e.ID)
	if err != nil {
		return fmt.Errorf("update experience: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM experience_skills WHERE experience_id = ?`, e.ID); err != nil {
		return fmt.Errorf("clear experience skills: %w", err)
	}
	if err := linkRows(ctx, tx, `INSERT INTO experience_skills (experience_id, skill_id) VALUES (?, ?)`,
		e.ID, skillIDs(e.Skills)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update experience: %w", err)
	}
	return nil
}

// Delete removes an experience. Skill links go with it through the cascade.
func (s *ExperienceStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM experiences WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete experience: %w", err)
	}
	return nil
}

func (s *ExperienceStore) loadSkills(ctx context.Context, experienceID string) ([]model.Skill, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sk.id, sk.slug, sk.nombre, sk.profile_id, sk.created_at, sk.modified_at
		FROM skills sk
		JOIN experience_skills es ON es.skill_id = sk.id
		WHERE es.experience_id = ?
		ORDER BY sk.nombre
	`, experienceID)
	if err != nil {
		return nil, fmt.Errorf("load experience skills: %w", err)
	}
	defer rows.Close()

	var items []model.Skill
	for rows.Next() {
		var sk model.Skill
		if err := rows.Scan(&sk.ID, &sk.Slug, &sk.Nombre, &sk.ProfileID,
			&sk.CreatedAt, &sk.ModifiedAt); err != nil {
			return nil, fmt.Errorf("scan experience skill: %w", err)
		}
		items = append(items, sk)
	}
	return items, rows.Err()
}

func (s *ExperienceStore) slugExists(ctx context.Context, slug string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM experiences WHERE slug = ?`, slug).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
