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

// EducationStore handles education entry database operations.
type EducationStore struct {
	db *sql.DB
}

// NewEducationStore creates a new EducationStore.
func NewEducationStore(db *sql.DB) *EducationStore {
	return &EducationStore{db: db}
}

const educationColumns = `id, slug, profile_id, institucion, titulo,
	fecha_inicio, fecha_fin, descripcion, created_at, modified_at`

// List returns all education entries, most recent start date first.
func (s *EducationStore) List(ctx context.Context) ([]model.Education, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+educationColumns+`
		FROM educations
		ORDER BY fecha_inicio DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list educations: %w", err)
	}
	defer rows.Close()

	var items []model.Education
	for rows.Next() {
		var e model.Education
		if err := rows.Scan(&e.ID, &e.Slug, &e.ProfileID, &e.Institucion, &e.Titulo,
			&e.FechaInicio, &e.FechaFin, &e.Descripcion, &e.CreatedAt, &e.ModifiedAt); err != nil {
			return nil, fmt.Errorf("scan education: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// GetBySlug retrieves an education entry by slug. Returns nil if not found.
func (s *EducationStore) GetBySlug(ctx context.Context, slug string) (*model.Education, error) {
	e := &model.Education{}
	err := s.db.QueryRowContext(ctx, `
		SELECT `+educationColumns+`
		FROM educations WHERE slug = ?
	`, slug).Scan(&e.ID, &e.Slug, &e.ProfileID, &e.Institucion, &e.Titulo,
		&e.FechaInicio, &e.FechaFin, &e.Descripcion, &e.CreatedAt, &e.ModifiedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get education by slug: %w", err)
	}
	return e, nil
}

// Create inserts an education entry. The slug is derived from the degree
// title and the institution.
func (s *EducationStore) Create(ctx context.Context, e *model.Education) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	base := e.Slug
	if base == "" {
		base = util.GenerateSlug(e.Titulo, e.Institucion)
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.ModifiedAt = now

	slug, err := insertWithUniqueSlug(ctx, base, s.slugExists, func(slug string) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO educations (id, slug, profile_id, institucion, titulo,
				fecha_inicio, fecha_fin, descripcion, created_at, modified_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, e.ID, slug, e.ProfileID, e.Institucion, e.Titulo,
			e.FechaInicio, e.FechaFin, e.Descripcion, e.CreatedAt, e.ModifiedAt)
		return err
	})
	if err != nil {
		return fmt.Errorf("create education: %w", err)
	}
	e.Slug = slug
	return nil
}

// Update modifies an education entry.
func (s *EducationStore) Update(ctx context.Context, e *model.Education) error {
	e.ModifiedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE educations
		SET institucion = ?, titulo = ?, fecha_inicio = ?, fecha_fin = ?,
			descripcion = ?, modified_at = ?
		WHERE id = ?
	`, e.Institucion, e.Titulo, e.FechaInicio, e.FechaFin,
		e.Descripcion, e.ModifiedAt, e.ID)
	if err != nil {
		return fmt.Errorf("update education: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an education entry.
func (s *EducationStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM educations WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete education: %w", err)
	}
	return nil
}

func (s *EducationStore) slugExists(ctx context.Context, slug string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM educations WHERE slug = ?`, slug).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
