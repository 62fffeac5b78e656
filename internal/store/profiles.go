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

// ProfileStore handles curriculum profile database operations.
type ProfileStore struct {
	db *sql.DB
}

// NewProfileStore creates a new ProfileStore.
func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

const profileColumns = `id, slug, nombre, apellido_1, apellido_2, email, telefono,
	fecha_nacimiento, linkedin, github, web_personal, direccion,
	meta_description, og_title, og_description, created_at, modified_at`

func scanProfile(row interface{ Scan(...any) error }) (*model.Profile, error) {
	p := &model.Profile{}
	err := row.Scan(&p.ID, &p.Slug, &p.Nombre, &p.Apellido1, &p.Apellido2,
		&p.Email, &p.Telefono, &p.FechaNacimiento, &p.LinkedIn, &p.GitHub,
		&p.WebPersonal, &p.Direccion, &p.MetaDescription, &p.OGTitle,
		&p.OGDescription, &p.CreatedAt, &p.ModifiedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns the site owner's profile, the oldest row when several
// exist. Returns nil when no profile has been created yet.
func (s *ProfileStore) Get(ctx context.Context) (*model.Profile, error) {
	p, err := scanProfile(s.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		ORDER BY created_at
		LIMIT 1
	`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// GetBySlug retrieves a profile by slug. Returns nil if not found.
func (s *ProfileStore) GetBySlug(ctx context.Context, slug string) (*model.Profile, error) {
	p, err := scanProfile(s.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles WHERE slug = ?
	`, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile by slug: %w", err)
	}
	return p, nil
}

// Create inserts a new profile. The slug is derived from the full name.
func (s *ProfileStore) Create(ctx context.Context, p *model.Profile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	base := p.Slug
	if base == "" {
		base = util.GenerateSlug(p.Nombre, p.Apellido1)
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.ModifiedAt = now

	slug, err := insertWithUniqueSlug(ctx, base, s.slugExists, func(slug string) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO profiles (id, slug, nombre, apellido_1, apellido_2, email, telefono,
				fecha_nacimiento, linkedin, github, web_personal, direccion,
				meta_description, og_title, og_description, created_at, modified_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, p.ID, slug, p.Nombre, p.Apellido1, p.Apellido2, p.Email, p.Telefono,
			p.FechaNacimiento, p.LinkedIn, p.GitHub, p.WebPersonal, p.Direccion,
			p.MetaDescription, p.OGTitle, p.OGDescription, p.CreatedAt, p.ModifiedAt)
		return err
	})
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	p.Slug = slug
	return nil
}

// Update modifies a profile. The slug stays stable.
func (s *ProfileStore) Update(ctx context.Context, p *model.Profile) error {
	p.ModifiedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE profiles
		SET nombre = ?, apellido_1 = ?, apellido_2 = ?, email = ?, telefono = ?,
			fecha_nacimiento = ?, linkedin = ?, github = ?, web_personal = ?,
			direccion = ?, meta_description = ?, og_title = ?, og_description = ?,
			modified_at = ?
		WHERE id = ?
	`, p.Nombre, p.Apellido1, p.Apellido2, p.Email, p.Telefono,
		p.FechaNacimiento, p.LinkedIn, p.GitHub, p.WebPersonal,
		p.Direccion, p.MetaDescription, p.OGTitle, p.OGDescription,
		p.ModifiedAt, p.ID)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *ProfileStore) slugExists(ctx context.Context, slug string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM profiles WHERE slug = ?`, slug).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
