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

// SkillStore handles skill database operations.
type SkillStore struct {
	db *sql.DB
}

// NewSkillStore creates a new SkillStore.
func NewSkillStore(db *sql.DB) *SkillStore {
	return &SkillStore{db: db}
}

// ListByProfile returns a profile's skills ordered by name.
func (s *SkillStore) ListByProfile(ctx context.Context, profileID string) ([]model.Skill, error) {
	return s.querySkills(ctx, `
		SELECT id, slug, nombre, profile_id, created_at, modified_at
		FROM skills
		WHERE profile_id = ?
		ORDER BY nombre
	`, profileID)
}

func (s *SkillStore) querySkills(ctx context.Context, query string, args ...any) ([]model.Skill, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	var items []model.Skill
	for rows.Next() {
		var sk model.Skill
		if err := rows.Scan(&sk.ID, &sk.Slug, &sk.Nombre, &sk.ProfileID,
			&sk.CreatedAt, &sk.ModifiedAt); err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		items = append(items, sk)
	}
	return items, rows.Err()
}

// GetBySlug retrieves a skill by slug. Returns nil if not found.
func (s *SkillStore) GetBySlug(ctx context.Context, slug string) (*model.Skill, error) {
	sk := &model.Skill{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, slug, nombre, profile_id, created_at, modified_at
		FROM skills WHERE slug = ?
	`, slug).Scan(&sk.ID, &sk.Slug, &sk.Nombre, &sk.ProfileID,
		&sk.CreatedAt, &sk.ModifiedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get skill by slug: %w", err)
	}
	return sk, nil
}

// Create inserts a skill. The slug is derived from the name and made
// unique across all profiles.
func (s *SkillStore) Create(ctx context.Context, sk *model.Skill) error {
	if sk.ID == "" {
		sk.ID = uuid.NewString()
	}
	base := sk.Slug
	if base == "" {
		base = util.GenerateSlug(sk.Nombre)
	}
	now := time.Now().UTC()
	sk.CreatedAt = now
	sk.ModifiedAt = now

	slug, err := insertWithUniqueSlug(ctx, base, s.slugExists, func(slug string) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO skills (id, slug, nombre, profile_id, created_at, modified_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, sk.ID, slug, sk.Nombre, sk.ProfileID, sk.CreatedAt, sk.ModifiedAt)
		return err
	})
	if err != nil {
		return fmt.Errorf("create skill: %w", err)
	}
	sk.Slug = slug
	return nil
}

// Delete removes a skill and its project and experience links.
func (s *SkillStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM skills WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	return nil
}

func (s *SkillStore) slugExists(ctx context.Context, slug string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM skills WHERE slug = ?`, slug).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
