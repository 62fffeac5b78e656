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

// CategoryStore handles blog category database operations.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore creates a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, parent_id, name, title, description, slug, created_at, updated_at`

func scanCategory(row interface{ Scan(...any) error }) (*model.Category, error) {
	c := &model.Category{}
	err := row.Scan(&c.ID, &c.ParentID, &c.Name, &c.Title, &c.Description, &c.Slug,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List returns all categories ordered by name.
func (s *CategoryStore) List(ctx context.Context) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// GetByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) GetByID(ctx context.Context, id string) (*model.Category, error) {
	c, err := scanCategory(s.db.QueryRowContext(ctx, `
		SELECT `+categoryColumns+`
		FROM categories WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category by id: %w", err)
	}
	return c, nil
}

// GetBySlug retrieves a category by slug. Returns nil if not found.
func (s *CategoryStore) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	c, err := scanCategory(s.db.QueryRowContext(ctx, `
		SELECT `+categoryColumns+`
		FROM categories WHERE slug = ?
	`, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category by slug: %w", err)
	}
	return c, nil
}

// Create inserts a new category. An empty slug is derived from the name;
// either way the slug is made unique, with a taken slug getting a
// numeric suffix.
func (s *CategoryStore) Create(ctx context.Context, c *model.Category) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	base := c.Slug
	if base == "" {
		base = util.GenerateSlug(c.Name)
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	slug, err := insertWithUniqueSlug(ctx, base, s.slugExists, func(slug string) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO categories (id, parent_id, name, title, description, slug, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, c.ID, c.ParentID, c.Name, c.Title, c.Description, slug, c.CreatedAt, c.UpdatedAt)
		return err
	})
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	c.Slug = slug
	return nil
}

// Update modifies a category. The slug is kept stable once assigned.
func (s *CategoryStore) Update(ctx context.Context, c *model.Category) error {
	c.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE categories
		SET parent_id = ?, name = ?, title = ?, description = ?, updated_at = ?
		WHERE id = ?
	`, c.ParentID, c.Name, c.Title, c.Description, c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a category. Child categories are removed by the schema's
// cascade; a category still referenced by posts is protected.
func (s *CategoryStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if IsForeignKeyViolation(err) {
		return ErrProtected
	}
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *CategoryStore) slugExists(ctx context.Context, slug string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE slug = ?`, slug).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
