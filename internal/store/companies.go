// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/olegiv/folio-go/internal/model"
)

// CompanyStore handles company database operations.
type CompanyStore struct {
	db *sql.DB
}

// NewCompanyStore creates a new CompanyStore.
func NewCompanyStore(db *sql.DB) *CompanyStore {
	return &CompanyStore{db: db}
}

// List returns all companies ordered by name.
func (s *CompanyStore) List(ctx context.Context) ([]model.Company, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, nombre, descripcion, website
		FROM companies
		ORDER BY nombre
	`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var items []model.Company
	for rows.Next() {
		var c model.Company
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.Website); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// GetByID retrieves a company by ID. Returns nil if not found.
func (s *CompanyStore) GetByID(ctx context.Context, id string) (*model.Company, error) {
	c := &model.Company{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, nombre, descripcion, website
		FROM companies WHERE id = ?
	`, id).Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.Website)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get company by id: %w", err)
	}
	return c, nil
}

// GetOrCreateByName returns the company with the given name, creating it
// when missing. Used by the legacy importer and the write surface, where
// companies arrive by name rather than ID.
func (s *CompanyStore) GetOrCreateByName(ctx context.Context, nombre string) (*model.Company, error) {
	c := &model.Company{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, nombre, descripcion, website
		FROM companies WHERE nombre = ?
	`, nombre).Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.Website)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get company by name: %w", err)
	}

	c = &model.Company{ID: uuid.NewString(), Nombre: nombre}
	if err := s.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a company.
func (s *CompanyStore) Create(ctx context.Context, c *model.Company) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO companies (id, nombre, descripcion, website)
		VALUES (?, ?, ?, ?)
	`, c.ID, c.Nombre, c.Descripcion, c.Website)
	if err != nil {
		return fmt.Errorf("create company: %w", err)
	}
	return nil
}

// Update modifies a company.
func (s *CompanyStore) Update(ctx context.Context, c *model.Company) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE companies SET nombre = ?, descripcion = ?, website = ? WHERE id = ?
	`, c.Nombre, c.Descripcion, c.Website, c.ID)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a company. Companies still referenced by experiences are
// protected.
func (s *CompanyStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM companies WHERE id = ?`, id)
	if IsForeignKeyViolation(err) {
		return ErrProtected
	}
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}
