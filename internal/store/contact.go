// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/folio-go/internal/model"
)

// ContactStore handles contact message database operations.
type ContactStore struct {
	db *sql.DB
}

// NewContactStore creates a new ContactStore.
func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

// Create persists a contact message.
func (s *ContactStore) Create(ctx context.Context, m *model.ContactMessage) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.CreadoEn = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_messages (id, nombre, email, asunto, mensaje, telefono,
			ip_remitente, user_agent, country_code, leido, creado_en)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.Nombre, m.Email, m.Asunto, m.Mensaje, m.Telefono,
		m.IPRemitente, m.UserAgent, m.CountryCode, m.Leido, m.CreadoEn)
	if err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}
	return nil
}

// List returns contact messages, newest first. When unreadOnly is set,
// read messages are filtered out.
func (s *ContactStore) List(ctx context.Context, unreadOnly bool, limit, offset int) ([]model.ContactMessage, error) {
	query := `
		SELECT id, nombre, email, asunto, mensaje, telefono,
			ip_remitente, user_agent, country_code, leido, creado_en
		FROM contact_messages
	`
	if unreadOnly {
		query += ` WHERE leido = 0`
	}
	query += ` ORDER BY creado_en DESC LIMIT ? OFFSET ?`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var items []model.ContactMessage
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.ID, &m.Nombre, &m.Email, &m.Asunto, &m.Mensaje,
			&m.Telefono, &m.IPRemitente, &m.UserAgent, &m.CountryCode,
			&m.Leido, &m.CreadoEn); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// CountUnread returns the number of unread messages.
func (s *ContactStore) CountUnread(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contact_messages WHERE leido = 0`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unread messages: %w", err)
	}
	return n, nil
}

// MarkRead flags a message as read.
func (s *ContactStore) MarkRead(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE contact_messages SET leido = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark message read: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
