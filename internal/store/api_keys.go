// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

// APIKeyStore handles API key database operations.
type APIKeyStore struct {
	db *sql.DB
}

// NewAPIKeyStore creates a new APIKeyStore.
func NewAPIKeyStore(db *sql.DB) *APIKeyStore {
	return &APIKeyStore{db: db}
}

const apiKeyColumns = `id, name, key_hash, key_prefix, last_used_at, expires_at,
	is_active, created_at, updated_at`

func scanAPIKey(row interface{ Scan(...any) error }) (*model.APIKey, error) {
	k := &model.APIKey{}
	err := row.Scan(&k.ID, &k.Name, &k.KeyHash, &k.KeyPrefix, &k.LastUsedAt,
		&k.ExpiresAt, &k.IsActive, &k.CreatedAt, &k.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return k, nil
}

// Create inserts a new API key record and fills in the generated ID.
func (s *APIKeyStore) Create(ctx context.Context, k *model.APIKey) error {
	now := time.Now().UTC()
	k.CreatedAt = now
	k.UpdatedAt = now
	k.IsActive = true

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO api_keys (name, key_hash, key_prefix, expires_at, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, 1, ?, ?)
	`, k.Name, k.KeyHash, k.KeyPrefix, k.ExpiresAt, k.CreatedAt, k.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create api key: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create api key: %w", err)
	}
	k.ID = id
	return nil
}

// GetByHash retrieves an active API key by the SHA-256 hash of the raw
// key. Returns nil if the hash is unknown or the key was deactivated.
func (s *APIKeyStore) GetByHash(ctx context.Context, keyHash string) (*model.APIKey, error) {
	k, err := scanAPIKey(s.db.QueryRowContext(ctx, `
		SELECT `+apiKeyColumns+`
		FROM api_keys WHERE key_hash = ? AND is_active = 1
	`, keyHash))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get api key by hash: %w", err)
	}
	return k, nil
}

// List returns all API keys, newest first. Hashes stay server-side; the
// model hides them from JSON.
func (s *APIKeyStore) List(ctx context.Context) ([]model.APIKey, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+apiKeyColumns+`
		FROM api_keys
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	defer rows.Close()

	var items []model.APIKey
	for rows.Next() {
		k, err := scanAPIKey(rows)
		if err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		items = append(items, *k)
	}
	return items, rows.Err()
}

// TouchLastUsed records that a key was just used. Best effort: callers
// log failures rather than failing the request.
func (s *APIKeyStore) TouchLastUsed(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE api_keys SET last_used_at = ? WHERE id = ?`, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("touch api key: %w", err)
	}
	return nil
}

// Deactivate disables a key without deleting its audit trail.
func (s *APIKeyStore) Deactivate(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE api_keys SET is_active = 0, updated_at = ? WHERE id = ?
	`, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("deactivate api key: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeactivateExpired disables every active key past its expiry and
// returns how many were affected.
func (s *APIKeyStore) DeactivateExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE api_keys
		SET is_active = 0, updated_at = ?
		WHERE is_active = 1 AND expires_at IS NOT NULL AND expires_at < ?
	`, time.Now().UTC(), time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("deactivate expired api keys: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
