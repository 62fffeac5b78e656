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
	"github.com/olegiv/folio-go/internal/util"
)

// HeadingStore handles post section heading database operations.
type HeadingStore struct {
	db *sql.DB
}

// NewHeadingStore creates a new HeadingStore.
func NewHeadingStore(db *sql.DB) *HeadingStore {
	return &HeadingStore{db: db}
}

// ListByPost returns the headings of a post in document order.
func (s *HeadingStore) ListByPost(ctx context.Context, postID string) ([]model.Heading, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, post_id, title, slug, level, ord, created_at
		FROM headings
		WHERE post_id = ?
		ORDER BY ord, created_at
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list headings: %w", err)
	}
	defer rows.Close()

	var items []model.Heading
	for rows.Next() {
		var h model.Heading
		if err := rows.Scan(&h.ID, &h.PostID, &h.Title, &h.Slug, &h.Level,
			&h.Ord, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan heading: %w", err)
		}
		items = append(items, h)
	}
	return items, rows.Err()
}

// Create inserts a heading. The slug is derived from the title and made
// unique within the post.
func (s *HeadingStore) Create(ctx context.Context, h *model.Heading) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.Level < model.HeadingLevelMin || h.Level > model.HeadingLevelMax {
		return fmt.Errorf("heading level %d out of range", h.Level)
	}
	base := h.Slug
	if base == "" {
		base = util.GenerateSlug(h.Title)
	}
	h.CreatedAt = time.Now().UTC()

	exists := func(ctx context.Context, slug string) (bool, error) {
		return s.slugExists(ctx, h.PostID, slug)
	}
	slug, err := insertWithUniqueSlug(ctx, base, exists, func(slug string) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO headings (id, post_id, title, slug, level, ord, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, h.ID, h.PostID, h.Title, slug, h.Level, h.Ord, h.CreatedAt)
		return err
	})
	if err != nil {
		return fmt.Errorf("create heading: %w", err)
	}
	h.Slug = slug
	return nil
}

// ReplaceForPost swaps the full heading set of a post in one transaction.
// Used by the write surface when a post body is re-edited.
func (s *HeadingStore) ReplaceForPost(ctx context.Context, postID string, headings []model.Heading) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace headings: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM headings WHERE post_id = ?`, postID); err != nil {
		return fmt.Errorf("clear headings: %w", err)
	}

	now := time.Now().UTC()
	seen := make(map[string]int)
	for i := range headings {
		h := &headings[i]
		h.ID = uuid.NewString()
		h.PostID = postID
		h.CreatedAt = now
		if h.Slug == "" {
			h.Slug = util.GenerateSlug(h.Title)
		}
		// Duplicate titles within one post get a numeric suffix.
		if n := seen[h.Slug]; n > 0 {
			seen[h.Slug] = n + 1
			h.Slug = fmt.Sprintf("%s-%d", h.Slug, n)
		} else {
			seen[h.Slug] = 1
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO headings (id, post_id, title, slug, level, ord, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, h.ID, h.PostID, h.Title, h.Slug, h.Level, h.Ord, h.CreatedAt); err != nil {
			return fmt.Errorf("insert heading: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace headings: %w", err)
	}
	return nil
}

// Delete removes a heading by ID.
func (s *HeadingStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM headings WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete heading: %w", err)
	}
	return nil
}

func (s *HeadingStore) slugExists(ctx context.Context, postID, slug string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM headings WHERE post_id = ? AND slug = ?`, postID, slug).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
