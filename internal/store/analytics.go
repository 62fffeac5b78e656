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
)

// AnalyticsStore handles post counter and unique-view ledger operations.
// All increments are single-statement upserts so concurrent requests
// never lose counts.
type AnalyticsStore struct {
	db *sql.DB
}

// NewAnalyticsStore creates a new AnalyticsStore.
func NewAnalyticsStore(db *sql.DB) *AnalyticsStore {
	return &AnalyticsStore{db: db}
}

// IncrementImpressions adds one impression to every listed post.
func (s *AnalyticsStore) IncrementImpressions(ctx context.Context, postIDs []string) error {
	if len(postIDs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for _, id := range postIDs {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO post_analytics (post_id, impressions, updated_at)
			VALUES (?, 1, ?)
			ON CONFLICT (post_id) DO UPDATE SET
				impressions = impressions + 1,
				updated_at = excluded.updated_at
		`, id, now)
		if err != nil {
			return fmt.Errorf("increment impressions for %s: %w", id, err)
		}
	}
	return nil
}

// IncrementClicks adds one click to a post's counters.
func (s *AnalyticsStore) IncrementClicks(ctx context.Context, postID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO post_analytics (post_id, clicks, updated_at)
		VALUES (?, 1, ?)
		ON CONFLICT (post_id) DO UPDATE SET
			clicks = clicks + 1,
			updated_at = excluded.updated_at
	`, postID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("increment clicks for %s: %w", postID, err)
	}
	return nil
}

// RecordUniqueView records a detail read in the per-IP ledger and bumps
// the unique-view counter only the first time an IP reads the post.
func (s *AnalyticsStore) RecordUniqueView(ctx context.Context, postID, ipAddress string) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO post_views (id, post_id, ip_address, created_at)
		VALUES (?, ?, ?, ?)
	`, uuid.NewString(), postID, ipAddress, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("record post view for %s: %w", postID, err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("record post view for %s: %w", postID, err)
	}
	if inserted == 0 {
		// Repeat visitor, counter stays put.
		return nil
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO post_analytics (post_id, unique_views, updated_at)
		VALUES (?, 1, ?)
		ON CONFLICT (post_id) DO UPDATE SET
			unique_views = unique_views + 1,
			updated_at = excluded.updated_at
	`, postID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("increment unique views for %s: %w", postID, err)
	}
	return nil
}

// Get returns the counters for one post. A post that was never listed or
// read yields zeroed counters rather than nil.
func (s *AnalyticsStore) Get(ctx context.Context, postID string) (*model.PostAnalytics, error) {
	a := &model.PostAnalytics{PostID: postID}
	err := s.db.QueryRowContext(ctx, `
		SELECT post_id, impressions, clicks, unique_views, updated_at
		FROM post_analytics WHERE post_id = ?
	`, postID).Scan(&a.PostID, &a.Impressions, &a.Clicks, &a.UniqueViews, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return a, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get analytics for %s: %w", postID, err)
	}
	return a, nil
}

// ListTop returns the posts with the most clicks, for the stats endpoint.
func (s *AnalyticsStore) ListTop(ctx context.Context, limit int) ([]model.PostAnalytics, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT post_id, impressions, clicks, unique_views, updated_at
		FROM post_analytics
		ORDER BY clicks DESC, impressions DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list top analytics: %w", err)
	}
	defer rows.Close()

	var items []model.PostAnalytics
	for rows.Next() {
		var a model.PostAnalytics
		if err := rows.Scan(&a.PostID, &a.Impressions, &a.Clicks, &a.UniqueViews,
			&a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan analytics: %w", err)
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
