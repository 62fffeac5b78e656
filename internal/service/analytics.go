// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"log/slog"

	"github.com/mileusna/useragent"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
)

// AnalyticsService records post engagement counters. All tracking is
// best effort: a counter failure is logged and never surfaces to the
// request that triggered it.
type AnalyticsService struct {
	analytics *store.AnalyticsStore
	log       *slog.Logger
}

// NewAnalyticsService creates an analytics service.
func NewAnalyticsService(analytics *store.AnalyticsStore, log *slog.Logger) *AnalyticsService {
	return &AnalyticsService{analytics: analytics, log: log}
}

// isBot reports whether the user agent belongs to a crawler. Bot
// traffic is excluded from every counter.
func isBot(uaString string) bool {
	return useragent.Parse(uaString).Bot
}

// TrackImpressions bumps the impression counter for every post included
// in a list response.
func (s *AnalyticsService) TrackImpressions(ctx context.Context, postIDs []string, uaString string) {
	if len(postIDs) == 0 || isBot(uaString) {
		return
	}
	if err := s.analytics.IncrementImpressions(ctx, postIDs); err != nil {
		s.log.Warn("impression counter update failed", "posts", len(postIDs), "error", err)
	}
}

// TrackClick bumps the click counter for a post detail read.
func (s *AnalyticsService) TrackClick(ctx context.Context, postID, uaString string) {
	if isBot(uaString) {
		return
	}
	if err := s.analytics.IncrementClicks(ctx, postID); err != nil {
		s.log.Warn("click counter update failed", "post_id", postID, "error", err)
	}
}

// TrackUniqueView records a view from an IP address. Repeat views from
// the same IP do not change the unique counter.
func (s *AnalyticsService) TrackUniqueView(ctx context.Context, postID, ip, uaString string) {
	if ip == "" || isBot(uaString) {
		return
	}
	if err := s.analytics.RecordUniqueView(ctx, postID, ip); err != nil {
		s.log.Warn("unique view tracking failed", "post_id", postID, "error", err)
	}
}

// Stats returns the counters for a single post. Posts that were never
// viewed report zeroes.
func (s *AnalyticsService) Stats(ctx context.Context, postID string) (*model.PostAnalytics, error) {
	return s.analytics.Get(ctx, postID)
}

// TopPosts returns the most clicked posts, limited to n entries.
func (s *AnalyticsService) TopPosts(ctx context.Context, n int) ([]model.PostAnalytics, error) {
	return s.analytics.ListTop(ctx, n)
}
