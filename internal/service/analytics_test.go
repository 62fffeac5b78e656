// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/service"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/testutil"
)

const (
	browserUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	crawlerUA = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"
)

func seedPost(t *testing.T, st *store.Store) *model.Post {
	t.Helper()
	ctx := context.Background()

	cat := &model.Category{ID: uuid.NewString(), Name: "General " + uuid.NewString()[:8]}
	if err := st.Categories.Create(ctx, cat); err != nil {
		t.Fatalf("creating category: %v", err)
	}
	post := &model.Post{
		Title:      "Tracking test " + uuid.NewString()[:8],
		Content:    "body",
		CategoryID: cat.ID,
		Status:     model.PostStatusPublished,
	}
	if err := st.Posts.Create(ctx, post); err != nil {
		t.Fatalf("creating post: %v", err)
	}
	return post
}

func TestAnalyticsTracking(t *testing.T) {
	st, cleanup := testutil.TestStore(t)
	defer cleanup()
	svc := service.NewAnalyticsService(st.Analytics, testutil.TestLoggerSilent())
	ctx := context.Background()
	post := seedPost(t, st)

	svc.TrackImpressions(ctx, []string{post.ID}, browserUA)
	svc.TrackImpressions(ctx, []string{post.ID}, browserUA)
	svc.TrackClick(ctx, post.ID, browserUA)
	svc.TrackUniqueView(ctx, post.ID, "203.0.113.1", browserUA)
	svc.TrackUniqueView(ctx, post.ID, "203.0.113.1", browserUA)
	svc.TrackUniqueView(ctx, post.ID, "203.0.113.2", browserUA)

	stats, err := svc.Stats(ctx, post.ID)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Impressions != 2 {
		t.Errorf("impressions = %d, want 2", stats.Impressions)
	}
	if stats.Clicks != 1 {
		t.Errorf("clicks = %d, want 1", stats.Clicks)
	}
	if stats.UniqueViews != 2 {
		t.Errorf("unique views = %d, want 2", stats.UniqueViews)
	}
}

func TestAnalyticsSkipsBots(t *testing.T) {
	st, cleanup := testutil.TestStore(t)
	defer cleanup()
	svc := service.NewAnalyticsService(st.Analytics, testutil.TestLoggerSilent())
	ctx := context.Background()
	post := seedPost(t, st)

	svc.TrackImpressions(ctx, []string{post.ID}, crawlerUA)
	svc.TrackClick(ctx, post.ID, crawlerUA)
	svc.TrackUniqueView(ctx, post.ID, "203.0.113.1", crawlerUA)

	stats, err := svc.Stats(ctx, post.ID)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Impressions != 0 || stats.Clicks != 0 || stats.UniqueViews != 0 {
		t.Errorf("bot traffic counted: %+v", stats)
	}
}

func TestAnalyticsSkipsEmptyInput(t *testing.T) {
	st, cleanup := testutil.TestStore(t)
	defer cleanup()
	svc := service.NewAnalyticsService(st.Analytics, testutil.TestLoggerSilent())
	ctx := context.Background()
	post := seedPost(t, st)

	svc.TrackImpressions(ctx, nil, browserUA)
	svc.TrackUniqueView(ctx, post.ID, "", browserUA)

	stats, err := svc.Stats(ctx, post.ID)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Impressions != 0 || stats.UniqueViews != 0 {
		t.Errorf("empty input counted: %+v", stats)
	}
}

func TestAnalyticsTopPosts(t *testing.T) {
	st, cleanup := testutil.TestStore(t)
	defer cleanup()
	svc := service.NewAnalyticsService(st.Analytics, testutil.TestLoggerSilent())
	ctx := context.Background()

	first := seedPost(t, st)
	second := seedPost(t, st)

	svc.TrackClick(ctx, first.ID, browserUA)
	svc.TrackClick(ctx, second.ID, browserUA)
	svc.TrackClick(ctx, second.ID, browserUA)

	top, err := svc.TopPosts(ctx, 10)
	if err != nil {
		t.Fatalf("TopPosts() error = %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("TopPosts() returned %d entries, want 2", len(top))
	}
	if top[0].PostID != second.ID {
		t.Errorf("TopPosts() first = %s, want %s", top[0].PostID, second.ID)
	}
}
