// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/olegiv/folio-go/internal/handler/api"
	"github.com/olegiv/folio-go/internal/model"
)

func TestStatus(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/api/v1/status", nil, false)
	wantStatus(t, resp, http.StatusOK)

	var status api.StatusResponse
	decodeData(t, resp, &status)
	if status.Status != "ok" {
		t.Errorf("status = %q, want ok", status.Status)
	}
}

func TestListPostsPublishedOnly(t *testing.T) {
	ts := newTestServer(t)
	cat := ts.seedCategory(t, "General")
	ts.seedPost(t, cat.ID, "Published Post", model.PostStatusPublished)
	ts.seedPost(t, cat.ID, "Draft Post", model.PostStatusDraft)

	resp := ts.do(t, http.MethodGet, "/api/v1/blog/posts", nil, false)
	wantStatus(t, resp, http.StatusOK)

	var posts []api.PostResponse
	meta := decodeMeta(t, resp, &posts)
	if len(posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(posts))
	}
	if posts[0].Title != "Published Post" {
		t.Errorf("title = %q", posts[0].Title)
	}
	if posts[0].Content != "" {
		t.Error("list responses should not include content")
	}
	if meta == nil || meta.Total != 1 {
		t.Errorf("meta = %+v, want total 1", meta)
	}
}

func TestListPostsCountsImpressions(t *testing.T) {
	ts := newTestServer(t)
	cat := ts.seedCategory(t, "General")
	post := ts.seedPost(t, cat.ID, "Tracked", model.PostStatusPublished)

	resp := ts.do(t, http.MethodGet, "/api/v1/blog/posts", nil, false)
	wantStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	stats, err := ts.store.Analytics.Get(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("reading stats: %v", err)
	}
	if stats.Impressions != 1 {
		t.Errorf("impressions = %d, want 1", stats.Impressions)
	}
}

func TestGetPostCountsClickAndUniqueView(t *testing.T) {
	ts := newTestServer(t)
	cat := ts.seedCategory(t, "General")
	post := ts.seedPost(t, cat.ID, "Clicked", model.PostStatusPublished)

	for range 2 {
		resp := ts.do(t, http.MethodGet, "/api/v1/blog/posts/"+post.Slug, nil, false)
		wantStatus(t, resp, http.StatusOK)
		resp.Body.Close()
	}

	stats, err := ts.store.Analytics.Get(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("reading stats: %v", err)
	}
	if stats.Clicks != 2 {
		t.Errorf("clicks = %d, want 2", stats.Clicks)
	}
	if stats.UniqueViews != 1 {
		t.Errorf("unique views = %d, want 1 for repeat visits from one IP", stats.UniqueViews)
	}
}

func TestGetPostRendersMarkdown(t *testing.T) {
	ts := newTestServer(t)
	cat := ts.seedCategory(t, "General")
	post := &model.Post{
		Title:         "Markdown Post",
		Content:       "# Heading\n\nSome *emphasis*.",
		ContentFormat: model.ContentFormatMarkdown,
		CategoryID:    cat.ID,
		Status:        model.PostStatusPublished,
	}
	if err := ts.store.Posts.Create(context.Background(), post); err != nil {
		t.Fatalf("seeding post: %v", err)
	}

	resp := ts.do(t, http.MethodGet, "/api/v1/blog/posts/"+post.Slug, nil, false)
	wantStatus(t, resp, http.StatusOK)

	var got api.PostResponse
	decodeData(t, resp, &got)
	if !strings.Contains(got.Content, "<h1") || !strings.Contains(got.Content, "<em>emphasis</em>") {
		t.Errorf("content not rendered: %q", got.Content)
	}
}

func TestGetPostDraftHiddenFromPublic(t *testing.T) {
	ts := newTestServer(t)
	cat := ts.seedCategory(t, "General")
	post := ts.seedPost(t, cat.ID, "Secret Draft", model.PostStatusDraft)

	resp := ts.do(t, http.MethodGet, "/api/v1/blog/posts/"+post.Slug, nil, false)
	wantStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()

	// Authenticated requests can read drafts for editing.
	resp = ts.do(t, http.MethodGet, "/api/v1/blog/posts/"+post.Slug, nil, true)
	wantStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	stats, err := ts.store.Analytics.Get(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("reading stats: %v", err)
	}
	if stats.Clicks != 0 {
		t.Error("draft reads must not be counted")
	}
}

func TestCreatePostRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/v1/blog/posts", map[string]string{"title": "X"}, false)
	wantStatus(t, resp, http.StatusUnauthorized)
	resp.Body.Close()
}

func TestCreatePost(t *testing.T) {
	ts := newTestServer(t)
	cat := ts.seedCategory(t, "General")

	resp := ts.do(t, http.MethodPost, "/api/v1/blog/posts", api.CreatePostRequest{
		Title:      "Brand New",
		Content:    `<p>fine</p><script>alert(1)</script>`,
		CategoryID: cat.ID,
		Status:     model.PostStatusPublished,
	}, true)
	wantStatus(t, resp, http.StatusCreated)

	var created api.PostResponse
	decodeData(t, resp, &created)
	if created.Slug != "brand-new" {
		t.Errorf("slug = %q, want brand-new", created.Slug)
	}

	stored, err := ts.store.Posts.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("reading post: %v", err)
	}
	if strings.Contains(stored.Content, "<script>") {
		t.Error("html content must be sanitized on write")
	}
	if !strings.Contains(stored.Content, "<p>fine</p>") {
		t.Errorf("safe markup dropped: %q", stored.Content)
	}
}

func TestCreatePostValidation(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/v1/blog/posts", api.CreatePostRequest{}, true)
	wantStatus(t, resp, http.StatusUnprocessableEntity)

	detail := decodeError(t, resp)
	if detail.Details["title"] == "" || detail.Details["category_id"] == "" {
		t.Errorf("details = %v", detail.Details)
	}
}

func TestUpdatePostKeepsSlug(t *testing.T) {
	ts := newTestServer(t)
	cat := ts.seedCategory(t, "General")
	post := ts.seedPost(t, cat.ID, "Original Title", model.PostStatusPublished)

	newTitle := "Renamed Title"
	resp := ts.do(t, http.MethodPut, "/api/v1/blog/posts/"+post.Slug,
		api.UpdatePostRequest{Title: &newTitle}, true)
	wantStatus(t, resp, http.StatusOK)

	var updated api.PostResponse
	decodeData(t, resp, &updated)
	if updated.Title != newTitle {
		t.Errorf("title = %q", updated.Title)
	}
	if updated.Slug != post.Slug {
		t.Errorf("slug changed from %q to %q", post.Slug, updated.Slug)
	}
}

func TestDeletePostWithViewsRejected(t *testing.T) {
	ts := newTestServer(t)
	cat := ts.seedCategory(t, "General")
	post := ts.seedPost(t, cat.ID, "Viewed", model.PostStatusPublished)

	// A public detail read records a view for this IP.
	resp := ts.do(t, http.MethodGet, "/api/v1/blog/posts/"+post.Slug, nil, false)
	wantStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = ts.do(t, http.MethodDelete, "/api/v1/blog/posts/"+post.Slug, nil, true)
	wantStatus(t, resp, http.StatusConflict)
	resp.Body.Close()

	// Fresh posts without views delete fine.
	clean := ts.seedPost(t, cat.ID, "Deletable", model.PostStatusDraft)
	resp = ts.do(t, http.MethodDelete, "/api/v1/blog/posts/"+clean.Slug, nil, true)
	wantStatus(t, resp, http.StatusNoContent)
	resp.Body.Close()
}

func TestReplaceHeadings(t *testing.T) {
	ts := newTestServer(t)
	cat := ts.seedCategory(t, "General")
	post := ts.seedPost(t, cat.ID, "Sectioned", model.PostStatusPublished)

	resp := ts.do(t, http.MethodPost, "/api/v1/blog/posts/"+post.Slug+"/headings",
		[]api.HeadingRequest{
			{Title: "Intro", Level: 2},
			{Title: "Details", Level: 3},
		}, true)
	wantStatus(t, resp, http.StatusOK)

	var headings []model.Heading
	decodeData(t, resp, &headings)
	if len(headings) != 2 {
		t.Fatalf("got %d headings, want 2", len(headings))
	}
	if headings[0].Title != "Intro" || headings[0].Ord != 1 {
		t.Errorf("first heading = %+v", headings[0])
	}

	// Public sub-resource list sees the same order.
	resp = ts.do(t, http.MethodGet, "/api/v1/blog/posts/"+post.Slug+"/headings", nil, false)
	wantStatus(t, resp, http.StatusOK)
	var listed []model.Heading
	decodeData(t, resp, &listed)
	if len(listed) != 2 || listed[1].Title != "Details" {
		t.Errorf("listed = %+v", listed)
	}
}

func TestPostStats(t *testing.T) {
	ts := newTestServer(t)
	cat := ts.seedCategory(t, "General")
	post := ts.seedPost(t, cat.ID, "Measured", model.PostStatusPublished)

	// One list inclusion, one detail read.
	resp := ts.do(t, http.MethodGet, "/api/v1/blog/posts", nil, false)
	wantStatus(t, resp, http.StatusOK)
	resp.Body.Close()
	resp = ts.do(t, http.MethodGet, "/api/v1/blog/posts/"+post.Slug, nil, false)
	wantStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = ts.do(t, http.MethodGet, "/api/v1/blog/posts/"+post.Slug+"/stats", nil, true)
	wantStatus(t, resp, http.StatusOK)

	var stats api.PostStatsResponse
	decodeData(t, resp, &stats)
	if stats.Impressions != 1 || stats.Clicks != 1 || stats.UniqueViews != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.ClickThroughRate != 1.0 {
		t.Errorf("ctr = %f, want 1.0", stats.ClickThroughRate)
	}
}

func TestSuggestMetaUnconfigured(t *testing.T) {
	ts := newTestServer(t)
	cat := ts.seedCategory(t, "General")
	post := ts.seedPost(t, cat.ID, "Suggested", model.PostStatusPublished)

	resp := ts.do(t, http.MethodPost, "/api/v1/blog/posts/"+post.Slug+"/suggest-meta", nil, true)
	wantStatus(t, resp, http.StatusServiceUnavailable)
	resp.Body.Close()
}
