// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/folio-go/internal/handler/api"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/service"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/testutil"
)

// testServer bundles everything an API test needs.
type testServer struct {
	*httptest.Server
	store  *store.Store
	apiKey string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)
	st := store.New(db)
	log := testutil.TestLoggerSilent()

	h := api.NewHandler(st,
		service.NewAnalyticsService(st.Analytics, log),
		service.NewContactService(st.Contact, nil, nil, log),
		nil)

	r := chi.NewRouter()
	r.Mount("/api/v1", h.Routes(db))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	rawKey, prefix, err := model.GenerateAPIKey()
	if err != nil {
		t.Fatalf("generating api key: %v", err)
	}
	key := &model.APIKey{
		Name:      "test",
		KeyHash:   model.HashAPIKey(rawKey),
		KeyPrefix: prefix,
		IsActive:  true,
	}
	if err := st.APIKeys.Create(context.Background(), key); err != nil {
		t.Fatalf("storing api key: %v", err)
	}

	return &testServer{Server: srv, store: st, apiKey: rawKey}
}

// do issues a request against the test server. auth attaches the test
// API key.
func (ts *testServer) do(t *testing.T, method, path string, body any, auth bool) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// A browser user agent so requests are not classified as bot traffic.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	if auth {
		req.Header.Set("Authorization", "Bearer "+ts.apiKey)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// decodeData decodes the "data" member of a response envelope into out.
func decodeData(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()

	var envelope struct {
		Data json.RawMessage `json:"data"`
		Meta *api.Meta       `json:"meta"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			t.Fatalf("decoding data: %v", err)
		}
	}
}

// decodeMeta decodes both the data and meta members of a response.
func decodeMeta(t *testing.T, resp *http.Response, out any) *api.Meta {
	t.Helper()
	defer resp.Body.Close()

	var envelope struct {
		Data json.RawMessage `json:"data"`
		Meta *api.Meta       `json:"meta"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			t.Fatalf("decoding data: %v", err)
		}
	}
	return envelope.Meta
}

// decodeError decodes an error envelope.
func decodeError(t *testing.T, resp *http.Response) api.ErrorDetail {
	t.Helper()
	defer resp.Body.Close()

	var envelope api.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding error envelope: %v", err)
	}
	return envelope.Error
}

func wantStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, want %d (body %s)", resp.StatusCode, want, body)
	}
}

// seedCategory creates a category directly in the store.
func (ts *testServer) seedCategory(t *testing.T, name string) *model.Category {
	t.Helper()
	c := &model.Category{Name: name, Title: name}
	if err := ts.store.Categories.Create(context.Background(), c); err != nil {
		t.Fatalf("seeding category: %v", err)
	}
	return c
}

// seedPost creates a post directly in the store.
func (ts *testServer) seedPost(t *testing.T, categoryID, title, status string) *model.Post {
	t.Helper()
	p := &model.Post{
		Title:      title,
		Content:    "<p>" + title + "</p>",
		CategoryID: categoryID,
		Status:     status,
	}
	if err := ts.store.Posts.Create(context.Background(), p); err != nil {
		t.Fatalf("seeding post: %v", err)
	}
	return p
}

// seedProfile creates the site profile directly in the store.
func (ts *testServer) seedProfile(t *testing.T) *model.Profile {
	t.Helper()
	p := &model.Profile{Nombre: "Jane", Apellido1: "Doe", Email: "jane@example.com"}
	if err := ts.store.Profiles.Create(context.Background(), p); err != nil {
		t.Fatalf("seeding profile: %v", err)
	}
	return p
}
