// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/olegiv/folio-go/internal/model"
)

func TestListEvents(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	for _, e := range []model.Event{
		{Level: model.EventLevelWarning, Category: model.EventCategoryContact, Message: "notify failed", Metadata: "{}"},
		{Level: model.EventLevelError, Category: model.EventCategorySystem, Message: "boom", Metadata: "{}"},
	} {
		ev := e
		if err := ts.store.Events.Create(ctx, &ev); err != nil {
			t.Fatalf("seeding event: %v", err)
		}
	}

	resp := ts.do(t, http.MethodGet, "/api/v1/events", nil, false)
	wantStatus(t, resp, http.StatusUnauthorized)

	resp = ts.do(t, http.MethodGet, "/api/v1/events", nil, true)
	wantStatus(t, resp, http.StatusOK)
	var events []model.Event
	decodeData(t, resp, &events)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	resp = ts.do(t, http.MethodGet, "/api/v1/events?level=error", nil, true)
	wantStatus(t, resp, http.StatusOK)
	decodeData(t, resp, &events)
	if len(events) != 1 || events[0].Message != "boom" {
		t.Fatalf("level filter broken: %+v", events)
	}

	resp = ts.do(t, http.MethodGet, "/api/v1/events?level=verbose", nil, true)
	wantStatus(t, resp, http.StatusBadRequest)
}
