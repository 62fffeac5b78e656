// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/folio-go/internal/model"
)

// ListEvents returns the event log, newest first. Supports ?level= and
// pagination.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	level := r.URL.Query().Get("level")
	if level != "" && level != model.EventLevelInfo &&
		level != model.EventLevelWarning && level != model.EventLevelError {
		WriteBadRequest(w, "Unknown event level", nil)
		return
	}

	page := ParsePageParam(r)
	perPage := ParsePerPageParam(r)

	events, err := h.store.Events.List(r.Context(), level, perPage, (page-1)*perPage)
	if err != nil {
		WriteInternalError(w, "Failed to list events")
		return
	}
	total, err := h.store.Events.Count(r.Context(), level)
	if err != nil {
		WriteInternalError(w, "Failed to count events")
		return
	}
	if events == nil {
		events = []model.Event{}
	}

	WriteJSON(w, http.StatusOK, Response{
		Data: events,
		Meta: &Meta{
			Total:   total,
			Page:    page,
			PerPage: perPage,
			Pages:   totalPages(total, perPage),
		},
	})
}
