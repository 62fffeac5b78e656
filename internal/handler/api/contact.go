// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/folio-go/internal/middleware"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/service"
)

// ContactAcceptedResponse is returned for accepted submissions. The
// notified flag tells the caller whether the owner email went out.
type ContactAcceptedResponse struct {
	ID       string `json:"id"`
	Notified bool   `json:"notified"`
}

// SubmitContact handles POST /api/v1/contact.
// Accepted submissions return 202; a failed notification still returns
// 202 with notified false because the message is already stored.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var sub service.ContactSubmission
	if err := decodeJSON(r, &sub); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	msg, err := h.contact.Submit(r.Context(), &sub, middleware.GetClientIP(r), r.UserAgent())
	switch {
	case errors.Is(err, service.ErrSpam):
		// Same shape as any other bad request so bots learn nothing.
		WriteBadRequest(w, "Submission rejected", nil)
		return
	case errors.Is(err, service.ErrNotifyFailed):
		WriteJSON(w, http.StatusAccepted, Response{Data: ContactAcceptedResponse{ID: msg.ID, Notified: false}})
		return
	case err != nil:
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			WriteValidationError(w, verr.Fields)
			return
		}
		WriteInternalError(w, "Failed to store message")
		return
	}

	WriteJSON(w, http.StatusAccepted, Response{
		Data: ContactAcceptedResponse{ID: msg.ID, Notified: h.contact.NotificationsEnabled()},
	})
}

// ContactMessagesResponse pairs the inbox page with its unread count.
type ContactMessagesResponse struct {
	Messages []model.ContactMessage `json:"messages"`
	Unread   int                    `json:"unread"`
}

// ListContactMessages handles GET /api/v1/contact/messages.
// With ?unread=1 only unread messages are returned.
func (h *Handler) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := ParsePageParam(r)
	perPage := ParsePerPageParam(r)
	unreadOnly := r.URL.Query().Get("unread") == "1"

	messages, err := h.store.Contact.List(ctx, unreadOnly, perPage, (page-1)*perPage)
	if err != nil {
		WriteInternalError(w, "Failed to list messages")
		return
	}
	unread, err := h.store.Contact.CountUnread(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to count unread messages")
		return
	}

	WriteSuccess(w, ContactMessagesResponse{Messages: messages, Unread: unread},
		&Meta{Page: page, PerPage: perPage})
}

// MarkContactMessageRead handles POST /api/v1/contact/messages/{id}/read.
func (h *Handler) MarkContactMessageRead(w http.ResponseWriter, r *http.Request) {
	err := h.store.Contact.MarkRead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Message not found")
			return
		}
		WriteInternalError(w, "Failed to mark message read")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
