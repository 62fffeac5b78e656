// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api_test

import (
	"net/http"
	"testing"

	"github.com/olegiv/folio-go/internal/handler/api"
	"github.com/olegiv/folio-go/internal/service"
)

func validContactBody() service.ContactSubmission {
	return service.ContactSubmission{
		Nombre:  "María García",
		Email:   "maria@example.com",
		Asunto:  "Consulta de proyecto",
		Mensaje: "Me gustaría hablar sobre una colaboración.",
	}
}

func TestSubmitContact(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/v1/contact", validContactBody(), false)
	wantStatus(t, resp, http.StatusAccepted)

	var accepted api.ContactAcceptedResponse
	decodeData(t, resp, &accepted)
	if accepted.ID == "" {
		t.Error("accepted response should carry the message ID")
	}
	if accepted.Notified {
		t.Error("notified should be false without a configured mailer")
	}
}

func TestSubmitContactValidation(t *testing.T) {
	ts := newTestServer(t)

	body := validContactBody()
	body.Email = "nope"
	body.Mensaje = "corto"

	resp := ts.do(t, http.MethodPost, "/api/v1/contact", body, false)
	wantStatus(t, resp, http.StatusUnprocessableEntity)

	detail := decodeError(t, resp)
	if detail.Details["email"] == "" || detail.Details["mensaje"] == "" {
		t.Errorf("details = %v", detail.Details)
	}
}

func TestSubmitContactHoneypot(t *testing.T) {
	ts := newTestServer(t)

	body := validContactBody()
	body.ContactTime = "5"

	resp := ts.do(t, http.MethodPost, "/api/v1/contact", body, false)
	wantStatus(t, resp, http.StatusBadRequest)
	resp.Body.Close()
}

func TestContactInbox(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/v1/contact", validContactBody(), false)
	wantStatus(t, resp, http.StatusAccepted)
	var accepted api.ContactAcceptedResponse
	decodeData(t, resp, &accepted)

	// The inbox is operator-only.
	resp = ts.do(t, http.MethodGet, "/api/v1/contact/messages", nil, false)
	wantStatus(t, resp, http.StatusUnauthorized)
	resp.Body.Close()

	resp = ts.do(t, http.MethodGet, "/api/v1/contact/messages", nil, true)
	wantStatus(t, resp, http.StatusOK)
	var inbox api.ContactMessagesResponse
	decodeData(t, resp, &inbox)
	if len(inbox.Messages) != 1 || inbox.Unread != 1 {
		t.Fatalf("inbox = %+v", inbox)
	}

	resp = ts.do(t, http.MethodPost, "/api/v1/contact/messages/"+accepted.ID+"/read", nil, true)
	wantStatus(t, resp, http.StatusNoContent)
	resp.Body.Close()

	resp = ts.do(t, http.MethodGet, "/api/v1/contact/messages?unread=1", nil, true)
	wantStatus(t, resp, http.StatusOK)
	var after api.ContactMessagesResponse
	decodeData(t, resp, &after)
	if len(after.Messages) != 0 || after.Unread != 0 {
		t.Errorf("after marking read: %+v", after)
	}
}

func TestMarkUnknownMessageRead(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/v1/contact/messages/missing/read", nil, true)
	wantStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()
}
