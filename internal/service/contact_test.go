// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/service"
	"github.com/olegiv/folio-go/internal/testutil"
)

type fakeMailer struct {
	sent []*model.ContactMessage
	err  error
}

func (f *fakeMailer) SendContactNotification(_ context.Context, msg *model.ContactMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func validSubmission() *service.ContactSubmission {
	return &service.ContactSubmission{
		Nombre:  "María García",
		Email:   "maria@example.com",
		Asunto:  "Consulta sobre un proyecto",
		Mensaje: "Me gustaría hablar sobre una colaboración.",
	}
}

func TestContactSubmit(t *testing.T) {
	st, cleanup := testutil.TestStore(t)
	defer cleanup()
	mailer := &fakeMailer{}
	svc := service.NewContactService(st.Contact, nil, mailer, testutil.TestLoggerSilent())
	ctx := context.Background()

	msg, err := svc.Submit(ctx, validSubmission(), "203.0.113.9", "Mozilla/5.0")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if msg.ID == "" {
		t.Error("Submit() should assign an ID")
	}
	if msg.Nombre != "María García" || msg.IPRemitente != "203.0.113.9" {
		t.Errorf("Submit() stored %+v", msg)
	}
	if len(mailer.sent) != 1 {
		t.Errorf("Submit() sent %d notifications, want 1", len(mailer.sent))
	}

	stored, err := st.Contact.List(ctx, false, 10, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("List() returned %d messages, want 1", len(stored))
	}
	if stored[0].Leido {
		t.Error("new message should be unread")
	}
}

func TestContactSubmitHoneypot(t *testing.T) {
	st, cleanup := testutil.TestStore(t)
	defer cleanup()
	mailer := &fakeMailer{}
	svc := service.NewContactService(st.Contact, nil, mailer, testutil.TestLoggerSilent())
	ctx := context.Background()

	sub := validSubmission()
	sub.ContactTime = "3"
	if _, err := svc.Submit(ctx, sub, "203.0.113.9", "curl/8.0"); !errors.Is(err, service.ErrSpam) {
		t.Fatalf("Submit() error = %v, want ErrSpam", err)
	}

	stored, err := st.Contact.List(ctx, false, 10, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(stored) != 0 {
		t.Error("honeypot submissions must not be stored")
	}
	if len(mailer.sent) != 0 {
		t.Error("honeypot submissions must not be mailed")
	}
}

func TestContactSubmitValidation(t *testing.T) {
	st, cleanup := testutil.TestStore(t)
	defer cleanup()
	svc := service.NewContactService(st.Contact, nil, nil, testutil.TestLoggerSilent())
	ctx := context.Background()

	tests := []struct {
		name      string
		modify    func(*service.ContactSubmission)
		wantField string
	}{
		{"empty name", func(s *service.ContactSubmission) { s.Nombre = "  " }, "nombre"},
		{"name with digits", func(s *service.ContactSubmission) { s.Nombre = "Bot 3000" }, "nombre"},
		{"invalid email", func(s *service.ContactSubmission) { s.Email = "not-an-email" }, "email"},
		{"short subject", func(s *service.ContactSubmission) { s.Asunto = "Hey" }, "asunto"},
		{"short multibyte subject", func(s *service.ContactSubmission) { s.Asunto = "ñññ" }, "asunto"},
		{"short message", func(s *service.ContactSubmission) { s.Mensaje = "Hola" }, "mensaje"},
		{"short multibyte message", func(s *service.ContactSubmission) { s.Mensaje = "ñéíóúañé" }, "mensaje"},
		{"whitespace padding ignored", func(s *service.ContactSubmission) { s.Asunto = "  Hi  " }, "asunto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			tt.modify(sub)
			_, err := svc.Submit(ctx, sub, "203.0.113.9", "Mozilla/5.0")
			var verr *service.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Submit() error = %v, want ValidationError", err)
			}
			if _, ok := verr.Fields[tt.wantField]; !ok {
				t.Errorf("ValidationError fields = %v, want %q", verr.Fields, tt.wantField)
			}
		})
	}
}

func TestContactSubmitMultibyteMinimums(t *testing.T) {
	st, cleanup := testutil.TestStore(t)
	defer cleanup()
	svc := service.NewContactService(st.Contact, nil, nil, testutil.TestLoggerSilent())

	// Lengths are counted in characters, not bytes.
	sub := validSubmission()
	sub.Asunto = "ñañañ"
	sub.Mensaje = "ñañañañaña"
	if _, err := svc.Submit(context.Background(), sub, "203.0.113.9", "Mozilla/5.0"); err != nil {
		t.Fatalf("Submit() error = %v, want accepted", err)
	}
}

func TestContactSubmitNotifyFailure(t *testing.T) {
	st, cleanup := testutil.TestStore(t)
	defer cleanup()
	mailer := &fakeMailer{err: errors.New("smtp down")}
	svc := service.NewContactService(st.Contact, nil, mailer, testutil.TestLoggerSilent())
	ctx := context.Background()

	msg, err := svc.Submit(ctx, validSubmission(), "203.0.113.9", "Mozilla/5.0")
	if !errors.Is(err, service.ErrNotifyFailed) {
		t.Fatalf("Submit() error = %v, want ErrNotifyFailed", err)
	}
	if msg == nil {
		t.Fatal("message should be stored even when notification fails")
	}

	stored, err := st.Contact.List(ctx, true, 10, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(stored) != 1 {
		t.Errorf("List() returned %d messages, want 1", len(stored))
	}
}

func TestContactSubmitWithoutMailer(t *testing.T) {
	st, cleanup := testutil.TestStore(t)
	defer cleanup()
	svc := service.NewContactService(st.Contact, nil, nil, testutil.TestLoggerSilent())

	if _, err := svc.Submit(context.Background(), validSubmission(), "203.0.113.9", "Mozilla/5.0"); err != nil {
		t.Fatalf("Submit() without mailer error = %v", err)
	}
}
