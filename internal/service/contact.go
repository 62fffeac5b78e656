// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/olegiv/folio-go/internal/geoip"
	foliomail "github.com/olegiv/folio-go/internal/mail"
	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
)

// ErrSpam marks a submission caught by the honeypot. Handlers accept it
// silently so bots cannot tell they were detected.
var ErrSpam = errors.New("submission flagged as spam")

// ErrNotifyFailed means the message was stored but the owner email
// could not be sent.
var ErrNotifyFailed = errors.New("notification delivery failed")

// ValidationError carries per-field messages for a rejected submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid submission: %d field errors", len(e.Fields))
}

// ContactSubmission is the raw input of a contact-form request.
type ContactSubmission struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Asunto   string `json:"asunto"`
	Mensaje  string `json:"mensaje"`
	Telefono string `json:"telefono"`

	// ContactTime is a honeypot field hidden from humans. Any value
	// means a bot filled the form.
	ContactTime string `json:"contact_time"`
}

// ContactService validates, stores and dispatches contact messages.
type ContactService struct {
	contact *store.ContactStore
	geo     *geoip.Lookup
	mailer  foliomail.Sender
	log     *slog.Logger
}

// NewContactService creates a contact service. mailer may be nil when
// notifications are not configured.
func NewContactService(contact *store.ContactStore, geo *geoip.Lookup, mailer foliomail.Sender, log *slog.Logger) *ContactService {
	return &ContactService{contact: contact, geo: geo, mailer: mailer, log: log}
}

const (
	minAsuntoLen  = 5
	minMensajeLen = 10
)

// NotificationsEnabled reports whether owner notifications are
// configured.
func (s *ContactService) NotificationsEnabled() bool {
	return s.mailer != nil
}

// Submit processes a contact-form submission: honeypot check,
// validation, persistence, country tagging and owner notification.
// Returns the stored message; ErrNotifyFailed is returned alongside a
// non-nil message when only the email failed.
func (s *ContactService) Submit(ctx context.Context, sub *ContactSubmission, ip, uaString string) (*model.ContactMessage, error) {
	if sub.ContactTime != "" {
		s.log.Info("contact honeypot triggered", "ip", ip)
		return nil, ErrSpam
	}

	if err := validateSubmission(sub); err != nil {
		return nil, err
	}

	msg := &model.ContactMessage{
		Nombre:      strings.TrimSpace(sub.Nombre),
		Email:       strings.TrimSpace(sub.Email),
		Asunto:      strings.TrimSpace(sub.Asunto),
		Mensaje:     strings.TrimSpace(sub.Mensaje),
		Telefono:    strings.TrimSpace(sub.Telefono),
		IPRemitente: ip,
		UserAgent:   uaString,
	}
	if s.geo != nil {
		msg.CountryCode = s.geo.LookupCountry(ip)
	}

	if err := s.contact.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("storing contact message: %w", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendContactNotification(ctx, msg); err != nil {
			s.log.Warn("contact notification failed", "message_id", msg.ID, "error", err)
			return msg, ErrNotifyFailed
		}
	}
	return msg, nil
}

func validateSubmission(sub *ContactSubmission) error {
	fields := make(map[string]string)

	nombre := strings.TrimSpace(sub.Nombre)
	switch {
	case nombre == "":
		fields["nombre"] = "required"
	case !isValidName(nombre):
		fields["nombre"] = "must contain letters and spaces only"
	}

	if !isValidEmail(strings.TrimSpace(sub.Email)) {
		fields["email"] = "must be a valid email address"
	}

	if utf8.RuneCountInString(strings.TrimSpace(sub.Asunto)) < minAsuntoLen {
		fields["asunto"] = fmt.Sprintf("must be at least %d characters", minAsuntoLen)
	}
	if utf8.RuneCountInString(strings.TrimSpace(sub.Mensaje)) < minMensajeLen {
		fields["mensaje"] = fmt.Sprintf("must be at least %d characters", minMensajeLen)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// isValidName accepts letters (any script, accents included) and
// spaces.
func isValidName(name string) bool {
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// isValidEmail checks if the email is valid.
func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
