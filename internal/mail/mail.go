// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mail delivers contact-form notifications over SMTP. Delivery
// is best effort: the caller persists the message first and treats a
// send failure as a degraded, not failed, submission.
package mail

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/olegiv/folio-go/internal/config"
	"github.com/olegiv/folio-go/internal/model"
)

// Sender delivers a notification for a newly received contact message.
type Sender interface {
	SendContactNotification(ctx context.Context, msg *model.ContactMessage) error
}

// Mailer sends mail through a configured SMTP relay.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
	to       string
	timeout  time.Duration
}

// New builds a Mailer from config. Returns nil when mail is not
// configured; callers must treat a nil Mailer as "notifications off".
func New(cfg *config.Config) *Mailer {
	if !cfg.MailEnabled() {
		return nil
	}
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
		to:       cfg.ContactTo,
		timeout:  time.Duration(cfg.MailTimeout) * time.Second,
	}
}

// SendContactNotification emails the site owner about a contact-form
// submission. The send is bounded by the configured timeout.
func (m *Mailer) SendContactNotification(ctx context.Context, msg *model.ContactMessage) error {
	message := gomail.NewMsg()
	if err := message.From(m.from); err != nil {
		return fmt.Errorf("setting mail from: %w", err)
	}
	if err := message.To(m.to); err != nil {
		return fmt.Errorf("setting mail to: %w", err)
	}
	if msg.Email != "" {
		if err := message.ReplyTo(msg.Email); err != nil {
			return fmt.Errorf("setting mail reply-to: %w", err)
		}
	}
	message.Subject(fmt.Sprintf("Contact form: %s", msg.Asunto))
	message.SetBodyString(gomail.TypeTextPlain, m.formatBody(msg))

	opts := []gomail.Option{
		gomail.WithPort(m.port),
		gomail.WithTimeout(m.timeout),
	}
	if m.user != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.user),
			gomail.WithPassword(m.password),
		)
	}
	switch m.port {
	case 465:
		opts = append(opts, gomail.WithSSLPort(false))
	default:
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	client, err := gomail.NewClient(m.host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, message); err != nil {
		return fmt.Errorf("sending contact notification: %w", err)
	}
	return nil
}

func (m *Mailer) formatBody(msg *model.ContactMessage) string {
	body := fmt.Sprintf("From: %s <%s>\n", msg.Nombre, msg.Email)
	if msg.Telefono != "" {
		body += fmt.Sprintf("Phone: %s\n", msg.Telefono)
	}
	if msg.CountryCode != "" {
		body += fmt.Sprintf("Country: %s\n", msg.CountryCode)
	}
	body += fmt.Sprintf("Subject: %s\n\n%s\n", msg.Asunto, msg.Mensaje)
	return body
}
