// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// ContactMessage is a persisted contact-form inquiry. Messages are created
// once per submission and never mutated except for the read flag.
type ContactMessage struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Email       string    `json:"email"`
	Asunto      string    `json:"asunto"`
	Mensaje     string    `json:"mensaje"`
	Telefono    string    `json:"telefono,omitempty"`
	IPRemitente string    `json:"ip_remitente,omitempty"`
	UserAgent   string    `json:"user_agent,omitempty"`
	CountryCode string    `json:"country_code,omitempty"`
	Leido       bool      `json:"leido"`
	CreadoEn    time.Time `json:"creado_en"`
}
