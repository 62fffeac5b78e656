// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"errors"
)

// ErrProtected is returned when a delete is rejected because other rows
// still reference the target.
var ErrProtected = errors.New("store: row is referenced by other rows")

// Store bundles the per-entity stores over a single database handle.
type Store struct {
	db *sql.DB

	Categories  *CategoryStore
	Posts       *PostStore
	Headings    *HeadingStore
	Analytics   *AnalyticsStore
	Profiles    *ProfileStore
	Skills      *SkillStore
	Companies   *CompanyStore
	Projects    *ProjectStore
	Experiences *ExperienceStore
	Educations  *EducationStore
	Contact     *ContactStore
	APIKeys     *APIKeyStore
	Events      *EventStore
}

// New creates a Store over an open database handle.
func New(db *sql.DB) *Store {
	return &Store{
		db:          db,
		Categories:  NewCategoryStore(db),
		Posts:       NewPostStore(db),
		Headings:    NewHeadingStore(db),
		Analytics:   NewAnalyticsStore(db),
		Profiles:    NewProfileStore(db),
		Skills:      NewSkillStore(db),
		Companies:   NewCompanyStore(db),
		Projects:    NewProjectStore(db),
		Experiences: NewExperienceStore(db),
		Educations:  NewEducationStore(db),
		Contact:     NewContactStore(db),
		APIKeys:     NewAPIKeyStore(db),
		Events:      NewEventStore(db),
	}
}

// DB exposes the underlying handle for callers that need transactions.
func (s *Store) DB() *sql.DB {
	return s.db
}
