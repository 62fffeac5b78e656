// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model contains domain models and constants for the application.
package model

import (
	"database/sql"
	"time"
)

// Post statuses
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusDeleted   = "deleted"
)

// ValidPostStatuses returns all valid post statuses.
func ValidPostStatuses() []string {
	return []string{PostStatusDraft, PostStatusPublished, PostStatusDeleted}
}

// IsValidPostStatus checks if a status is valid.
func IsValidPostStatus(status string) bool {
	for _, s := range ValidPostStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// Content formats
const (
	ContentFormatHTML     = "html"
	ContentFormatMarkdown = "markdown"
)

// Category represents a blog category. Categories form a tree through
// ParentID; deleting a category cascades to its children but is rejected
// while posts still reference it.
type Category struct {
	ID          string         `json:"id"`
	ParentID    sql.NullString `json:"-"`
	Name        string         `json:"name"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Slug        string         `json:"slug"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Post represents a blog article. Only published posts are visible through
// the public read endpoints.
type Post struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Content       string    `json:"content"`
	ContentFormat string    `json:"content_format"`
	Keywords      string    `json:"keywords"`
	Slug          string    `json:"slug"`
	CategoryID    string    `json:"category_id"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsPublished returns true if the post is published.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// Heading levels range from H1 to H6.
const (
	HeadingLevelMin = 1
	HeadingLevelMax = 6
)

// Heading represents a section heading within a post, ordered by Ord.
type Heading struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Level     int       `json:"level"`
	Ord       int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}
