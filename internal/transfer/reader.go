// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package transfer copies blog content out of the legacy Django MySQL
// database into the local store.
package transfer

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

// LegacyCategory is a row from the legacy blog_category table.
type LegacyCategory struct {
	ID          string
	ParentID    sql.NullString
	Name        string
	Title       string
	Description string
	Slug        string
}

// LegacyPost is a row from the legacy blog_post table.
type LegacyPost struct {
	ID          string
	Title       string
	Description string
	Content     string
	Keywords    string
	Slug        string
	CategoryID  string
	Status      string
}

// LegacyHeading is a row from the legacy blog_heading table.
type LegacyHeading struct {
	ID     string
	PostID string
	Title  string
	Slug   string
	Level  int
	Ord    int
}

// Source is the set of reads the importer needs from the legacy database.
type Source interface {
	Categories(ctx context.Context) ([]LegacyCategory, error)
	Posts(ctx context.Context) ([]LegacyPost, error)
	Headings(ctx context.Context) ([]LegacyHeading, error)
}

// Reader reads blog content from the legacy MySQL database. The legacy
// schema stores UUID primary keys as 32-character hex strings.
type Reader struct {
	db *sql.DB
}

// NewReader opens the legacy database and verifies the connection.
// The DSN must include parseTime=true so timestamps scan correctly.
func NewReader(dsn string) (*Reader, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open legacy database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to legacy database: %w", err)
	}
	return &Reader{db: db}, nil
}

// Close closes the legacy database connection.
func (r *Reader) Close() error {
	return r.db.Close()
}

// Categories reads all rows from blog_category, parents before children
// so the importer can create them in one pass per depth level.
func (r *Reader) Categories(ctx context.Context) ([]LegacyCategory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, parent_id, name, title, description, slug
		FROM blog_category
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("query blog_category: %w", err)
	}
	defer rows.Close()

	var cats []LegacyCategory
	for rows.Next() {
		var c LegacyCategory
		if err := rows.Scan(&c.ID, &c.ParentID, &c.Name, &c.Title, &c.Description, &c.Slug); err != nil {
			return nil, fmt.Errorf("scan blog_category: %w", err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blog_category: %w", err)
	}
	return cats, nil
}

// Posts reads all rows from blog_post, including drafts.
func (r *Reader) Posts(ctx context.Context) ([]LegacyPost, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, content, keywords, slug, category_id, status
		FROM blog_post
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("query blog_post: %w", err)
	}
	defer rows.Close()

	var posts []LegacyPost
	for rows.Next() {
		var p LegacyPost
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Content,
			&p.Keywords, &p.Slug, &p.CategoryID, &p.Status); err != nil {
			return nil, fmt.Errorf("scan blog_post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blog_post: %w", err)
	}
	return posts, nil
}

// Headings reads all rows from blog_heading in document order.
func (r *Reader) Headings(ctx context.Context) ([]LegacyHeading, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, post_id, title, slug, level, `+"`order`"+`
		FROM blog_heading
		ORDER BY post_id, `+"`order`"+`
	`)
	if err != nil {
		return nil, fmt.Errorf("query blog_heading: %w", err)
	}
	defer rows.Close()

	var headings []LegacyHeading
	for rows.Next() {
		var h LegacyHeading
		if err := rows.Scan(&h.ID, &h.PostID, &h.Title, &h.Slug, &h.Level, &h.Ord); err != nil {
			return nil, fmt.Errorf("scan blog_heading: %w", err)
		}
		headings = append(headings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blog_heading: %w", err)
	}
	return headings, nil
}
