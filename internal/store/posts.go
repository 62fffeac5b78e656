// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/util"
)

// PostStore handles blog post database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, title, description, content, content_format, keywords,
	slug, category_id, status, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (*model.Post, error) {
	p := &model.Post{}
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Content, &p.ContentFormat,
		&p.Keywords, &p.Slug, &p.CategoryID, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostStore) queryPosts(ctx context.Context, query string, args ...any) ([]model.Post, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var items []model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// ListPublished returns published posts, newest first. A non-empty
// categorySlug restricts the listing to that category.
func (s *PostStore) ListPublished(ctx context.Context, categorySlug string, limit, offset int) ([]model.Post, error) {
	if categorySlug != "" {
		return s.queryPosts(ctx, `
			SELECT p.id, p.title, p.description, p.content, p.content_format, p.keywords,
				p.slug, p.category_id, p.status, p.created_at, p.updated_at
			FROM posts p
			JOIN categories c ON c.id = p.category_id
			WHERE p.status = ? AND c.slug = ?
			ORDER BY p.created_at DESC
			LIMIT ? OFFSET ?
		`, model.PostStatusPublished, categorySlug, limit, offset)
	}
	return s.queryPosts(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE status = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, model.PostStatusPublished, limit, offset)
}

// CountPublished returns the number of published posts, optionally
// restricted to one category.
func (s *PostStore) CountPublished(ctx context.Context, categorySlug string) (int, error) {
	var n int
	var err error
	if categorySlug != "" {
		err = s.db.QueryRowContext(ctx, `
			SELECT COUNT(*)
			FROM posts p
			JOIN categories c ON c.id = p.category_id
			WHERE p.status = ? AND c.slug = ?
		`, model.PostStatusPublished, categorySlug).Scan(&n)
	} else {
		err = s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM posts WHERE status = ?`,
			model.PostStatusPublished).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("count published posts: %w", err)
	}
	return n, nil
}

// List returns posts of every status for the authenticated write surface,
// ordered by status and then newest first.
func (s *PostStore) List(ctx context.Context, limit, offset int) ([]model.Post, error) {
	return s.queryPosts(ctx, `
		SELECT `+postColumns+`
		FROM posts
		ORDER BY status, created_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
}

// Count returns the total number of posts.
func (s *PostStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

// GetByID retrieves a post by ID regardless of status. Returns nil if not found.
func (s *PostStore) GetByID(ctx context.Context, id string) (*model.Post, error) {
	p, err := scanPost(s.db.QueryRowContext(ctx, `
		SELECT `+postColumns+`
		FROM posts WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get post by id: %w", err)
	}
	return p, nil
}

// GetBySlug retrieves a post by slug regardless of status. Returns nil
// if not found.
func (s *PostStore) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	p, err := scanPost(s.db.QueryRowContext(ctx, `
		SELECT `+postColumns+`
		FROM posts WHERE slug = ?
	`, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get post by slug: %w", err)
	}
	return p, nil
}

// GetPublishedBySlug retrieves a published post by slug. Returns nil if
// the slug is unknown or the post is not published.
func (s *PostStore) GetPublishedBySlug(ctx context.Context, slug string) (*model.Post, error) {
	p, err := scanPost(s.db.QueryRowContext(ctx, `
		SELECT `+postColumns+`
		FROM posts WHERE slug = ? AND status = ?
	`, slug, model.PostStatusPublished))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get post by slug: %w", err)
	}
	return p, nil
}

// Create inserts a new post. An empty slug is derived from the title and
// made unique; a taken explicit slug also gets a numeric suffix.
func (s *PostStore) Create(ctx context.Context, p *model.Post) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = model.PostStatusDraft
	}
	if p.ContentFormat == "" {
		p.ContentFormat = model.ContentFormatHTML
	}
	base := p.Slug
	if base == "" {
		base = util.GenerateSlug(p.Title)
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	slug, err := insertWithUniqueSlug(ctx, base, s.slugExists, func(slug string) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO posts (id, title, description, content, content_format, keywords,
				slug, category_id, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, p.ID, p.Title, p.Description, p.Content, p.ContentFormat, p.Keywords,
			slug, p.CategoryID, p.Status, p.CreatedAt, p.UpdatedAt)
		return err
	})
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	p.Slug = slug
	return nil
}

// Update modifies a post. The slug never changes after creation so
// published URLs stay stable.
func (s *PostStore) Update(ctx context.Context, p *model.Post) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE posts
		SET title = ?, description = ?, content = ?, content_format = ?,
			keywords = ?, category_id = ?, status = ?, updated_at = ?
		WHERE id = ?
	`, p.Title, p.Description, p.Content, p.ContentFormat,
		p.Keywords, p.CategoryID, p.Status, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a post. Posts with headings or recorded views are
// protected; callers should soft-delete via status instead.
func (s *PostStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if IsForeignKeyViolation(err) {
		return ErrProtected
	}
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func (s *PostStore) slugExists(ctx context.Context, slug string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts WHERE slug = ?`, slug).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
