// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/util"
)

// Result summarizes an import run. Per-row failures land in Errors and
// do not abort the run.
type Result struct {
	Categories int
	Posts      int
	Headings   int
	Skipped    int
	Errors     []string
}

// Importer copies legacy blog content into the local store. Slugs are
// regenerated from names and titles; the legacy slug columns are ignored
// so the local resolver owns uniqueness.
type Importer struct {
	store *store.Store
	log   *slog.Logger
}

// NewImporter creates an importer writing through the given store.
func NewImporter(st *store.Store, log *slog.Logger) *Importer {
	return &Importer{store: st, log: log}
}

// Run imports categories, posts, and headings in dependency order.
// Categories and posts already present under the same name or title are
// skipped, so re-running against the same legacy database is safe.
func (i *Importer) Run(ctx context.Context, src Source) (*Result, error) {
	result := &Result{}

	catMap, err := i.importCategories(ctx, src, result)
	if err != nil {
		return nil, err
	}
	postMap, err := i.importPosts(ctx, src, catMap, result)
	if err != nil {
		return nil, err
	}
	if err := i.importHeadings(ctx, src, postMap, result); err != nil {
		return nil, err
	}

	i.log.Info("legacy import finished",
		"categories", result.Categories,
		"posts", result.Posts,
		"headings", result.Headings,
		"skipped", result.Skipped,
		"errors", len(result.Errors))
	return result, nil
}

// importCategories creates categories parents-first and returns a map
// from legacy category ID to local category ID.
func (i *Importer) importCategories(ctx context.Context, src Source, result *Result) (map[string]string, error) {
	cats, err := src.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("read legacy categories: %w", err)
	}

	existing, err := i.store.Categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	byName := make(map[string]string, len(existing))
	for _, c := range existing {
		byName[c.Name] = c.ID
	}

	idMap := make(map[string]string, len(cats))
	pending := make(map[string]LegacyCategory, len(cats))
	for _, c := range cats {
		pending[c.ID] = c
	}

	// Each pass imports every category whose parent is already mapped.
	// A pass with no progress means the remaining rows form a cycle or
	// reference a missing parent; they are reported and dropped.
	for len(pending) > 0 {
		progress := false
		ids := make([]string, 0, len(pending))
		for id := range pending {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			c := pending[id]
			var parentID string
			if c.ParentID.Valid {
				mapped, ok := idMap[c.ParentID.String]
				if !ok {
					continue
				}
				parentID = mapped
			}

			delete(pending, id)
			progress = true

			if localID, ok := byName[c.Name]; ok {
				idMap[c.ID] = localID
				result.Skipped++
				continue
			}

			cat := &model.Category{
				Name:        c.Name,
				Title:       c.Title,
				Description: c.Description,
			}
			if c.ParentID.Valid {
				cat.ParentID = util.NullStringFromValue(parentID)
			}
			if err := i.store.Categories.Create(ctx, cat); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("category %q: %v", c.Name, err))
				continue
			}
			idMap[c.ID] = cat.ID
			byName[c.Name] = cat.ID
			result.Categories++
		}

		if !progress {
			for _, c := range pending {
				result.Errors = append(result.Errors, fmt.Sprintf("category %q: unresolved parent", c.Name))
			}
			break
		}
	}
	return idMap, nil
}

// importPosts creates posts and returns a map from legacy post ID to
// local post ID.
func (i *Importer) importPosts(ctx context.Context, src Source, catMap map[string]string, result *Result) (map[string]string, error) {
	posts, err := src.Posts(ctx)
	if err != nil {
		return nil, fmt.Errorf("read legacy posts: %w", err)
	}

	idMap := make(map[string]string, len(posts))
	for _, p := range posts {
		categoryID, ok := catMap[p.CategoryID]
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("post %q: unknown category", p.Title))
			continue
		}

		existing, err := i.store.Posts.GetBySlug(ctx, util.GenerateSlug(p.Title))
		if err != nil {
			return nil, fmt.Errorf("check existing post: %w", err)
		}
		if existing != nil && existing.Title == p.Title {
			idMap[p.ID] = existing.ID
			result.Skipped++
			continue
		}

		status := p.Status
		if !model.IsValidPostStatus(status) {
			status = model.PostStatusDraft
		}

		post := &model.Post{
			Title:         p.Title,
			Description:   p.Description,
			Content:       p.Content,
			ContentFormat: model.ContentFormatHTML,
			Keywords:      p.Keywords,
			CategoryID:    categoryID,
			Status:        status,
		}
		if err := i.store.Posts.Create(ctx, post); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("post %q: %v", p.Title, err))
			continue
		}
		idMap[p.ID] = post.ID
		result.Posts++
	}
	return idMap, nil
}

// importHeadings replaces the heading set of every imported post with
// the legacy rows, keeping the legacy reading order.
func (i *Importer) importHeadings(ctx context.Context, src Source, postMap map[string]string, result *Result) error {
	legacy, err := src.Headings(ctx)
	if err != nil {
		return fmt.Errorf("read legacy headings: %w", err)
	}

	byPost := make(map[string][]model.Heading)
	for _, h := range legacy {
		postID, ok := postMap[h.PostID]
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("heading %q: unknown post", h.Title))
			continue
		}
		level := h.Level
		if level < model.HeadingLevelMin || level > model.HeadingLevelMax {
			result.Errors = append(result.Errors, fmt.Sprintf("heading %q: level %d out of range", h.Title, h.Level))
			continue
		}
		byPost[postID] = append(byPost[postID], model.Heading{
			Title: h.Title,
			Level: level,
			Ord:   h.Ord,
		})
	}

	for postID, headings := range byPost {
		sort.SliceStable(headings, func(a, b int) bool { return headings[a].Ord < headings[b].Ord })
		if err := i.store.Headings.ReplaceForPost(ctx, postID, headings); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("headings for post %s: %v", postID, err))
			continue
		}
		result.Headings += len(headings)
	}
	return nil
}
