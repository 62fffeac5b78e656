// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/olegiv/folio-go/internal/util"
)

// maxSlugAttempts caps the numeric-suffix probing loop so a pathological
// data set cannot spin forever.
const maxSlugAttempts = 1000

// slugExistsFunc reports whether a slug is already taken within one
// entity's namespace.
type slugExistsFunc func(ctx context.Context, slug string) (bool, error)

// resolveUniqueSlug turns a base slug into one that is free in the
// namespace checked by exists. A taken slug gets a numeric suffix
// (base-1, base-2, ...). An empty base, which happens when the source
// text has no Latin-transliterable characters at all, falls back to a
// random token.
func resolveUniqueSlug(ctx context.Context, base string, exists slugExistsFunc) (string, error) {
	if base == "" {
		return randomSlugToken()
	}

	taken, err := exists(ctx, base)
	if err != nil {
		return "", fmt.Errorf("checking slug %q: %w", base, err)
	}
	if !taken {
		return base, nil
	}

	for i := 1; i <= maxSlugAttempts; i++ {
		candidate := suffixSlug(base, i)
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("checking slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no free slug found for %q after %d attempts", base, maxSlugAttempts)
}

// insertWithUniqueSlug resolves a free slug from base and runs insert
// with it. When the insert loses a check-then-insert race on the slug
// column it resolves once more and retries a single time. The slug that
// was finally inserted is returned.
func insertWithUniqueSlug(ctx context.Context, base string, exists slugExistsFunc, insert func(slug string) error) (string, error) {
	slug, err := resolveUniqueSlug(ctx, base, exists)
	if err != nil {
		return "", err
	}
	if err = insert(slug); IsUniqueViolation(err) {
		if slug, err = resolveUniqueSlug(ctx, base, exists); err != nil {
			return "", err
		}
		err = insert(slug)
	}
	return slug, err
}

// suffixSlug appends "-n" to base, trimming base first when needed so
// the result never exceeds util.MaxSlugLength.
func suffixSlug(base string, n int) string {
	suffix := fmt.Sprintf("-%d", n)
	if len(base)+len(suffix) > util.MaxSlugLength {
		base = strings.TrimRight(base[:util.MaxSlugLength-len(suffix)], "-")
	}
	return base + suffix
}

// randomSlugToken returns a 12-character hex token for entities whose
// title produced an empty slug.
func randomSlugToken() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating slug token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
