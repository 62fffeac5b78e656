// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// ParsePageParam parses the "page" query parameter from the request.
// Returns 1 if the parameter is missing, empty, or invalid.
func ParsePageParam(r *http.Request) int {
	return parseIntParam(r, "page", 1, 1, 0)
}

// ParsePerPageParam parses the "per_page" query parameter from the
// request, clamped to [1, maxPerPage].
func ParsePerPageParam(r *http.Request) int {
	return parseIntParam(r, "per_page", defaultPerPage, 1, maxPerPage)
}

// parseIntParam parses an integer query parameter. Returns defaultVal
// if the parameter is missing, invalid, or outside [minVal, maxVal]
// (bounds with value 0 are not enforced).
func parseIntParam(r *http.Request, param string, defaultVal, minVal, maxVal int) int {
	str := r.URL.Query().Get(param)
	if str == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return defaultVal
	}
	if minVal > 0 && val < minVal {
		return defaultVal
	}
	if maxVal > 0 && val > maxVal {
		return defaultVal
	}
	return val
}

// totalPages returns the page count for a total at the given page size.
func totalPages(total, perPage int) int {
	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	return pages
}
