// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package markdown renders post content for API responses. Markdown
// bodies are converted to HTML; all rendered output passes through the
// sanitizer so stored content can never inject script.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/olegiv/folio-go/internal/model"
)

// htmlSanitizer allows safe HTML tags for user-generated content while
// stripping dangerous elements like <script> and event handlers.
// Heading id attributes are kept so in-page anchors keep working.
var htmlSanitizer = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	return p
}()

// md is the configured goldmark instance, reused across calls.
// Heading IDs are generated so headings can serve as anchors.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// Sanitize strips unsafe markup from an HTML fragment. Used on the
// write path for content stored as HTML.
func Sanitize(html string) string {
	return htmlSanitizer.Sanitize(html)
}

// Render converts post content to sanitized HTML according to its
// format. HTML content is sanitized as-is; markdown is converted first.
func Render(content, format string) (string, error) {
	switch format {
	case model.ContentFormatMarkdown:
		var buf bytes.Buffer
		if err := md.Convert([]byte(content), &buf); err != nil {
			return "", fmt.Errorf("rendering markdown: %w", err)
		}
		return htmlSanitizer.Sanitize(buf.String()), nil
	case model.ContentFormatHTML, "":
		return htmlSanitizer.Sanitize(content), nil
	default:
		return "", fmt.Errorf("unknown content format %q", format)
	}
}
