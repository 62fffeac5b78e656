// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package markdown

import (
	"strings"
	"testing"

	"github.com/olegiv/folio-go/internal/model"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		format      string
		wantContain string
		wantAbsent  string
	}{
		{
			name:        "markdown heading",
			content:     "# Title\n\nSome *emphasis* here.",
			format:      model.ContentFormatMarkdown,
			wantContain: "<h1",
		},
		{
			name:        "markdown emphasis",
			content:     "plain *italic* text",
			format:      model.ContentFormatMarkdown,
			wantContain: "<em>italic</em>",
		},
		{
			name:        "markdown strips script",
			content:     "hello\n\n<script>alert(1)</script>",
			format:      model.ContentFormatMarkdown,
			wantAbsent:  "<script>",
			wantContain: "hello",
		},
		{
			name:        "html passthrough",
			content:     "<p>kept</p>",
			format:      model.ContentFormatHTML,
			wantContain: "<p>kept</p>",
		},
		{
			name:        "html strips event handlers",
			content:     `<a href="https://example.com" onclick="evil()">link</a>`,
			format:      model.ContentFormatHTML,
			wantContain: "link",
			wantAbsent:  "onclick",
		},
		{
			name:        "empty format treated as html",
			content:     "<strong>bold</strong>",
			format:      "",
			wantContain: "<strong>bold</strong>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.content, tt.format)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if tt.wantContain != "" && !strings.Contains(got, tt.wantContain) {
				t.Errorf("Render() = %q, want to contain %q", got, tt.wantContain)
			}
			if tt.wantAbsent != "" && strings.Contains(got, tt.wantAbsent) {
				t.Errorf("Render() = %q, should not contain %q", got, tt.wantAbsent)
			}
		})
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	if _, err := Render("content", "rst"); err == nil {
		t.Error("Render() with unknown format should return error")
	}
}
