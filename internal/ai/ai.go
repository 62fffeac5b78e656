// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ai generates SEO metadata suggestions for posts and projects
// using the OpenAI API. The feature is optional and only active when an
// API key is configured.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const suggestModel = openai.ChatModelGPT4oMini

const systemPrompt = `You are an SEO assistant for a personal blog and portfolio site.
Given a title and body text, respond with a JSON object containing exactly these keys:
"meta_description" (max 160 characters), "og_title" (max 70 characters) and
"og_description" (max 200 characters). Respond with JSON only, no prose.`

// maxContentChars caps how much body text is sent with a suggestion
// request to keep token usage bounded.
const maxContentChars = 4000

// MetaSuggestion is a set of generated SEO fields.
type MetaSuggestion struct {
	MetaDescription string `json:"meta_description"`
	OGTitle         string `json:"og_title"`
	OGDescription   string `json:"og_description"`
}

// Client wraps the OpenAI API for metadata suggestions.
type Client struct {
	api openai.Client
}

// New builds a Client. Returns nil when no API key is configured;
// callers must treat a nil Client as "suggestions off".
func New(apiKey string) *Client {
	if apiKey == "" {
		return nil
	}
	return &Client{api: openai.NewClient(option.WithAPIKey(apiKey))}
}

// SuggestMeta asks the model for SEO metadata for the given title and
// body text. The body is truncated before sending.
func (c *Client) SuggestMeta(ctx context.Context, title, content string) (*MetaSuggestion, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("suggest meta: title is required")
	}
	if len(content) > maxContentChars {
		content = content[:maxContentChars]
	}

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: suggestModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(fmt.Sprintf("Title: %s\n\nBody:\n%s", title, content)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: no choices returned")
	}

	suggestion, err := parseSuggestion(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("openai decode: %w", err)
	}
	return suggestion, nil
}

// parseSuggestion extracts the JSON object from a model reply. Models
// occasionally wrap JSON in a markdown code fence, so strip that first.
func parseSuggestion(reply string) (*MetaSuggestion, error) {
	reply = strings.TrimSpace(reply)
	if strings.HasPrefix(reply, "```") {
		reply = strings.TrimPrefix(reply, "```json")
		reply = strings.TrimPrefix(reply, "```")
		reply = strings.TrimSuffix(strings.TrimSpace(reply), "```")
		reply = strings.TrimSpace(reply)
	}

	var suggestion MetaSuggestion
	if err := json.Unmarshal([]byte(reply), &suggestion); err != nil {
		return nil, err
	}
	if suggestion.MetaDescription == "" && suggestion.OGTitle == "" && suggestion.OGDescription == "" {
		return nil, fmt.Errorf("empty suggestion")
	}
	return &suggestion, nil
}
