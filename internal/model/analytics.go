// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// PostView is one row of the unique-view ledger: the first time a given
// client IP requested a given post's detail.
type PostView struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
}

// PostAnalytics holds the cumulative counters for one post.
//
// Impressions count list-response inclusions, Clicks count every detail
// read, and UniqueViews counts detail reads de-duplicated by client IP
// through the post_views ledger.
type PostAnalytics struct {
	PostID      string    `json:"post_id"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	UniqueViews int64     `json:"unique_views"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClickThroughRatio returns clicks divided by impressions, or 0 when the
// post has never been listed.
func (a *PostAnalytics) ClickThroughRatio() float64 {
	if a.Impressions == 0 {
		return 0
	}
	return float64(a.Clicks) / float64(a.Impressions)
}
