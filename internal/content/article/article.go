// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

/*
Package article implements the editorial surface: lookbooks, styling
guides, and brand stories published alongside the catalogue.

Articles are drafted by staff and become publicly visible once published.
*/
package article

import "time"

// Article is a single editorial entry.
type Article struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt,omitempty"`
	Body          string     `json:"body"`
	CoverImageURL string     `json:"cover_image_url,omitempty"`
	AuthorID      int64      `json:"author_id"`
	IsPublished   bool       `json:"is_published"`
	PublishedAt   *time.Time `json:"published_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Global field names for validation
const (
	FieldTitle   = "title"
	FieldExcerpt = "excerpt"
	FieldBody    = "body"
)
