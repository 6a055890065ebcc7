// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package restclient

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Article is the console's view of an editorial piece.
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
}

// ListArticles fetches an article page, drafts included.
func (client *Client) ListArticles(context context.Context, page, limit int) ([]Article, *Meta, error) {
	query := url.Values{}
	query.Set("page", fmt.Sprint(page))
	query.Set("limit", fmt.Sprint(limit))
	query.Set("include_drafts", "true")

	var articles []Article
	meta, err := client.get(context, "/api/v1/articles?"+query.Encode(), &articles)
	return articles, meta, err
}

// GetArticle fetches one article by slug.
func (client *Client) GetArticle(context context.Context, slug string) (Article, error) {
	var article Article
	_, err := client.get(context, "/api/v1/articles/"+url.PathEscape(slug)+"?include_drafts=true", &article)
	return article, err
}

// CreateArticle publishes or drafts a new piece.
func (client *Client) CreateArticle(context context.Context, form map[string]any) (Article, error) {
	var article Article
	err := client.post(context, "/api/v1/articles", form, &article)
	return article, err
}

// UpdateArticle applies a partial edit.
func (client *Client) UpdateArticle(context context.Context, id int64, form map[string]any) (Article, error) {
	var article Article
	err := client.patch(context, fmt.Sprintf("/api/v1/articles/%d", id), form, &article)
	return article, err
}

// DeleteArticle removes an article.
func (client *Client) DeleteArticle(context context.Context, id int64) error {
	return client.delete(context, fmt.Sprintf("/api/v1/articles/%d", id))
}
