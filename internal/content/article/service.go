// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package article

import (
	"context"
	"log/slog"
	"time"

	"github.com/veloura/veloura/internal/platform/apperr"
	"github.com/veloura/veloura/internal/platform/validate"
	"github.com/veloura/veloura/pkg/pagination"
	"github.com/veloura/veloura/pkg/slug"
)

// # Service Layer

// Service holds the editorial business rules.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new editorial [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns a page of articles. Storefront callers see published entries
// only; the back-office passes publishedOnly=false to include drafts.
func (service *Service) List(context context.Context, publishedOnly bool, page pagination.Params) ([]*Article, pagination.Meta, error) {
	articles, total, err := service.repo.List(context, publishedOnly, page)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return articles, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// GetBySlug resolves a public article URL. Drafts are hidden from readers
// who are not staff.
func (service *Service) GetBySlug(context context.Context, articleSlug string, includeDrafts bool) (*Article, error) {
	article, err := service.repo.FindBySlug(context, articleSlug)
	if err != nil {
		return nil, err
	}

	if !article.IsPublished && !includeDrafts {
		return nil, apperr.NotFound("article")
	}

	return article, nil
}

/*
Create drafts a new article.

Description: The slug derives from the title. Publishing at creation time
stamps PublishedAt immediately.

Parameters:
  - context: context.Context
  - article: *Article (AuthorID set from the authenticated staff user)

Returns:
  - error: Validation failures or apperr.Conflict on duplicate slugs
*/
func (service *Service) Create(context context.Context, article *Article) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, article.Title).MaxLen(FieldTitle, article.Title, 200)
	validator.Required(FieldBody, article.Body)
	validator.MaxLen(FieldExcerpt, article.Excerpt, 500)
	if err := validator.Err(); err != nil {
		return err
	}

	article.Slug = slug.From(article.Title)
	if article.IsPublished {
		now := time.Now()
		article.PublishedAt = &now
	}

	if err := service.repo.Create(context, article); err != nil {
		return err
	}

	service.logger.Info("article_created",
		slog.String("slug", article.Slug),
		slog.Bool("published", article.IsPublished),
	)
	return nil
}

/*
Update overwrites an article's content and publication state.

Description: The first transition into the published state stamps
PublishedAt; re-publishing keeps the original timestamp so feeds stay stable.

Parameters:
  - context: context.Context
  - id: int64
  - article: *Article

Returns:
  - error: Not found, validation, or storage failures
*/
func (service *Service) Update(context context.Context, id int64, article *Article) error {
	existing, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, article.Title).MaxLen(FieldTitle, article.Title, 200)
	validator.Required(FieldBody, article.Body)
	validator.MaxLen(FieldExcerpt, article.Excerpt, 500)
	if err := validator.Err(); err != nil {
		return err
	}

	article.ID = id
	article.AuthorID = existing.AuthorID
	article.Slug = slug.From(article.Title)
	article.PublishedAt = existing.PublishedAt
	if article.IsPublished && existing.PublishedAt == nil {
		now := time.Now()
		article.PublishedAt = &now
	}

	if err := service.repo.Update(context, article); err != nil {
		return err
	}

	service.logger.Info("article_updated", slog.Int64("article_id", id))
	return nil
}

// Delete removes an article permanently.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("article_deleted", slog.Int64("article_id", id))
	return nil
}
