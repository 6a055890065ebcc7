// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package article

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veloura/veloura/internal/platform/apperr"
	"github.com/veloura/veloura/internal/platform/dberr"
	"github.com/veloura/veloura/pkg/pagination"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed article store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const articleColumns = `id, title, slug, excerpt, body, coverimageurl, authorid,
	ispublished, publishedat, createdat, updatedat`

func (repository *PostgresRepository) List(context context.Context, publishedOnly bool, page pagination.Params) ([]*Article, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT ` + articleColumns + `,
			COUNT(*) OVER() AS total_count
		FROM content.article
		WHERE 1=1
	`)

	if publishedOnly {
		queryBuilder.WriteString(" AND ispublished = TRUE")
	}

	// Drafts have no publication date, so fall back to creation time.
	queryBuilder.WriteString(" ORDER BY COALESCE(publishedat, createdat) DESC, id DESC")
	queryBuilder.WriteString(" LIMIT $1 OFFSET $2")

	rows, err := repository.db.Query(context, queryBuilder.String(), page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_articles")
	}
	defer rows.Close()

	var articles []*Article
	var totalCount int

	for rows.Next() {
		a := &Article{}
		err := rows.Scan(
			&a.ID, &a.Title, &a.Slug, &a.Excerpt, &a.Body, &a.CoverImageURL, &a.AuthorID,
			&a.IsPublished, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_article")
		}
		articles = append(articles, a)
	}

	return articles, totalCount, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Article, error) {
	query := `SELECT ` + articleColumns + ` FROM content.article WHERE id = $1`
	return repository.scanOne(context, query, id)
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Article, error) {
	query := `SELECT ` + articleColumns + ` FROM content.article WHERE slug = $1`
	return repository.scanOne(context, query, slug)
}

func (repository *PostgresRepository) scanOne(context context.Context, query string, arg any) (*Article, error) {
	a := &Article{}
	err := repository.db.QueryRow(context, query, arg).Scan(
		&a.ID, &a.Title, &a.Slug, &a.Excerpt, &a.Body, &a.CoverImageURL, &a.AuthorID,
		&a.IsPublished, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("article")
		}
		return nil, dberr.Wrap(err, "find_article")
	}
	return a, nil
}

func (repository *PostgresRepository) Create(context context.Context, a *Article) error {
	query := `
		INSERT INTO content.article (
			title, slug, excerpt, body, coverimageurl, authorid, ispublished, publishedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, createdat, updatedat
	`

	err := repository.db.QueryRow(context, query,
		a.Title, a.Slug, a.Excerpt, a.Body, a.CoverImageURL, a.AuthorID, a.IsPublished, a.PublishedAt,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)

	return dberr.Wrap(err, "create_article")
}

func (repository *PostgresRepository) Update(context context.Context, a *Article) error {
	query := `
		UPDATE content.article
		SET title = $1, slug = $2, excerpt = $3, body = $4, coverimageurl = $5,
			ispublished = $6, publishedat = $7, updatedat = NOW()
		WHERE id = $8
	`

	result, err := repository.db.Exec(context, query,
		a.Title, a.Slug, a.Excerpt, a.Body, a.CoverImageURL,
		a.IsPublished, a.PublishedAt, a.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "update_article")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("article")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	result, err := repository.db.Exec(context, `DELETE FROM content.article WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_article")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("article")
	}
	return nil
}
