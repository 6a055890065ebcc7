package tag

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veloura/veloura/internal/platform/apperr"
	"github.com/veloura/veloura/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListTags(context context.Context) ([]*Tag, error) {
	query := `
		SELECT t.id, t.name, t.slug, t.createdat,
		       (SELECT COUNT(*) FROM store.product_tag pt WHERE pt.tagid = t.id) AS product_count
		FROM store.tag t
		ORDER BY t.name ASC
	`

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tags")
	}
	defer rows.Close()

	tags := make([]*Tag, 0)
	for rows.Next() {
		t := &Tag{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.ProductCount); err != nil {
			return nil, dberr.Wrap(err, "scan_tag")
		}
		tags = append(tags, t)
	}

	return tags, nil
}

func (repository *PostgresRepository) GetTagBySlug(context context.Context, slug string) (*Tag, error) {
	query := `SELECT id, name, slug, createdat FROM store.tag WHERE slug = $1`

	t := &Tag{}
	err := repository.db.QueryRow(context, query, slug).Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("tag")
		}
		return nil, dberr.Wrap(err, "get_tag_by_slug")
	}

	return t, nil
}

func (repository *PostgresRepository) CreateTag(context context.Context, t *Tag) error {
	query := `INSERT INTO store.tag (name, slug) VALUES ($1, $2) RETURNING id, createdat`

	err := repository.db.QueryRow(context, query, t.Name, t.Slug).Scan(&t.ID, &t.CreatedAt)
	return dberr.Wrap(err, "create_tag")
}

func (repository *PostgresRepository) RenameTag(context context.Context, t *Tag) error {
	query := `UPDATE store.tag SET name = $1, slug = $2 WHERE id = $3`

	result, err := repository.db.Exec(context, query, t.Name, t.Slug, t.ID)
	if err != nil {
		return dberr.Wrap(err, "rename_tag")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("tag")
	}
	return nil
}

func (repository *PostgresRepository) DeleteTag(context context.Context, id int64) error {
	result, err := repository.db.Exec(context, `DELETE FROM store.tag WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_tag")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("tag")
	}
	return nil
}
