package category

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

const categoryColumns = `id, parentid, name, slug, description, position, createdat, updatedat`

func (repository *PostgresRepository) ListAll(context context.Context) ([]*Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM store.category
		ORDER BY position ASC, name ASC
	`

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.ParentID, &c.Name, &c.Slug, &c.Description, &c.Position, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, c)
	}

	return categories, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM store.category WHERE id = $1`
	return repository.scanOne(context, query, id)
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM store.category WHERE slug = $1`
	return repository.scanOne(context, query, slug)
}

func (repository *PostgresRepository) scanOne(context context.Context, query string, arg any) (*Category, error) {
	c := &Category{}
	err := repository.db.QueryRow(context, query, arg).Scan(
		&c.ID, &c.ParentID, &c.Name, &c.Slug, &c.Description, &c.Position, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("category")
		}
		return nil, dberr.Wrap(err, "find_category")
	}
	return c, nil
}

func (repository *PostgresRepository) Create(context context.Context, c *Category) error {
	query := `
		INSERT INTO store.category (parentid, name, slug, description, position)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, createdat, updatedat
	`

	err := repository.db.QueryRow(context, query,
		c.ParentID, c.Name, c.Slug, c.Description, c.Position,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	return dberr.Wrap(err, "create_category")
}

func (repository *PostgresRepository) Update(context context.Context, c *Category) error {
	query := `
		UPDATE store.category
		SET parentid = $1, name = $2, slug = $3, description = $4, position = $5, updatedat = NOW()
		WHERE id = $6
	`

	result, err := repository.db.Exec(context, query,
		c.ParentID, c.Name, c.Slug, c.Description, c.Position, c.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "update_category")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("category")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	// Children are promoted to the root rather than cascading the delete.
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "delete_category_begin")
	}
	defer transaction.Rollback(context)

	if _, err := transaction.Exec(context, `UPDATE store.category SET parentid = NULL WHERE parentid = $1`, id); err != nil {
		return dberr.Wrap(err, "promote_children")
	}

	result, err := transaction.Exec(context, `DELETE FROM store.category WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("category")
	}

	return dberr.Wrap(transaction.Commit(context), "delete_category_commit")
}

func (repository *PostgresRepository) HasProducts(context context.Context, id int64) (bool, error) {
	var exists bool
	err := repository.db.QueryRow(context,
		`SELECT EXISTS(SELECT 1 FROM store.product WHERE categoryid = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, dberr.Wrap(err, "category_has_products")
	}
	return exists, nil
}
