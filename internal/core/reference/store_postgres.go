// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/query"
)

// PostgresTermRepository implements [TermRepository] for one slug-keyed table.
type PostgresTermRepository struct {
	pool     *pgxpool.Pool
	table    schema.CatalogTaxonomyTable
	resource string
}

// NewCategoryRepository returns the repository backing catalog.category.
func NewCategoryRepository(pool *pgxpool.Pool) *PostgresTermRepository {
	return &PostgresTermRepository{pool: pool, table: schema.CatalogCategory, resource: ResourceCategory}
}

// NewGenreRepository returns the repository backing catalog.genre.
func NewGenreRepository(pool *pgxpool.Pool) *PostgresTermRepository {
	return &PostgresTermRepository{pool: pool, table: schema.CatalogGenre, resource: ResourceGenre}
}

/*
List retrieves a page of terms ordered by name.

Parameters:
  - context: context.Context
  - filter: Filter (optional name substring)
  - page: pagination.Params

Returns:
  - []Term: The page
  - int: Total number of matching terms
  - error: Storage failures
*/
func (repository *PostgresTermRepository) List(context context.Context, filter Filter, page pagination.Params) ([]Term, int, error) {
	cols := repository.table
	where := fmt.Sprintf(` WHERE ($1::text = '' OR %s ILIKE $2)`, cols.Name)
	pattern := query.Contains(filter.Search)

	// Retrieve total count for metadata
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, cols.Table) + where
	if err := repository.pool.QueryRow(context, countQuery, filter.Search, pattern).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, repository.resource)
	}

	pageQuery := fmt.Sprintf(`SELECT %s, %s FROM %s`, cols.Name, cols.Slug, cols.Table) + where +
		fmt.Sprintf(` ORDER BY %s, %s LIMIT $3 OFFSET $4`, cols.Name, cols.Slug)

	rows, err := repository.pool.Query(context, pageQuery, filter.Search, pattern, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, repository.resource)
	}
	defer rows.Close()

	terms := make([]Term, 0, page.Limit)
	for rows.Next() {
		var term Term
		if err := rows.Scan(&term.Name, &term.Slug); err != nil {
			return nil, 0, dberr.Wrap(err, repository.resource)
		}
		terms = append(terms, term)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, repository.resource)
	}
	return terms, total, nil
}

// Create inserts a term.
func (repository *PostgresTermRepository) Create(context context.Context, term Term) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		repository.table.Table, repository.table.Slug, repository.table.Name)

	if _, err := repository.pool.Exec(context, query, term.Slug, term.Name); err != nil {
		if dberr.IsUniqueViolation(err, "") {
			return apperr.Conflict(fmt.Sprintf("%s with slug %q already exists", repository.resource, term.Slug)).WithCause(err)
		}
		return dberr.Wrap(err, repository.resource)
	}
	return nil
}

// Delete removes a term by slug.
func (repository *PostgresTermRepository) Delete(context context.Context, slug string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, repository.table.Table, repository.table.Slug)

	tag, err := repository.pool.Exec(context, query, slug)
	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.Conflict(fmt.Sprintf("%s %q is still used by titles", repository.resource, slug)).WithCause(err)
		}
		return dberr.Wrap(err, repository.resource)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(repository.resource)
	}
	return nil
}

// Existing returns the slugs from the input that exist in the table.
func (repository *PostgresTermRepository) Existing(context context.Context, slugs []string) ([]string, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1)`,
		repository.table.Slug, repository.table.Table, repository.table.Slug)

	rows, err := repository.pool.Query(context, query, slugs)
	if err != nil {
		return nil, dberr.Wrap(err, repository.resource)
	}

	found, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, dberr.Wrap(err, repository.resource)
	}
	return found, nil
}
