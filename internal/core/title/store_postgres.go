// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/core/reference"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/query"
)

// resourceTitle labels storage errors.
const resourceTitle = "Title"

// PostgresTitleRepository implements [TitleRepository] using pgx.
type PostgresTitleRepository struct {
	pool *pgxpool.Pool
}

// NewTitleRepository constructs a PostgreSQL backed title store.
func NewTitleRepository(pool *pgxpool.Pool) *PostgresTitleRepository {
	return &PostgresTitleRepository{pool: pool}
}

// selectTitle is the read projection shared by List and FindByID.
//
// The category comes from a JOIN, the genres from a json_agg sub-query
// and the rating from an AVG sub-query, so one row carries the whole aggregate.
func selectTitle() string {
	t, c, g, tg, r := schema.CatalogTitle, schema.CatalogCategory, schema.CatalogGenre, schema.CatalogTitleGenre, schema.SocialReview

	return fmt.Sprintf(`
		SELECT
			t.%s, t.%s, t.%s, t.%s, t.%s, t.%s,
			c.%s, c.%s,
			COALESCE((
				SELECT json_agg(json_build_object('name', g.%s, 'slug', g.%s) ORDER BY g.%s)
				FROM %s g
				JOIN %s tg ON tg.%s = g.%s
				WHERE tg.%s = t.%s
			), '[]') AS genres,
			(SELECT AVG(r.%s)::float8 FROM %s r WHERE r.%s = t.%s) AS rating`,
		t.ID, t.Name, t.Year, t.Description, t.CreatedAt, t.UpdatedAt,
		c.Name, c.Slug,
		g.Name, g.Slug, g.Name,
		g.Table,
		tg.Table, tg.GenreSlug, g.Slug,
		tg.TitleID, t.ID,
		r.Score, r.Table, r.TitleID, t.ID,
	)
}

// fromTitle is the FROM clause matching [selectTitle].
func fromTitle() string {
	return fmt.Sprintf(`
		FROM %s t
		JOIN %s c ON c.%s = t.%s`,
		schema.CatalogTitle.Table,
		schema.CatalogCategory.Table, schema.CatalogCategory.Slug, schema.CatalogTitle.CategorySlug,
	)
}

// scanTitle hydrates a [Title] from a row of [selectTitle].
func scanTitle(row pgx.Row) (*Title, error) {
	title := &Title{}
	var categoryName, categorySlug *string
	var genresJSON []byte

	destinations := []any{
		&title.ID, &title.Name, &title.Year, &title.Description, &title.CreatedAt, &title.UpdatedAt,
		&categoryName, &categorySlug,
		&genresJSON,
		&title.Rating,
	}
	if err := row.Scan(destinations...); err != nil {
		return nil, err
	}

	if categorySlug != nil {
		title.Category = &reference.Term{Name: *categoryName, Slug: *categorySlug}
	}
	if err := json.Unmarshal(genresJSON, &title.Genres); err != nil {
		return nil, fmt.Errorf("title: decode genres: %w", err)
	}
	return title, nil
}

/*
List returns a filtered, paginated slice of titles and the total count.

Parameters:
  - context: context.Context
  - filter: Filter (category, genre, name substring, year)
  - page: pagination.Params

Returns:
  - []*Title: Titles ordered by name, then id
  - int: Total count matching the filter
  - error: Storage failures
*/
func (repository *PostgresTitleRepository) List(context context.Context, filter Filter, page pagination.Params) ([]*Title, int, error) {
	t, tg := schema.CatalogTitle, schema.CatalogTitleGenre

	var whereBuilder strings.Builder
	var args []any
	argID := 1

	whereBuilder.WriteString(" WHERE TRUE")

	if filter.Category != "" {
		whereBuilder.WriteString(fmt.Sprintf(" AND t.%s = $%d", t.CategorySlug, argID))
		args = append(args, filter.Category)
		argID++
	}

	if filter.Genre != "" {
		whereBuilder.WriteString(fmt.Sprintf(" AND EXISTS (SELECT 1 FROM %s x WHERE x.%s = t.%s AND x.%s = $%d)",
			tg.Table, tg.TitleID, t.ID, tg.GenreSlug, argID))
		args = append(args, filter.Genre)
		argID++
	}

	if filter.Name != "" {
		whereBuilder.WriteString(fmt.Sprintf(" AND t.%s ILIKE $%d", t.Name, argID))
		args = append(args, query.Contains(filter.Name))
		argID++
	}

	if filter.Year != nil {
		whereBuilder.WriteString(fmt.Sprintf(" AND t.%s = $%d", t.Year, argID))
		args = append(args, *filter.Year)
		argID++
	}

	where := whereBuilder.String()

	// Retrieve total count for metadata
	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s t", t.Table) + where
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceTitle)
	}

	pageQuery := selectTitle() + fromTitle() + where +
		fmt.Sprintf(" ORDER BY t.%s ASC, t.%s ASC LIMIT $%d OFFSET $%d", t.Name, t.ID, argID, argID+1)
	pageArgs := append(args, page.Limit, page.Offset())

	rows, err := repository.pool.Query(context, pageQuery, pageArgs...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceTitle)
	}
	defer rows.Close()

	titles := make([]*Title, 0, page.Limit)
	for rows.Next() {
		title, err := scanTitle(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceTitle)
		}
		titles = append(titles, title)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceTitle)
	}
	return titles, total, nil
}

// FindByID retrieves a single title aggregate.
func (repository *PostgresTitleRepository) FindByID(context context.Context, id string) (*Title, error) {
	query := selectTitle() + fromTitle() + fmt.Sprintf(" WHERE t.%s = $1", schema.CatalogTitle.ID)

	title, err := scanTitle(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceTitle)
	}
	return title, nil
}

/*
Create persists a new title and its genre links in one transaction.

Returns:
  - error: Conflict if a referenced slug vanished meanwhile, or storage failures
*/
func (repository *PostgresTitleRepository) Create(context context.Context, record *Record) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, resourceTitle)
	}
	defer transaction.Rollback(context)

	t := schema.CatalogTitle
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)`,
		t.Table, t.ID, t.Name, t.Year, t.Description, t.CategorySlug,
	)

	if _, err := transaction.Exec(context, query,
		record.ID, record.Name, record.Year, record.Description, record.CategorySlug,
	); err != nil {
		return dberr.Wrap(err, resourceTitle)
	}

	if err := replaceGenres(context, transaction, record.ID, record.GenreSlugs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, resourceTitle)
	}
	return nil
}

/*
Update overwrites a title and replaces its genre links in one transaction.

Returns:
  - error: NotFound, Conflict if a referenced slug vanished meanwhile, or storage failures
*/
func (repository *PostgresTitleRepository) Update(context context.Context, record *Record) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, resourceTitle)
	}
	defer transaction.Rollback(context)

	t := schema.CatalogTitle
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1`,
		t.Table,
		t.Name, t.Year, t.Description, t.CategorySlug, t.UpdatedAt,
		t.ID,
	)

	tag, err := transaction.Exec(context, query,
		record.ID, record.Name, record.Year, record.Description, record.CategorySlug,
	)
	if err != nil {
		return dberr.Wrap(err, resourceTitle)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceTitle)
	}

	if err := replaceGenres(context, transaction, record.ID, record.GenreSlugs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, resourceTitle)
	}
	return nil
}

// Delete removes a title by id.
func (repository *PostgresTitleRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogTitle.Table, schema.CatalogTitle.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceTitle)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceTitle)
	}
	return nil
}

// replaceGenres clears the title's genre links and queues the new ones in a batch.
func replaceGenres(context context.Context, transaction pgx.Tx, titleID string, genreSlugs []string) error {
	tg := schema.CatalogTitleGenre

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, tg.Table, tg.TitleID)
	if _, err := transaction.Exec(context, deleteQuery, titleID); err != nil {
		return dberr.Wrap(err, resourceTitle)
	}

	if len(genreSlugs) == 0 {
		return nil
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`, tg.Table, tg.TitleID, tg.GenreSlug)
	batch := &pgx.Batch{}
	for _, genreSlug := range genreSlugs {
		batch.Queue(insertQuery, titleID, genreSlug)
	}

	if err := transaction.SendBatch(context, batch).Close(); err != nil {
		return dberr.Wrap(err, resourceTitle)
	}
	return nil
}
