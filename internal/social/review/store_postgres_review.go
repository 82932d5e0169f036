// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// PostgresReviewRepository implements [ReviewRepository] using pgx.
type PostgresReviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository constructs a PostgreSQL backed review store.
func NewReviewRepository(pool *pgxpool.Pool) *PostgresReviewRepository {
	return &PostgresReviewRepository{pool: pool}
}

// selectReview projects a review with its author's username.
func selectReview() string {
	r, a := schema.SocialReview, schema.UserAccount
	return fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, a.%s, r.%s, r.%s, r.%s, r.%s
		FROM %s r
		JOIN %s a ON a.%s = r.%s`,
		r.ID, r.TitleID, r.AuthorID, a.Username, r.Text, r.Score, r.PubDate, r.UpdatedAt,
		r.Table,
		a.Table, a.ID, r.AuthorID,
	)
}

func scanReview(row pgx.Row) (*Review, error) {
	review := &Review{}
	destinations := []any{
		&review.ID, &review.TitleID, &review.AuthorID, &review.Author,
		&review.Text, &review.Score, &review.PubDate, &review.UpdatedAt,
	}
	if err := row.Scan(destinations...); err != nil {
		return nil, err
	}
	return review, nil
}

// querier is the read side shared by pgxpool.Pool and pgx.Tx.
type querier interface {
	QueryRow(context context.Context, sql string, args ...any) pgx.Row
}

// titleExists checks the parent title. lock is an optional row-lock clause.
func titleExists(context context.Context, db querier, titleID, lock string) error {
	query := fmt.Sprintf(`SELECT 1 FROM %s WHERE %s = $1 %s`,
		schema.CatalogTitle.Table, schema.CatalogTitle.ID, lock)

	var one int
	if err := db.QueryRow(context, query, titleID).Scan(&one); err != nil {
		return dberr.Wrap(err, resourceTitle)
	}
	return nil
}

// TitleExists checks the parent title.
func (repository *PostgresReviewRepository) TitleExists(context context.Context, titleID string) error {
	return titleExists(context, repository.pool, titleID, "")
}

/*
List retrieves a page of reviews for a title, newest first.

Returns:
  - []*Review: The page
  - int: Total number of reviews of the title
  - error: Storage failures
*/
func (repository *PostgresReviewRepository) List(context context.Context, titleID string, page pagination.Params) ([]*Review, int, error) {
	r := schema.SocialReview
	query := selectReview() + fmt.Sprintf(`
		WHERE r.%s = $1
		ORDER BY r.%s DESC, r.%s
		LIMIT $2 OFFSET $3`,
		r.TitleID,
		r.PubDate, r.ID,
	)

	// Retrieve total count for metadata
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, r.Table, r.TitleID)
	if err := repository.pool.QueryRow(context, countQuery, titleID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceReview)
	}

	rows, err := repository.pool.Query(context, query, titleID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceReview)
	}
	defer rows.Close()

	reviews := make([]*Review, 0, page.Limit)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceReview)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceReview)
	}
	return reviews, total, nil
}

// FindByID retrieves a review of the given title.
func (repository *PostgresReviewRepository) FindByID(context context.Context, titleID, reviewID string) (*Review, error) {
	r := schema.SocialReview
	query := selectReview() + fmt.Sprintf(` WHERE r.%s = $1 AND r.%s = $2`, r.TitleID, r.ID)

	review, err := scanReview(repository.pool.QueryRow(context, query, titleID, reviewID))
	if err != nil {
		return nil, dberr.Wrap(err, resourceReview)
	}
	return review, nil
}

/*
Create inserts a review in one transaction.

Description: The title row is share-locked so it cannot be deleted
mid-insert. The explicit duplicate check gives the common case a clean error;
the unique constraint covers concurrent inserts.

Returns:
  - error: NotFound (title), Conflict (second review by the author), or storage failures
*/
func (repository *PostgresReviewRepository) Create(context context.Context, review *Review) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, resourceReview)
	}
	defer transaction.Rollback(context)

	// ── 1. Parent Title ──────────────────────────────────────────────────
	if err := titleExists(context, transaction, review.TitleID, "FOR SHARE"); err != nil {
		return err
	}

	// ── 2. Duplicate Probe ───────────────────────────────────────────────
	r := schema.SocialReview
	duplicate := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		r.Table, r.TitleID, r.AuthorID)

	var exists bool
	if err := transaction.QueryRow(context, duplicate, review.TitleID, review.AuthorID).Scan(&exists); err != nil {
		return dberr.Wrap(err, resourceReview)
	}
	if exists {
		return apperr.Conflict(duplicateReviewMessage)
	}

	// ── 3. Insert ────────────────────────────────────────────────────────
	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s`,
		r.Table, r.ID, r.TitleID, r.AuthorID, r.Text, r.Score,
		r.PubDate, r.UpdatedAt,
	)

	err = transaction.QueryRow(context, insert,
		review.ID, review.TitleID, review.AuthorID, review.Text, review.Score,
	).Scan(&review.PubDate, &review.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err, r.TitleAuthorKey) {
			return apperr.Conflict(duplicateReviewMessage).WithCause(err)
		}
		return dberr.Wrap(err, resourceReview)
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, resourceReview)
	}
	return nil
}

// Update overwrites the text and score of a review.
func (repository *PostgresReviewRepository) Update(context context.Context, review *Review) error {
	r := schema.SocialReview
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		r.Table, r.Text, r.Score, r.UpdatedAt,
		r.ID,
		r.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, review.ID, review.Text, review.Score).Scan(&review.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resourceReview)
	}
	return nil
}

// Delete removes a review by id.
func (repository *PostgresReviewRepository) Delete(context context.Context, reviewID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.SocialReview.Table, schema.SocialReview.ID)

	tag, err := repository.pool.Exec(context, query, reviewID)
	if err != nil {
		return dberr.Wrap(err, resourceReview)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceReview)
	}
	return nil
}
