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

// PostgresCommentRepository implements [CommentRepository] using pgx.
type PostgresCommentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository constructs a PostgreSQL backed comment store.
func NewCommentRepository(pool *pgxpool.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{pool: pool}
}

func selectComment() string {
	c, a := schema.SocialComment, schema.UserAccount
	return fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, a.%s, c.%s, c.%s, c.%s
		FROM %s c
		JOIN %s a ON a.%s = c.%s`,
		c.ID, c.ReviewID, c.AuthorID, a.Username, c.Text, c.PubDate, c.UpdatedAt,
		c.Table,
		a.Table, a.ID, c.AuthorID,
	)
}

func scanComment(row pgx.Row) (*Comment, error) {
	comment := &Comment{}
	destinations := []any{
		&comment.ID, &comment.ReviewID, &comment.AuthorID, &comment.Author,
		&comment.Text, &comment.PubDate, &comment.UpdatedAt,
	}
	if err := row.Scan(destinations...); err != nil {
		return nil, err
	}
	return comment, nil
}

// List retrieves a page of comments for a review, oldest first.
func (repository *PostgresCommentRepository) List(context context.Context, reviewID string, page pagination.Params) ([]*Comment, int, error) {
	c := schema.SocialComment
	query := selectComment() + fmt.Sprintf(`
		WHERE c.%s = $1
		ORDER BY c.%s, c.%s
		LIMIT $2 OFFSET $3`,
		c.ReviewID,
		c.PubDate, c.ID,
	)

	// Retrieve total count for metadata
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, c.Table, c.ReviewID)
	if err := repository.pool.QueryRow(context, countQuery, reviewID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceComment)
	}

	rows, err := repository.pool.Query(context, query, reviewID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceComment)
	}
	defer rows.Close()

	comments := make([]*Comment, 0, page.Limit)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, resourceComment)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceComment)
	}
	return comments, total, nil
}

// FindByID retrieves a comment of the given review.
func (repository *PostgresCommentRepository) FindByID(context context.Context, reviewID, commentID string) (*Comment, error) {
	c := schema.SocialComment
	query := selectComment() + fmt.Sprintf(` WHERE c.%s = $1 AND c.%s = $2`, c.ReviewID, c.ID)

	comment, err := scanComment(repository.pool.QueryRow(context, query, reviewID, commentID))
	if err != nil {
		return nil, dberr.Wrap(err, resourceComment)
	}
	return comment, nil
}

// Create inserts a comment. A review deleted meanwhile surfaces as NotFound.
func (repository *PostgresCommentRepository) Create(context context.Context, comment *Comment) error {
	c := schema.SocialComment
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s`,
		c.Table, c.ID, c.ReviewID, c.AuthorID, c.Text,
		c.PubDate, c.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		comment.ID, comment.ReviewID, comment.AuthorID, comment.Text,
	).Scan(&comment.PubDate, &comment.UpdatedAt)
	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound(resourceReview).WithCause(err)
		}
		return dberr.Wrap(err, resourceComment)
	}
	return nil
}

// Update overwrites the text of a comment.
func (repository *PostgresCommentRepository) Update(context context.Context, comment *Comment) error {
	c := schema.SocialComment
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		c.Table, c.Text, c.UpdatedAt,
		c.ID,
		c.UpdatedAt,
	)

	if err := repository.pool.QueryRow(context, query, comment.ID, comment.Text).Scan(&comment.UpdatedAt); err != nil {
		return dberr.Wrap(err, resourceComment)
	}
	return nil
}

// Delete removes a comment by id.
func (repository *PostgresCommentRepository) Delete(context context.Context, commentID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.SocialComment.Table, schema.SocialComment.ID)

	tag, err := repository.pool.Exec(context, query, commentID)
	if err != nil {
		return dberr.Wrap(err, resourceComment)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceComment)
	}
	return nil
}
