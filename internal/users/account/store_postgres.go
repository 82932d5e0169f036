// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
	"github.com/taibuivan/yamdb/internal/users/auth"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/query"
)

// PostgresAccountRepository implements [AccountRepository] using pgx.
//
// Lookups and inserts are shared with the identity repository.
type PostgresAccountRepository struct {
	*auth.PostgresUserRepository
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of [AccountRepository].
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{
		PostgresUserRepository: auth.NewUserRepository(pool),
		pool:                   pool,
	}
}

/*
List retrieves a page of accounts.

Parameters:
  - context: context.Context
  - filter: Filter (optional username substring)
  - page: pagination.Params

Returns:
  - []*auth.User: Accounts ordered by username
  - int: Total number of matching accounts
  - error: Storage failures
*/
func (repository *PostgresAccountRepository) List(context context.Context, filter Filter, page pagination.Params) ([]*auth.User, int, error) {
	cols := schema.UserAccount
	where := fmt.Sprintf(` WHERE ($1::text = '' OR %s ILIKE $2)`, cols.Username)
	pattern := query.Contains(filter.Search)

	// Retrieve total count for metadata
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, cols.Table) + where
	if err := repository.pool.QueryRow(context, countQuery, filter.Search, pattern).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}

	pageQuery := fmt.Sprintf(`SELECT %s FROM %s`, auth.UserSelectColumns(), cols.Table) + where +
		fmt.Sprintf(` ORDER BY %s LIMIT $3 OFFSET $4`, cols.Username)

	rows, err := repository.pool.Query(context, pageQuery, filter.Search, pattern, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}
	defer rows.Close()

	users := make([]*auth.User, 0, page.Limit)
	for rows.Next() {
		user, err := auth.ScanUser(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "User")
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "User")
	}
	return users, total, nil
}

/*
Update persists the mutable profile fields and role of an account.

Returns:
  - error: apperr.NotFound, apperr.Conflict on a username/email clash, or storage failures
*/
func (repository *PostgresAccountRepository) Update(context context.Context, user *auth.User) error {
	cols := schema.UserAccount
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		cols.Table,
		cols.Username, cols.Email, cols.FirstName, cols.LastName, cols.Bio, cols.Role, cols.UpdatedAt,
		cols.ID,
		cols.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.ID, user.Username, user.Email, user.FirstName, user.LastName, user.Bio, user.Role,
	).Scan(&user.UpdatedAt)
	if err != nil {
		return auth.WrapUserError(err)
	}
	return nil
}

// Delete hard-deletes an account. Reviews and comments cascade.
func (repository *PostgresAccountRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.UserAccount.Table, schema.UserAccount.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}
