// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/internal/platform/dberr"
)

// # Shared Mapping

// UserSelectColumns is the column list matching [ScanUser], for reuse by
// other repositories reading users.account.
func UserSelectColumns() string {
	return strings.Join(schema.UserAccount.Columns(), ", ")
}

// ScanUser hydrates a [User] from a row selected with [UserSelectColumns].
func ScanUser(row pgx.Row) (*User, error) {
	user := &User{}
	destinations := []any{
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.Role,
		&user.IsSuperuser,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	}
	if err := row.Scan(destinations...); err != nil {
		return nil, err
	}
	return user, nil
}

// WrapUserError maps storage errors on users.account, naming which unique
// field collided.
func WrapUserError(err error) error {
	switch {
	case dberr.IsUniqueViolation(err, schema.UserAccount.UsernameKey):
		return apperr.Conflict("A user with that username already exists").WithCause(err)
	case dberr.IsUniqueViolation(err, schema.UserAccount.EmailKey):
		return apperr.Conflict("A user with that email already exists").WithCause(err)
	}
	return dberr.Wrap(err, "User")
}

// # User Repository

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of [UserRepository].
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

func (repository *PostgresUserRepository) findBy(context context.Context, column, value string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		UserSelectColumns(), schema.UserAccount.Table, column)

	user, err := ScanUser(repository.pool.QueryRow(context, query, value))
	if err != nil {
		return nil, WrapUserError(err)
	}
	return user, nil
}

// FindByID retrieves a user by primary key.
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findBy(context, schema.UserAccount.ID, id)
}

// FindByUsername retrieves a user by exact username.
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findBy(context, schema.UserAccount.Username, username)
}

// FindByEmail retrieves a user by exact email.
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findBy(context, schema.UserAccount.Email, email)
}

/*
Create persists a new account into users.account.

Parameters:
  - context: context.Context
  - user: *User (ID, Username, Email and Role must be set)

Returns:
  - error: apperr.Conflict naming the colliding field, or storage failures
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	cols := schema.UserAccount
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s`,
		cols.Table,
		cols.ID, cols.Username, cols.Email, cols.FirstName, cols.LastName, cols.Bio, cols.Role, cols.IsSuperuser,
		cols.CreatedAt, cols.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.ID, user.Username, user.Email, user.FirstName, user.LastName, user.Bio, user.Role, user.IsSuperuser,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return WrapUserError(err)
	}
	return nil
}

// ConsumeLogin stamps lastloginat if it still holds the previous value.
func (repository *PostgresUserRepository) ConsumeLogin(context context.Context, id string, previous *time.Time, at time.Time) (bool, error) {
	cols := schema.UserAccount
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $3, %s = NOW()
		WHERE %s = $1 AND %s IS NOT DISTINCT FROM $2`,
		cols.Table, cols.LastLoginAt, cols.UpdatedAt,
		cols.ID, cols.LastLoginAt,
	)

	tag, err := repository.pool.Exec(context, query, id, previous, at)
	if err != nil {
		return false, dberr.Wrap(err, "User")
	}
	return tag.RowsAffected() == 1, nil
}
