// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr translates PostgreSQL errors into [apperr.AppError] values.
//
// Repositories call [Wrap] on every error leaving the storage layer so that
// services and handlers only ever see the application taxonomy.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
)

// Wrap inspects a database error and converts it into an [apperr.AppError].
//
// Mapping:
//   - pgx.ErrNoRows        -> NotFound(resource)
//   - unique_violation      -> Conflict
//   - foreign_key_violation -> Conflict (row still referenced, or parent missing)
//   - check_violation       -> ValidationError
//   - anything else         -> Internal
//
// Errors that already are application errors pass through unchanged.
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	if apperr.IsAppError(err) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(fmt.Sprintf("%s already exists", resource)).WithCause(err)
		case pgerrcode.ForeignKeyViolation:
			return apperr.Conflict(fmt.Sprintf("%s is referenced by other records", resource)).WithCause(err)
		case pgerrcode.CheckViolation, pgerrcode.StringDataRightTruncationDataException:
			return apperr.ValidationError(fmt.Sprintf("%s violates a data constraint", resource)).WithCause(err)
		case pgerrcode.InvalidTextRepresentation:
			return apperr.NotFound(resource).WithCause(err)
		}
	}

	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a unique-constraint violation,
// optionally restricted to a named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgError *pgconn.PgError
	if !errors.As(err, &pgError) || pgError.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgError.ConstraintName == constraint
}

// IsForeignKeyViolation reports whether err is a referential-integrity failure,
// such as deleting a row that an ON DELETE RESTRICT key still points to.
func IsForeignKeyViolation(err error) bool {
	var pgError *pgconn.PgError
	if !errors.As(err, &pgError) {
		return false
	}
	return pgError.Code == pgerrcode.ForeignKeyViolation || pgError.Code == pgerrcode.RestrictViolation
}
