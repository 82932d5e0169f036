// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
)

/*
TestConstructors verifies the HTTP status and code of each error kind.
*/
func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		status int
		code   string
	}{
		{"not found", apperr.NotFound("Title"), http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", apperr.Unauthorized("login"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", apperr.Forbidden("no"), http.StatusForbidden, "FORBIDDEN"},
		{"conflict is a bad request", apperr.Conflict("dup"), http.StatusBadRequest, "CONFLICT"},
		{"validation", apperr.ValidationError("bad"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"rate limited", apperr.RateLimited(3), http.StatusTooManyRequests, "RATE_LIMITED"},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}

	assert.Equal(t, "Title not found", apperr.NotFound("Title").Message)
}

/*
TestAs verifies that wrapped application errors can be recovered from a chain.
*/
func TestAs(t *testing.T) {
	base := apperr.FieldInvalid("score", "Score must be between 1 and 10")
	wrapped := fmt.Errorf("review: %w", base)

	found := apperr.As(wrapped)
	require.NotNil(t, found)
	assert.Equal(t, "score", found.Details[0].Field)
	assert.True(t, apperr.IsAppError(wrapped))
	assert.True(t, apperr.HasCode(wrapped, "VALIDATION_ERROR"))
	assert.Nil(t, apperr.As(errors.New("plain")))

	cause := errors.New("pg down")
	internal := apperr.Internal(cause)
	assert.ErrorIs(t, internal, cause)
}
