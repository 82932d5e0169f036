// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/users/auth"
)

var codePattern = regexp.MustCompile(`confirmation code: ([0-9a-f]+)`)

type fixture struct {
	service *auth.Service
	users   *memoryUsers
	mailer  *recordingSender
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	codes, err := sec.NewConfirmationCodes("test-secret")
	require.NoError(t, err)

	users := newMemoryUsers()
	mailer := &recordingSender{}
	service := auth.NewService(users, codes, stubTokens{}, mailer, auth.Options{
		MailFrom:       "noreply@yamdb.local",
		AccessTokenTTL: time.Hour,
	})
	return fixture{service: service, users: users, mailer: mailer}
}

func (f fixture) lastCode(t *testing.T) string {
	t.Helper()

	match := codePattern.FindStringSubmatch(f.mailer.last().Body)
	require.Len(t, match, 2)
	return match[1]
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()

	appError := apperr.As(err)
	require.NotNil(t, appError)
	require.NotEmpty(t, appError.Details)
	return appError.Details[0].Field
}

/*
TestSignup_Validation verifies that malformed identities are rejected before storage.
*/
func TestSignup_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input auth.SignupInput
		field string
	}{
		{"reserved username", auth.SignupInput{Username: "me", Email: "me@x.io"}, auth.FieldUsername},
		{"bad character", auth.SignupInput{Username: "al ice", Email: "a@x.io"}, auth.FieldUsername},
		{"missing username", auth.SignupInput{Email: "a@x.io"}, auth.FieldUsername},
		{"missing email", auth.SignupInput{Username: "alice"}, auth.FieldEmail},
		{"bad email", auth.SignupInput{Username: "alice", Email: "not-an-email"}, auth.FieldEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.service.Signup(context.Background(), tt.input)

			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
			assert.Equal(t, tt.field, fieldOf(t, err))
			assert.Empty(t, f.users.users)
		})
	}
}

/*
TestSignup_CodeToToken verifies the full signup and token exchange flow.
*/
func TestSignup_CodeToToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 1. Signup creates the account and mails a code
	user, err := f.service.Signup(ctx, auth.SignupInput{Username: "alice", Email: "a@x.io"})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, user.Role)

	sent := f.mailer.last()
	assert.Equal(t, constants.ConfirmationSubject, sent.Subject)
	assert.Equal(t, []string{"a@x.io"}, sent.To)
	assert.Equal(t, "noreply@yamdb.local", sent.From)

	// 2. The code is exchanged for a token
	code := f.lastCode(t)
	token, err := f.service.IssueToken(ctx, auth.TokenInput{Username: "alice", ConfirmationCode: code})
	require.NoError(t, err)
	assert.Equal(t, "token:alice:user", token)

	// 3. The same code cannot be used twice
	_, err = f.service.IssueToken(ctx, auth.TokenInput{Username: "alice", ConfirmationCode: code})
	require.Error(t, err)
	assert.Equal(t, auth.FieldConfirmationCode, fieldOf(t, err))
}

/*
TestSignup_Repeated verifies that the same pair may sign up again and that
clashing pairs are refused.
*/
func TestSignup_Repeated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.service.Signup(ctx, auth.SignupInput{Username: "alice", Email: "a@x.io"})
	require.NoError(t, err)

	// 1. Same pair reuses the account
	again, err := f.service.Signup(ctx, auth.SignupInput{Username: "alice", Email: "a@x.io"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Len(t, f.mailer.messages, 2)
	assert.Len(t, f.users.users, 1)

	// 2. Known username with another email
	_, err = f.service.Signup(ctx, auth.SignupInput{Username: "alice", Email: "other@x.io"})
	assert.True(t, apperr.HasCode(err, "CONFLICT"))

	// 3. Known email with another username
	_, err = f.service.Signup(ctx, auth.SignupInput{Username: "bob", Email: "a@x.io"})
	assert.True(t, apperr.HasCode(err, "CONFLICT"))
}

/*
TestSignup_MailFailure verifies that a dispatch failure surfaces as an internal error.
*/
func TestSignup_MailFailure(t *testing.T) {
	f := newFixture(t)
	f.mailer.err = errors.New("redis down")

	_, err := f.service.Signup(context.Background(), auth.SignupInput{Username: "alice", Email: "a@x.io"})

	assert.True(t, apperr.HasCode(err, "INTERNAL_ERROR"))
}

/*
TestIssueToken_Failures verifies the error mapping of the token exchange.
*/
func TestIssueToken_Failures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Signup(ctx, auth.SignupInput{Username: "alice", Email: "a@x.io"})
	require.NoError(t, err)

	t.Run("missing fields", func(t *testing.T) {
		_, err := f.service.IssueToken(ctx, auth.TokenInput{})
		assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.service.IssueToken(ctx, auth.TokenInput{Username: "ghost", ConfirmationCode: "00"})
		assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
	})

	t.Run("wrong code", func(t *testing.T) {
		_, err := f.service.IssueToken(ctx, auth.TokenInput{Username: "alice", ConfirmationCode: "0123456789abcdef0123"})
		require.Error(t, err)
		assert.Equal(t, auth.FieldConfirmationCode, fieldOf(t, err))
	})
}

/*
TestIssueToken_NewCodeAfterLogin verifies that a login invalidates every older code
while a fresh signup issues a working one.
*/
func TestIssueToken_NewCodeAfterLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Signup(ctx, auth.SignupInput{Username: "alice", Email: "a@x.io"})
	require.NoError(t, err)
	oldCode := f.lastCode(t)

	_, err = f.service.IssueToken(ctx, auth.TokenInput{Username: "alice", ConfirmationCode: oldCode})
	require.NoError(t, err)

	// 1. A new signup yields a different code
	_, err = f.service.Signup(ctx, auth.SignupInput{Username: "alice", Email: "a@x.io"})
	require.NoError(t, err)
	newCode := f.lastCode(t)
	assert.NotEqual(t, oldCode, newCode)

	// 2. Only the new one works
	_, err = f.service.IssueToken(ctx, auth.TokenInput{Username: "alice", ConfirmationCode: oldCode})
	assert.Error(t, err)

	_, err = f.service.IssueToken(ctx, auth.TokenInput{Username: "alice", ConfirmationCode: newCode})
	assert.NoError(t, err)
}

/*
TestResolveActor verifies the identity handed to the permission layer.
*/
func TestResolveActor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, code, err := f.service.CreateSuperuser(ctx, auth.SignupInput{Username: "root", Email: "root@x.io"})
	require.NoError(t, err)
	assert.NotEmpty(t, code)

	actor, err := f.service.ResolveActor(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, actor.IsAdmin())
	assert.Equal(t, "root", actor.Username)

	_, err = f.service.ResolveActor(ctx, "missing")
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}
