// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/mail"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

// # Contracts & Types

// TokenProvider issues signed access tokens. It is satisfied by [*sec.TokenService].
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// CodeGenerator creates and verifies confirmation codes. It is satisfied by
// [*sec.ConfirmationCodes].
type CodeGenerator interface {
	Make(subject sec.CodeSubject) string
	Check(subject sec.CodeSubject, code string) bool
}

// Options carries the tunables of the auth flow.
type Options struct {
	// MailFrom is the sender address of confirmation messages.
	MailFrom string
	// AccessTokenTTL is how long an issued access token stays valid.
	AccessTokenTTL time.Duration
}

// Service implements the signup and token use cases.
type Service struct {
	userRepository UserRepository
	codes          CodeGenerator
	tokens         TokenProvider
	mailer         mail.Sender
	options        Options
	now            func() time.Time
}

// NewService constructs a new [Service] with its dependencies.
func NewService(userRepo UserRepository, codes CodeGenerator, tokens TokenProvider, mailer mail.Sender, options Options) *Service {
	return &Service{
		userRepository: userRepo,
		codes:          codes,
		tokens:         tokens,
		mailer:         mailer,
		options:        options,
		now:            time.Now,
	}
}

// # Signup Flow

// SignupInput is the identity pair a confirmation code is requested for.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Validate checks the username and email formats.
func (input SignupInput) Validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MaxLen(FieldUsername, input.Username, MaxUsernameLength).
		Username(FieldUsername, input.Username).
		Required(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, MaxEmailLength)

	if strings.TrimSpace(input.Email) != "" {
		validator.Email(FieldEmail, input.Email)
	}
	return validator.Err()
}

/*
Signup registers the username/email pair if needed and mails a confirmation code.

Description: The call is idempotent for the same pair: an existing account
with both the username and the email is reused and receives the code for its
current state again. A username or email already bound to a different
identity is a conflict.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *User: The (possibly pre-existing) account
  - error: ValidationError, Conflict, or Internal if mail dispatch fails
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := service.getOrCreate(context, input)
	if err != nil {
		return nil, err
	}

	code := service.codes.Make(user.CodeSubject())
	message := mail.Message{
		Subject: constants.ConfirmationSubject,
		Body:    fmt.Sprintf("Hello, %s!\n\nYour YamDB confirmation code: %s\n", user.Username, code),
		From:    service.options.MailFrom,
		To:      []string{user.Email},
	}

	if err := service.mailer.Send(context, message); err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth: send confirmation code: %w", err))
	}

	ctxutil.GetLogger(context).InfoContext(context, "confirmation_code_sent",
		slog.String("user_id", user.ID),
	)

	return user, nil
}

// getOrCreate resolves the account for a signup pair.
func (service *Service) getOrCreate(context context.Context, input SignupInput) (*User, error) {
	existing, err := service.userRepository.FindByUsername(context, input.Username)
	switch {
	case err == nil:
		if existing.Email != input.Email {
			return nil, apperr.Conflict("A user with that username already exists")
		}
		return existing, nil
	case !apperr.HasCode(err, "NOT_FOUND"):
		return nil, err
	}

	if _, err := service.userRepository.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("A user with that email already exists")
	} else if !apperr.HasCode(err, "NOT_FOUND") {
		return nil, err
	}

	user := &User{
		ID:       uuid.New(),
		Username: input.Username,
		Email:    input.Email,
		Role:     sec.RoleUser,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}
	return user, nil
}

// # Token Exchange

// TokenInput is the payload of a token request.
type TokenInput struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

/*
IssueToken exchanges a confirmation code for an access token.

Description: The code is checked against the account's current state. On
success the last login time is stamped, which changes that state and so
invalidates the code and every earlier one.

Parameters:
  - context: context.Context
  - input: TokenInput

Returns:
  - string: Signed access token
  - error: ValidationError (missing fields, wrong or used code), NotFound (unknown user)
*/
func (service *Service) IssueToken(context context.Context, input TokenInput) (string, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldConfirmationCode, input.ConfirmationCode)
	if err := validator.Err(); err != nil {
		return "", err
	}

	user, err := service.userRepository.FindByUsername(context, input.Username)
	if err != nil {
		return "", err
	}

	if !service.codes.Check(user.CodeSubject(), input.ConfirmationCode) {
		return "", errInvalidCode
	}

	// Postgres keeps microseconds; truncating keeps the stored and in-memory values equal.
	loginAt := service.now().UTC().Truncate(time.Microsecond)
	consumed, err := service.userRepository.ConsumeLogin(context, user.ID, user.LastLoginAt, loginAt)
	if err != nil {
		return "", err
	}
	if !consumed {
		return "", errInvalidCode
	}

	token, err := service.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role), service.options.AccessTokenTTL)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("auth: issue token: %w", err))
	}

	ctxutil.GetLogger(context).InfoContext(context, "access_token_issued",
		slog.String("user_id", user.ID),
	)

	return token, nil
}

var errInvalidCode = validate.RequiredError(FieldConfirmationCode, "Invalid or already used confirmation code")

// # Actor Resolution

// ResolveActor loads the current identity of a token subject for the
// authenticate middleware.
func (service *Service) ResolveActor(context context.Context, userID string) (*sec.Actor, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user.Actor(), nil
}

// # Administration

/*
CreateSuperuser registers an administrator account with the superuser flag.

Description: Used by the operator CLI. The returned code can be exchanged for
a token exactly like a code from the signup flow.

Returns:
  - *User: The created account
  - string: Confirmation code for the first token
  - error: ValidationError or Conflict
*/
func (service *Service) CreateSuperuser(context context.Context, input SignupInput) (*User, string, error) {
	if err := input.Validate(); err != nil {
		return nil, "", err
	}

	user := &User{
		ID:          uuid.New(),
		Username:    input.Username,
		Email:       input.Email,
		Role:        sec.RoleAdmin,
		IsSuperuser: true,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, "", err
	}

	ctxutil.GetLogger(context).InfoContext(context, "superuser_created",
		slog.String("user_id", user.ID),
	)

	return user, service.codes.Make(user.CodeSubject()), nil
}
