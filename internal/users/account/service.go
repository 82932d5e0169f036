// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/users/auth"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

// # Service Layer

// Service orchestrates account administration and self-service profiles.
//
// Collection access is gated by the authorize middleware before any method
// runs; methods taking an actor act on that actor's own record.
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Administration

// List returns one page of accounts matching the filter.
func (service *Service) List(context context.Context, filter Filter, page pagination.Params) ([]*auth.User, int, error) {
	return service.accountRepository.List(context, filter, page)
}

// Get retrieves an account by username.
func (service *Service) Get(context context.Context, username string) (*auth.User, error) {
	return service.accountRepository.FindByUsername(context, username)
}

/*
Create registers an account on behalf of an administrator.

Description: Unlike signup, no confirmation code is mailed. The user obtains
one later through the signup endpoint with the same username and email.

Parameters:
  - context: context.Context
  - input: CreateInput (role defaults to "user")

Returns:
  - *auth.User: The created account
  - error: ValidationError or Conflict
*/
func (service *Service) Create(context context.Context, input CreateInput) (*auth.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	role := sec.RoleUser
	if input.Role != "" {
		role = sec.UserRole(input.Role)
	}

	user := &auth.User{
		ID:        uuid.New(),
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      role,
	}

	if err := service.accountRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_created", slog.String("user_id", user.ID), slog.String("role", string(role)))

	return user, nil
}

/*
Patch applies an administrative partial update, including role changes.

Parameters:
  - context: context.Context
  - username: string
  - input: UpdateInput

Returns:
  - *auth.User: The updated account
  - error: NotFound, ValidationError or Conflict
*/
func (service *Service) Patch(context context.Context, username string, input UpdateInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}
	return service.update(context, user, input)
}

// Delete removes an account by username.
func (service *Service) Delete(context context.Context, username string) error {
	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return err
	}

	if err := service.accountRepository.Delete(context, user.ID); err != nil {
		return fmt.Errorf("account: delete %s: %w", user.ID, err)
	}

	service.logger.Warn("user_deleted", slog.String("user_id", user.ID))

	return nil
}

// # Self Service

// GetMe retrieves the actor's own account.
func (service *Service) GetMe(context context.Context, actor *sec.Actor) (*auth.User, error) {
	return service.accountRepository.FindByUsername(context, actor.Username)
}

/*
UpdateMe applies a partial update to the actor's own profile.

Description: The role field is ignored so that users cannot promote
themselves; every other field follows the administrative rules.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - input: UpdateInput

Returns:
  - *auth.User: The updated account
  - error: ValidationError or Conflict
*/
func (service *Service) UpdateMe(context context.Context, actor *sec.Actor, input UpdateInput) (*auth.User, error) {
	user, err := service.GetMe(context, actor)
	if err != nil {
		return nil, err
	}

	input.Role = nil
	return service.update(context, user, input)
}

func (service *Service) update(context context.Context, user *auth.User, input UpdateInput) (*auth.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	input.apply(user)

	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_updated", slog.String("user_id", user.ID))

	return user, nil
}
