// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account manages YamDB user records after signup.

It serves two audiences:

  - Administrators: list, search, create, inspect, patch and delete any account.
  - Every authenticated user: read and patch their own profile at /users/me.

Self-service patches never change the role; only administrators can.
*/
package account

import (
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/internal/users/auth"
	"github.com/taibuivan/yamdb/pkg/pointer"
)

// # Inputs

// Filter narrows the administrative user list.
type Filter struct {
	// Search is a case-insensitive substring of the username.
	Search string
}

// CreateInput is the payload of an administrative account creation.
type CreateInput struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      string  `json:"role"`
}

// Validate checks every field of a new account.
func (input CreateInput) Validate() error {
	validator := &validate.Validator{}
	validator.Required(auth.FieldUsername, input.Username).
		Required(auth.FieldEmail, input.Email)

	validateProfile(validator, UpdateInput{
		Username:  &input.Username,
		Email:     &input.Email,
		FirstName: &input.FirstName,
		LastName:  &input.LastName,
		Role:      &input.Role,
	})
	return validator.Err()
}

// UpdateInput is a partial profile change. Nil fields are left untouched.
type UpdateInput struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

// Validate checks the fields present in the patch.
func (input UpdateInput) Validate() error {
	validator := &validate.Validator{}
	if input.Username != nil {
		validator.Required(auth.FieldUsername, *input.Username)
	}
	if input.Email != nil {
		validator.Required(auth.FieldEmail, *input.Email)
	}
	validateProfile(validator, input)
	return validator.Err()
}

func validateProfile(validator *validate.Validator, input UpdateInput) {
	if input.Username != nil {
		validator.MaxLen(auth.FieldUsername, *input.Username, auth.MaxUsernameLength).
			Username(auth.FieldUsername, *input.Username)
	}
	if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
		validator.MaxLen(auth.FieldEmail, *input.Email, auth.MaxEmailLength).
			Email(auth.FieldEmail, *input.Email)
	}
	if input.FirstName != nil {
		validator.MaxLen(auth.FieldFirstName, *input.FirstName, auth.MaxNameLength)
	}
	if input.LastName != nil {
		validator.MaxLen(auth.FieldLastName, *input.LastName, auth.MaxNameLength)
	}
	if input.Role != nil && *input.Role != "" {
		validator.OneOf(auth.FieldRole, *input.Role, sec.Roles()...)
	}
}

// apply merges the patch into the user.
func (input UpdateInput) apply(user *auth.User) {
	pointer.Apply(&user.Username, input.Username)
	pointer.Apply(&user.Email, input.Email)
	pointer.Apply(&user.FirstName, input.FirstName)
	pointer.Apply(&user.LastName, input.LastName)

	if input.Bio != nil {
		user.Bio = input.Bio
	}
	if input.Role != nil && *input.Role != "" {
		user.Role = sec.UserRole(*input.Role)
	}
}
