// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements YamDB identity: the user entity, the signup flow with
emailed confirmation codes, and the exchange of a code for an access token.

# Architecture

  - Entity: [User] with its role predicates.
  - Service: Signup, IssueToken and actor resolution for the middleware.
  - Repository: [UserRepository], implemented on PostgreSQL.
*/
package auth

import (
	"time"

	"github.com/taibuivan/yamdb/internal/platform/sec"
)

// # Domain Entities

// User is a registered YamDB account.
type User struct {
	ID          string       `json:"-"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	Bio         *string      `json:"bio"`
	Role        sec.UserRole `json:"role"`
	IsSuperuser bool         `json:"-"`
	LastLoginAt *time.Time   `json:"-"`
	CreatedAt   time.Time    `json:"-"`
	UpdatedAt   time.Time    `json:"-"`
}

// IsAdmin reports administrator rights: the admin role or the superuser flag.
func (user *User) IsAdmin() bool { return sec.IsAdmin(user.Role, user.IsSuperuser) }

// IsModerator reports whether the user holds the moderator role.
func (user *User) IsModerator() bool { return sec.IsModerator(user.Role) }

// IsUser reports whether the user holds the default role.
func (user *User) IsUser() bool { return sec.IsUser(user.Role) }

// Actor returns the identity used by permission checks.
func (user *User) Actor() *sec.Actor {
	return &sec.Actor{
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.Role,
		IsSuperuser: user.IsSuperuser,
	}
}

// CodeSubject returns the state a confirmation code is bound to.
func (user *User) CodeSubject() sec.CodeSubject {
	return sec.CodeSubject{
		UserID:      user.ID,
		Username:    user.Username,
		Email:       user.Email,
		LastLoginAt: user.LastLoginAt,
	}
}

// # Field Identifiers

const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldConfirmationCode = "confirmation_code"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldBio              = "bio"
	FieldRole             = "role"
)

// # Field Limits

const (
	MaxUsernameLength = 150
	MaxEmailLength    = 254
	MaxNameLength     = 150
)
