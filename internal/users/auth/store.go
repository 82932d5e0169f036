// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract used by the signup and token flows.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict on username/email collisions, or storage failures
	*/
	Create(context context.Context, user *User) error

	/*
		ConsumeLogin stamps the last login time of an account, but only if it
		still equals previous. The compare-and-set makes a confirmation code
		usable by exactly one of several concurrent token requests.

		Parameters:
		  - context: context.Context
		  - id: string
		  - previous: *time.Time (the LastLoginAt the code was checked against)
		  - at: time.Time

		Returns:
		  - bool: false when another request consumed the state first
		  - error: storage failures
	*/
	ConsumeLogin(context context.Context, id string, previous *time.Time, at time.Time) (bool, error)
}
