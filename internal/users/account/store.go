// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"

	"github.com/taibuivan/yamdb/internal/users/auth"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// AccountRepository defines the persistence operations for managing accounts.
type AccountRepository interface {
	// List returns one page of accounts ordered by username, plus the total count.
	List(context context.Context, filter Filter, page pagination.Params) ([]*auth.User, int, error)

	// FindByUsername retrieves an account by exact username.
	FindByUsername(context context.Context, username string) (*auth.User, error)

	// Create persists a new account.
	Create(context context.Context, user *auth.User) error

	// Update overwrites the mutable profile fields and role of an account.
	Update(context context.Context, user *auth.User) error

	// Delete removes an account together with its reviews and comments.
	Delete(context context.Context, id string) error
}
