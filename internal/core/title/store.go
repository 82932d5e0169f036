// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"

	"github.com/taibuivan/yamdb/pkg/pagination"
)

// TitleRepository defines persistence for the title aggregate.
type TitleRepository interface {
	// List returns one page of titles ordered by name, plus the total count.
	List(context context.Context, filter Filter, page pagination.Params) ([]*Title, int, error)

	// FindByID retrieves a title with its category, genres and rating.
	FindByID(context context.Context, id string) (*Title, error)

	// Create inserts a title and its genre links atomically.
	Create(context context.Context, record *Record) error

	// Update overwrites a title and replaces its genre links atomically.
	Update(context context.Context, record *Record) error

	// Delete removes a title. Its reviews and comments cascade.
	Delete(context context.Context, id string) error
}
