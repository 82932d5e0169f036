// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"

	"github.com/taibuivan/yamdb/pkg/pagination"
)

// TermRepository defines persistence for one vocabulary table.
type TermRepository interface {
	// List returns one page of terms ordered by name, plus the total count.
	List(context context.Context, filter Filter, page pagination.Params) ([]Term, int, error)

	// Create inserts a term. A taken slug is a conflict.
	Create(context context.Context, term Term) error

	// Delete removes a term by slug. A term still used by a title is a conflict.
	Delete(context context.Context, slug string) error

	// Existing returns the subset of slugs that are present in the table.
	Existing(context context.Context, slugs []string) ([]string, error)
}
