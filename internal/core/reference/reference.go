// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reference manages the catalog vocabularies titles are classified by:
categories (one per title) and genres (many per title).

Both vocabularies share one shape, a slug-keyed [Term], and one lifecycle:

  - Public: paginated listing with a name search.
  - Admin: creation (slug validated or derived from the name) and deletion.

A term still referenced by a title cannot be deleted.
*/
package reference

// # Domain Entities

// Term is a single category or genre.
type Term struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Filter narrows a term listing.
type Filter struct {
	// Search is a case-insensitive substring of the name.
	Search string
}

// # Field Identifiers

const (
	FieldName = "name"
	FieldSlug = "slug"
)

// MaxNameLength is the longest term name accepted.
const MaxNameLength = 256
