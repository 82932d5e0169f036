// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package title manages the works users review: films, books, songs.

A title belongs to at most one category and any number of genres, both of
which must already exist. Its rating is never stored; it is the mean of the
review scores, computed on every read.

# Access Control

  - Public: list (with filters) and retrieve.
  - Admin: create, patch and delete. Deleting a title removes its reviews.
*/
package title

import (
	"time"

	"github.com/taibuivan/yamdb/internal/core/reference"
)

// # Domain Entities

// Title is the read model returned by the API.
type Title struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Year        int              `json:"year"`
	Rating      *float64         `json:"rating"`
	Description *string          `json:"description"`
	Category    *reference.Term  `json:"category"`
	Genres      []reference.Term `json:"genre"`
	CreatedAt   time.Time        `json:"-"`
	UpdatedAt   time.Time        `json:"-"`
}

// GenreSlugs returns the slugs of the title's genres.
func (title *Title) GenreSlugs() []string {
	slugs := make([]string, 0, len(title.Genres))
	for _, genre := range title.Genres {
		slugs = append(slugs, genre.Slug)
	}
	return slugs
}

// Record is the write model persisted by the repository.
type Record struct {
	ID           string
	Name         string
	Year         int
	Description  *string
	CategorySlug *string
	GenreSlugs   []string
}

// Filter narrows a title listing. Set fields combine with AND.
type Filter struct {
	// Category is an exact category slug.
	Category string
	// Genre is an exact genre slug the title must carry.
	Genre string
	// Name is a case-insensitive substring.
	Name string
	// Year is an exact release year.
	Year *int
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldYear        = "year"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldGenre       = "genre"
)

// MaxNameLength is the longest title name accepted.
const MaxNameLength = 256
