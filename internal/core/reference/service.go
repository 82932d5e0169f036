// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/slice"
	"github.com/taibuivan/yamdb/pkg/slug"
)

// Resource names used in error messages.
const (
	ResourceCategory = "Category"
	ResourceGenre    = "Genre"
)

// # Service Layer

// Vocabulary implements the use cases of one term table.
type Vocabulary struct {
	repository TermRepository
	resource   string
	logger     *slog.Logger
}

// NewVocabulary constructs a [Vocabulary] over a repository. The resource
// name labels errors and log lines ("Category", "Genre").
func NewVocabulary(repository TermRepository, resource string, logger *slog.Logger) *Vocabulary {
	return &Vocabulary{repository: repository, resource: resource, logger: logger}
}

// List returns one page of terms whose name contains the search string.
func (vocabulary *Vocabulary) List(context context.Context, filter Filter, page pagination.Params) ([]Term, int, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return vocabulary.repository.List(context, filter, page)
}

/*
Create adds a term to the vocabulary.

Description: When the slug is omitted it is derived from the name. An
explicit slug must match [-a-zA-Z0-9_]+ and is kept as given.

Parameters:
  - context: context.Context
  - term: Term

Returns:
  - Term: The stored term with its final slug
  - error: ValidationError, or Conflict if the slug is taken
*/
func (vocabulary *Vocabulary) Create(context context.Context, term Term) (Term, error) {
	term.Name = strings.TrimSpace(term.Name)
	term.Slug = strings.TrimSpace(term.Slug)
	if term.Slug == "" {
		term.Slug = slug.From(term.Name)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, term.Name).
		MaxLen(FieldName, term.Name, MaxNameLength).
		Required(FieldSlug, term.Slug).
		MaxLen(FieldSlug, term.Slug, slug.MaxLength)
	if term.Slug != "" {
		validator.Slug(FieldSlug, term.Slug)
	}
	if err := validator.Err(); err != nil {
		return Term{}, err
	}

	if err := vocabulary.repository.Create(context, term); err != nil {
		return Term{}, err
	}

	vocabulary.logger.Info("term_created",
		slog.String("resource", vocabulary.resource),
		slog.String("slug", term.Slug),
	)

	return term, nil
}

// Delete removes a term that no title references anymore.
func (vocabulary *Vocabulary) Delete(context context.Context, termSlug string) error {
	if err := vocabulary.repository.Delete(context, termSlug); err != nil {
		return err
	}

	vocabulary.logger.Info("term_deleted",
		slog.String("resource", vocabulary.resource),
		slog.String("slug", termSlug),
	)
	return nil
}

/*
Missing reports which of the given slugs do not exist.

Parameters:
  - context: context.Context
  - slugs: []string (duplicates allowed)

Returns:
  - []string: Unresolved slugs in input order, without duplicates
  - error: Storage failures
*/
func (vocabulary *Vocabulary) Missing(context context.Context, slugs []string) ([]string, error) {
	unique := slice.Unique(slugs)
	if len(unique) == 0 {
		return nil, nil
	}

	found, err := vocabulary.repository.Existing(context, unique)
	if err != nil {
		return nil, err
	}

	present := make(map[string]struct{}, len(found))
	for _, s := range found {
		present[s] = struct{}{}
	}

	var missing []string
	for _, s := range unique {
		if _, ok := present[s]; !ok {
			missing = append(missing, s)
		}
	}
	return missing, nil
}
