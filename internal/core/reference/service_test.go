// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/core/reference"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// memoryTerms is an in-memory [reference.TermRepository].
type memoryTerms struct {
	mu    sync.Mutex
	terms map[string]string
	used  map[string]bool
}

func newMemoryTerms(terms ...reference.Term) *memoryTerms {
	repo := &memoryTerms{terms: map[string]string{}, used: map[string]bool{}}
	for _, term := range terms {
		repo.terms[term.Slug] = term.Name
	}
	return repo
}

func (repo *memoryTerms) List(_ context.Context, filter reference.Filter, page pagination.Params) ([]reference.Term, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var matched []reference.Term
	for slug, name := range repo.terms {
		if strings.Contains(strings.ToLower(name), strings.ToLower(filter.Search)) {
			matched = append(matched, reference.Term{Name: name, Slug: slug})
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	start := min(page.Offset(), len(matched))
	end := min(start+page.Limit, len(matched))
	return matched[start:end], len(matched), nil
}

func (repo *memoryTerms) Create(_ context.Context, term reference.Term) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.terms[term.Slug]; ok {
		return apperr.Conflict("slug taken")
	}
	repo.terms[term.Slug] = term.Name
	return nil
}

func (repo *memoryTerms) Delete(_ context.Context, slug string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.terms[slug]; !ok {
		return apperr.NotFound("Category")
	}
	if repo.used[slug] {
		return apperr.Conflict("still used")
	}
	delete(repo.terms, slug)
	return nil
}

func (repo *memoryTerms) Existing(_ context.Context, slugs []string) ([]string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var found []string
	for _, slug := range slugs {
		if _, ok := repo.terms[slug]; ok {
			found = append(found, slug)
		}
	}
	return found, nil
}

func newVocabulary(repo reference.TermRepository) *reference.Vocabulary {
	return reference.NewVocabulary(repo, reference.ResourceCategory, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestVocabulary_Create verifies slug derivation and validation.
*/
func TestVocabulary_Create(t *testing.T) {
	ctx := context.Background()
	vocabulary := newVocabulary(newMemoryTerms())

	// 1. Slug derived from the name
	term, err := vocabulary.Create(ctx, reference.Term{Name: "Science Fiction"})
	require.NoError(t, err)
	assert.Equal(t, "science-fiction", term.Slug)

	// 2. Explicit slug kept as given
	term, err = vocabulary.Create(ctx, reference.Term{Name: "Film", Slug: "film_2"})
	require.NoError(t, err)
	assert.Equal(t, "film_2", term.Slug)

	// 3. Duplicate slug
	_, err = vocabulary.Create(ctx, reference.Term{Name: "Film again", Slug: "film_2"})
	assert.True(t, apperr.HasCode(err, "CONFLICT"))

	// 4. Invalid inputs
	for _, input := range []reference.Term{
		{Name: "", Slug: "x"},
		{Name: "Bad", Slug: "has space"},
		{Name: "Long", Slug: strings.Repeat("a", 51)},
		{Name: "!!!"},
	} {
		_, err := vocabulary.Create(ctx, input)
		assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"), "input %+v", input)
	}
}

/*
TestVocabulary_List verifies name search and pagination.
*/
func TestVocabulary_List(t *testing.T) {
	vocabulary := newVocabulary(newMemoryTerms(
		reference.Term{Name: "Film", Slug: "film"},
		reference.Term{Name: "Book", Slug: "book"},
		reference.Term{Name: "Short film", Slug: "short"},
	))

	terms, total, err := vocabulary.List(context.Background(), reference.Filter{Search: " FILM "}, pagination.Params{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, []reference.Term{{Name: "Film", Slug: "film"}, {Name: "Short film", Slug: "short"}}, terms)
}

/*
TestVocabulary_Delete verifies that referenced terms are protected.
*/
func TestVocabulary_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryTerms(reference.Term{Name: "Film", Slug: "film"}, reference.Term{Name: "Book", Slug: "book"})
	repo.used["film"] = true
	vocabulary := newVocabulary(repo)

	assert.True(t, apperr.HasCode(vocabulary.Delete(ctx, "film"), "CONFLICT"))
	assert.NoError(t, vocabulary.Delete(ctx, "book"))
	assert.True(t, apperr.HasCode(vocabulary.Delete(ctx, "book"), "NOT_FOUND"))
}

/*
TestVocabulary_Missing verifies the detection of unresolved slugs.
*/
func TestVocabulary_Missing(t *testing.T) {
	vocabulary := newVocabulary(newMemoryTerms(reference.Term{Name: "Drama", Slug: "drama"}))

	missing, err := vocabulary.Missing(context.Background(), []string{"drama", "noir", "noir", "western"})

	require.NoError(t, err)
	assert.Equal(t, []string{"noir", "western"}, missing)

	missing, err = vocabulary.Missing(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, missing)
}
