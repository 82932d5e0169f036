// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// memoryStore is an in-memory implementation of both repositories. Deleting a
// review cascades to its comments like the database does.
type memoryStore struct {
	mu       sync.Mutex
	titles   map[string]bool
	reviews  map[string]Review
	comments map[string]Comment
	clock    time.Time
}

func newMemoryStore(titleIDs ...string) *memoryStore {
	store := &memoryStore{
		titles:   map[string]bool{},
		reviews:  map[string]Review{},
		comments: map[string]Comment{},
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, id := range titleIDs {
		store.titles[id] = true
	}
	return store
}

func (store *memoryStore) tick() time.Time {
	store.clock = store.clock.Add(time.Minute)
	return store.clock
}

// reviewStore adapts the memory store to [ReviewRepository].
type reviewStore struct{ *memoryStore }

func (store reviewStore) TitleExists(_ context.Context, titleID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if !store.titles[titleID] {
		return apperr.NotFound(resourceTitle)
	}
	return nil
}

func (store reviewStore) List(_ context.Context, titleID string, page pagination.Params) ([]*Review, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	reviews := []*Review{}
	for _, review := range store.reviews {
		if review.TitleID == titleID {
			copied := review
			reviews = append(reviews, &copied)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].PubDate.After(reviews[j].PubDate) })
	return paginate(reviews, page), len(reviews), nil
}

func (store reviewStore) FindByID(_ context.Context, titleID, reviewID string) (*Review, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	review, ok := store.reviews[reviewID]
	if !ok || review.TitleID != titleID {
		return nil, apperr.NotFound(resourceReview)
	}
	return &review, nil
}

func (store reviewStore) Create(_ context.Context, review *Review) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if !store.titles[review.TitleID] {
		return apperr.NotFound(resourceTitle)
	}
	for _, existing := range store.reviews {
		if existing.TitleID == review.TitleID && existing.AuthorID == review.AuthorID {
			return apperr.Conflict(duplicateReviewMessage)
		}
	}
	review.PubDate = store.tick()
	review.UpdatedAt = review.PubDate
	store.reviews[review.ID] = *review
	return nil
}

func (store reviewStore) Update(_ context.Context, review *Review) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.reviews[review.ID]; !ok {
		return apperr.NotFound(resourceReview)
	}
	review.UpdatedAt = store.tick()
	store.reviews[review.ID] = *review
	return nil
}

func (store reviewStore) Delete(_ context.Context, reviewID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.reviews[reviewID]; !ok {
		return apperr.NotFound(resourceReview)
	}
	delete(store.reviews, reviewID)
	for id, comment := range store.comments {
		if comment.ReviewID == reviewID {
			delete(store.comments, id)
		}
	}
	return nil
}

// commentStore adapts the memory store to [CommentRepository].
type commentStore struct{ *memoryStore }

func (store commentStore) List(_ context.Context, reviewID string, page pagination.Params) ([]*Comment, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	comments := []*Comment{}
	for _, comment := range store.comments {
		if comment.ReviewID == reviewID {
			copied := comment
			comments = append(comments, &copied)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].PubDate.Before(comments[j].PubDate) })
	return paginate(comments, page), len(comments), nil
}

func (store commentStore) FindByID(_ context.Context, reviewID, commentID string) (*Comment, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	comment, ok := store.comments[commentID]
	if !ok || comment.ReviewID != reviewID {
		return nil, apperr.NotFound(resourceComment)
	}
	return &comment, nil
}

func (store commentStore) Create(_ context.Context, comment *Comment) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.reviews[comment.ReviewID]; !ok {
		return apperr.NotFound(resourceReview)
	}
	comment.PubDate = store.tick()
	comment.UpdatedAt = comment.PubDate
	store.comments[comment.ID] = *comment
	return nil
}

func (store commentStore) Update(_ context.Context, comment *Comment) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.comments[comment.ID]; !ok {
		return apperr.NotFound(resourceComment)
	}
	comment.UpdatedAt = store.tick()
	store.comments[comment.ID] = *comment
	return nil
}

func (store commentStore) Delete(_ context.Context, commentID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.comments[commentID]; !ok {
		return apperr.NotFound(resourceComment)
	}
	delete(store.comments, commentID)
	return nil
}

func paginate[T any](items []T, page pagination.Params) []T {
	start := min(page.Offset(), len(items))
	end := min(start+page.Limit, len(items))
	return items[start:end]
}

// Identifiers shared by the tests.
const (
	titleA = "0190a1b2-0000-7000-8000-00000000000a"
	titleB = "0190a1b2-0000-7000-8000-00000000000b"
	ghost  = "0190a1b2-0000-7000-8000-0000000000ff"
)

func newTestService() (*Service, *memoryStore) {
	store := newMemoryStore(titleA, titleB)
	service := NewService(reviewStore{store}, commentStore{store}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return service, store
}
