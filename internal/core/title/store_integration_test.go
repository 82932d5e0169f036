// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package title_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taibuivan/yamdb/internal/core/reference"
	"github.com/taibuivan/yamdb/internal/core/title"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/migration"
	pgplatform "github.com/taibuivan/yamdb/internal/platform/postgres"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/pointer"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

// setupDatabase starts PostgreSQL, applies the migrations and returns a pool.
func setupDatabase(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("yamdb"),
		postgres.WithUsername("yamdb"),
		postgres.WithPassword("yamdb"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	migrations, err := filepath.Abs("../../../data/migrations")
	require.NoError(t, err)
	require.NoError(t, migration.RunUp(dsn, migrations, logger))

	pool, err := pgplatform.NewPool(ctx, dsn, pgplatform.PoolOptions{}, logger)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func insertUser(t *testing.T, pool *pgxpool.Pool, username string) string {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO users.account (id, username, email) VALUES ($1, $2, $3)`,
		id, username, username+"@x.io")
	require.NoError(t, err)
	return id
}

func insertReview(t *testing.T, pool *pgxpool.Pool, titleID, authorID string, score int) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO social.review (id, titleid, authorid, text, score) VALUES ($1, $2, $3, 'ok', $4)`,
		uuid.New(), titleID, authorID, score)
	require.NoError(t, err)
}

/*
TestTitleStore_Integration verifies the aggregate against a real database:
catalog references, the derived rating, filters and referential rules.
*/
func TestTitleStore_Integration(t *testing.T) {
	pool := setupDatabase(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	categories := reference.NewVocabulary(reference.NewCategoryRepository(pool), reference.ResourceCategory, logger)
	genres := reference.NewVocabulary(reference.NewGenreRepository(pool), reference.ResourceGenre, logger)
	service := title.NewService(title.NewTitleRepository(pool), categories, genres, logger)

	// 1. Catalog
	_, err := categories.Create(ctx, reference.Term{Name: "Film", Slug: "film"})
	require.NoError(t, err)
	_, err = categories.Create(ctx, reference.Term{Name: "Series", Slug: "series"})
	require.NoError(t, err)
	_, err = genres.Create(ctx, reference.Term{Name: "Drama", Slug: "drama"})
	require.NoError(t, err)
	_, err = genres.Create(ctx, reference.Term{Name: "Comedy"})
	require.NoError(t, err)

	_, err = categories.Create(ctx, reference.Term{Name: "Film again", Slug: "film"})
	assert.True(t, apperr.HasCode(err, "CONFLICT"))

	// 2. Title with references and no reviews
	created, err := service.Create(ctx, title.CreateInput{
		Name:     "X",
		Year:     pointer.To(1999),
		Category: pointer.To("film"),
		Genre:    []string{"drama"},
	})
	require.NoError(t, err)
	assert.Nil(t, created.Rating)
	require.NotNil(t, created.Category)
	assert.Equal(t, "Film", created.Category.Name)
	assert.Equal(t, []reference.Term{{Name: "Drama", Slug: "drama"}}, created.Genres)

	_, err = service.Create(ctx, title.CreateInput{Name: "Other", Year: pointer.To(2001), Category: pointer.To("series"), Genre: []string{"comedy"}})
	require.NoError(t, err)

	// 3. Rating is the mean of review scores
	insertReview(t, pool, created.ID, insertUser(t, pool, "alice"), 3)
	insertReview(t, pool, created.ID, insertUser(t, pool, "bob"), 7)

	fetched, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.Rating)
	assert.InDelta(t, 5.0, *fetched.Rating, 1e-9)

	// 4. Filters combine with AND and results are ordered by name
	page := pagination.Params{Page: 1, Limit: 10}

	titles, total, err := service.List(ctx, title.Filter{}, page)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "Other", titles[0].Name)

	titles, total, err = service.List(ctx, title.Filter{Category: "film", Genre: "drama", Name: "x"}, page)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, created.ID, titles[0].ID)

	_, total, err = service.List(ctx, title.Filter{Genre: "drama", Year: pointer.To(2001)}, page)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, total, err = service.List(ctx, title.Filter{Name: "%"}, page)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, total, err = categories.List(ctx, reference.Filter{Search: "_ilm"}, page)
	require.NoError(t, err)
	assert.Zero(t, total)

	terms, total, err := categories.List(ctx, reference.Filter{Search: "ilm"}, page)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "film", terms[0].Slug)

	titles, total, err = service.List(ctx, title.Filter{}, pagination.Params{Page: 5, Limit: 1})
	require.NoError(t, err)
	assert.Empty(t, titles)
	assert.Equal(t, 2, total)

	// 5. Patch replaces genres atomically
	updated, err := service.Update(ctx, created.ID, title.UpdateInput{Genre: &[]string{"comedy"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"comedy"}, updated.GenreSlugs())
	assert.NotNil(t, updated.Rating)

	// 6. Referenced catalog entries are protected
	assert.True(t, apperr.HasCode(categories.Delete(ctx, "film"), "CONFLICT"))
	assert.True(t, apperr.HasCode(genres.Delete(ctx, "comedy"), "CONFLICT"))
	assert.NoError(t, genres.Delete(ctx, "drama"))

	// 7. Deleting a title removes its reviews
	require.NoError(t, service.Delete(ctx, created.ID))

	var reviews int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM social.review`).Scan(&reviews))
	assert.Zero(t, reviews)

	_, err = service.Get(ctx, created.ID)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}
