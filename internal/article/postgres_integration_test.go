//go:build integration

package article_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"coolschool/internal/article"
	"coolschool/internal/config"
	"coolschool/internal/database"
	"coolschool/internal/models"
	"coolschool/internal/page"
)

// setupPostgres starts a PostgreSQL container and applies the schema.
func setupPostgres(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.New("postgres", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(ctx, db))
	// Migrating twice must be harmless.
	require.NoError(t, database.Migrate(ctx, db))
	return db
}

func TestPostgres_Repository(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	pageRepo := page.NewRepository(db)
	require.NoError(t, pageRepo.Seed(ctx, config.DefaultSite()))
	require.NoError(t, pageRepo.Seed(ctx, config.DefaultSite()))

	news, err := pageRepo.FindBySlug(ctx, config.NewsSlug)
	require.NoError(t, err)

	repo := article.NewRepository(db)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, a := range []models.Article{
		{Title: "Title2", Content: "x", PubDate: base, PageID: news.ID, ShowOnWhiteboard: true},
		{Title: "Hidden", Content: "x", PubDate: base.Add(time.Minute), PageID: news.ID},
		{Title: "Title1", Content: "x", PubDate: base.Add(time.Hour), PageID: news.ID, ShowOnWhiteboard: true},
		{Title: "Tie", Content: "x", PubDate: base.Add(time.Hour), PageID: news.ID},
	} {
		a := a
		require.NoError(t, repo.Create(ctx, &a))
	}

	listed, err := repo.ListByPage(ctx, news.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Title1", "Tie", "Hidden", "Title2"}, titles(listed))

	board, err := repo.ListWhiteboard(ctx, news.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Title1", "Title2"}, titles(board))

	counts, err := repo.CountByPage(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, counts[news.ID])

	assert.ErrorIs(t, repo.Delete(ctx, 999999), article.ErrNotFound)
}
