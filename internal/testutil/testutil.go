// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"coolschool/internal/config"
	"coolschool/internal/database"
	"coolschool/internal/models"
	"coolschool/internal/page"
)

// PrepareDB opens a migrated SQLite database in a temporary directory.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "coolschool.db")
	db, err := database.New("sqlite3", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}

// SeedSite inserts the default site pages and returns them keyed by slug.
func SeedSite(t *testing.T, db *sqlx.DB) map[string]models.Page {
	t.Helper()

	repo := page.NewRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Seed(ctx, config.DefaultSite()))

	pages, err := repo.List(ctx)
	require.NoError(t, err)

	bySlug := make(map[string]models.Page, len(pages))
	for _, p := range pages {
		bySlug[p.Slug] = p
	}
	return bySlug
}

// InsertArticle stores an article directly, bypassing the handlers.
func InsertArticle(t *testing.T, db *sqlx.DB, pageID int64, title, content string, pubDate time.Time, whiteboard bool) models.Article {
	t.Helper()

	a := models.Article{
		Title:            title,
		Content:          content,
		PubDate:          pubDate.UTC(),
		PageID:           pageID,
		ShowOnWhiteboard: whiteboard,
	}
	err := db.QueryRowxContext(context.Background(),
		db.Rebind("INSERT INTO articles (title, content, pub_date, page_id, show_on_whiteboard) VALUES (?, ?, ?, ?, ?) RETURNING id"),
		a.Title, a.Content, a.PubDate, a.PageID, a.ShowOnWhiteboard).Scan(&a.ID)
	require.NoError(t, err)
	return a
}

// CountArticles returns the number of stored articles.
func CountArticles(t *testing.T, db *sqlx.DB) int {
	t.Helper()

	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM articles"))
	return n
}
