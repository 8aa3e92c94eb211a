package article

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"coolschool/internal/models"
)

// ErrNotFound is returned when no article matches the identifier.
var ErrNotFound = errors.New("article not found")

// Newest first; equal timestamps keep insertion order.
const newestFirst = "ORDER BY pub_date DESC, id ASC"

const selectArticles = "SELECT id, title, content, pub_date, page_id, show_on_whiteboard FROM articles"

// Repository provides access to the article storage.
type Repository struct {
	DB *sqlx.DB
}

// NewRepository creates a new article repository.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{DB: db}
}

// ListByPage lists the articles owned by a page, newest first.
func (r *Repository) ListByPage(ctx context.Context, pageID int64) ([]models.Article, error) {
	var articles []models.Article
	query := r.DB.Rebind(selectArticles + " WHERE page_id = ? " + newestFirst)
	if err := r.DB.SelectContext(ctx, &articles, query, pageID); err != nil {
		return nil, fmt.Errorf("list articles of page %d: %w", pageID, err)
	}
	return articles, nil
}

// ListWhiteboard lists the articles of the news page that are flagged for the
// home page whiteboard, in the same order as the news page itself.
func (r *Repository) ListWhiteboard(ctx context.Context, newsPageID int64) ([]models.Article, error) {
	var articles []models.Article
	query := r.DB.Rebind(selectArticles + " WHERE page_id = ? AND show_on_whiteboard = ? " + newestFirst)
	if err := r.DB.SelectContext(ctx, &articles, query, newsPageID, true); err != nil {
		return nil, fmt.Errorf("list whiteboard articles: %w", err)
	}
	return articles, nil
}

// CountByPage returns the number of articles per page id.
func (r *Repository) CountByPage(ctx context.Context) (map[int64]int, error) {
	rows, err := r.DB.QueryxContext(ctx, "SELECT page_id, COUNT(*) FROM articles GROUP BY page_id")
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var pageID int64
		var n int
		if err := rows.Scan(&pageID, &n); err != nil {
			return nil, fmt.Errorf("count articles: %w", err)
		}
		counts[pageID] = n
	}
	return counts, rows.Err()
}

// Get finds an article by its identifier.
func (r *Repository) Get(ctx context.Context, id int64) (models.Article, error) {
	var a models.Article
	if err := r.DB.GetContext(ctx, &a, r.DB.Rebind(selectArticles+" WHERE id = ?"), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Article{}, ErrNotFound
		}
		return models.Article{}, fmt.Errorf("get article %d: %w", id, err)
	}
	return a, nil
}

// Create inserts a new article and sets its ID.
func (r *Repository) Create(ctx context.Context, a *models.Article) error {
	query := r.DB.Rebind("INSERT INTO articles (title, content, pub_date, page_id, show_on_whiteboard) VALUES (?, ?, ?, ?, ?) RETURNING id")
	err := r.DB.QueryRowxContext(ctx, query, a.Title, a.Content, a.PubDate.UTC(), a.PageID, a.ShowOnWhiteboard).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("error creating article: %w", err)
	}
	return nil
}

// Update saves the editable fields of an article. The owning page and the
// publication date never change.
func (r *Repository) Update(ctx context.Context, a models.Article) error {
	query := r.DB.Rebind("UPDATE articles SET title = ?, content = ?, show_on_whiteboard = ? WHERE id = ?")
	res, err := r.DB.ExecContext(ctx, query, a.Title, a.Content, a.ShowOnWhiteboard, a.ID)
	if err != nil {
		return fmt.Errorf("error updating article %d: %w", a.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete permanently removes an article.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind("DELETE FROM articles WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("error deleting article %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
