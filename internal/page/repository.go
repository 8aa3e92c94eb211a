package page

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"coolschool/internal/config"
	"coolschool/internal/models"
)

// ErrNotFound is returned when no page matches the lookup.
var ErrNotFound = errors.New("page not found")

// Repository provides access to the page storage.
type Repository struct {
	DB *sqlx.DB
}

// NewRepository creates a new page repository.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{DB: db}
}

// List returns every page in seeding order.
func (r *Repository) List(ctx context.Context) ([]models.Page, error) {
	var pages []models.Page
	err := r.DB.SelectContext(ctx, &pages, "SELECT id, slug, title, page_url, edit_url FROM pages ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return pages, nil
}

// FindBySlug finds a page by its slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (models.Page, error) {
	var p models.Page
	err := r.DB.GetContext(ctx, &p, r.DB.Rebind("SELECT id, slug, title, page_url, edit_url FROM pages WHERE slug = ?"), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Page{}, ErrNotFound
		}
		return models.Page{}, fmt.Errorf("find page %q: %w", slug, err)
	}
	return p, nil
}

// FindByID finds a page by its identifier.
func (r *Repository) FindByID(ctx context.Context, id int64) (models.Page, error) {
	var p models.Page
	err := r.DB.GetContext(ctx, &p, r.DB.Rebind("SELECT id, slug, title, page_url, edit_url FROM pages WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Page{}, ErrNotFound
		}
		return models.Page{}, fmt.Errorf("find page %d: %w", id, err)
	}
	return p, nil
}

// UpdateTitle renames a page.
func (r *Repository) UpdateTitle(ctx context.Context, id int64, title string) error {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind("UPDATE pages SET title = ? WHERE id = ?"), title, id)
	if err != nil {
		return fmt.Errorf("update page %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Seed makes sure every configured page exists in a single transaction.
// Missing pages are inserted; existing pages get their URLs refreshed but
// keep their (possibly edited) titles.
func (r *Repository) Seed(ctx context.Context, site config.Site) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	query := tx.Rebind(`INSERT INTO pages (slug, title, page_url, edit_url) VALUES (?, ?, ?, ?)
ON CONFLICT (slug) DO UPDATE SET page_url = excluded.page_url, edit_url = excluded.edit_url`)
	for _, p := range site.Pages {
		if _, err := tx.ExecContext(ctx, query, p.Slug, p.Title, p.URL, p.EditURL()); err != nil {
			return fmt.Errorf("error seeding page %q: %w", p.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}
