package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// New opens a connection pool for the given driver ("sqlite3" or "postgres").
// SQLite connections always enforce foreign keys.
func New(driver, dsn string) (*sqlx.DB, error) {
	if driver == "sqlite3" {
		dsn = SQLiteDSN(dsn)
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return db, nil
}

// SQLiteDSN turns foreign key enforcement on unless the DSN already sets it.
// Article rows rely on it for ON DELETE CASCADE.
func SQLiteDSN(dsn string) string {
	base, query, hasQuery := strings.Cut(dsn, "?")
	values, err := url.ParseQuery(query)
	if err != nil {
		values = url.Values{}
	}
	if values.Has("_foreign_keys") || values.Has("_fk") {
		return dsn
	}
	if hasQuery && query != "" {
		return base + "?" + query + "&_foreign_keys=on"
	}
	return base + "?_foreign_keys=on"
}

// Migrate creates the tables if they do not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	schema := sqliteSchema
	if db.DriverName() == "postgres" {
		schema = postgresSchema
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const sqliteSchema = `
-- Cool School Database Schema

-- Pages are the fixed site sections.
CREATE TABLE IF NOT EXISTS pages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    slug TEXT UNIQUE NOT NULL,
    title TEXT NOT NULL,
    page_url TEXT NOT NULL,
    edit_url TEXT NOT NULL
);

-- Articles belong to exactly one page.
CREATE TABLE IF NOT EXISTS articles (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    pub_date TIMESTAMP NOT NULL,
    page_id INTEGER NOT NULL,
    show_on_whiteboard BOOLEAN NOT NULL DEFAULT 0,
    FOREIGN KEY(page_id) REFERENCES pages(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_articles_page_pub_date ON articles(page_id, pub_date);

-- Users can sign in; superusers manage content.
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    is_superuser BOOLEAN NOT NULL DEFAULT 0
);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS pages (
    id BIGSERIAL PRIMARY KEY,
    slug TEXT UNIQUE NOT NULL,
    title TEXT NOT NULL,
    page_url TEXT NOT NULL,
    edit_url TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS articles (
    id BIGSERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    pub_date TIMESTAMPTZ NOT NULL,
    page_id BIGINT NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
    show_on_whiteboard BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_articles_page_pub_date ON articles(page_id, pub_date);

CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    is_superuser BOOLEAN NOT NULL DEFAULT FALSE
);
`
