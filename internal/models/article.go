package models

import (
	"strconv"
	"time"
)

// Article represents a titled piece of content owned by exactly one page.
type Article struct {
	ID               int64     `db:"id"`
	Title            string    `db:"title"`
	Content          string    `db:"content"`
	PubDate          time.Time `db:"pub_date"`
	PageID           int64     `db:"page_id"`
	ShowOnWhiteboard bool      `db:"show_on_whiteboard"`
}

// Anchor is the fragment identifying the article on its page.
func (a Article) Anchor() string {
	return "article-" + strconv.FormatInt(a.ID, 10)
}
