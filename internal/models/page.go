package models

// Page represents one of the fixed site sections. Articles hang off a page.
type Page struct {
	ID      int64  `db:"id"`
	Slug    string `db:"slug"`
	Title   string `db:"title"`
	PageURL string `db:"page_url"`
	EditURL string `db:"edit_url"`
}
