package viewmodels

import (
	"html/template"
	"strconv"
	"time"

	"coolschool/internal/models"
	"coolschool/internal/web/forms"
)

// NavLink is one entry of the site navigation.
type NavLink struct {
	Title string
	URL   string
}

// ArticleView combines an article with its rendered content and admin links.
type ArticleView struct {
	models.Article
	HTML      template.HTML
	EditURL   string
	DeleteURL string
}

// WhiteboardEntry is a news article featured on the home page.
type WhiteboardEntry struct {
	Title   string
	URL     string
	PubDate time.Time
}

// PageCount is a page row on the admin dashboard.
type PageCount struct {
	models.Page
	Articles int
}

// PageData is a unified struct to hold all possible data for any page.
type PageData struct {
	SiteName    string
	Header      string
	Page        models.Page
	Nav         []NavLink
	Articles    []ArticleView
	Whiteboard  []WhiteboardEntry
	IsHome      bool
	IsNews      bool
	Pages       []PageCount
	Form        forms.ArticleForm
	Editing     *models.Article
	FormAction  string
	Errors      forms.Errors
	Login       forms.LoginForm
	CurrentUser *models.User
	IsSuperuser bool
}

// BuildNavigation maps every page title to its public URL in site order,
// leaving out the page currently displayed.
func BuildNavigation(pages []models.Page, current models.Page) []NavLink {
	nav := make([]NavLink, 0, len(pages))
	for _, p := range pages {
		if p.Title == current.Title {
			continue
		}
		nav = append(nav, NavLink{Title: p.Title, URL: p.PageURL})
	}
	return nav
}

// BuildWhiteboard links each flagged news article to its anchor on the news
// page. The order of articles is kept.
func BuildWhiteboard(articles []models.Article, news models.Page) []WhiteboardEntry {
	entries := make([]WhiteboardEntry, 0, len(articles))
	for _, a := range articles {
		if a.PageID != news.ID || !a.ShowOnWhiteboard {
			continue
		}
		entries = append(entries, WhiteboardEntry{
			Title:   a.Title,
			URL:     news.PageURL + "#" + a.Anchor(),
			PubDate: a.PubDate,
		})
	}
	return entries
}

// ArticleURLs returns the edit and delete paths of an article.
func ArticleURLs(a models.Article) (edit, del string) {
	id := strconv.FormatInt(a.ID, 10)
	return "/edit_article/" + id + "/", "/delete_article/" + id + "/"
}
