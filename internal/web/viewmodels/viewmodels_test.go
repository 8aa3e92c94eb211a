package viewmodels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"coolschool/internal/models"
)

var pages = []models.Page{
	{ID: 1, Slug: "main", Title: "Główna", PageURL: "/"},
	{ID: 2, Slug: "news", Title: "Aktualności", PageURL: "/news/"},
	{ID: 3, Slug: "courses", Title: "Kursy", PageURL: "/courses/"},
}

func TestBuildNavigation(t *testing.T) {
	tests := []struct {
		name    string
		current models.Page
		want    []NavLink
	}{
		{
			name:    "home excluded",
			current: pages[0],
			want:    []NavLink{{"Aktualności", "/news/"}, {"Kursy", "/courses/"}},
		},
		{
			name:    "middle page excluded",
			current: pages[1],
			want:    []NavLink{{"Główna", "/"}, {"Kursy", "/courses/"}},
		},
		{
			name:    "unknown page keeps everything",
			current: models.Page{Title: "Inna"},
			want:    []NavLink{{"Główna", "/"}, {"Aktualności", "/news/"}, {"Kursy", "/courses/"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildNavigation(pages, tt.current))
		})
	}
}

func TestBuildWhiteboard(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	articles := []models.Article{
		{ID: 7, Title: "Title1", PageID: 2, ShowOnWhiteboard: true, PubDate: now},
		{ID: 8, Title: "hidden", PageID: 2, PubDate: now},
		{ID: 9, Title: "course", PageID: 3, ShowOnWhiteboard: true, PubDate: now},
		{ID: 5, Title: "Title2", PageID: 2, ShowOnWhiteboard: true, PubDate: now.Add(-time.Hour)},
	}

	got := BuildWhiteboard(articles, pages[1])
	assert.Equal(t, []WhiteboardEntry{
		{Title: "Title1", URL: "/news/#article-7", PubDate: now},
		{Title: "Title2", URL: "/news/#article-5", PubDate: now.Add(-time.Hour)},
	}, got)

	assert.Empty(t, BuildWhiteboard(nil, pages[1]))
}

func TestArticleURLs(t *testing.T) {
	edit, del := ArticleURLs(models.Article{ID: 42})
	assert.Equal(t, "/edit_article/42/", edit)
	assert.Equal(t, "/delete_article/42/", del)
}
