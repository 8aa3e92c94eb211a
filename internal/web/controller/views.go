package controller

import (
	"bytes"
	"html/template"
	"net/http"

	"coolschool/internal/auth"
	"coolschool/internal/logger"
	"coolschool/internal/models"
	"coolschool/internal/web/middleware"
	"coolschool/internal/web/renderer"
	"coolschool/internal/web/viewmodels"
)

// Views renders page templates inside the shared layout.
type Views struct {
	Templates map[string]*template.Template
	SiteName  string
}

// render executes the named template set into a buffer first so a failing
// template never leaves a half written page behind.
func (v Views) render(w http.ResponseWriter, r *http.Request, name string, status int, data viewmodels.PageData) {
	t, ok := v.Templates[name]
	if !ok {
		serverError(w, r, errMissingTemplate(name))
		return
	}

	user := auth.UserFromContext(r.Context())
	data.SiteName = v.SiteName
	data.CurrentUser = user
	data.IsSuperuser = auth.Authorize(user) == auth.Authorized

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

type errMissingTemplate string

func (e errMissingTemplate) Error() string {
	return "template " + string(e) + " not found"
}

func serverError(w http.ResponseWriter, r *http.Request, err error) {
	logger.WithRequestID(middleware.GetRequestID(r.Context())).Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// articleViews renders the content of every article and attaches its admin links.
func articleViews(articles []models.Article) ([]viewmodels.ArticleView, error) {
	views := make([]viewmodels.ArticleView, 0, len(articles))
	for _, a := range articles {
		html, err := renderer.Render(a.Content)
		if err != nil {
			return nil, err
		}
		edit, del := viewmodels.ArticleURLs(a)
		views = append(views, viewmodels.ArticleView{Article: a, HTML: html, EditURL: edit, DeleteURL: del})
	}
	return views, nil
}
