package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"coolschool/internal/article"
	"coolschool/internal/config"
	"coolschool/internal/metrics"
	"coolschool/internal/models"
	"coolschool/internal/page"
	"coolschool/internal/web/forms"
	"coolschool/internal/web/viewmodels"
)

// Editor provides the article management handlers. Every route must be
// wrapped by the superuser guard.
type Editor struct {
	Views
	PageRepo    *page.Repository
	ArticleRepo *article.Repository
	Validator   *forms.Validator
	Now         func() time.Time
}

// Register registers the editor routes behind guard.
func (e *Editor) Register(mux *http.ServeMux, guard func(http.Handler) http.Handler) {
	mux.Handle("GET /add_article/{page}/", guard(http.HandlerFunc(e.addForm)))
	mux.Handle("POST /add_article/{page}/", guard(http.HandlerFunc(e.add)))
	mux.Handle("GET /edit_article/{id}/", guard(http.HandlerFunc(e.editForm)))
	mux.Handle("POST /edit_article/{id}/", guard(http.HandlerFunc(e.edit)))
	mux.Handle("GET /delete_article/{id}/", guard(http.HandlerFunc(e.delete)))
	mux.Handle("POST /delete_article/{id}/", guard(http.HandlerFunc(e.delete)))
}

func (e *Editor) now() time.Time {
	if e.Now != nil {
		return e.Now().UTC()
	}
	return time.Now().UTC()
}

func (e *Editor) addForm(w http.ResponseWriter, r *http.Request) {
	p, ok := e.pageBySlug(w, r)
	if !ok {
		return
	}
	e.renderForm(w, r, http.StatusOK, p, nil, forms.ArticleForm{}, nil)
}

func (e *Editor) add(w http.ResponseWriter, r *http.Request) {
	p, ok := e.pageBySlug(w, r)
	if !ok {
		return
	}

	form, err := forms.BindArticle(r, p.Slug == config.NewsSlug)
	if err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}
	if errs := e.Validator.Check(form); errs != nil {
		e.renderForm(w, r, http.StatusUnprocessableEntity, p, nil, form, errs)
		return
	}

	a := &models.Article{
		Title:            form.Title,
		Content:          form.Content,
		PubDate:          e.now(),
		PageID:           p.ID,
		ShowOnWhiteboard: form.ShowOnWhiteboard,
	}
	if err := e.ArticleRepo.Create(r.Context(), a); err != nil {
		serverError(w, r, err)
		return
	}

	metrics.ArticleMutations.WithLabelValues(p.Slug, metrics.OpCreate).Inc()
	http.Redirect(w, r, p.EditURL, http.StatusFound)
}

func (e *Editor) editForm(w http.ResponseWriter, r *http.Request) {
	a, p, ok := e.articleByID(w, r)
	if !ok {
		return
	}
	form := forms.ArticleForm{Title: a.Title, Content: a.Content, ShowOnWhiteboard: a.ShowOnWhiteboard}
	e.renderForm(w, r, http.StatusOK, p, &a, form, nil)
}

func (e *Editor) edit(w http.ResponseWriter, r *http.Request) {
	a, p, ok := e.articleByID(w, r)
	if !ok {
		return
	}

	form, err := forms.BindArticle(r, p.Slug == config.NewsSlug)
	if err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}
	if errs := e.Validator.Check(form); errs != nil {
		e.renderForm(w, r, http.StatusUnprocessableEntity, p, &a, form, errs)
		return
	}

	a.Title = form.Title
	a.Content = form.Content
	a.ShowOnWhiteboard = form.ShowOnWhiteboard
	if err := e.ArticleRepo.Update(r.Context(), a); err != nil {
		if errors.Is(err, article.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		serverError(w, r, err)
		return
	}

	metrics.ArticleMutations.WithLabelValues(p.Slug, metrics.OpUpdate).Inc()
	http.Redirect(w, r, p.EditURL, http.StatusFound)
}

func (e *Editor) delete(w http.ResponseWriter, r *http.Request) {
	a, p, ok := e.articleByID(w, r)
	if !ok {
		return
	}

	if err := e.ArticleRepo.Delete(r.Context(), a.ID); err != nil {
		if errors.Is(err, article.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		serverError(w, r, err)
		return
	}

	metrics.ArticleMutations.WithLabelValues(p.Slug, metrics.OpDelete).Inc()
	http.Redirect(w, r, p.EditURL, http.StatusFound)
}

// renderForm shows the article form of a page next to its articles. The
// edited article, if any, is left out of the list.
func (e *Editor) renderForm(w http.ResponseWriter, r *http.Request, status int, p models.Page, editing *models.Article, form forms.ArticleForm, errs forms.Errors) {
	articles, err := e.ArticleRepo.ListByPage(r.Context(), p.ID)
	if err != nil {
		serverError(w, r, err)
		return
	}

	action := p.EditURL
	if editing != nil {
		action, _ = viewmodels.ArticleURLs(*editing)
		siblings := articles[:0]
		for _, a := range articles {
			if a.ID != editing.ID {
				siblings = append(siblings, a)
			}
		}
		articles = siblings
	}

	views, err := articleViews(articles)
	if err != nil {
		serverError(w, r, err)
		return
	}

	pages, err := e.PageRepo.List(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}

	e.render(w, r, "edit.html", status, viewmodels.PageData{
		Page:       p,
		Nav:        viewmodels.BuildNavigation(pages, models.Page{}),
		Articles:   views,
		IsNews:     p.Slug == config.NewsSlug,
		Form:       form,
		Editing:    editing,
		FormAction: action,
		Errors:     errs,
	})
}

func (e *Editor) pageBySlug(w http.ResponseWriter, r *http.Request) (models.Page, bool) {
	p, err := e.PageRepo.FindBySlug(r.Context(), r.PathValue("page"))
	if err != nil {
		if errors.Is(err, page.ErrNotFound) {
			http.NotFound(w, r)
			return models.Page{}, false
		}
		serverError(w, r, err)
		return models.Page{}, false
	}
	return p, true
}

// articleByID loads the article named in the path together with its page.
func (e *Editor) articleByID(w http.ResponseWriter, r *http.Request) (models.Article, models.Page, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return models.Article{}, models.Page{}, false
	}

	a, err := e.ArticleRepo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, article.ErrNotFound) {
			http.NotFound(w, r)
			return models.Article{}, models.Page{}, false
		}
		serverError(w, r, err)
		return models.Article{}, models.Page{}, false
	}

	p, err := e.PageRepo.FindByID(r.Context(), a.PageID)
	if err != nil {
		serverError(w, r, err)
		return models.Article{}, models.Page{}, false
	}
	return a, p, true
}
