package controller

import (
	"errors"
	"net/http"
	"strconv"

	"coolschool/internal/article"
	"coolschool/internal/models"
	"coolschool/internal/page"
	"coolschool/internal/web/forms"
	"coolschool/internal/web/viewmodels"
)

// AdminHeader is the heading of the admin dashboard.
const AdminHeader = "Cool School Admin Page"

// Admin provides the dashboard handlers.
type Admin struct {
	Views
	PageRepo    *page.Repository
	ArticleRepo *article.Repository
	Validator   *forms.Validator
}

// Register registers the admin routes behind guard.
func (a *Admin) Register(mux *http.ServeMux, guard func(http.Handler) http.Handler) {
	mux.Handle("GET /admin/{$}", guard(http.HandlerFunc(a.dashboard)))
	mux.Handle("POST /admin/pages/{id}/", guard(http.HandlerFunc(a.rename)))
}

func (a *Admin) dashboard(w http.ResponseWriter, r *http.Request) {
	a.renderDashboard(w, r, http.StatusOK, nil)
}

func (a *Admin) rename(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	form, err := forms.BindPageTitle(r)
	if err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	if _, err := a.PageRepo.FindByID(r.Context(), id); err != nil {
		if errors.Is(err, page.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		serverError(w, r, err)
		return
	}

	if errs := a.Validator.Check(form); errs != nil {
		a.renderDashboard(w, r, http.StatusUnprocessableEntity, errs)
		return
	}

	if err := a.PageRepo.UpdateTitle(r.Context(), id, form.Title); err != nil {
		if errors.Is(err, page.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/", http.StatusFound)
}

func (a *Admin) renderDashboard(w http.ResponseWriter, r *http.Request, status int, errs forms.Errors) {
	pages, err := a.PageRepo.List(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	counts, err := a.ArticleRepo.CountByPage(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}

	rows := make([]viewmodels.PageCount, 0, len(pages))
	for _, p := range pages {
		rows = append(rows, viewmodels.PageCount{Page: p, Articles: counts[p.ID]})
	}

	a.render(w, r, "admin.html", status, viewmodels.PageData{
		Header: AdminHeader,
		Nav:    viewmodels.BuildNavigation(pages, models.Page{}),
		Pages:  rows,
		Errors: errs,
	})
}
