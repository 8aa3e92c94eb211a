package controller

import (
	"errors"
	"net/http"

	"coolschool/internal/article"
	"coolschool/internal/config"
	"coolschool/internal/page"
	"coolschool/internal/web/viewmodels"
)

// Site serves the public pages. One handler is registered per configured page.
type Site struct {
	Views
	PageRepo    *page.Repository
	ArticleRepo *article.Repository
}

// Register registers a GET route for every page of the site.
func (s *Site) Register(mux *http.ServeMux, site config.Site) {
	for _, p := range site.Pages {
		mux.HandleFunc("GET "+p.URL+"{$}", s.view(p.Slug))
	}
}

func (s *Site) view(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		current, err := s.PageRepo.FindBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, page.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			serverError(w, r, err)
			return
		}

		pages, err := s.PageRepo.List(ctx)
		if err != nil {
			serverError(w, r, err)
			return
		}

		articles, err := s.ArticleRepo.ListByPage(ctx, current.ID)
		if err != nil {
			serverError(w, r, err)
			return
		}
		views, err := articleViews(articles)
		if err != nil {
			serverError(w, r, err)
			return
		}

		data := viewmodels.PageData{
			Page:     current,
			Nav:      viewmodels.BuildNavigation(pages, current),
			Articles: views,
			IsHome:   slug == config.HomeSlug,
			IsNews:   slug == config.NewsSlug,
		}

		if data.IsHome {
			data.Whiteboard, err = s.whiteboard(r)
			if err != nil {
				serverError(w, r, err)
				return
			}
		}

		s.render(w, r, "page.html", http.StatusOK, data)
	}
}

func (s *Site) whiteboard(r *http.Request) ([]viewmodels.WhiteboardEntry, error) {
	news, err := s.PageRepo.FindBySlug(r.Context(), config.NewsSlug)
	if err != nil {
		if errors.Is(err, page.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	flagged, err := s.ArticleRepo.ListWhiteboard(r.Context(), news.ID)
	if err != nil {
		return nil, err
	}
	return viewmodels.BuildWhiteboard(flagged, news), nil
}
