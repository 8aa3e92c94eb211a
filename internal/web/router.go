package web

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"coolschool/internal/web/controller"
	"coolschool/internal/web/middleware"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())

	views := controller.Views{Templates: s.templates, SiteName: s.site.Name}
	guard := middleware.Superuser()

	siteController := controller.Site{Views: views, PageRepo: s.pageRepo, ArticleRepo: s.articleRepo}
	siteController.Register(mux, s.site)

	authController := controller.Auth{Views: views, AuthService: s.authService, Validator: s.validator}
	authController.Register(mux)

	editorController := controller.Editor{
		Views:       views,
		PageRepo:    s.pageRepo,
		ArticleRepo: s.articleRepo,
		Validator:   s.validator,
		Now:         func() time.Time { return s.Now() },
	}
	editorController.Register(mux, guard)

	adminController := controller.Admin{Views: views, PageRepo: s.pageRepo, ArticleRepo: s.articleRepo, Validator: s.validator}
	adminController.Register(mux, guard)

	miscController := controller.Misc{DB: s.db}
	miscController.Register(mux, guard)

	// Metrics wraps the mux directly so it sees the matched pattern.
	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logging,
		middleware.WithUser(s.authService),
		middleware.Metrics,
	)
}
