package web

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/jmoiron/sqlx"

	"coolschool/internal/article"
	"coolschool/internal/auth"
	"coolschool/internal/config"
	"coolschool/internal/page"
	"coolschool/internal/web/forms"
)

// Server holds the dependencies for the web server.
type Server struct {
	db          *sqlx.DB
	site        config.Site
	templates   map[string]*template.Template
	validator   *forms.Validator
	authService *auth.Service
	pageRepo    *page.Repository
	articleRepo *article.Repository
	handler     http.Handler

	// Now is the clock used for publication dates.
	Now func() time.Time
}

// NewServer creates a new server with the given dependencies.
func NewServer(site config.Site, db *sqlx.DB, store sessions.Store) (*Server, error) {
	templates, err := ParseTemplates()
	if err != nil {
		return nil, err
	}
	validator, err := forms.NewValidator()
	if err != nil {
		return nil, err
	}

	s := &Server{
		db:          db,
		site:        site,
		templates:   templates,
		validator:   validator,
		authService: auth.NewService(auth.NewRepository(db), store),
		pageRepo:    page.NewRepository(db),
		articleRepo: article.NewRepository(db),
		Now:         time.Now,
	}
	s.handler = s.routes()
	return s, nil
}

// AuthService exposes the authentication service, e.g. for tests that need users.
func (s *Server) AuthService() *auth.Service {
	return s.authService
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
