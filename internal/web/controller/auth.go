package controller

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"coolschool/internal/auth"
	"coolschool/internal/logger"
	"coolschool/internal/web/forms"
	"coolschool/internal/web/middleware"
	"coolschool/internal/web/viewmodels"
)

// defaultNext is where a successful login lands without a next parameter.
const defaultNext = "/admin/"

// Auth provides auth handlers
type Auth struct {
	Views
	AuthService *auth.Service
	Validator   *forms.Validator
}

// Register registers the auth routes
func (a *Auth) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /login/{$}", a.loginGet)
	mux.HandleFunc("POST /login/{$}", a.loginPost)
	mux.HandleFunc("GET /logout/{$}", a.logout)
	mux.HandleFunc("POST /logout/{$}", a.logout)
}

func (a *Auth) loginGet(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, "login.html", http.StatusOK, viewmodels.PageData{
		Login: forms.LoginForm{Next: r.URL.Query().Get("next")},
	})
}

func (a *Auth) loginPost(w http.ResponseWriter, r *http.Request) {
	form, err := forms.BindLogin(r)
	if err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}
	form.Next = safeNext(form.Next)

	if errs := a.Validator.Check(form); errs != nil {
		form.Password = ""
		a.render(w, r, "login.html", http.StatusUnprocessableEntity, viewmodels.PageData{Login: form, Errors: errs})
		return
	}

	user, err := a.AuthService.Login(w, r, form.Username, form.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			serverError(w, r, err)
			return
		}
		logger.WithRequestID(middleware.GetRequestID(r.Context())).Warn("failed login", "username", form.Username)
		form.Password = ""
		a.render(w, r, "login.html", http.StatusUnauthorized, viewmodels.PageData{
			Login:  form,
			Errors: forms.Errors{"": "Nieprawidłowa nazwa użytkownika lub hasło."},
		})
		return
	}

	logger.WithRequestID(middleware.GetRequestID(r.Context())).Info("user logged in", "user_id", user.ID)
	http.Redirect(w, r, form.Next, http.StatusFound)
}

func (a *Auth) logout(w http.ResponseWriter, r *http.Request) {
	if err := a.AuthService.Logout(w, r); err != nil {
		serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// safeNext only accepts local absolute paths.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return defaultNext
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return defaultNext
	}
	return next
}
