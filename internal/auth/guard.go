package auth

import (
	"context"
	"net/http"
	"net/url"

	"coolschool/internal/models"
)

// LoginURL is where anonymous visitors of protected pages are sent.
const LoginURL = "/login/"

type contextKey struct{}

var userKey contextKey

// Decision is the outcome of the superuser guard.
type Decision int

const (
	Authorized Decision = iota
	DeniedAnonymous
	DeniedForbidden
)

func (d Decision) String() string {
	switch d {
	case Authorized:
		return "authorized"
	case DeniedAnonymous:
		return "denied_anonymous"
	default:
		return "denied_forbidden"
	}
}

// Authorize decides whether the user may manage content.
func Authorize(user *models.User) Decision {
	switch {
	case user == nil:
		return DeniedAnonymous
	case !user.IsSuperuser:
		return DeniedForbidden
	default:
		return Authorized
	}
}

// ContextWithUser stores the user in the context.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the user stored by WithUser, or nil.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// WithUser adds the current user to the request context.
func (s *Service) WithUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := s.GetCurrentUser(r)
		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}

// RequireSuperuser protects routes that manage content. Anonymous visitors are
// redirected to the login page, other users get 403. The wrapped handler is
// not invoked unless the decision is Authorized.
func RequireSuperuser(observe func(Decision)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := Authorize(UserFromContext(r.Context()))
			if observe != nil {
				observe(decision)
			}
			switch decision {
			case Authorized:
				next.ServeHTTP(w, r)
			case DeniedAnonymous:
				http.Redirect(w, r, LoginURL+"?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
			default:
				http.Error(w, "Forbidden", http.StatusForbidden)
			}
		})
	}
}
