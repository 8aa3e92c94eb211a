package middleware

import (
	"net/http"

	"coolschool/internal/auth"
	"coolschool/internal/metrics"
)

// WithUser returns a new with user middleware
func WithUser(authService *auth.Service) func(http.Handler) http.Handler {
	return authService.WithUser
}

// Superuser returns the guard for content management routes. Every decision
// is counted.
func Superuser() func(http.Handler) http.Handler {
	return auth.RequireSuperuser(func(d auth.Decision) {
		metrics.AuthDecisions.WithLabelValues(d.String()).Inc()
	})
}
