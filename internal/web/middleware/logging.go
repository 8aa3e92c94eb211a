package middleware

import (
	"net/http"
	"time"

	"coolschool/internal/logger"
)

// Logging writes one access log line per request.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)

		next.ServeHTTP(rec, r)

		log := logger.WithRequestID(GetRequestID(r.Context()))
		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		}
		if rec.status >= http.StatusInternalServerError {
			log.Error("request", args...)
			return
		}
		log.Info("request", args...)
	})
}
