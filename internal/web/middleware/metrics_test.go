package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"coolschool/internal/metrics"
	"coolschool/internal/web/middleware"
)

func TestMetricsMiddleware(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /items/{id}/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /items/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	h := middleware.Metrics(mux)

	t.Run("records the route pattern", func(t *testing.T) {
		counter := metrics.HTTPRequestsTotal.WithLabelValues("GET", "GET /items/{id}/", "200")
		before := promtest.ToFloat64(counter)
		inFlight := promtest.ToFloat64(metrics.HTTPRequestsInFlight)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/7/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, before+1, promtest.ToFloat64(counter))
		assert.Equal(t, inFlight, promtest.ToFloat64(metrics.HTTPRequestsInFlight))
	})

	t.Run("records status codes", func(t *testing.T) {
		counter := metrics.HTTPRequestsTotal.WithLabelValues("POST", "POST /items/", "201")
		before := promtest.ToFloat64(counter)

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/items/", nil))

		assert.Equal(t, before+1, promtest.ToFloat64(counter))
	})

	t.Run("unmatched routes share one label", func(t *testing.T) {
		counter := metrics.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")
		before := promtest.ToFloat64(counter)

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope/", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, before+1, promtest.ToFloat64(counter))
	})
}
