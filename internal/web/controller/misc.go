package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"coolschool/internal/web/renderer"
)

// maxPreviewBytes bounds the markup accepted by the preview endpoint.
const maxPreviewBytes = 1 << 20

// Misc provides miscellaneous handlers
type Misc struct {
	DB *sqlx.DB
}

// Register registers the misc routes. The preview is only reachable through guard.
func (m *Misc) Register(mux *http.ServeMux, guard func(http.Handler) http.Handler) {
	mux.Handle("POST /_preview", guard(http.HandlerFunc(m.preview)))
	mux.HandleFunc("GET /healthz", m.health)
}

func (m *Misc) preview(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPreviewBytes))
	if err != nil {
		http.Error(w, "Error reading request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	out, err := renderer.Render(string(body))
	if err != nil {
		serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(out))
}

func (m *Misc) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, code := "healthy", http.StatusOK
	if err := m.DB.PingContext(ctx); err != nil {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}
