// Package server implements the HTTP layer around the extraction core:
// multipart document ingest, JSON responses, and CSV/XLSX export.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Palash-creator/gem-extract/internal/logger"
	"github.com/Palash-creator/gem-extract/pkg/extract"
)

// Config holds the server's collaborators.
type Config struct {
	Adapter *extract.Adapter
	Presets []Preset
}

// Server wires HTTP handlers to the extraction adapter.
type Server struct {
	adapter  *extract.Adapter
	presets  []Preset
	validate *validator.Validate
	mux      *http.ServeMux
}

// New creates the HTTP server and registers its routes.
func New(cfg Config) *Server {
	s := &Server{
		adapter:  cfg.Adapter,
		presets:  cfg.Presets,
		validate: validator.New(),
		mux:      http.NewServeMux(),
	}

	s.mux.HandleFunc("POST /api/extract", s.handleExtract)
	s.mux.HandleFunc("POST /api/export/csv", s.handleExportCSV)
	s.mux.HandleFunc("POST /api/export/xlsx", s.handleExportXLSX)
	s.mux.HandleFunc("GET /api/presets", s.handlePresets)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePresets(w http.ResponseWriter, _ *http.Request) {
	presets := s.presets
	if presets == nil {
		presets = []Preset{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"presets": presets})
}
