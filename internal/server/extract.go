package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Palash-creator/gem-extract/internal/logger"
	"github.com/Palash-creator/gem-extract/pkg/extract"
)

// maxUploadBytes bounds the in-memory portion of multipart parsing.
const maxUploadBytes = 32 << 20

// extractResponse is the JSON shape returned by POST /api/extract.
type extractResponse struct {
	Fields  []string         `json:"fields"`
	Records []extract.Record `json:"records"`
	Logs    []string         `json:"logs"`
	Engine  string           `json:"engine"`
	Status  string           `json:"status"`
}

// handleExtract accepts a multipart form with a "fields" JSON array and one
// or more "documents" files, runs the extraction adapter, and returns the
// tabular result.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form.")
		return
	}

	rawFields := r.FormValue("fields")
	if rawFields == "" {
		rawFields = "[]"
	}

	var parsedFields []string
	if err := json.Unmarshal([]byte(rawFields), &parsedFields); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid fields format. Send a JSON array.")
		return
	}

	fields := extract.NormalizeFields(parsedFields)
	if len(fields) == 0 {
		writeError(w, http.StatusBadRequest, "Please provide at least one valid field.")
		return
	}

	docs, err := s.readDocuments(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Failed to read uploaded documents: %v", err))
		return
	}
	if len(docs) == 0 {
		writeError(w, http.StatusBadRequest, "Please upload at least one document.")
		return
	}

	credentialOverride := r.FormValue("api_key")

	result, err := s.adapter.Extract(r.Context(), docs, fields, credentialOverride)
	switch {
	case errors.Is(err, extract.ErrNoDocuments), errors.Is(err, extract.ErrNoFields):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		logger.Error("extraction failed", "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Unexpected extraction failure: %v", err))
		return
	}

	logger.Info("extraction completed",
		"documents", len(docs),
		"fields", len(fields),
		"engine", result.Engine)

	writeJSON(w, http.StatusOK, extractResponse{
		Fields:  append([]string{extract.DocumentKey}, fields...),
		Records: result.Records,
		Logs:    result.Logs,
		Engine:  result.Engine,
		Status:  "completed",
	})
}
