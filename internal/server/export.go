package server

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/Palash-creator/gem-extract/internal/logger"
	"github.com/Palash-creator/gem-extract/pkg/extract"
)

// exportRequest is the JSON payload for the export endpoints. Fields is
// optional; when absent the column order is derived from the records.
type exportRequest struct {
	Fields  []string         `json:"fields"`
	Records []extract.Record `json:"records" validate:"required,min=1"`
}

// decodeExportRequest parses and validates an export payload.
func (s *Server) decodeExportRequest(w http.ResponseWriter, r *http.Request) (*exportRequest, bool) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing or invalid JSON body.")
		return nil, false
	}

	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "No records to export.")
		return nil, false
	}

	return &req, true
}

// columns returns the export column order: the requested fields when given,
// otherwise the union of record keys with the document column first.
func (req *exportRequest) columns() []string {
	if len(req.Fields) > 0 {
		return extract.NormalizeFields(req.Fields)
	}

	seen := make(map[string]struct{})
	var rest []string
	for _, rec := range req.Records {
		for k := range rec {
			if k == extract.DocumentKey {
				continue
			}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)

	return append([]string{extract.DocumentKey}, rest...)
}

// handleExportCSV renders records as a downloadable CSV file.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeExportRequest(w, r)
	if !ok {
		return
	}

	cols := req.columns()

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(cols); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to write CSV.")
		return
	}
	for _, rec := range req.Records {
		row := make([]string, len(cols))
		for i, col := range cols {
			row[i] = rec[col]
		}
		if err := cw.Write(row); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to write CSV.")
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to write CSV.")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="extracted_entities.csv"`)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Error("failed to write CSV response", "error", err)
	}
}

// handleExportXLSX renders records as a downloadable spreadsheet.
func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeExportRequest(w, r)
	if !ok {
		return
	}

	cols := req.columns()

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for i, col := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to build spreadsheet.")
			return
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to build spreadsheet.")
			return
		}
	}
	for rowIdx, rec := range req.Records {
		for colIdx, col := range cols {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to build spreadsheet.")
				return
			}
			if err := f.SetCellValue(sheet, cell, rec[col]); err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to build spreadsheet.")
				return
			}
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="extracted_entities.xlsx"`)
	if err := f.Write(w); err != nil {
		logger.Error("failed to write XLSX response", "error", err)
	}
}
