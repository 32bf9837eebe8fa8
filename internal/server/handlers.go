package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/foige/moxalise-api/internal/security"
	"github.com/foige/moxalise-api/internal/sheets"
)

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Moxalise API is running",
	})
}

func (s *Server) handleSheetNames(w http.ResponseWriter, r *http.Request) {
	names, err := s.port.SheetNames(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list sheet names")
		respondError(w, http.StatusInternalServerError, "Google Sheets API error: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, names)
}

// rangeFromQuery reads sheet_name/start_cell/end_cell query parameters.
func rangeFromQuery(r *http.Request) (sheets.Range, bool) {
	q := r.URL.Query()
	rng := sheets.Range{
		Sheet:     q.Get("sheet_name"),
		StartCell: q.Get("start_cell"),
		EndCell:   q.Get("end_cell"),
	}
	return rng, rng.Sheet != "" && rng.StartCell != ""
}

func (s *Server) handleGetData(w http.ResponseWriter, r *http.Request) {
	rng, ok := rangeFromQuery(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "sheet_name and start_cell are required")
		return
	}

	values, err := s.port.ReadRange(r.Context(), rng)
	if err != nil {
		log.Error().Err(err).Str("range", rng.A1Notation()).Msg("Failed to read sheet data")
		respondError(w, http.StatusInternalServerError, "Google Sheets API error: "+err.Error())
		return
	}
	if values == nil {
		values = [][]interface{}{}
	}

	respondJSON(w, http.StatusOK, SheetData{Range: rng.A1Notation(), Values: values})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Range.SheetName == "" || req.Range.StartCell == "" || len(req.Values) == 0 {
		respondError(w, http.StatusBadRequest, "range and values are required")
		return
	}

	rangeA1 := req.Range.toRange().A1Notation()
	updates := map[string][][]interface{}{
		rangeA1: security.SanitizeValues(req.Values),
	}

	updated, err := s.port.BatchUpdate(r.Context(), updates)
	if err != nil {
		log.Error().Err(err).Str("range", rangeA1).Msg("Failed to update sheet data")
		respondError(w, http.StatusInternalServerError, "Google Sheets API error: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, UpdateResponse{UpdatedCells: updated, UpdatedRange: rangeA1})
}

func (s *Server) handleAppend(w http.ResponseWriter, r *http.Request) {
	var req AppendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Range.SheetName == "" || req.Range.StartCell == "" || len(req.Values) == 0 {
		respondError(w, http.StatusBadRequest, "range and values are required")
		return
	}

	valueInputOption := req.ValueInputOption
	if valueInputOption == "" {
		valueInputOption = "USER_ENTERED"
	}

	appendedRange, err := s.port.AppendRows(
		r.Context(),
		req.Range.toRange(),
		security.SanitizeValues(req.Values),
		valueInputOption,
	)
	if err != nil {
		log.Error().Err(err).Str("sheet", req.Range.SheetName).Msg("Failed to append sheet data")
		respondError(w, http.StatusInternalServerError, "Google Sheets API error: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, AppendResponse{
		AppendedRows:  len(req.Values),
		AppendedRange: appendedRange,
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	rng, ok := rangeFromQuery(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "sheet_name and start_cell are required")
		return
	}

	clearedRange, err := s.port.ClearRange(r.Context(), rng)
	if err != nil {
		log.Error().Err(err).Str("range", rng.A1Notation()).Msg("Failed to clear sheet data")
		respondError(w, http.StatusInternalServerError, "Google Sheets API error: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Range " + clearedRange + " cleared successfully",
	})
}
