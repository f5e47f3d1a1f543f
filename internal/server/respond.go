package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Gee9999/Air-Ship/constants"
	"github.com/Gee9999/Air-Ship/internal/common"
)

type errorResponse struct {
	Error  string `json:"error"`
	RunID  string `json:"run_id,omitempty"`
	Status string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, runID string, err error) {
	status := statusForErr(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("http.reconcile.failed", "run_id", runID, "err", err)
	} else {
		s.logger.Warn("http.reconcile.rejected", "run_id", runID, "status", status, "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error:  err.Error(),
		RunID:  runID,
		Status: string(constants.RunStatusFailed),
	})
}

// statusForErr maps the error taxonomy onto HTTP codes: malformed input
// and configuration get 400, processing failures 422, the rest 500.
func statusForErr(err error) int {
	switch {
	case errors.Is(err, common.ErrInputShape), errors.Is(err, common.ErrConfig):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrExtraction), errors.Is(err, common.ErrResolution):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
