package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Gee9999/Air-Ship/constants"
	"github.com/Gee9999/Air-Ship/internal/common"
	"github.com/Gee9999/Air-Ship/internal/factor"
	"github.com/Gee9999/Air-Ship/internal/pipeline"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReconcile accepts one invoice, one worksheet and a factor set as a
// multipart form, runs the pipeline, and streams the artifact back as an
// attachment. Failed runs return a JSON error and no artifact bytes.
func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	runID := uuid.NewString()
	ctx := common.WithRunID(r.Context(), runID)

	maxBytes := int64(s.cfg.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		s.writeError(w, runID, fmt.Errorf("parse multipart form: %v: %w", err, common.ErrInputShape))
		return
	}

	format := r.FormValue("format")
	v := common.NewValidator()
	v.Field("format", format, common.OneOf("csv", "xlsx"))
	if v.HasErrors() {
		s.writeError(w, runID, common.NewAppError("VALIDATION_ERROR", v.ErrorMessage(), common.ErrInputShape))
		return
	}
	if format == "" {
		format = "csv"
	}

	factors, err := factorsFromForm(r)
	if err != nil {
		s.writeError(w, runID, err)
		return
	}

	defer s.stager.Cleanup(runID)
	invoicePath, err := s.stageUpload(runID, r, "invoice", constants.InvoiceExtensions)
	if err != nil {
		s.writeError(w, runID, err)
		return
	}
	worksheetPath, err := s.stageUpload(runID, r, "worksheet", constants.WorksheetExtensions)
	if err != nil {
		s.writeError(w, runID, err)
		return
	}

	res, data, err := s.proc.Process(ctx, pipeline.RunRequest{
		InvoicePath:   invoicePath,
		WorksheetPath: worksheetPath,
		Format:        constants.MapExtToFormat(format),
		Factors:       factors,
	})
	if err != nil {
		s.writeError(w, runID, err)
		return
	}

	name := fmt.Sprintf("reconciled-%s.%s", res.RunID[:8], strings.ToLower(res.Format))
	if res.Format == constants.XLSX {
		w.Header().Set("Content-Type", xlsxContentType)
	} else {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("X-Run-Id", res.RunID)
	w.Header().Set("X-Row-Count", strconv.Itoa(res.Rows))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("http.write.failed", "run_id", res.RunID, "err", err)
	}
}

// factorsFromForm merges the textarea field (one INTEGER=REAL per line)
// with repeated factor fields, the repeated fields winning on conflict.
func factorsFromForm(r *http.Request) (factor.Table, error) {
	var pairs []string
	for _, line := range strings.Split(r.FormValue("factors"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			pairs = append(pairs, line)
		}
	}
	if r.MultipartForm != nil {
		pairs = append(pairs, r.MultipartForm.Value["factor"]...)
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("at least one factor is required (factor fields or factors textarea): %w", common.ErrConfig)
	}
	return factor.ParseFlags(pairs)
}

func (s *Server) stageUpload(runID string, r *http.Request, field string, allowed map[string]struct{}) (string, error) {
	file, hdr, err := r.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("%s file is required: %w", field, common.ErrInputShape)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			s.logger.Warn("upload close failed", "field", field, "err", cerr)
		}
	}()
	staged, err := s.stager.SaveUpload(runID, field, hdr.Filename, file, allowed)
	if err != nil {
		return "", err
	}
	return staged.Path, nil
}
