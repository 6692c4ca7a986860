package api

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/itemcheck/internal/pipeline"
	"github.com/dgallion1/itemcheck/internal/report"
)

// handleAuditReport downloads the error summary of a finished job. Nothing
// flagged yields 204 with no body.
func (s *Server) handleAuditReport(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}

	name := r.URL.Query().Get("format")
	if name == "" {
		name = s.cfg.ReportFormat
	}
	format, err := report.ParseFormat(name)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res := job.Result()
	if res == nil {
		if job.Snapshot().Status == pipeline.StatusFailed {
			jsonError(w, "audit failed", http.StatusConflict)
			return
		}
		jsonError(w, "audit not finished", http.StatusConflict)
		return
	}
	if len(res.Flagged) == 0 {
		w.Header().Set("X-Itemcheck-Message", report.NoErrorsMessage)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writer, err := report.ForFormat(string(format))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var buf bytes.Buffer
	if err := writer.Write(&buf, report.Rows(res.Flagged)); err != nil {
		s.log.Error("render report failed", "job_id", jobID, "format", format, "error", err)
		jsonError(w, "failed to render report", http.StatusInternalServerError)
		return
	}

	filename := filepath.Base(report.OutputPath(job.Filename, format))
	w.Header().Set("Content-Type", writer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(buf.Bytes())
}
