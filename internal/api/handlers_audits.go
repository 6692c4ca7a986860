package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/itemcheck/internal/bank"
	"github.com/dgallion1/itemcheck/internal/check"
	"github.com/dgallion1/itemcheck/internal/pipeline"
	"github.com/dgallion1/itemcheck/internal/rules"
	"github.com/dgallion1/itemcheck/internal/vocab"
)

func (s *Server) handleSubmitAudit(w http.ResponseWriter, r *http.Request) {
	// Limit total request size: bank plus vocabulary, with 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, 2*s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !bank.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}
	data, status, err := s.readUpload(file)
	if err != nil {
		jsonError(w, err.Error(), status)
		return
	}

	overrides, err := parseOverrides(r.MultipartForm)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	job := pipeline.NewJob(filename, data)
	job.Overrides = overrides

	vf, vh, err := r.FormFile("vocab")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		jsonError(w, "invalid vocab upload: "+err.Error(), http.StatusBadRequest)
		return
	default:
		defer vf.Close()
		vname := sanitizeFilename(vh.Filename)
		if !vocab.IsSupportedExtension(vname) {
			jsonError(w, fmt.Sprintf("unsupported vocabulary type: %s", filepath.Ext(vname)), http.StatusBadRequest)
			return
		}
		vdata, status, err := s.readUpload(vf)
		if err != nil {
			jsonError(w, err.Error(), status)
			return
		}
		job.SetVocabulary(vname, vdata)
	}

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   pipeline.StatusQueued,
		"poll_url": fmt.Sprintf("/api/audits/%s", job.ID),
	})
}

func (s *Server) handleBatchAudit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}
	overrides, err := parseOverrides(r.MultipartForm)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var results []map[string]any
	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		if !bank.IsSupportedExtension(filename) {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)),
			})
			continue
		}

		f, err := fh.Open()
		if err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    "failed to open file",
			})
			continue
		}
		data, _, err := s.readUpload(f)
		f.Close()
		if err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    err.Error(),
			})
			continue
		}

		job := pipeline.NewJob(filename, data)
		job.Overrides = overrides
		if err := s.orchestrator.Submit(job); err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    err.Error(),
			})
			continue
		}

		results = append(results, map[string]any{
			"filename": filename,
			"job_id":   job.ID,
			"status":   pipeline.StatusQueued,
			"poll_url": fmt.Sprintf("/api/audits/%s", job.ID),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{"jobs": results})
}

// flaggedQuestion is one entry of the status response.
type flaggedQuestion struct {
	Number         string          `json:"question_number"`
	StemErrors     string          `json:"stem_errors"`
	OptionErrors   string          `json:"option_errors"`
	StemFindings   []check.Finding `json:"stem_findings"`
	OptionFindings []check.Finding `json:"option_findings"`
}

func (s *Server) handleAuditStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	resp := map[string]any{
		"job_id":       snap.ID,
		"status":       snap.Status,
		"phase":        snap.Phase,
		"filename":     snap.Filename,
		"content_hash": snap.ContentHash,
		"progress":     snap.Progress,
	}
	if res := job.Result(); res != nil {
		flagged := make([]flaggedQuestion, 0, len(res.Flagged))
		for _, f := range res.Flagged {
			flagged = append(flagged, flaggedQuestion{
				Number:         f.Question.Number,
				StemErrors:     f.Report.StemErrors,
				OptionErrors:   f.Report.OptionErrors,
				StemFindings:   f.Report.StemFindings,
				OptionFindings: f.Report.OptionFindings,
			})
		}
		resp["flagged"] = flagged
		resp["duration_ms"] = res.Duration.Milliseconds()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// readUpload reads one multipart file, enforcing the upload limit.
func (s *Server) readUpload(f multipart.File) ([]byte, int, error) {
	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, http.StatusInternalServerError, errors.New("failed to read file")
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, http.StatusRequestEntityTooLarge, fmt.Errorf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
	}
	return data, http.StatusOK, nil
}

// parseOverrides reads the optional rule fields. A field that is present
// but empty clears the list.
func parseOverrides(form *multipart.Form) (pipeline.Overrides, error) {
	var ov pipeline.Overrides
	if vs, ok := form.Value["stem_words"]; ok && len(vs) > 0 {
		ov.StemWords = nonNil(rules.ParseList(vs[0]))
	}
	if vs, ok := form.Value["option_words"]; ok && len(vs) > 0 {
		ov.OptionWords = nonNil(rules.ParseList(vs[0]))
	}
	if vs, ok := form.Value["threshold"]; ok && len(vs) > 0 && strings.TrimSpace(vs[0]) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(vs[0]))
		if err != nil || n < 0 {
			return ov, fmt.Errorf("threshold must be a non-negative integer")
		}
		ov.Threshold = &n
	}
	return ov, nil
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
