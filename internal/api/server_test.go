package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/itemcheck/internal/audit"
	"github.com/dgallion1/itemcheck/internal/config"
	"github.com/dgallion1/itemcheck/internal/pipeline"
)

const testKey = "test-key"

const testBank = `Question Number,Type,Stem Text,Option Text
1,McqSingle,<p>Which protocol is used for routing?</p>,<p>OSPF</p>
2,McqSingle,<p>Is this correct..</p>,<p>Yes</p>
3,McqSingle,<p>Which protocol does Contoso use?</p>,<p>BGP</p>
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	log := slog.New(slog.DiscardHandler)
	orch := pipeline.NewOrchestrator(
		pipeline.Settings{WorkerCount: 1, MaxQueueSize: 8, JobTTL: time.Hour},
		audit.Options{Stats: audit.NewStats(time.Hour)},
		log,
	)
	orch.Start(context.Background())
	t.Cleanup(orch.Stop)

	cfg := config.Config{APIKey: testKey, MaxUploadBytes: 1 << 20, ReportFormat: "xlsx"}
	return NewServer(orch, log, cfg)
}

type upload struct {
	field, name, content string
}

func multipartBody(t *testing.T, fields map[string]string, files ...upload) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.field, f.name)
		if err != nil {
			t.Fatal(err)
		}
		io.WriteString(fw, f.content)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &body, mw.FormDataContentType()
}

func do(s *Server, req *http.Request) *httptest.ResponseRecorder {
	req.Header.Set("Authorization", "Bearer "+testKey)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func submit(t *testing.T, s *Server, fields map[string]string, files ...upload) string {
	t.Helper()
	body, ct := multipartBody(t, fields, files...)
	req := httptest.NewRequest(http.MethodPost, "/api/audits", body)
	req.Header.Set("Content-Type", ct)
	rec := do(s, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	id, _ := resp["job_id"].(string)
	if id == "" {
		t.Fatalf("expected job_id in %v", resp)
	}
	return id
}

func waitDone(t *testing.T, s *Server, id string) map[string]any {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		rec := do(s, httptest.NewRequest(http.MethodGet, "/api/audits/"+id, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		switch resp["status"] {
		case string(pipeline.StatusCompleted), string(pipeline.StatusFailed), string(pipeline.StatusPartial):
			return resp
		}
		if time.Now().After(deadline) {
			t.Fatalf("job %s did not finish: %v", id, resp)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected health response %d %q", rec.Code, rec.Body.String())
	}
}

func TestAuth(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rules", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a key, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/rules", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with a bad key, got %d", rec.Code)
	}
}

func TestAuditLifecycle(t *testing.T) {
	s := newTestServer(t)
	id := submit(t, s, nil, upload{"file", "bank.csv", testBank})

	resp := waitDone(t, s, id)
	if resp["status"] != string(pipeline.StatusCompleted) {
		t.Fatalf("expected completed, got %v", resp)
	}
	progress, _ := resp["progress"].(map[string]any)
	if errs, ok := progress["errors"].([]any); !ok || len(errs) != 0 {
		t.Errorf("expected empty errors array, got %v", progress["errors"])
	}
	flagged, _ := resp["flagged"].([]any)
	if len(flagged) != 2 {
		t.Fatalf("expected 2 flagged questions, got %v", resp["flagged"])
	}
	first := flagged[0].(map[string]any)
	if first["question_number"] != "2" {
		t.Errorf("expected question 2 first, got %v", first["question_number"])
	}

	rec := do(s, httptest.NewRequest(http.MethodGet, "/api/audits/"+id+"/report?format=csv", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("expected csv content type, got %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "bank_error_summary.csv") {
		t.Errorf("expected derived filename, got %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "Question Number,Stem Text,Option Text") {
		t.Errorf("unexpected csv body %q", rec.Body.String())
	}

	rec = do(s, httptest.NewRequest(http.MethodGet, "/api/audits/"+id+"/report", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Header().Get("Content-Type"), "spreadsheetml") {
		t.Errorf("expected default xlsx report, got %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}

	rec = do(s, httptest.NewRequest(http.MethodGet, "/api/audits/"+id+"/report?format=pdf", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown format, got %d", rec.Code)
	}
}

func TestAuditOverridesAndNoContent(t *testing.T) {
	s := newTestServer(t)
	id := submit(t, s,
		map[string]string{"stem_words": "", "threshold": "30"},
		upload{"file", "bank.csv", testBank},
		upload{"vocab", "terms.txt", "Contoso\n"},
	)
	resp := waitDone(t, s, id)
	if flagged, _ := resp["flagged"].([]any); len(flagged) != 0 {
		t.Fatalf("expected nothing flagged, got %v", flagged)
	}

	rec := do(s, httptest.NewRequest(http.MethodGet, "/api/audits/"+id+"/report", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}

func TestSubmitAudit_Rejects(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name   string
		fields map[string]string
		files  []upload
		want   int
	}{
		{"no file", nil, nil, http.StatusBadRequest},
		{"bad extension", nil, []upload{{"file", "bank.ods", testBank}}, http.StatusBadRequest},
		{"bad threshold", map[string]string{"threshold": "-1"}, []upload{{"file", "bank.csv", testBank}}, http.StatusBadRequest},
		{"bad vocabulary", nil, []upload{{"file", "bank.csv", testBank}, {"vocab", "terms.odt", "x"}}, http.StatusBadRequest},
		{"too large", nil, []upload{{"file", "bank.csv", strings.Repeat("x", 2<<20)}}, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		body, ct := multipartBody(t, tt.fields, tt.files...)
		req := httptest.NewRequest(http.MethodPost, "/api/audits", body)
		req.Header.Set("Content-Type", ct)
		rec := do(s, req)
		if rec.Code != tt.want {
			t.Errorf("%s: expected %d, got %d: %s", tt.name, tt.want, rec.Code, rec.Body.String())
		}
	}
}

func TestAuditStatus_NotFound(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/api/audits/missing", "/api/audits/missing/report"} {
		rec := do(s, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, rec.Code)
		}
	}
}

func TestFailedAuditReport(t *testing.T) {
	s := newTestServer(t)
	id := submit(t, s, nil, upload{"file", "bank.csv", "Number,Type\n1,McqSingle\n"})
	resp := waitDone(t, s, id)
	if resp["status"] != string(pipeline.StatusFailed) {
		t.Fatalf("expected failed, got %v", resp)
	}
	rec := do(s, httptest.NewRequest(http.MethodGet, "/api/audits/"+id+"/report", nil))
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestBatchAudit(t *testing.T) {
	s := newTestServer(t)
	body, ct := multipartBody(t, nil,
		upload{"files", "a.csv", testBank},
		upload{"files", "b.txt", "nope"},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/audits/batch", body)
	req.Header.Set("Content-Type", ct)
	rec := do(s, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Jobs []map[string]any `json:"jobs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Jobs) != 2 {
		t.Fatalf("expected 2 results, got %v", resp.Jobs)
	}
	if resp.Jobs[0]["job_id"] == nil || resp.Jobs[1]["error"] == nil {
		t.Errorf("expected one job and one error, got %v", resp.Jobs)
	}
}

func TestRulesAndStats(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, httptest.NewRequest(http.MethodGet, "/api/rules", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var rules struct {
		StemWords   []string `json:"stem_words"`
		OptionWords []string `json:"option_words"`
		Threshold   int      `json:"threshold"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &rules); err != nil {
		t.Fatal(err)
	}
	if len(rules.StemWords) != 8 || rules.OptionWords[2] != "all of the above" {
		t.Errorf("expected default rules, got %+v", rules)
	}

	waitDone(t, s, submit(t, s, nil, upload{"file", "bank.csv", testBank}))

	rec = do(s, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var stats struct {
		Stats audit.StatsSnapshot `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.Stats.Runs != 1 || stats.Stats.Questions != 3 {
		t.Errorf("unexpected stats %+v", stats.Stats)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"bank.csv":           "bank.csv",
		"../../etc/bank.csv": "bank.csv",
		"":                   "unnamed",
		`C:\x\bank.csv`:      `C:_x_bank.csv`,
	}
	for in, want := range tests {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q): expected %q, got %q", in, want, got)
		}
	}
}
