package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/itemcheck/internal/audit"
	"github.com/dgallion1/itemcheck/internal/vocab"
)

const testBank = `Question Number,Type,Stem Text,Option Text
1,McqSingle,<p>Which protocol is used for routing?</p>,<p>OSPF</p>
2,McqSingle,<p>Is this correct..</p>,<p>Yes</p>
3,McqSingle,<p>Which protocol does Contoso use?</p>,<p>BGP</p>
`

func TestWorker_Process(t *testing.T) {
	job := NewJob("bank.csv", []byte(testBank))
	NewWorker(audit.Options{}, nil).Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected status %q, got %q (errors %v)", StatusCompleted, snap.Status, snap.Progress.Errors)
	}
	if snap.Progress.Questions != 3 || snap.Progress.Flagged != 2 {
		t.Errorf("unexpected progress %+v", snap.Progress)
	}
	res := job.Result()
	if res.Flagged[0].Question.Number != "2" || res.Flagged[1].Question.Number != "3" {
		t.Errorf("expected questions 2 and 3 flagged, got %+v", res.Flagged)
	}
}

func TestWorker_Overrides(t *testing.T) {
	job := NewJob("bank.csv", []byte(testBank))
	job.Overrides = Overrides{StemWords: []string{}}
	job.SetVocabulary("terms.txt", []byte("Contoso\n"))
	NewWorker(audit.Options{}, nil).Process(context.Background(), job)

	res := job.Result()
	if res == nil {
		t.Fatalf("expected result, got errors %v", job.Snapshot().Progress.Errors)
	}
	if len(res.Flagged) != 1 || res.Flagged[0].Report.StemErrors != "Multiple full stops found." {
		t.Errorf("expected only the full-stop defect on question 2, got %+v", res.Flagged)
	}
}

func TestWorker_VocabularyMergesWithServerList(t *testing.T) {
	w := NewWorker(audit.Options{Extra: vocab.New("eigrp")}, nil)
	job := NewJob("bank.csv", nil)
	job.SetVocabulary("terms.txt", []byte("vxlan\n"))

	opts, err := w.options(job)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opts.Extra.Contains("EIGRP") || !opts.Extra.Contains("VXLAN") {
		t.Error("expected both server and job vocabulary")
	}
}

func TestWorker_Threshold(t *testing.T) {
	job := NewJob("bank.csv", []byte(testBank))
	high := 1000
	job.Overrides = Overrides{Threshold: &high}
	NewWorker(audit.Options{}, nil).Process(context.Background(), job)

	if n := job.Snapshot().Progress.Flagged; n != 0 {
		t.Errorf("expected nothing flagged above threshold, got %d", n)
	}
}

func TestWorker_Failures(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     string
		vocab    string
		want     string
	}{
		{"unsupported bank", "bank.ods", testBank, "", "unsupported question bank format"},
		{"schema", "bank.csv", "Number,Type\n1,McqSingle\n", "", "missing required columns"},
		{"vocabulary", "bank.csv", testBank, "terms.odt", "unsupported vocabulary format"},
	}
	for _, tt := range tests {
		job := NewJob(tt.filename, []byte(tt.data))
		if tt.vocab != "" {
			job.SetVocabulary(tt.vocab, []byte("x"))
		}
		NewWorker(audit.Options{}, nil).Process(context.Background(), job)

		snap := job.Snapshot()
		if snap.Status != StatusFailed {
			t.Errorf("%s: expected status %q, got %q", tt.name, StatusFailed, snap.Status)
		}
		if len(snap.Progress.Errors) == 0 || !strings.Contains(snap.Progress.Errors[0], tt.want) {
			t.Errorf("%s: expected error containing %q, got %v", tt.name, tt.want, snap.Progress.Errors)
		}
	}
}

func TestOrchestrator_RunsJobs(t *testing.T) {
	stats := audit.NewStats(time.Hour)
	o := NewOrchestrator(Settings{WorkerCount: 2, MaxQueueSize: 4}, audit.Options{Stats: stats}, nil)
	o.Start(context.Background())
	defer o.Stop()

	job := NewJob("bank.csv", []byte(testBank))
	if err := o.Submit(job); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if o.GetJob(job.ID) != job {
		t.Fatal("expected job to be registered")
	}

	deadline := time.Now().Add(5 * time.Second)
	for job.Snapshot().Status != StatusCompleted {
		if time.Now().After(deadline) {
			t.Fatalf("job did not complete, status %q", job.Snapshot().Status)
		}
		time.Sleep(5 * time.Millisecond)
	}
	if stats.Snapshot().Runs != 1 {
		t.Errorf("expected one recorded run, got %+v", stats.Snapshot())
	}
}

func TestOrchestrator_QueueFull(t *testing.T) {
	// Not started, so nothing drains the queue.
	o := NewOrchestrator(Settings{WorkerCount: 1, MaxQueueSize: 1}, audit.Options{}, nil)
	if err := o.Submit(NewJob("a.csv", nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := NewJob("b.csv", nil)
	if err := o.Submit(second); err == nil {
		t.Fatal("expected queue full error")
	}
	if second.Snapshot().Status != StatusFailed {
		t.Errorf("expected rejected job to be failed, got %q", second.Snapshot().Status)
	}
	if o.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", o.QueueDepth())
	}
}
