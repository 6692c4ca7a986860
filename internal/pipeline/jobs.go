package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/itemcheck/internal/audit"
)

// JobStatus represents the state of an audit job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusReading   JobStatus = "reading"
	StatusAuditing  JobStatus = "auditing"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusPartial   JobStatus = "partial"
)

// Overrides replaces server-wide rule settings for one job. Nil fields keep
// the server's value.
type Overrides struct {
	StemWords   []string `json:"stem_words,omitempty"`
	OptionWords []string `json:"option_words,omitempty"`
	Threshold   *int     `json:"threshold,omitempty"`
}

// Job tracks the state of a single question bank audit.
type Job struct {
	mu sync.Mutex

	ID string `json:"job_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`

	Overrides Overrides `json:"overrides"`
	Progress  Progress  `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData      []byte
	vocabData     []byte
	vocabFilename string
	result        *audit.Result
	errors        []string
}

// Progress tracks processing progress.
type Progress struct {
	Questions int      `json:"questions"`
	Flagged   int      `json:"flagged"`
	Failures  int      `json:"failures"`
	Errors    []string `json:"errors"`
}

// NewJob returns a queued job for the uploaded bank.
func NewJob(filename string, data []byte) *Job {
	now := time.Now()
	return &Job{
		ID:          uuid.NewString(),
		Status:      StatusQueued,
		Phase:       "queued",
		Filename:    filename,
		ContentHash: ContentHashHex(data),
		CreatedAt:   now,
		UpdatedAt:   now,
		fileData:    data,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.updatedAt()) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

func (j *Job) updatedAt() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.UpdatedAt
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// SetVocabulary attaches a supplementary vocabulary upload.
func (j *Job) SetVocabulary(filename string, data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.vocabFilename = filename
	j.vocabData = data
}

// Vocabulary returns the supplementary vocabulary upload, if any.
func (j *Job) Vocabulary() (string, []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.vocabFilename, j.vocabData
}

// SetResult stores the audit result and releases the uploads.
func (j *Job) SetResult(res *audit.Result) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = res
	j.Progress.Questions = res.Total
	j.Progress.Flagged = len(res.Flagged)
	j.Progress.Failures = len(res.Failures)
	j.fileData = nil
	j.vocabData = nil
	j.UpdatedAt = time.Now()
}

// Result returns the audit result, or nil while the job is unfinished.
func (j *Job) Result() *audit.Result {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Filename    string    `json:"filename"`
	ContentHash string    `json:"content_hash,omitempty"`
	Overrides   Overrides `json:"overrides"`
	Progress    Progress  `json:"progress"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:          j.ID,
		Status:      j.Status,
		Phase:       j.Phase,
		Filename:    j.Filename,
		ContentHash: j.ContentHash,
		Overrides:   j.Overrides,
		Progress: Progress{
			Questions: j.Progress.Questions,
			Flagged:   j.Progress.Flagged,
			Failures:  j.Progress.Failures,
			Errors:    append([]string{}, errs...),
		},
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
