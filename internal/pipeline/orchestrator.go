package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/itemcheck/internal/audit"
)

// Settings sizes the worker pool.
type Settings struct {
	WorkerCount  int
	MaxQueueSize int
	JobTTL       time.Duration
}

// Orchestrator manages the audit job queue.
type Orchestrator struct {
	jobs     *JobStore
	queue    chan *Job
	base     audit.Options
	log      *slog.Logger
	settings Settings

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. base holds the server-wide audit
// options each job starts from.
func NewOrchestrator(settings Settings, base audit.Options, log *slog.Logger) *Orchestrator {
	if settings.WorkerCount <= 0 {
		settings.WorkerCount = 1
	}
	if settings.MaxQueueSize <= 0 {
		settings.MaxQueueSize = 1
	}
	if settings.JobTTL <= 0 {
		settings.JobTTL = time.Hour
	}
	return &Orchestrator{
		jobs:     NewJobStore(settings.JobTTL),
		queue:    make(chan *Job, settings.MaxQueueSize),
		base:     base,
		log:      log,
		settings: settings,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.settings.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.base, o.log)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.settings.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Stats returns the shared run statistics, or nil when none are kept.
func (o *Orchestrator) Stats() *audit.Stats {
	return o.base.Stats
}

// Defaults returns the server-wide audit options.
func (o *Orchestrator) Defaults() audit.Options {
	return o.base
}
