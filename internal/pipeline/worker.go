package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/itemcheck/internal/audit"
	"github.com/dgallion1/itemcheck/internal/bank"
	"github.com/dgallion1/itemcheck/internal/vocab"
)

// Worker processes a single audit job.
type Worker struct {
	base audit.Options
	log  *slog.Logger
}

// NewWorker returns a worker that audits jobs starting from base.
func NewWorker(base audit.Options, log *slog.Logger) *Worker {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Worker{base: base, log: log}
}

// Process reads the bank, audits it and stores the result on the job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Read
	job.SetStatus(StatusReading, "reading")
	qs, err := bank.Decode(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("read question bank failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "reading")
		return
	}
	log.Info("question bank read", "questions", len(qs))

	opts, err := w.options(job)
	if err != nil {
		log.Error("load vocabulary failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "reading")
		return
	}

	// Phase 2: Audit
	job.SetStatus(StatusAuditing, "auditing")
	res, err := audit.New(opts, log).Run(ctx, qs)
	if err != nil {
		log.Error("audit failed", "error", err)
		job.AddError(fmt.Sprintf("audit: %s", err))
		job.SetStatus(StatusFailed, "auditing")
		return
	}
	for _, f := range res.Failures {
		job.AddError(f.Error())
	}
	job.SetResult(res)

	if len(res.Failures) > 0 {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
}

// options applies the job's overrides and vocabulary upload to the
// server-wide options.
func (w *Worker) options(job *Job) (audit.Options, error) {
	opts := w.base
	ov := job.Overrides
	if ov.StemWords != nil {
		opts.Rules.StemWords = ov.StemWords
	}
	if ov.OptionWords != nil {
		opts.Rules.OptionWords = ov.OptionWords
	}
	if ov.Threshold != nil {
		opts.Threshold = *ov.Threshold
	}

	name, data := job.Vocabulary()
	if data == nil {
		return opts, nil
	}
	p, err := vocab.ForFile(name)
	if err != nil {
		return opts, err
	}
	words, err := p.Parse(bytes.NewReader(data))
	if err != nil {
		return opts, fmt.Errorf("parse vocabulary %s: %w", name, err)
	}
	list := vocab.New(words...)
	if base, ok := opts.Extra.(*vocab.List); ok {
		list.Add(base.Words()...)
	}
	opts.Extra = list
	return opts, nil
}
