// Package audit runs the check engine over a question bank and keeps the
// questions that cross the flag threshold.
package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/itemcheck/internal/annotate"
	"github.com/dgallion1/itemcheck/internal/check"
	"github.com/dgallion1/itemcheck/internal/normalize"
	"github.com/dgallion1/itemcheck/internal/question"
	"github.com/dgallion1/itemcheck/internal/rules"
)

// ErrPanic wraps a panic recovered while a single question was evaluated.
var ErrPanic = errors.New("question evaluation panicked")

// Prepare fills in q's cleaned text and stem annotation.
func Prepare(q *question.Question, a annotate.Annotator) {
	q.Stem = normalize.Clean(q.RawStem)
	q.Options = normalize.Clean(q.RawOptions)
	q.StemText = a.Annotate(q.Stem)
}

// Flagged is a question retained for the report.
type Flagged struct {
	Question question.Question
	Report   check.Report
}

// Failure records a question that could not be evaluated.
type Failure struct {
	Number string
	Err    error
}

func (f Failure) Error() string {
	return fmt.Sprintf("question %s: %s", f.Number, f.Err)
}

// Result is the outcome of one audit run.
type Result struct {
	Total    int
	Flagged  []Flagged
	Failures []Failure
	Duration time.Duration
}

// Options configures an Auditor. A nil denylist selects the default one; an
// empty non-nil denylist disables that check.
type Options struct {
	Rules     rules.Config
	Annotator annotate.Annotator
	// Extra is the optional supplementary vocabulary for the spelling check.
	Extra     annotate.Vocabulary
	Threshold int
	Workers   int
	Stats     *Stats
}

// Auditor evaluates question banks. It is safe for concurrent use.
type Auditor struct {
	annotator annotate.Annotator
	registry  *rules.Registry
	engine    *check.Engine
	threshold int
	workers   int
	stats     *Stats
	log       *slog.Logger
}

// New builds an Auditor, filling unset options with their defaults.
func New(opts Options, log *slog.Logger) *Auditor {
	a := opts.Annotator
	if a == nil {
		a = annotate.NewRuleBased(nil)
	}
	cfg := opts.Rules
	if cfg.StemWords == nil {
		cfg.StemWords = rules.DefaultConfig().StemWords
	}
	if cfg.OptionWords == nil {
		cfg.OptionWords = rules.DefaultConfig().OptionWords
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	reg := rules.New(cfg, a)
	return &Auditor{
		annotator: a,
		registry:  reg,
		engine:    check.NewEngine(reg, a.Vocabulary(), opts.Extra),
		threshold: opts.Threshold,
		workers:   workers,
		stats:     opts.Stats,
		log:       log,
	}
}

// Engine returns the check engine the auditor runs.
func (a *Auditor) Engine() *check.Engine { return a.engine }

// Threshold returns the length of error text a field must exceed to be flagged.
func (a *Auditor) Threshold() int { return a.threshold }

type outcome struct {
	report check.Report
	err    error
}

// Run prepares and evaluates every question in qs, in place, and returns the
// flagged ones in input order. A panic in one question is recorded as a
// Failure and the batch continues. Cancelling ctx aborts the run.
func (a *Auditor) Run(ctx context.Context, qs []question.Question) (*Result, error) {
	start := time.Now()
	outcomes := make([]outcome, len(qs))

	if a.workers <= 1 || len(qs) < 2 {
		for i := range qs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			outcomes[i] = a.evaluate(&qs[i])
		}
	} else if err := a.runParallel(ctx, qs, outcomes); err != nil {
		return nil, err
	}

	res := &Result{Total: len(qs)}
	for i, o := range outcomes {
		if o.err != nil {
			res.Failures = append(res.Failures, Failure{Number: qs[i].Number, Err: o.err})
			continue
		}
		if o.report.Flagged(a.threshold) {
			res.Flagged = append(res.Flagged, Flagged{Question: qs[i], Report: o.report})
		}
	}
	res.Duration = time.Since(start)

	if a.stats != nil {
		a.stats.Record(res)
	}
	a.log.Info("audit complete",
		"questions", res.Total,
		"flagged", len(res.Flagged),
		"failures", len(res.Failures),
		"duration_ms", res.Duration.Milliseconds())
	return res, nil
}

func (a *Auditor) runParallel(ctx context.Context, qs []question.Question, outcomes []outcome) error {
	type indexed struct {
		idx int
		outcome
	}
	results := make(chan indexed, len(qs))
	sem := make(chan struct{}, a.workers)

	launched := 0
	for i := range qs {
		if ctx.Err() != nil {
			break
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
		launched++
		go func(i int) {
			defer func() { <-sem }()
			results <- indexed{idx: i, outcome: a.evaluate(&qs[i])}
		}(i)
	}

	for range launched {
		r := <-results
		outcomes[r.idx] = r.outcome
	}
	if launched < len(qs) {
		return ctx.Err()
	}
	return nil
}

func (a *Auditor) evaluate(q *question.Question) (o outcome) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("question evaluation panicked", "question", q.Number, "panic", r)
			o = outcome{err: fmt.Errorf("%w: %v", ErrPanic, r)}
		}
	}()

	Prepare(q, a.annotator)
	report := a.engine.Evaluate(q)
	for _, f := range report.Unverified() {
		a.log.Debug("check skipped", "question", q.Number, "check", f.Check)
	}
	return outcome{report: report}
}
