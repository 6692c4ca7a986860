// Package check implements the battery of authoring-quality checks run
// against each question. Every check is a pure function of the prepared
// question and the shared rule registry.
package check

import (
	"strings"

	"github.com/dgallion1/itemcheck/internal/annotate"
	"github.com/dgallion1/itemcheck/internal/question"
	"github.com/dgallion1/itemcheck/internal/rules"
)

// Outcome classifies a finding.
type Outcome string

const (
	// OutcomeDefect is an authoring defect.
	OutcomeDefect Outcome = "defect"
	// OutcomeUnverifiable means the check's precondition was not met. The
	// finding may still carry a message when the precondition failing
	// implies the defect.
	OutcomeUnverifiable Outcome = "unverifiable"
)

// Finding is one result of one check.
type Finding struct {
	Check   string  `json:"check"`
	Message string  `json:"message,omitempty"`
	Outcome Outcome `json:"outcome"`
}

func defect(check, msg string) Finding {
	return Finding{Check: check, Message: msg, Outcome: OutcomeDefect}
}

// Check names.
const (
	NameStemWording    = "stem_wording"
	NameOptionWording  = "option_wording"
	NameImageCaption   = "image_caption"
	NameImageAlignment = "image_alignment"
	NameChooseTwo      = "choose_two_suffix"
	NameDoubleCue      = "double_cue"
	NameDragAndDrop    = "drag_and_drop"
	NameNegative       = "negative_wording"
	NameSpelling       = "spelling"
)

// Check is one stem check with its declared precondition.
type Check struct {
	Name string
	// MinTokens is the number of stem tokens Eval needs. When the stem is
	// shorter, Unmet is called instead.
	MinTokens int
	Applies   func(q *question.Question) bool
	Eval      func(e *Engine, q *question.Question, doc *annotate.Text) []Finding
	Unmet     func(q *question.Question) []Finding
}

func always(*question.Question) bool { return true }

// Report is the per-question outcome.
type Report struct {
	Number         string    `json:"question_number"`
	StemErrors     string    `json:"stem_errors"`
	OptionErrors   string    `json:"option_errors"`
	StemFindings   []Finding `json:"stem_findings,omitempty"`
	OptionFindings []Finding `json:"option_findings,omitempty"`
}

// Flagged reports whether either error string is longer than threshold.
// A threshold of 0 flags any non-empty error string.
func (r Report) Flagged(threshold int) bool {
	return len(r.StemErrors) > threshold || len(r.OptionErrors) > threshold
}

// Unverified returns the findings whose precondition was not met.
func (r Report) Unverified() []Finding {
	var out []Finding
	for _, f := range r.StemFindings {
		if f.Outcome == OutcomeUnverifiable {
			out = append(out, f)
		}
	}
	return out
}

// render joins finding messages in order.
func render(findings []Finding) string {
	var parts []string
	for _, f := range findings {
		if f.Message != "" {
			parts = append(parts, f.Message)
		}
	}
	return strings.Join(parts, " ")
}

// Engine runs the checks. It holds no per-question state and is safe for
// concurrent use.
type Engine struct {
	rules *rules.Registry
	known annotate.Vocabulary
	extra annotate.Vocabulary
	stem  []Check
}

// NewEngine returns an engine over reg. known is the annotator's vocabulary;
// extra is the optional supplementary word list and may be nil.
func NewEngine(reg *rules.Registry, known, extra annotate.Vocabulary) *Engine {
	e := &Engine{rules: reg, known: known, extra: extra}
	e.stem = []Check{
		{
			Name:    NameStemWording,
			Applies: always,
			Eval: func(e *Engine, q *question.Question, _ *annotate.Text) []Finding {
				return Wording(q.Stem, e.rules.StemWords, SubjectStem)
			},
		},
		imageCaptionCheck,
		imageAlignmentCheck,
		chooseTwoCheck,
		doubleCueCheck,
		{
			Name:    NameDragAndDrop,
			Applies: func(q *question.Question) bool { return q.Type.IsMatching() },
			Eval: func(e *Engine, _ *question.Question, doc *annotate.Text) []Finding {
				return DragAndDrop(e.rules.DragAndDrop, doc.Tokens)
			},
		},
		{
			Name:    NameNegative,
			Applies: always,
			Eval: func(e *Engine, q *question.Question, doc *annotate.Text) []Finding {
				return Negative(e.rules.Negative, doc, q.Type.IsMultiSelect())
			},
		},
		{
			Name:    NameSpelling,
			Applies: always,
			Eval: func(e *Engine, _ *question.Question, doc *annotate.Text) []Finding {
				return Spelling(doc.Tokens, e.known, e.extra)
			},
		},
	}
	return e
}

// Checks returns the stem checks in invocation order.
func (e *Engine) Checks() []Check {
	return append([]Check(nil), e.stem...)
}

// Evaluate runs every applicable check against q. q must not be modified
// while Evaluate runs.
func (e *Engine) Evaluate(q *question.Question) Report {
	doc := q.StemText
	if doc == nil {
		doc = &annotate.Text{Source: q.Stem}
	}

	var stem []Finding
	for _, c := range e.stem {
		if !c.Applies(q) {
			continue
		}
		if doc.Len() < c.MinTokens {
			if c.Unmet != nil {
				stem = append(stem, c.Unmet(q)...)
			}
			continue
		}
		stem = append(stem, c.Eval(e, q, doc)...)
	}
	options := Wording(q.Options, e.rules.OptionWords, SubjectOption)

	return Report{
		Number:         q.Number,
		StemErrors:     render(stem),
		OptionErrors:   render(options),
		StemFindings:   stem,
		OptionFindings: options,
	}
}
