package check

import (
	"regexp"
	"strings"

	"github.com/dgallion1/itemcheck/internal/annotate"
	"github.com/dgallion1/itemcheck/internal/question"
)

const (
	msgImageCaption  = "Item has an image, but does not start with: Refer to the exhibit."
	msgImageCentered = "Item has an image, but it does not appear to be centered."
)

var (
	imageTag   = regexp.MustCompile(`(?i)<\s*img\b`)
	centeredRe = regexp.MustCompile(`(?i)text-align:\s?center|align=.center`)
)

// HasImage reports whether the raw stem markup references an image.
func HasImage(raw string) bool {
	return imageTag.MatchString(raw)
}

var imageCaptionCheck = Check{
	Name:      NameImageCaption,
	MinTokens: 4,
	Applies:   func(q *question.Question) bool { return HasImage(q.RawStem) },
	Eval: func(_ *Engine, _ *question.Question, doc *annotate.Text) []Finding {
		return ImageCaption(doc.Tokens)
	},
	// Too short to hold the four-word caption, so the caption is missing.
	Unmet: func(*question.Question) []Finding {
		return []Finding{{Check: NameImageCaption, Message: msgImageCaption, Outcome: OutcomeUnverifiable}}
	},
}

var imageAlignmentCheck = Check{
	Name:    NameImageAlignment,
	Applies: func(q *question.Question) bool { return HasImage(q.RawStem) },
	Eval: func(_ *Engine, q *question.Question, _ *annotate.Text) []Finding {
		return ImageAlignment(q.RawStem)
	},
}

// ImageCaption requires the stem to open with "Refer to the exhibit".
// Callers must pass at least four tokens.
func ImageCaption(toks []annotate.Token) []Finding {
	if len(toks) < 4 ||
		toks[0].Text != "Refer" || toks[1].Text != "to" || toks[2].Text != "the" ||
		!strings.Contains(toks[3].Text, "exhibit") {
		return []Finding{defect(NameImageCaption, msgImageCaption)}
	}
	return nil
}

// ImageAlignment requires a centre-alignment style somewhere in the markup.
func ImageAlignment(raw string) []Finding {
	if centeredRe.MatchString(raw) {
		return nil
	}
	return []Finding{defect(NameImageAlignment, msgImageCentered)}
}
