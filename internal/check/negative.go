package check

import "github.com/dgallion1/itemcheck/internal/annotate"

const msgNegative = "Negative words found at end of stem."

// Negative looks for a verb or auxiliary directly followed by a negation in
// the stem's closing sentence. For multi-select items the closing sentence
// is the "(Choose two.)" cue, so the one before it is checked instead.
func Negative(m *annotate.TokenMatcher, doc *annotate.Text, multiSelect bool) []Finding {
	target := len(doc.Sentences) - 1
	if multiSelect {
		target--
	}
	if target < 0 {
		return []Finding{{Check: NameNegative, Outcome: OutcomeUnverifiable}}
	}
	if len(m.Match(doc.SentenceTokens(target))) > 0 {
		return []Finding{defect(NameNegative, msgNegative)}
	}
	return nil
}
