package check

import (
	"strings"

	"github.com/dgallion1/itemcheck/internal/annotate"
	"github.com/dgallion1/itemcheck/internal/question"
)

const (
	msgChooseTwo   = "Item is McqMultiple, but does not end with (Choose two.)"
	msgDoubleCue   = "Item is McqMultiple, but does not appear to have double cue."
	msgDragAndDrop = "Item is EnhancedMatching, but does not contain Drag and drop the ..."
)

// chooseTwoSuffix is the token form of "(Choose two.)".
var chooseTwoSuffix = []string{"(", "Choose", "two", ".", ")"}

func isMulti(q *question.Question) bool { return q.Type.IsMultiSelect() }

var chooseTwoCheck = Check{
	Name:      NameChooseTwo,
	MinTokens: len(chooseTwoSuffix),
	Applies:   isMulti,
	Eval: func(_ *Engine, _ *question.Question, doc *annotate.Text) []Finding {
		return ChooseTwo(doc.Tokens)
	},
	Unmet: func(*question.Question) []Finding {
		return []Finding{{Check: NameChooseTwo, Message: msgChooseTwo, Outcome: OutcomeUnverifiable}}
	},
}

var doubleCueCheck = Check{
	Name:      NameDoubleCue,
	MinTokens: len(chooseTwoSuffix),
	Applies:   isMulti,
	Eval: func(_ *Engine, _ *question.Question, doc *annotate.Text) []Finding {
		return DoubleCue(doc.Tokens)
	},
	Unmet: func(*question.Question) []Finding {
		return []Finding{{Check: NameDoubleCue, Message: msgDoubleCue, Outcome: OutcomeUnverifiable}}
	},
}

// ChooseTwo requires the stem to end with the tokens ( Choose two . ).
func ChooseTwo(toks []annotate.Token) []Finding {
	n := len(chooseTwoSuffix)
	if len(toks) < n {
		return []Finding{defect(NameChooseTwo, msgChooseTwo)}
	}
	tail := toks[len(toks)-n:]
	for i, want := range chooseTwoSuffix {
		if tail[i].Text != want {
			return []Finding{defect(NameChooseTwo, msgChooseTwo)}
		}
	}
	return nil
}

// DoubleCue requires the word "two" before the final five tokens.
func DoubleCue(toks []annotate.Token) []Finding {
	n := len(toks) - len(chooseTwoSuffix)
	for i := 0; i < n; i++ {
		if strings.EqualFold(toks[i].Text, "two") {
			return nil
		}
	}
	return []Finding{defect(NameDoubleCue, msgDoubleCue)}
}

// DragAndDrop requires at least one match of the drag-and-drop phrase.
func DragAndDrop(m *annotate.PhraseMatcher, toks []annotate.Token) []Finding {
	if len(m.Match(toks)) > 0 {
		return nil
	}
	return []Finding{defect(NameDragAndDrop, msgDragAndDrop)}
}
