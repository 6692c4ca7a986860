// Package question holds the strongly-typed exam item the checks read.
package question

import (
	"strings"

	"github.com/dgallion1/itemcheck/internal/annotate"
)

// Type is the item type tag exported by the authoring tool.
type Type string

// Known type tags. Tags are matched by substring, so variants such as
// "McqMultipleResponse" are recognised too.
const (
	TypeSingleSelect Type = "McqSingle"
	TypeMultiSelect  Type = "McqMultiple"
	TypeMatching     Type = "EnhancedMatching"
)

// IsMultiSelect reports whether the item asks for exactly two answers.
func (t Type) IsMultiSelect() bool {
	return strings.Contains(string(t), string(TypeMultiSelect))
}

// IsMatching reports whether the item is a drag-and-drop matching item.
func (t Type) IsMatching() bool {
	return strings.Contains(string(t), string(TypeMatching))
}

// Question is one item of a question bank.
type Question struct {
	Number     string
	Type       Type
	RawStem    string
	RawOptions string

	// Derived by audit.Prepare.
	Stem     string
	Options  string
	StemText *annotate.Text
}

// Prepared reports whether the derived fields have been filled in.
func (q *Question) Prepared() bool {
	return q.StemText != nil
}
