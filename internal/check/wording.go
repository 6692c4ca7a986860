package check

import (
	"strings"
	"unicode"

	"github.com/dgallion1/itemcheck/internal/rules"
)

// Subjects name the field a wording check ran on.
const (
	SubjectStem   = "Stem"
	SubjectOption = "Option"
)

const (
	msgMultipleStops  = "Multiple full stops found."
	msgMultipleSpaces = "Multiple spaces found."
)

// Wording flags repeated full stops, repeated whitespace and every
// denylist entry found in text. subject prefixes the denylist messages.
func Wording(text string, denylist []rules.Entry, subject string) []Finding {
	name := NameStemWording
	if subject == SubjectOption {
		name = NameOptionWording
	}

	var out []Finding
	if strings.Contains(text, "..") {
		out = append(out, defect(name, msgMultipleStops))
	}
	if hasDoubleSpace(text) {
		out = append(out, defect(name, msgMultipleSpaces))
	}
	lower := strings.ToLower(text)
	for _, entry := range denylist {
		if entry.Match(lower) {
			out = append(out, defect(name, subject+" includes the word "+entry.Word+"."))
		}
	}
	return out
}

func hasDoubleSpace(s string) bool {
	prev := false
	for _, r := range s {
		space := unicode.IsSpace(r)
		if space && prev {
			return true
		}
		prev = space
	}
	return false
}
