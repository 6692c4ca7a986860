package check

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dgallion1/itemcheck/internal/annotate"
)

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)

// quoteSkip is how many tokens after an opening quote are left unchecked:
// the quoted value and the closing quote.
const quoteSkip = 2

// Spelling flags every token found in neither vocabulary. Tokens holding
// digits or slashes are skipped, and an opening quote skips itself and the
// two tokens after it.
func Spelling(toks []annotate.Token, known, extra annotate.Vocabulary) []Finding {
	var out []Finding
	skip := 0
	for _, tok := range toks {
		word := tok.Text
		if skip > 0 {
			skip--
			continue
		}
		switch {
		case strings.TrimSpace(word) == "":
			continue
		case strings.IndexFunc(word, unicode.IsDigit) >= 0:
			continue
		case startsWithQuote(word):
			skip = quoteSkip
			continue
		case strings.Contains(word, "/"):
			continue
		}
		if inVocab(word, known, extra) {
			continue
		}
		cleaned := nonAlnum.ReplaceAllString(word, "")
		if cleaned == "" || inVocab(cleaned, known, extra) {
			continue
		}
		out = append(out, defect(NameSpelling, "Unrecognized spelling of word: "+word+"."))
	}
	return out
}

func inVocab(word string, vocabs ...annotate.Vocabulary) bool {
	for _, v := range vocabs {
		if v != nil && v.Contains(word) {
			return true
		}
	}
	return false
}

func startsWithQuote(s string) bool {
	for _, r := range s {
		switch r {
		case '"', '\'', '“', '”', '‘', '’', '`':
			return true
		}
		return false
	}
	return false
}
