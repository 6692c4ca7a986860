package annotate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// rawToken is a token before tagging.
type rawToken struct {
	text        string
	spaceBefore bool
	paragraph   bool // a blank line preceded the token
}

var openers = map[rune]bool{
	'(': true, '[': true, '{': true,
	'"': true, '\'': true, '`': true,
	'“': true, '‘': true,
}

var closers = map[rune]bool{
	'.': true, ',': true, ';': true, ':': true, '?': true, '!': true,
	')': true, ']': true, '}': true,
	'"': true, '\'': true, '”': true, '’': true,
}

// contractions are split off the end of a word, Penn Treebank style.
var contractions = []string{"n't", "n’t", "'s", "’s", "'re", "’re", "'ve", "’ve", "'ll", "’ll", "'d", "’d", "'m", "’m"}

// tokenize splits text on whitespace, then peels leading and trailing
// punctuation and trailing contractions off each chunk.
func tokenize(text string) []rawToken {
	var out []rawToken
	newlines := 0
	space := false
	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}
		parts := splitChunk(text[start:end])
		for i, p := range parts {
			rt := rawToken{text: p}
			if i == 0 {
				rt.spaceBefore = space
				rt.paragraph = newlines >= 2
			}
			out = append(out, rt)
		}
		start = -1
		newlines = 0
		space = false
	}

	for i, r := range text {
		if unicode.IsSpace(r) {
			flush(i)
			space = true
			if r == '\n' {
				newlines++
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(text))
	return out
}

func splitChunk(chunk string) []string {
	var lead, trail []string

	for chunk != "" {
		r, size := utf8.DecodeRuneInString(chunk)
		if !openers[r] || size == len(chunk) {
			break
		}
		lead = append(lead, chunk[:size])
		chunk = chunk[size:]
	}

	for chunk != "" {
		r, size := utf8.DecodeLastRuneInString(chunk)
		if !closers[r] {
			break
		}
		trail = append(trail, chunk[len(chunk)-size:])
		chunk = chunk[:len(chunk)-size]
	}

	out := lead
	out = append(out, splitCore(chunk)...)
	for i := len(trail) - 1; i >= 0; i-- {
		out = append(out, trail[i])
	}
	return out
}

func splitCore(core string) []string {
	if core == "" {
		return nil
	}
	lower := strings.ToLower(core)
	if lower == "cannot" {
		return []string{core[:3], core[3:]}
	}
	for _, suffix := range contractions {
		if len(lower) > len(suffix) && strings.HasSuffix(lower, suffix) {
			cut := len(core) - len(suffix)
			return []string{core[:cut], core[cut:]}
		}
	}
	return []string{core}
}
