package annotate

import (
	"slices"
	"strings"
)

// Span is a half-open token range [Start, End).
type Span struct {
	Start int
	End   int
}

// PhraseMatcher finds case-insensitive occurrences of literal phrases in a
// token sequence. Phrases are tokenized with the same annotator as the text
// they are matched against so token boundaries line up.
type PhraseMatcher struct {
	phrases [][]string
}

// NewPhraseMatcher builds a matcher for phrases using a's tokenization.
func NewPhraseMatcher(a Annotator, phrases ...string) *PhraseMatcher {
	m := &PhraseMatcher{}
	for _, p := range phrases {
		doc := a.Annotate(p)
		if doc.Len() == 0 {
			continue
		}
		words := make([]string, doc.Len())
		for i, tok := range doc.Tokens {
			words[i] = strings.ToLower(tok.Text)
		}
		m.phrases = append(m.phrases, words)
	}
	return m
}

// Match returns every span in toks that equals one of the phrases.
func (m *PhraseMatcher) Match(toks []Token) []Span {
	var out []Span
	for _, phrase := range m.phrases {
		for i := 0; i+len(phrase) <= len(toks); i++ {
			ok := true
			for j, w := range phrase {
				if strings.ToLower(toks[i+j].Text) != w {
					ok = false
					break
				}
			}
			if ok {
				out = append(out, Span{Start: i, End: i + len(phrase)})
			}
		}
	}
	return out
}

// TokenSpec constrains a single token. Zero-valued fields match anything.
type TokenSpec struct {
	POS   []POS
	Dep   Dep
	Lower string
}

func (s TokenSpec) matches(t Token) bool {
	if len(s.POS) > 0 && !slices.Contains(s.POS, t.POS) {
		return false
	}
	if s.Dep != "" && s.Dep != t.Dep {
		return false
	}
	if s.Lower != "" && s.Lower != strings.ToLower(t.Text) {
		return false
	}
	return true
}

// TokenMatcher finds token sequences satisfying any of its patterns.
type TokenMatcher struct {
	patterns [][]TokenSpec
}

// NewTokenMatcher builds a matcher from one or more patterns.
func NewTokenMatcher(patterns ...[]TokenSpec) *TokenMatcher {
	return &TokenMatcher{patterns: patterns}
}

// Match returns the spans of all pattern matches, in pattern order.
func (m *TokenMatcher) Match(toks []Token) []Span {
	var out []Span
	for _, pat := range m.patterns {
		if len(pat) == 0 {
			continue
		}
		for i := 0; i+len(pat) <= len(toks); i++ {
			ok := true
			for j, spec := range pat {
				if !spec.matches(toks[i+j]) {
					ok = false
					break
				}
			}
			if ok {
				out = append(out, Span{Start: i, End: i + len(pat)})
			}
		}
	}
	return out
}
