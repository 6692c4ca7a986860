// Package vocab loads the supplementary word list the spelling check
// accepts alongside the annotator's vocabulary.
package vocab

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// List is a case- and accent-insensitive word set. The zero value is not
// usable; a nil *List contains nothing.
type List struct {
	words map[string]struct{}
}

func New(words ...string) *List {
	l := &List{words: make(map[string]struct{}, len(words))}
	l.Add(words...)
	return l
}

// Add inserts words, ignoring blanks.
func (l *List) Add(words ...string) {
	for _, w := range words {
		if k := key(w); k != "" {
			l.words[k] = struct{}{}
		}
	}
}

// Contains reports whether word is in the list.
func (l *List) Contains(word string) bool {
	if l == nil {
		return false
	}
	_, ok := l.words[key(word)]
	return ok
}

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.words)
}

// Words returns the folded entries in sorted order.
func (l *List) Words() []string {
	if l == nil {
		return nil
	}
	out := make([]string, 0, len(l.words))
	for w := range l.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

var fold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// key lower-cases w, strips diacritics and normalises curly apostrophes.
func key(w string) string {
	w = strings.TrimSpace(w)
	if w == "" {
		return ""
	}
	folded, _, err := transform.String(fold, w)
	if err != nil {
		folded = w
	}
	return strings.ReplaceAll(strings.ToLower(folded), "’", "'")
}

// Load reads the vocabulary file at path, choosing a parser by extension.
func Load(path string) (*List, error) {
	p, err := ForFile(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocabulary: %w", err)
	}
	defer f.Close()

	words, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse vocabulary %s: %w", path, err)
	}
	return New(words...), nil
}

// Words splits free text into candidate vocabulary entries, trimming
// punctuation that surrounds each word.
func Words(text string) []string {
	var out []string
	for _, f := range strings.Fields(text) {
		w := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
