package annotate

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"
	"sync"
)

//go:embed lexicon/words.txt
var builtinWords string

// Lexicon is a case-insensitive set of known words.
type Lexicon struct {
	words map[string]struct{}
}

// NewLexicon returns an empty lexicon.
func NewLexicon() *Lexicon {
	return &Lexicon{words: make(map[string]struct{})}
}

var builtin = sync.OnceValue(func() map[string]struct{} {
	l := NewLexicon()
	// The embedded list is well-formed; Load cannot fail on a strings.Reader.
	_ = l.Load(strings.NewReader(builtinWords))
	return l.words
})

// DefaultLexicon returns a lexicon seeded with the built-in English word list.
// Each call returns an independent copy.
func DefaultLexicon() *Lexicon {
	return &Lexicon{words: maps.Clone(builtin())}
}

// Add inserts words.
func (l *Lexicon) Add(words ...string) {
	for _, w := range words {
		if k := lexiconKey(w); k != "" {
			l.words[k] = struct{}{}
		}
	}
}

// Load reads one word per line. Blank lines and lines starting with '#'
// are ignored.
func (l *Lexicon) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		l.Add(line)
	}
	return scanner.Err()
}

// LoadFile extends the lexicon with a dictionary file such as
// /usr/share/dict/words.
func (l *Lexicon) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()
	if err := l.Load(f); err != nil {
		return fmt.Errorf("read dictionary %s: %w", path, err)
	}
	return nil
}

// Contains reports whether word is known, ignoring case and apostrophe style.
// Regular inflections of a known word ("routers", "configured", "pinging")
// are known too.
func (l *Lexicon) Contains(word string) bool {
	if l == nil {
		return false
	}
	k := lexiconKey(word)
	if l.has(k) {
		return true
	}
	for _, stem := range stems(k) {
		if l.has(stem) {
			return true
		}
	}
	return false
}

func (l *Lexicon) has(k string) bool {
	_, ok := l.words[k]
	return ok
}

// inflections maps a suffix to the endings that may replace it on the stem.
// undouble also tries the stem without a doubled final consonant
// ("stopped" -> "stop").
var inflections = []struct {
	suffix   string
	stems    []string
	undouble bool
}{
	{"'s", []string{""}, false},
	{"ies", []string{"y"}, false},
	{"ied", []string{"y"}, false},
	{"es", []string{""}, false},
	{"s", []string{""}, false},
	{"ed", []string{"", "e"}, true},
	{"ing", []string{"", "e"}, true},
	{"ers", []string{"", "e"}, true},
	{"er", []string{"", "e"}, true},
	{"ly", []string{"", "le"}, false},
}

// stems returns the candidate base forms of an inflected word.
func stems(w string) []string {
	var out []string
	for _, in := range inflections {
		base, ok := strings.CutSuffix(w, in.suffix)
		if !ok || len(base) < 2 {
			continue
		}
		for _, end := range in.stems {
			out = append(out, base+end)
		}
		if n := len(base); in.undouble && n > 2 && base[n-1] == base[n-2] {
			out = append(out, base[:n-1])
		}
	}
	return out
}
