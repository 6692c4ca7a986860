// Package rules holds the process-wide, read-only rule state shared by all
// checks: the wording denylists and the compiled phrase and token patterns.
package rules

import (
	"regexp"
	"strings"

	"github.com/dgallion1/itemcheck/internal/annotate"
)

// Default denylists.
var (
	DefaultStemWords   = []string{"you", "option", "accurate", "correct", "true", "can be", "only", "statement"}
	DefaultOptionWords = []string{"only", "statement", "all of the above"}
)

// DragAndDropPhrase must open every matching item.
const DragAndDropPhrase = "Drag and drop the"

// Config is the user-editable part of the rule set.
type Config struct {
	StemWords   []string `yaml:"stem_words" json:"stem_words"`
	OptionWords []string `yaml:"option_words" json:"option_words"`
}

// DefaultConfig returns the default denylists.
func DefaultConfig() Config {
	return Config{
		StemWords:   append([]string(nil), DefaultStemWords...),
		OptionWords: append([]string(nil), DefaultOptionWords...),
	}
}

// ParseList splits a comma-separated denylist, trimming entries and
// dropping empty ones.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Entry is one compiled denylist entry.
type Entry struct {
	Word string
	re   *regexp.Regexp
}

// Match reports whether the entry occurs anywhere in text.
func (e Entry) Match(text string) bool {
	return e.re.MatchString(strings.ToLower(text))
}

// compileEntry treats w as a case-insensitive regular expression, falling
// back to a literal match when w does not compile.
func compileEntry(w string) Entry {
	re, err := regexp.Compile("(?i)" + w)
	if err != nil {
		re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(w))
	}
	return Entry{Word: w, re: re}
}

func compileList(words []string) []Entry {
	var out []Entry
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		out = append(out, compileEntry(w))
	}
	return out
}

// Registry is built once and shared read-only by every check.
type Registry struct {
	StemWords   []Entry
	OptionWords []Entry

	// DragAndDrop matches DragAndDropPhrase case-insensitively.
	DragAndDrop *annotate.PhraseMatcher
	// Negative matches a verb or auxiliary directly followed by a negation.
	Negative *annotate.TokenMatcher
}

// New compiles cfg. Phrases are tokenized with a so they line up with the
// annotated questions they are matched against.
func New(cfg Config, a annotate.Annotator) *Registry {
	return &Registry{
		StemWords:   compileList(cfg.StemWords),
		OptionWords: compileList(cfg.OptionWords),
		DragAndDrop: annotate.NewPhraseMatcher(a, DragAndDropPhrase),
		Negative: annotate.NewTokenMatcher(
			[]annotate.TokenSpec{{POS: []annotate.POS{annotate.POSVerb}}, {Dep: annotate.DepNeg}},
			[]annotate.TokenSpec{{POS: []annotate.POS{annotate.POSAuxiliary}}, {Dep: annotate.DepNeg}},
		),
	}
}
