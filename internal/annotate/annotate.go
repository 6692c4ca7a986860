// Package annotate turns plain text into tokens, sentences and the coarse
// part-of-speech and dependency labels the checks reason about.
package annotate

import "strings"

// POS is a universal part-of-speech tag.
type POS string

const (
	POSAdjective   POS = "ADJ"
	POSAdposition  POS = "ADP"
	POSAdverb      POS = "ADV"
	POSAuxiliary   POS = "AUX"
	POSCoordConj   POS = "CCONJ"
	POSDeterminer  POS = "DET"
	POSInterject   POS = "INTJ"
	POSNoun        POS = "NOUN"
	POSNumeral     POS = "NUM"
	POSParticle    POS = "PART"
	POSPronoun     POS = "PRON"
	POSProperNoun  POS = "PROPN"
	POSPunctuation POS = "PUNCT"
	POSSubordConj  POS = "SCONJ"
	POSSymbol      POS = "SYM"
	POSVerb        POS = "VERB"
	POSOther       POS = "X"
)

// Dep is a dependency relation label. Only the relations the checks use
// are assigned; everything else is left empty.
type Dep string

// DepNeg marks a negation modifier ("not", "n't", "never").
const DepNeg Dep = "neg"

// Token is a single annotated token.
type Token struct {
	Text        string
	Lower       string
	POS         POS
	Dep         Dep
	Sentence    int  // index into Text.Sentences
	SpaceBefore bool // whitespace preceded the token in the source
}

// Sentence is a half-open span [Start, End) over Text.Tokens.
type Sentence struct {
	Start int
	End   int
}

// Text is the annotated form of a plain-text string.
type Text struct {
	Source    string
	Tokens    []Token
	Sentences []Sentence
}

// SentenceTokens returns the tokens of sentence i, or nil when i is out of range.
func (t *Text) SentenceTokens(i int) []Token {
	if t == nil || i < 0 || i >= len(t.Sentences) {
		return nil
	}
	s := t.Sentences[i]
	return t.Tokens[s.Start:s.End]
}

// Words returns the token texts in order.
func (t *Text) Words() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.Tokens))
	for i, tok := range t.Tokens {
		out[i] = tok.Text
	}
	return out
}

// Len returns the number of tokens.
func (t *Text) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Tokens)
}

// Vocabulary answers whether a word is known.
type Vocabulary interface {
	Contains(word string) bool
}

// Annotator produces annotated text. Implementations must be safe for
// concurrent use once constructed.
type Annotator interface {
	Annotate(text string) *Text
	Vocabulary() Vocabulary
}

// ForName returns the annotator registered under name ("rules" or "prose").
func ForName(name string, lex *Lexicon) (Annotator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "rules":
		return NewRuleBased(lex), nil
	case "prose":
		return NewProse(lex), nil
	default:
		return nil, &UnknownAnnotatorError{Name: name}
	}
}

// UnknownAnnotatorError is returned by ForName for an unregistered name.
type UnknownAnnotatorError struct {
	Name string
}

func (e *UnknownAnnotatorError) Error() string {
	return "unknown annotator: " + e.Name
}
