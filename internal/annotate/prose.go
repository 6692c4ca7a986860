package annotate

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

// Prose annotates with the prose statistical tokenizer, sentence segmenter
// and averaged-perceptron tagger. Penn Treebank tags are folded into
// universal POS tags; negation is labelled from the token text.
type Prose struct {
	lexicon *Lexicon
}

// NewProse returns a prose-backed annotator. A nil lexicon selects the
// built-in word list.
func NewProse(lex *Lexicon) *Prose {
	if lex == nil {
		lex = DefaultLexicon()
	}
	return &Prose{lexicon: lex}
}

// Annotate segments text into sentences, then tokenizes and tags each one.
func (p *Prose) Annotate(text string) *Text {
	out := &Text{Source: text}
	if strings.TrimSpace(text) == "" {
		return out
	}
	doc, err := prose.NewDocument(text, prose.WithTagging(false), prose.WithExtraction(false))
	if err != nil {
		return out
	}
	for _, sent := range doc.Sentences() {
		sd, err := prose.NewDocument(sent.Text, prose.WithSegmentation(false), prose.WithExtraction(false))
		if err != nil {
			continue
		}
		start := len(out.Tokens)
		for _, tok := range sd.Tokens() {
			lower := strings.ToLower(tok.Text)
			t := Token{
				Text:        tok.Text,
				Lower:       lower,
				POS:         fromPenn(tok.Tag, lower),
				Sentence:    len(out.Sentences),
				SpaceBefore: true,
			}
			if negations[lower] {
				t.Dep = DepNeg
			}
			out.Tokens = append(out.Tokens, t)
		}
		if len(out.Tokens) > start {
			out.Sentences = append(out.Sentences, Sentence{Start: start, End: len(out.Tokens)})
		}
	}
	return out
}

// Vocabulary returns the annotator's lexicon.
func (p *Prose) Vocabulary() Vocabulary {
	return p.lexicon
}

// fromPenn maps a Penn Treebank tag to a universal POS tag.
func fromPenn(tag, lower string) POS {
	switch {
	case negations[lower]:
		if lower == "never" {
			return POSAdverb
		}
		return POSParticle
	case tag == "MD":
		return POSAuxiliary
	case strings.HasPrefix(tag, "VB"):
		if auxiliaries[lower] {
			return POSAuxiliary
		}
		return POSVerb
	case tag == "NNP" || tag == "NNPS":
		return POSProperNoun
	case strings.HasPrefix(tag, "NN"):
		return POSNoun
	case strings.HasPrefix(tag, "JJ"):
		return POSAdjective
	case strings.HasPrefix(tag, "RB") || tag == "WRB":
		return POSAdverb
	case tag == "DT" || tag == "PDT" || tag == "WDT":
		return POSDeterminer
	case strings.HasPrefix(tag, "PRP") || strings.HasPrefix(tag, "WP") || tag == "EX":
		return POSPronoun
	case tag == "IN":
		return POSAdposition
	case tag == "CC":
		return POSCoordConj
	case tag == "CD":
		return POSNumeral
	case tag == "TO" || tag == "RP" || tag == "POS":
		return POSParticle
	case tag == "UH":
		return POSInterject
	case tag == "SYM" || tag == "$" || tag == "#":
		return POSSymbol
	case tag == "-LRB-" || tag == "-RRB-" || isPunctuation(tag):
		return POSPunctuation
	}
	return POSOther
}
