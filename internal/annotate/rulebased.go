package annotate

import "strings"

// RuleBased is a deterministic tokenizer, sentence splitter and tagger
// backed by closed-class word lists and suffix heuristics.
type RuleBased struct {
	lexicon *Lexicon
}

// NewRuleBased returns a rule-based annotator. A nil lexicon selects the
// built-in word list.
func NewRuleBased(lex *Lexicon) *RuleBased {
	if lex == nil {
		lex = DefaultLexicon()
	}
	return &RuleBased{lexicon: lex}
}

// Annotate tokenizes, segments and tags text.
func (a *RuleBased) Annotate(text string) *Text {
	raw := tokenize(text)
	out := &Text{
		Source:    text,
		Tokens:    make([]Token, len(raw)),
		Sentences: segment(raw),
	}
	for i, rt := range raw {
		out.Tokens[i] = Token{
			Text:        rt.text,
			Lower:       strings.ToLower(rt.text),
			SpaceBefore: rt.spaceBefore,
		}
	}
	for si, s := range out.Sentences {
		for i := s.Start; i < s.End; i++ {
			out.Tokens[i].Sentence = si
		}
	}
	tag(out.Tokens)
	return out
}

// Vocabulary returns the annotator's lexicon.
func (a *RuleBased) Vocabulary() Vocabulary {
	return a.lexicon
}
