package annotate

import (
	"strings"
	"unicode"
)

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

var (
	negations = wordSet("not", "n't", "n’t", "never")

	auxiliaries = wordSet(
		"is", "are", "was", "were", "be", "been", "being", "am", "'m", "’m", "'re", "’re",
		"do", "does", "did", "have", "has", "had", "'ve", "’ve",
		"can", "ca", "could", "will", "wo", "would", "shall", "should",
		"may", "might", "must", "'ll", "’ll", "'d", "’d",
	)

	determiners = wordSet(
		"the", "a", "an", "this", "that", "these", "those", "each", "every",
		"some", "any", "no", "all", "both", "either", "neither", "another",
	)

	pronouns = wordSet(
		"i", "you", "he", "she", "it", "we", "they", "me", "him", "her", "us", "them",
		"my", "your", "his", "its", "our", "their", "mine", "yours", "ours", "theirs",
		"which", "what", "who", "whom", "whose", "itself", "themselves", "yourself",
	)

	adpositions = wordSet(
		"of", "in", "on", "at", "for", "with", "from", "by", "about", "into", "onto",
		"over", "under", "between", "through", "during", "without", "within",
		"after", "before", "across", "against", "among", "per", "via", "toward", "towards",
	)

	coordinators  = wordSet("and", "or", "but", "nor", "yet")
	subordinators = wordSet("if", "because", "when", "while", "although", "though", "unless", "whether", "since", "where")
	interjections = wordSet("yes", "oh", "ok", "okay")
	commonAdverbs = wordSet("also", "only", "very", "then", "too", "just", "always", "often", "here", "there", "how", "why", "again", "already", "still", "most", "more", "less", "least")

	commonAdjectives = wordSet(
		"true", "false", "correct", "incorrect", "accurate", "best", "better", "good", "bad",
		"new", "old", "same", "different", "first", "last", "next", "following", "main",
		"primary", "secondary", "valid", "invalid", "available",
	)

	commonVerbs = wordSet(
		"choose", "select", "refer", "drag", "drop", "describe", "use", "configure",
		"identify", "match", "apply", "allow", "provide", "prevent", "require", "support",
		"send", "receive", "connect", "create", "run", "make", "take", "need", "want",
		"say", "see", "know", "get", "give", "go", "come", "show", "find", "explain",
		"determine", "ensure", "complete", "occur", "happen", "perform", "include",
		"contain", "represent", "enable", "disable", "assign", "store", "forward",
		"block", "permit", "deny", "verify", "install", "add", "remove", "change",
	)
)

var modals = wordSet("do", "does", "did", "can", "could", "will", "would", "shall", "should", "may", "might", "must")

// numberTokens are words that read as numerals in exam cues ("Choose two").
var numberTokens = wordSet("one", "two", "three", "four", "five", "six")

// tag assigns POS and dependency labels in place. Tokens must already carry
// sentence indices.
func tag(toks []Token) {
	for i := range toks {
		tok := &toks[i]
		lower := tok.Lower
		switch {
		case isPunctuation(tok.Text):
			tok.POS = POSPunctuation
		case isNumeric(tok.Text):
			tok.POS = POSNumeral
		case negations[lower]:
			tok.POS = POSParticle
			if lower == "never" {
				tok.POS = POSAdverb
			}
			tok.Dep = DepNeg
		case auxiliaries[lower]:
			tok.POS = POSAuxiliary
		case lower == "to":
			tok.POS = POSParticle
			if i+1 < len(toks) && determiners[toks[i+1].Lower] {
				tok.POS = POSAdposition
			}
		case lower == "'s" || lower == "’s":
			tok.POS = POSParticle
			if i+1 < len(toks) && (determiners[toks[i+1].Lower] || negations[toks[i+1].Lower]) {
				tok.POS = POSAuxiliary
			}
		case determiners[lower]:
			tok.POS = POSDeterminer
		case pronouns[lower]:
			tok.POS = POSPronoun
		case adpositions[lower]:
			tok.POS = POSAdposition
		case coordinators[lower]:
			tok.POS = POSCoordConj
		case subordinators[lower]:
			tok.POS = POSSubordConj
		case interjections[lower]:
			tok.POS = POSInterject
		case numberTokens[lower]:
			tok.POS = POSNumeral
		case commonVerbs[lower]:
			tok.POS = POSVerb
		case commonAdverbs[lower], len(lower) > 4 && strings.HasSuffix(lower, "ly"):
			tok.POS = POSAdverb
		case commonAdjectives[lower], hasAnySuffix(lower, "ous", "ful", "able", "ible", "ive", "less"):
			tok.POS = POSAdjective
		case hasAnySuffix(lower, "ed", "ing", "ize", "ise", "ify", "ates"):
			tok.POS = POSVerb
		case isCapitalized(tok.Text) && !sentenceInitial(toks, i):
			tok.POS = POSProperNoun
		default:
			tok.POS = POSNoun
		}
	}

	// A noun right after an infinitive marker or a modal reads as a verb
	// ("to route", "does support").
	for i := 1; i < len(toks); i++ {
		prev := toks[i-1]
		if toks[i].POS != POSNoun || toks[i].Sentence != prev.Sentence {
			continue
		}
		if (prev.Lower == "to" && prev.POS == POSParticle) || modals[prev.Lower] {
			toks[i].POS = POSVerb
		}
	}
}

func sentenceInitial(toks []Token, i int) bool {
	if i == 0 || toks[i-1].Sentence != toks[i].Sentence {
		return true
	}
	// Opening punctuation before the first word does not count.
	for j := i - 1; j >= 0 && toks[j].Sentence == toks[i].Sentence; j-- {
		if toks[j].POS != POSPunctuation {
			return false
		}
	}
	return true
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if len(s) > len(suf)+2 && strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func isPunctuation(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

func isNumeric(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.' || r == ',' || r == '%' || r == '-':
		default:
			return false
		}
	}
	return digits > 0
}

func isCapitalized(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}
