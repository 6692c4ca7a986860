package annotate

// abbreviations never end a sentence even when followed by a full stop.
var abbreviations = map[string]bool{
	"e.g": true, "i.e": true, "vs": true, "cf": true, "fig": true,
	"approx": true, "mr": true, "mrs": true, "ms": true, "dr": true,
}

func isTerminal(s string) bool {
	return s == "." || s == "!" || s == "?"
}

func isCloser(s string) bool {
	switch s {
	case ")", "]", "}", `"`, "'", "”", "’":
		return true
	}
	return false
}

// segment groups tokens into sentences. A sentence ends at a terminal
// mark together with any closing brackets or quotes glued to it, or at a
// blank line.
func segment(toks []rawToken) []Sentence {
	var out []Sentence
	start := 0
	for i := 0; i < len(toks); i++ {
		if toks[i].paragraph && i > start {
			out = append(out, Sentence{Start: start, End: i})
			start = i
		}
		if !isTerminal(toks[i].text) {
			continue
		}
		if toks[i].text == "." && i > 0 && abbreviations[lowerASCII(toks[i-1].text)] && !toks[i].spaceBefore {
			continue
		}
		end := i + 1
		for end < len(toks) && !toks[end].spaceBefore && (isTerminal(toks[end].text) || isCloser(toks[end].text)) {
			end++
		}
		out = append(out, Sentence{Start: start, End: end})
		start = end
		i = end - 1
	}
	if start < len(toks) {
		out = append(out, Sentence{Start: start, End: len(toks)})
	}
	return out
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
