package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// bulletEscape is how Exam Developer exports list bullets in rich text fields.
const bulletEscape = "&bull;"

// Clean strips markup from a rich-text field and returns the visible text,
// left-trimmed and NFC-normalized.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}
	raw = strings.ReplaceAll(raw, bulletEscape, ",")

	var buf strings.Builder
	z := html.NewTokenizer(strings.NewReader(raw))
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or a malformed tail; either way the text so far is all we get.
			return norm.NFC.String(strings.TrimLeftFunc(buf.String(), unicode.IsSpace))
		case html.StartTagToken:
			if isRawTextElement(z) {
				skip++
			}
		case html.EndTagToken:
			if isRawTextElement(z) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				buf.Write(z.Text())
			}
		}
	}
}

// Value cleans an arbitrary cell value. Anything that is not a string
// (nil, numbers, nil pointers) is treated as empty text.
func Value(v any) string {
	switch s := v.(type) {
	case string:
		return Clean(s)
	case *string:
		if s == nil {
			return ""
		}
		return Clean(*s)
	case []byte:
		return Clean(string(s))
	default:
		return ""
	}
}

func isRawTextElement(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style":
		return true
	}
	return false
}
