package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeRules(t *testing.T) {
	input := `
stem_words: [you, correct]
option_words:
  - all of the above
vocabulary: terms.md
threshold: 1
`
	rf, err := DecodeRules(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(rf.StemWords, ",") != "you,correct" {
		t.Errorf("unexpected stem words %v", rf.StemWords)
	}
	if len(rf.OptionWords) != 1 || rf.Vocabulary != "terms.md" {
		t.Errorf("unexpected rules %+v", rf)
	}
	if rf.Threshold == nil || *rf.Threshold != 1 {
		t.Errorf("expected threshold 1, got %v", rf.Threshold)
	}
}

func TestDecodeRules_Empty(t *testing.T) {
	rf, err := DecodeRules(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rf.StemWords != nil || rf.Threshold != nil {
		t.Errorf("expected empty rules, got %+v", rf)
	}
}

func TestDecodeRules_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown key":   "stem_word: [you]\n",
		"two documents": "threshold: 1\n---\nthreshold: 2\n",
		"negative":      "threshold: -1\n",
		"bad type":      "stem_words: 3\n",
	}
	for name, input := range tests {
		if _, err := DecodeRules(strings.NewReader(input)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("stem_words: [only]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	rf, err := LoadRules(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rf.StemWords) != 1 || rf.StemWords[0] != "only" {
		t.Errorf("unexpected stem words %v", rf.StemWords)
	}
	if _, err := LoadRules(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEncodeRules_RoundTrip(t *testing.T) {
	cfg := Config{OptionWords: []string{"only"}, Threshold: 2}
	var buf bytes.Buffer
	if err := EncodeRules(&buf, cfg); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "stem_words:") || !strings.Contains(out, "- can be") {
		t.Errorf("expected default stem words in output:\n%s", out)
	}

	rf, err := DecodeRules(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rf.OptionWords) != 1 || rf.OptionWords[0] != "only" || *rf.Threshold != 2 {
		t.Errorf("unexpected round trip %+v", rf)
	}
}
