package normalize

import "testing"

func TestClean_StripsTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"paragraph", "<p>Which two statements are true?</p>", "Which two statements are true?"},
		{"nested", `<div><p style="text-align: center"><b>Refer</b> to the exhibit.</p></div>`, "Refer to the exhibit."},
		{"entities", "<p>A &amp; B</p>", "A & B"},
		{"left trim", "   <p>  Leading</p>", "Leading"},
		{"keeps trailing", "<p>Trailing  </p>", "Trailing  "},
		{"image only", `<img src="x.png">`, ""},
		{"script dropped", "<p>Text</p><script>var x = 1;</script>", "Text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.raw); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestClean_BulletEscape(t *testing.T) {
	got := Clean("<p>&bull;first&bull;second</p>")
	want := ",first,second"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestClean_Empty(t *testing.T) {
	if got := Clean(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestClean_IdempotentOnPlainText(t *testing.T) {
	inputs := []string{
		"Which two statements are true? (Choose two.)",
		"Drag and drop the protocols onto the layers.",
		"Refer to the exhibit.  Two spaces here..",
		"x < y and y > z",
	}
	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestValue_NonStringInputs(t *testing.T) {
	var nilStr *string
	inputs := []any{nil, 42, 3.14, true, nilStr, struct{}{}}
	for _, in := range inputs {
		if got := Value(in); got != "" {
			t.Errorf("expected empty text for %T, got %q", in, got)
		}
	}
}

func TestValue_StringInputs(t *testing.T) {
	s := "<p>Hello</p>"
	if got := Value(s); got != "Hello" {
		t.Errorf("expected %q, got %q", "Hello", got)
	}
	if got := Value(&s); got != "Hello" {
		t.Errorf("expected %q, got %q", "Hello", got)
	}
	if got := Value([]byte(s)); got != "Hello" {
		t.Errorf("expected %q, got %q", "Hello", got)
	}
}
