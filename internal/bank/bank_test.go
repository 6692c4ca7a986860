package bank

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/itemcheck/internal/question"
)

const csvBank = `Exam Developer Item Report,,,
Question Number,Type,Stem Text,Option Text
1,McqSingle,<p>Which protocol is used?</p>,<p>OSPF</p>
,,,
2,McqMultiple,"<p>Which two are valid, and why?</p>",<p>A</p>
`

func TestDecode_CSVWithTitleRow(t *testing.T) {
	qs, err := Decode(strings.NewReader(csvBank), "bank.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	want := question.Question{
		Number:     "2",
		Type:       question.TypeMultiSelect,
		RawStem:    "<p>Which two are valid, and why?</p>",
		RawOptions: "<p>A</p>",
	}
	if qs[1] != want {
		t.Errorf("expected %+v, got %+v", want, qs[1])
	}
}

func TestQuestions_HeaderMatchingIsLoose(t *testing.T) {
	tbl := &Table{Rows: [][]string{
		{"\ufeff question number ", "TYPE", "Extra", "stem text", "Option Text"},
		{"7", "EnhancedMatching", "x", "<p>Drag and drop</p>", ""},
	}}
	qs, err := Questions(tbl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 1 || qs[0].Number != "7" || qs[0].RawStem != "<p>Drag and drop</p>" {
		t.Errorf("unexpected questions %+v", qs)
	}
}

func TestQuestions_ShortRowsPadded(t *testing.T) {
	tbl := &Table{Rows: [][]string{
		{"Question Number", "Type", "Stem Text", "Option Text"},
		{"1", "McqSingle"},
	}}
	qs, err := Questions(tbl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qs[0].RawStem != "" || qs[0].RawOptions != "" {
		t.Errorf("expected empty text for missing cells, got %+v", qs[0])
	}
}

func TestQuestions_Errors(t *testing.T) {
	header := []string{"Question Number", "Type", "Stem Text", "Option Text"}
	tests := []struct {
		name string
		rows [][]string
		want error
	}{
		{"empty", nil, ErrEmptyBank},
		{"missing column", [][]string{{"Question Number", "Type", "Stem Text"}}, ErrSchemaMismatch},
		{"header too deep", [][]string{{"a"}, {"b"}, {"c"}, {"d"}, {"e"}, header}, ErrSchemaMismatch},
		{"duplicate", [][]string{header, {"1", "", "", ""}, {"1", "", "", ""}}, ErrDuplicateQuestion},
		{"missing number", [][]string{header, {" ", "McqSingle", "stem", ""}}, ErrMissingNumber},
	}
	for _, tt := range tests {
		_, err := Questions(&Table{Rows: tt.rows})
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestQuestions_SchemaMismatchNamesColumns(t *testing.T) {
	_, err := Questions(&Table{Rows: [][]string{{"Question Number", "Type"}}})
	if err == nil || !strings.Contains(err.Error(), "Stem Text, Option Text") {
		t.Errorf("expected missing columns in error, got %v", err)
	}
}

func TestForFile(t *testing.T) {
	for _, name := range []string{"a.csv", "a.XLSX", "a.xls", "a.html", "a.htm"} {
		if _, err := ForFile(name); err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
		}
		if !IsSupportedExtension(name) {
			t.Errorf("%s: expected supported", name)
		}
	}
	if _, err := ForFile("a.ods"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.csv")
	if err := os.WriteFile(path, []byte(csvBank), 0o644); err != nil {
		t.Fatal(err)
	}
	qs, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Errorf("expected 2 questions, got %d", len(qs))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}
