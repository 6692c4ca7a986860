// Package report writes the error summary for flagged questions.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/itemcheck/internal/audit"
)

// Format names an output encoding.
type Format string

const (
	FormatXLSX     Format = "xlsx"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatDOCX     Format = "docx"
)

// Formats lists every supported format, default first.
var Formats = []Format{FormatXLSX, FormatCSV, FormatJSON, FormatMarkdown, FormatHTML, FormatDOCX}

// NoErrorsMessage is reported instead of writing an empty summary.
const NoErrorsMessage = "No errors found. No output file produced."

// CreatedMessage is reported after a summary has been written.
func CreatedMessage(path string) string {
	return "Error summary file created: " + path
}

var ErrUnsupportedFormat = errors.New("unsupported report format")

// Headers are the summary columns in order.
var Headers = []string{
	"Question Number",
	"Stem Text",
	"Option Text",
	"Stem Cleaned",
	"Option Cleaned",
	"Stem Errors",
	"Option Errors",
}

// Row is one flagged question in the summary.
type Row struct {
	Number        string `json:"question_number"`
	Stem          string `json:"stem_text"`
	Options       string `json:"option_text"`
	StemCleaned   string `json:"stem_cleaned"`
	OptionCleaned string `json:"option_cleaned"`
	StemErrors    string `json:"stem_errors"`
	OptionErrors  string `json:"option_errors"`
}

func (r Row) cells() []string {
	return []string{r.Number, r.Stem, r.Options, r.StemCleaned, r.OptionCleaned, r.StemErrors, r.OptionErrors}
}

// Rows converts flagged questions to summary rows, keeping their order.
func Rows(flagged []audit.Flagged) []Row {
	rows := make([]Row, 0, len(flagged))
	for _, f := range flagged {
		rows = append(rows, Row{
			Number:        f.Question.Number,
			Stem:          f.Question.RawStem,
			Options:       f.Question.RawOptions,
			StemCleaned:   f.Question.Stem,
			OptionCleaned: f.Question.Options,
			StemErrors:    f.Report.StemErrors,
			OptionErrors:  f.Report.OptionErrors,
		})
	}
	return rows
}

// Writer encodes summary rows in one format.
type Writer interface {
	Write(w io.Writer, rows []Row) error
	ContentType() string
}

// ForFormat returns the writer for a format name. An empty name selects xlsx.
func ForFormat(name string) (Writer, error) {
	switch normalizeFormat(name) {
	case FormatXLSX:
		return &XLSXWriter{}, nil
	case FormatCSV:
		return &CSVWriter{}, nil
	case FormatJSON:
		return &JSONWriter{}, nil
	case FormatMarkdown:
		return &MarkdownWriter{}, nil
	case FormatHTML:
		return &HTMLWriter{}, nil
	case FormatDOCX:
		return &DOCXWriter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// ParseFormat validates a format name and returns its canonical form.
func ParseFormat(name string) (Format, error) {
	if _, err := ForFormat(name); err != nil {
		return "", err
	}
	return normalizeFormat(name), nil
}

func normalizeFormat(name string) Format {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")))
	switch f {
	case "":
		return FormatXLSX
	case "markdown":
		return FormatMarkdown
	case "htm":
		return FormatHTML
	}
	return f
}

// OutputPath derives the summary path from the question bank path:
// "bank.xls" becomes "bank_error_summary.xlsx".
func OutputPath(input string, format Format) string {
	if format == "" {
		format = FormatXLSX
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "_error_summary." + string(format)
}

// Save writes rows to path in format. Callers report NoErrorsMessage
// rather than saving an empty summary.
func Save(path string, format Format, rows []Row) error {
	w, err := ForFormat(string(format))
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := w.Write(f, rows); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write %s report: %w", format, err)
	}
	return f.Close()
}
