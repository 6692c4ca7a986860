// Package bank reads question banks exported by the authoring tool.
package bank

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/itemcheck/internal/question"
)

// Column headers the bank must carry.
const (
	ColNumber  = "Question Number"
	ColType    = "Type"
	ColStem    = "Stem Text"
	ColOptions = "Option Text"
)

// RequiredColumns lists the headers in output order.
var RequiredColumns = []string{ColNumber, ColType, ColStem, ColOptions}

// headerSearchRows is how many leading rows may hold the header. Exports
// carry a title row above it.
const headerSearchRows = 5

var (
	ErrUnsupportedFormat = errors.New("unsupported question bank format")
	ErrSchemaMismatch    = errors.New("question bank is missing required columns")
	ErrDuplicateQuestion = errors.New("duplicate question number")
	ErrMissingNumber     = errors.New("question number is empty")
	ErrEmptyBank         = errors.New("question bank has no rows")
)

// Table is a sheet of cells as read from the file, header rows included.
type Table struct {
	Rows [][]string
}

// Reader decodes one file format into a Table.
type Reader interface {
	Read(r io.Reader) (*Table, error)
}

// SupportedExtensions lists the file extensions a bank can be read from.
var SupportedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
	".html": true,
	".htm":  true,
}

// ForFile returns the reader for a filename.
func ForFile(filename string) (Reader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return &CSVReader{}, nil
	case ".xlsx":
		return &XLSXReader{}, nil
	case ".xls":
		return &HTMLTableReader{RejectBinary: true}, nil
	case ".html", ".htm":
		return &HTMLTableReader{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Load reads and validates the bank at path.
func Load(path string) ([]question.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open question bank: %w", err)
	}
	defer f.Close()
	return Decode(f, path)
}

// Decode reads a bank of the format implied by filename from r.
func Decode(r io.Reader, filename string) ([]question.Question, error) {
	rd, err := ForFile(filename)
	if err != nil {
		return nil, err
	}
	t, err := rd.Read(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(filename), err)
	}
	return Questions(t)
}

// Questions locates the header row and converts the rows below it.
// Rows with every cell blank are skipped.
func Questions(t *Table) ([]question.Question, error) {
	if t == nil || len(t.Rows) == 0 {
		return nil, ErrEmptyBank
	}

	headerRow, cols, missing := findHeader(t.Rows)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}

	var out []question.Question
	seen := make(map[string]int)
	for i := headerRow + 1; i < len(t.Rows); i++ {
		row := t.Rows[i]
		if blank(row) {
			continue
		}
		line := i + 1
		number := strings.TrimSpace(cell(row, cols[ColNumber]))
		if number == "" {
			return nil, fmt.Errorf("row %d: %w", line, ErrMissingNumber)
		}
		if first, ok := seen[number]; ok {
			return nil, fmt.Errorf("row %d: %w: %s (first seen on row %d)", line, ErrDuplicateQuestion, number, first)
		}
		seen[number] = line

		out = append(out, question.Question{
			Number:     number,
			Type:       question.Type(strings.TrimSpace(cell(row, cols[ColType]))),
			RawStem:    cell(row, cols[ColStem]),
			RawOptions: cell(row, cols[ColOptions]),
		})
	}
	return out, nil
}

// findHeader returns the first row within the search window holding every
// required column. When none does, missing lists the columns absent from
// the closest candidate.
func findHeader(rows [][]string) (int, map[string]int, []string) {
	bestRow, bestCols := 0, map[string]int{}
	limit := min(headerSearchRows, len(rows))
	for i := 0; i < limit; i++ {
		cols := columnIndex(rows[i])
		if len(cols) == len(RequiredColumns) {
			return i, cols, nil
		}
		if len(cols) > len(bestCols) {
			bestRow, bestCols = i, cols
		}
	}

	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := bestCols[c]; !ok {
			missing = append(missing, c)
		}
	}
	return bestRow, bestCols, missing
}

func columnIndex(row []string) map[string]int {
	cols := make(map[string]int)
	for i, h := range row {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		for _, want := range RequiredColumns {
			if _, dup := cols[want]; !dup && strings.EqualFold(h, want) {
				cols[want] = i
			}
		}
	}
	return cols
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
