package bank

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVReader handles comma-separated exports.
type CSVReader struct{}

func (p *CSVReader) Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return &Table{Rows: records}, nil
}
