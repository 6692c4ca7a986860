package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strings"
)

// CSVWriter writes RFC 4180 CSV with a header row.
type CSVWriter struct{}

func (c *CSVWriter) ContentType() string { return "text/csv; charset=utf-8" }

func (c *CSVWriter) Write(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.cells()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONWriter writes the rows as an indented JSON array.
type JSONWriter struct{}

func (j *JSONWriter) ContentType() string { return "application/json" }

func (j *JSONWriter) Write(w io.Writer, rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// MarkdownWriter writes a GitHub-flavoured Markdown table.
type MarkdownWriter struct{}

func (m *MarkdownWriter) ContentType() string { return "text/markdown; charset=utf-8" }

func (m *MarkdownWriter) Write(w io.Writer, rows []Row) error {
	_, err := io.WriteString(w, markdownTable(rows))
	return err
}

func markdownTable(rows []Row) string {
	var b strings.Builder
	b.WriteString("# Error Summary\n\n")
	writeMarkdownRow(&b, Headers)
	b.WriteString("|")
	for range Headers {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, r := range rows {
		writeMarkdownRow(&b, r.cells())
	}
	return b.String()
}

var markdownCell = strings.NewReplacer(
	"|", `\|`,
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
	"<", "&lt;",
	">", "&gt;",
)

func writeMarkdownRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(markdownCell.Replace(c))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}
