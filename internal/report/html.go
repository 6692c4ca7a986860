package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// HTMLWriter renders the Markdown table to a standalone HTML page.
type HTMLWriter struct{}

func (h *HTMLWriter) ContentType() string { return "text/html; charset=utf-8" }

func (h *HTMLWriter) Write(w io.Writer, rows []Row) error {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var body bytes.Buffer
	if err := md.Convert([]byte(markdownTable(rows)), &body); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err := fmt.Fprintf(w, htmlPage, body.String())
	return err
}

const htmlPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Error Summary</title>
<style>
table { border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 4px; vertical-align: top; }
</style>
</head>
<body>
%s</body>
</html>
`
