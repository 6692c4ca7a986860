package bank

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// oleMagic opens every binary (BIFF) Excel workbook.
var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// HTMLTableReader reads the first <table> of an HTML document. The
// authoring tool's ".xls" export is such a document.
type HTMLTableReader struct {
	// RejectBinary fails on real binary workbooks instead of parsing them
	// as HTML.
	RejectBinary bool
}

func (p *HTMLTableReader) Read(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	if p.RejectBinary {
		head, _ := br.Peek(len(oleMagic))
		if bytes.Equal(head, oleMagic) {
			return nil, fmt.Errorf("%w: binary .xls workbook, re-save it as .xlsx", ErrUnsupportedFormat)
		}
	}

	doc, err := html.Parse(br)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	table := findElement(doc, "table")
	if table == nil {
		return nil, fmt.Errorf("%w: no <table> element", ErrUnsupportedFormat)
	}

	t := &Table{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "table":
				if n != table {
					return
				}
			case "tr":
				t.Rows = append(t.Rows, rowCells(n))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)
	return t, nil
}

func rowCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cells = append(cells, cellContent(c))
		}
	}
	return cells
}

// cellContent returns a cell's text. A cell holding markup keeps it, so the
// stem checks can see images and alignment styles.
func cellContent(n *html.Node) string {
	var text strings.Builder
	markup := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			text.WriteString(c.Data)
		case html.ElementNode:
			markup = true
		}
	}
	if !markup {
		return strings.TrimSpace(text.String())
	}

	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return strings.TrimSpace(text.String())
		}
	}
	return strings.TrimSpace(buf.String())
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
