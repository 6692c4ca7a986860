package report

import (
	"io"

	"github.com/fumiama/go-docx"
)

// DOCXWriter writes one section per flagged question.
type DOCXWriter struct{}

func (d *DOCXWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

func (d *DOCXWriter) Write(w io.Writer, rows []Row) error {
	doc := docx.New().WithDefaultTheme()
	doc.AddParagraph().AddText("Error Summary").Bold().Size("32")

	for _, r := range rows {
		doc.AddParagraph().AddText("Question " + r.Number).Bold().Size("26")
		field(doc, "Stem", r.StemCleaned)
		field(doc, "Options", r.OptionCleaned)
		field(doc, "Stem errors", r.StemErrors)
		field(doc, "Option errors", r.OptionErrors)
	}
	_, err := doc.WriteTo(w)
	return err
}

func field(doc *docx.Docx, label, value string) {
	if value == "" {
		return
	}
	p := doc.AddParagraph()
	p.AddText(label + ": ").Bold()
	p.AddText(value)
}
