package report

import (
	"bytes"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Page geometry and typography. Times family, sizes 16/14/12 for
// title/heading/body, auto page break at a 15mm bottom margin.
const (
	pageBreakMargin = 15.0

	titleFontSize   = 16.0
	headingFontSize = 14.0
	bodyFontSize    = 12.0

	titleLineHeight   = 10.0
	headingLineHeight = 8.0
	bodyLineHeight    = 6.0
)

// fixedCreationDate pins the PDF creation timestamp so that rendering the
// same commands twice produces byte-identical output.
var fixedCreationDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// RenderPDF renders the document title and layout commands into a paginated
// PDF. Content is never truncated; pages are added as needed. Characters
// outside the single-byte target encoding are best-effort transliterated.
func RenderPDF(title string, commands []Command) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Both dates and sorted resource dictionaries are needed for reproducible
	// output; gofpdf otherwise ranges over its font map and stamps wall-clock
	// creation and modification times.
	pdf.SetCreationDate(fixedCreationDate)
	pdf.SetModificationDate(fixedCreationDate)
	pdf.SetCatalogSort(true)
	pdf.SetAutoPageBreak(true, pageBreakMargin)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Times", "B", titleFontSize)
	pdf.MultiCell(0, titleLineHeight, tr(title), "", "L", false)
	pdf.Ln(4)

	for _, cmd := range commands {
		switch cmd.Kind {
		case KindSpacer:
			pdf.Ln(3)

		case KindHeading:
			pdf.Ln(2)
			pdf.SetFont("Times", "B", headingFontSize)
			pdf.MultiCell(0, headingLineHeight, tr(cmd.Text), "", "L", false)
			pdf.Ln(1)

		case KindParagraph:
			pdf.SetFont("Times", "", bodyFontSize)
			pdf.MultiCell(0, bodyLineHeight, tr(cmd.Text), "", "L", false)
			pdf.Ln(1)

		case KindBullet:
			pdf.SetFont("Times", "", bodyFontSize)
			pdf.MultiCell(0, bodyLineHeight, tr("- "+cmd.Text), "", "L", false)
			pdf.Ln(0.5)

		case KindLabeledBlock:
			prefix := ""
			if cmd.Bullet {
				prefix = "- "
			}
			pdf.SetFont("Times", "B", bodyFontSize)
			pdf.MultiCell(0, bodyLineHeight, tr(prefix+cmd.Label), "", "L", false)
			if cmd.Body != "" {
				indent := ""
				if cmd.Bullet {
					indent = "    "
				}
				pdf.SetFont("Times", "", bodyFontSize)
				pdf.MultiCell(0, bodyLineHeight, tr(indent+cmd.Body), "", "L", false)
			}
			pdf.Ln(0.5)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GeneratePDF is the one-call path used by the export handler: format the
// report text and render it under the given title.
func GeneratePDF(title, text string) ([]byte, error) {
	return RenderPDF(title, Format(text))
}
