package document

import (
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFont       = "Helvetica"
	pdfBodySize   = 11
	pdfHeadSize   = 20
	pdfLineHeight = 6
	pdfCellHeight = 8
)

// PDF renders A4 portrait pages with the core Helvetica font.
type PDF struct{}

func (PDF) Extension() string   { return "pdf" }
func (PDF) ContentType() string { return "application/pdf" }

func (PDF) Render(w io.Writer, doc Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("PharmaDB", true)
	pdf.AddPage()

	// Core fonts are cp1252; translate so names like "Müller" survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	width := pageW - left - right

	for _, b := range doc.Blocks {
		switch b := b.(type) {
		case Heading:
			pdf.SetFont(pdfFont, "", pdfHeadSize)
			pdf.CellFormat(width, pdfHeadSize/2, tr(b.Text), "", 1, pdfAlign(b.Align), false, 0, "")
			pdf.Ln(2)
		case Paragraph:
			pdf.SetFont(pdfFont, pdfStyle(b.Style), pdfBodySize)
			pdf.MultiCell(width, pdfLineHeight, tr(b.Text), "", pdfAlign(b.Align), false)
		case Spacer:
			pdf.Ln(float64(b.Lines * pdfLineHeight))
		case Table:
			weights := b.columnWeights()
			pdf.SetFont(pdfFont, "B", pdfBodySize)
			for i, h := range b.Header {
				pdf.CellFormat(width*weights[i], pdfCellHeight, tr(h), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
			pdf.SetFont(pdfFont, "", pdfBodySize)
			for _, row := range b.Rows {
				for i := range b.Header {
					cell := ""
					if i < len(row) {
						cell = row[i]
					}
					pdf.CellFormat(width*weights[i], pdfCellHeight, tr(cell), "1", 0, "L", false, 0, "")
				}
				pdf.Ln(-1)
			}
		}
	}

	return pdf.Output(w)
}

func pdfAlign(a Align) string {
	switch a {
	case AlignCenter:
		return "C"
	case AlignRight:
		return "R"
	default:
		return "L"
	}
}

func pdfStyle(s Style) string {
	out := ""
	if s&Bold != 0 {
		out += "B"
	}
	if s&Italic != 0 {
		out += "I"
	}
	return out
}
