package document

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// textWidth is the line width headings and paragraphs are aligned within.
const textWidth = 60

// Text renders plain text with box-drawn tables, for terminals and logs.
type Text struct{}

func (Text) Extension() string   { return "txt" }
func (Text) ContentType() string { return "text/plain; charset=utf-8" }

func (Text) Render(w io.Writer, doc Document) error {
	var b strings.Builder

	for _, blk := range doc.Blocks {
		switch blk := blk.(type) {
		case Heading:
			b.WriteString(strings.TrimRight(textAlign(blk.Align).Apply(blk.Text, textWidth), " "))
			b.WriteString("\n\n")
		case Paragraph:
			b.WriteString(strings.TrimRight(textAlign(blk.Align).Apply(blk.Text, textWidth), " "))
			b.WriteString("\n")
		case Spacer:
			b.WriteString(strings.Repeat("\n", blk.Lines))
		case Table:
			b.WriteString(renderTextTable(blk))
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func renderTextTable(t Table) string {
	tw := table.NewWriter()
	header := make(table.Row, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	tw.AppendHeader(header)
	for _, r := range t.Rows {
		row := make(table.Row, len(r))
		for i, v := range r {
			row[i] = v
		}
		tw.AppendRow(row)
	}
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	return tw.Render()
}

func textAlign(a Align) text.Align {
	switch a {
	case AlignCenter:
		return text.AlignCenter
	case AlignRight:
		return text.AlignRight
	default:
		return text.AlignLeft
	}
}
