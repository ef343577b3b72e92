package document

//go:generate templ generate -f page.templ

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// HTML renders a standalone page suitable for printing from a browser.
type HTML struct{}

func (HTML) Extension() string   { return "html" }
func (HTML) ContentType() string { return "text/html; charset=utf-8" }

func (HTML) Render(w io.Writer, doc Document) error {
	return Page(doc).Render(context.Background(), w)
}

// blockClasses maps alignment and emphasis onto the page stylesheet.
func blockClasses(a Align, s Style) []string {
	var classes []string
	switch a {
	case AlignCenter:
		classes = append(classes, "center")
	case AlignRight:
		classes = append(classes, "right")
	}
	if s&Bold != 0 {
		classes = append(classes, "bold")
	}
	if s&Italic != 0 {
		classes = append(classes, "italic")
	}
	return classes
}

func columnWidth(weight float64) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("width:%.0f%%", weight*100))
}

// cellAt pads short rows with empty cells.
func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
