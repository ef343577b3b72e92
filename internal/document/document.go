// Package document models a simple printable document as an ordered list of
// content blocks, and renders it as PDF, HTML or plain text.
package document

import (
	"fmt"
	"io"
	"strings"
)

// Align is the horizontal alignment of a block.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Style is a set of emphasis flags.
type Style uint8

const (
	Bold Style = 1 << iota
	Italic
)

// Block is one piece of document content: Heading, Paragraph, Table or Spacer.
type Block interface {
	block()
}

// Heading is a large title line.
type Heading struct {
	Text  string
	Align Align
}

// Paragraph is a run of body text.
type Paragraph struct {
	Text  string
	Align Align
	Style Style
}

// Table is a bordered grid. Widths are relative column weights; when absent
// the columns share the width evenly.
type Table struct {
	Header []string
	Rows   [][]string
	Widths []float64
}

// Spacer inserts blank lines.
type Spacer struct {
	Lines int
}

func (Heading) block()   {}
func (Paragraph) block() {}
func (Table) block()     {}
func (Spacer) block()    {}

// Document is an ordered list of blocks.
type Document struct {
	Title  string
	Blocks []Block
}

// Add appends blocks in order.
func (d *Document) Add(blocks ...Block) {
	d.Blocks = append(d.Blocks, blocks...)
}

// Renderer writes a Document in one output format.
type Renderer interface {
	Render(w io.Writer, doc Document) error
	// Extension is the file extension without the dot.
	Extension() string
	ContentType() string
}

// NewRenderer returns the renderer for format: pdf, html or txt.
func NewRenderer(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "pdf":
		return PDF{}, nil
	case "html":
		return HTML{}, nil
	case "txt", "text":
		return Text{}, nil
	default:
		return nil, fmt.Errorf("unsupported document format: %q", format)
	}
}

// columnWeights normalizes t.Widths to fractions summing to 1.
func (t Table) columnWeights() []float64 {
	n := len(t.Header)
	weights := make([]float64, n)
	var sum float64
	if len(t.Widths) == n {
		for _, w := range t.Widths {
			sum += w
		}
	}
	for i := range weights {
		if sum > 0 {
			weights[i] = t.Widths[i] / sum
		} else {
			weights[i] = 1 / float64(n)
		}
	}
	return weights
}
