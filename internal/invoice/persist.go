package invoice

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/JonMunkholm/PharmaDB/internal/core"
	"github.com/JonMunkholm/PharmaDB/internal/document"
	"github.com/JonMunkholm/PharmaDB/internal/logging"
)

// Path returns where the bill for orderID is written.
func (g *Generator) Path(orderID int64) string {
	return filepath.Join(g.outputDir, fmt.Sprintf("bill_%d.%s", orderID, g.renderer.Extension()))
}

// Generate builds the invoice for orderID and writes it to Path(orderID),
// replacing any earlier bill for the same order. The output directory is
// created if missing. A missing order fails with *core.NotFoundError before
// anything touches the filesystem, and a failed render leaves no file behind.
func (g *Generator) Generate(ctx context.Context, orderID int64) (string, error) {
	inv, err := g.Build(ctx, orderID)
	if err != nil {
		return "", err
	}

	path := g.Path(orderID)
	if err := g.persist(path, g.Document(inv)); err != nil {
		return "", err
	}

	logging.WithFields(ctx, "order_id", orderID).Info("bill generated",
		"path", path,
		"lines", len(inv.Lines),
		"total", inv.Total.StringFixed(2),
	)
	return path, nil
}

// Render builds the invoice and writes it to w in the given renderer's
// format without persisting it.
func (g *Generator) Render(ctx context.Context, orderID int64, r document.Renderer, w io.Writer) error {
	inv, err := g.Build(ctx, orderID)
	if err != nil {
		return err
	}
	if err := r.Render(w, g.Document(inv)); err != nil {
		return &core.RenderError{Path: "-", Err: err}
	}
	return nil
}

// persist renders into a temporary file beside path and renames it into
// place, so readers never see a partial bill.
func (g *Generator) persist(path string, doc document.Document) error {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return &core.RenderError{Path: g.outputDir, Err: err}
	}

	tmp := filepath.Join(g.outputDir, ".bill-"+uuid.NewString()+".tmp")
	f, err := os.Create(tmp)
	if err != nil {
		return &core.RenderError{Path: path, Err: err}
	}

	if err := g.renderer.Render(f, doc); err != nil {
		f.Close()
		os.Remove(tmp)
		return &core.RenderError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return &core.RenderError{Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &core.RenderError{Path: path, Err: err}
	}
	return nil
}
