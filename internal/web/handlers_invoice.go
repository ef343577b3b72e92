package web

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/PharmaDB/internal/core"
	"github.com/JonMunkholm/PharmaDB/internal/document"
	"github.com/JonMunkholm/PharmaDB/internal/invoice"
)

// handleGenerateInvoice writes the bill for an order to the output
// directory and returns its path.
func (s *Server) handleGenerateInvoice(w http.ResponseWriter, r *http.Request) {
	orderID, err := invoice.ParseOrderID(chi.URLParam(r, "orderID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	path, err := s.invoices.Generate(r.Context(), orderID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"path": path})
}

// handleRenderInvoice streams the bill in ?format= (default: the configured
// format) without writing a file.
func (s *Server) handleRenderInvoice(w http.ResponseWriter, r *http.Request) {
	orderID, err := invoice.ParseOrderID(chi.URLParam(r, "orderID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = s.cfg.Invoice.Format
	}
	renderer, err := document.NewRenderer(format)
	if err != nil {
		s.fail(w, r, &core.FormatError{Field: "format", Value: format, Reason: "must be pdf, html or txt"})
		return
	}

	// Buffered so a failed render can still report an error status.
	var buf bytes.Buffer
	if err := s.invoices.Render(r.Context(), orderID, renderer, &buf); err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="bill_%d.%s"`, orderID, renderer.Extension()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
