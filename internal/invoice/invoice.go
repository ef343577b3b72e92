// Package invoice builds and persists order bills.
//
// An invoice joins one order with its customer and its line items. Line
// subtotals are taken as recorded at purchase time and never recomputed; the
// total is their exact decimal sum.
package invoice

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/PharmaDB/internal/config"
	"github.com/JonMunkholm/PharmaDB/internal/core"
	"github.com/JonMunkholm/PharmaDB/internal/database"
	"github.com/JonMunkholm/PharmaDB/internal/document"
)

// TimestampLayout is dd-MM-yyyy HH:mm:ss.
const TimestampLayout = "02-01-2006 15:04:05"

// Invoice is a computed bill. It is never stored as a row.
type Invoice struct {
	OrderID       int64           `json:"orderId"`
	CustomerName  string          `json:"customerName"`
	CustomerPhone string          `json:"customerPhone"`
	GeneratedAt   time.Time       `json:"generatedAt"`
	Lines         []Line          `json:"lines"`
	Total         decimal.Decimal `json:"total"`
}

// Line is one product on the order.
type Line struct {
	Product         string          `json:"product"`
	Quantity        int64           `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

// Tables names the four tables an invoice reads.
type Tables struct {
	Orders   string
	Customer string
	Lines    string
	Product  string
}

// DefaultTables matches the pharmacy schema.
func DefaultTables() Tables {
	return Tables{Orders: "orders", Customer: "customer", Lines: "orderdetails", Product: "product"}
}

// ParseOrderID reads an order id typed by an operator.
func ParseOrderID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, &core.FormatError{Field: "order id", Value: s, Reason: "must be a whole number"}
	}
	return id, nil
}

// Generator produces invoices from a provider.
type Generator struct {
	provider  database.Provider
	dialect   database.Dialect
	tables    Tables
	outputDir string
	title     string
	renderer  document.Renderer
	now       func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithTables overrides the table names.
func WithTables(t Tables) Option {
	return func(g *Generator) { g.tables = t }
}

// WithOutputDir sets where bills are written.
func WithOutputDir(dir string) Option {
	return func(g *Generator) { g.outputDir = dir }
}

// WithTitle sets the document heading.
func WithTitle(title string) Option {
	return func(g *Generator) { g.title = title }
}

// WithRenderer sets the persisted format.
func WithRenderer(r document.Renderer) Option {
	return func(g *Generator) { g.renderer = r }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// NewGenerator returns a generator writing PDFs titled "PharmaDB Bill" to
// ./bills unless options say otherwise.
func NewGenerator(provider database.Provider, opts ...Option) *Generator {
	g := &Generator{
		provider:  provider,
		dialect:   provider.Dialect(),
		tables:    DefaultTables(),
		outputDir: "bills",
		title:     "PharmaDB Bill",
		renderer:  document.PDF{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// FromConfig returns a generator configured by cfg.
func FromConfig(provider database.Provider, cfg config.InvoiceConfig) (*Generator, error) {
	r, err := document.NewRenderer(cfg.Format)
	if err != nil {
		return nil, err
	}
	return NewGenerator(provider,
		WithOutputDir(cfg.OutputDir),
		WithTitle(cfg.Title),
		WithRenderer(r),
		WithTables(Tables{
			Orders:   cfg.OrdersTable,
			Customer: cfg.CustomerTable,
			Lines:    cfg.LinesTable,
			Product:  cfg.ProductTable,
		}),
	), nil
}

// Build loads an order and computes its invoice without writing anything.
func (g *Generator) Build(ctx context.Context, orderID int64) (*Invoice, error) {
	h, err := g.provider.Acquire(ctx)
	if err != nil {
		return nil, &core.DataAccessError{Op: "load order", Err: err}
	}
	defer h.Release()

	inv, err := g.loadHeader(ctx, h, orderID)
	if err != nil {
		return nil, err
	}
	if err := g.loadLines(ctx, h, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Column names are fixed by the schema and left unquoted so they match
// case-insensitively on every dialect. Table names come from configuration
// and are quoted.
func (g *Generator) headerQuery() string {
	return fmt.Sprintf("SELECT o.Order_ID, c.Name, c.Phone FROM %s o "+
		"JOIN %s c ON o.Customer_ID = c.Customer_ID WHERE o.Order_ID = %s",
		g.dialect.QuoteIdent(g.tables.Orders),
		g.dialect.QuoteIdent(g.tables.Customer),
		g.dialect.Placeholder(1),
	)
}

func (g *Generator) linesQuery() string {
	return fmt.Sprintf("SELECT p.Name, od.Quantity, od.PriceAtPurchase, od.Subtotal FROM %s od "+
		"JOIN %s p ON od.Product_ID = p.Product_ID WHERE od.Order_ID = %s ORDER BY od.Product_ID",
		g.dialect.QuoteIdent(g.tables.Lines),
		g.dialect.QuoteIdent(g.tables.Product),
		g.dialect.Placeholder(1),
	)
}

func (g *Generator) loadHeader(ctx context.Context, h database.Handle, orderID int64) (*Invoice, error) {
	rows, err := h.Query(ctx, g.headerQuery(), orderID)
	if err != nil {
		return nil, &core.DataAccessError{Op: "load order", Err: err}
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, &core.DataAccessError{Op: "load order", Err: err}
		}
		return nil, &core.NotFoundError{Entity: "order", Key: strconv.FormatInt(orderID, 10)}
	}
	vals, err := rows.Values()
	if err != nil {
		return nil, &core.DataAccessError{Op: "load order", Err: err}
	}

	return &Invoice{
		OrderID:       orderID,
		CustomerName:  core.FormatValue(vals[1]),
		CustomerPhone: core.FormatValue(vals[2]),
		GeneratedAt:   g.now(),
		Total:         decimal.Zero,
	}, nil
}

func (g *Generator) loadLines(ctx context.Context, h database.Handle, inv *Invoice) error {
	rows, err := h.Query(ctx, g.linesQuery(), inv.OrderID)
	if err != nil {
		return &core.DataAccessError{Op: "load order lines", Err: err}
	}
	defer rows.Close()

	inv.Lines = []Line{}
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return &core.DataAccessError{Op: "load order lines", Err: err}
		}
		line, err := scanLine(vals)
		if err != nil {
			return &core.DataAccessError{Op: "load order lines", Err: err}
		}
		inv.Lines = append(inv.Lines, line)
		inv.Total = inv.Total.Add(line.Subtotal)
	}
	if err := rows.Err(); err != nil {
		return &core.DataAccessError{Op: "load order lines", Err: err}
	}
	return nil
}

func scanLine(vals []any) (Line, error) {
	qty, err := core.ToInt64(vals[1])
	if err != nil {
		return Line{}, fmt.Errorf("quantity: %w", err)
	}
	price, err := core.ToDecimal(vals[2])
	if err != nil {
		return Line{}, fmt.Errorf("price at purchase: %w", err)
	}
	subtotal, err := core.ToDecimal(vals[3])
	if err != nil {
		return Line{}, fmt.Errorf("subtotal: %w", err)
	}
	return Line{
		Product:         core.FormatValue(vals[0]),
		Quantity:        qty,
		PriceAtPurchase: price,
		Subtotal:        subtotal,
	}, nil
}

// Document lays the invoice out as title, date, customer block, item table,
// total and closing line.
func (g *Generator) Document(inv *Invoice) document.Document {
	doc := document.Document{Title: fmt.Sprintf("%s #%d", g.title, inv.OrderID)}

	doc.Add(
		document.Heading{Text: g.title, Align: document.AlignCenter},
		document.Paragraph{Text: "Date: " + inv.GeneratedAt.Format(TimestampLayout), Align: document.AlignRight},
		document.Paragraph{Text: "Customer Name: " + inv.CustomerName},
		document.Paragraph{Text: "Contact: " + inv.CustomerPhone},
		document.Paragraph{Text: "Order ID: " + strconv.FormatInt(inv.OrderID, 10)},
		document.Spacer{Lines: 1},
	)

	items := document.Table{
		Header: []string{"Product", "Quantity", "Subtotal"},
		Widths: []float64{50, 25, 25},
		Rows:   make([][]string, 0, len(inv.Lines)),
	}
	for _, l := range inv.Lines {
		items.Rows = append(items.Rows, []string{l.Product, strconv.FormatInt(l.Quantity, 10), l.Subtotal.StringFixed(2)})
	}

	doc.Add(
		items,
		document.Spacer{Lines: 1},
		document.Paragraph{Text: "Total Amount: $" + inv.Total.StringFixed(2), Align: document.AlignRight, Style: document.Bold},
		document.Spacer{Lines: 2},
		document.Paragraph{Text: "Thank you for your business!", Align: document.AlignCenter, Style: document.Italic},
	)
	return doc
}
