package config

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Validate checks that the configuration is usable.
// All problems are reported together, one per line.
func (c *Config) Validate() error {
	var problems []string
	problems = append(problems, c.Server.problems()...)
	problems = append(problems, c.Database.problems()...)
	problems = append(problems, c.Invoice.problems()...)
	problems = append(problems, c.Rate.problems()...)
	problems = append(problems, c.Logging.problems()...)

	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return fmt.Errorf("validation failed:\n  - %s", strings.Join(problems, "\n  - "))
}

// oneOf reports whether value, lowercased, is among allowed.
func oneOf(value string, allowed ...string) bool {
	return slices.Contains(allowed, strings.ToLower(value))
}

func (s ServerConfig) problems() []string {
	var p []string
	if s.Port <= 0 || s.Port > 65535 {
		p = append(p, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", s.Port))
	}
	if s.ReadTimeout < 0 {
		p = append(p, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if s.ShutdownTimeout <= 0 {
		p = append(p, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	if s.RequestTimeout <= 0 {
		p = append(p, "SERVER_REQUEST_TIMEOUT must be positive")
	}
	return p
}

func (d DatabaseConfig) problems() []string {
	var p []string
	if !oneOf(d.Driver, "postgres", "postgresql", "pgx", "mysql", "sqlite", "sqlite3") {
		p = append(p, fmt.Sprintf("DB_DRIVER (%q) must be one of: postgres, mysql, sqlite", d.Driver))
	}
	if d.URL == "" {
		p = append(p, "DATABASE_URL is required")
	}
	if d.MaxConns <= 0 {
		p = append(p, "DB_MAX_CONNS must be positive")
	}
	if d.MinConns < 0 {
		p = append(p, "DB_MIN_CONNS must be non-negative")
	}
	if d.MaxConns < d.MinConns {
		p = append(p, fmt.Sprintf("DB_MAX_CONNS (%d) must be >= DB_MIN_CONNS (%d)", d.MaxConns, d.MinConns))
	}
	return p
}

func (i InvoiceConfig) problems() []string {
	var p []string
	if strings.TrimSpace(i.OutputDir) == "" {
		p = append(p, "INVOICE_OUTPUT_DIR must not be empty")
	}
	if !oneOf(i.Format, "pdf", "html", "txt") {
		p = append(p, fmt.Sprintf("INVOICE_FORMAT (%q) must be one of: pdf, html, txt", i.Format))
	}
	tables := []struct{ env, name string }{
		{"INVOICE_ORDERS_TABLE", i.OrdersTable},
		{"INVOICE_CUSTOMER_TABLE", i.CustomerTable},
		{"INVOICE_LINES_TABLE", i.LinesTable},
		{"INVOICE_PRODUCT_TABLE", i.ProductTable},
	}
	for _, t := range tables {
		if strings.TrimSpace(t.name) == "" {
			p = append(p, t.env+" must not be empty")
		}
	}
	return p
}

func (r RateLimitConfig) problems() []string {
	if r.Enabled && r.RequestsPerMinute <= 0 {
		return []string{"RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled"}
	}
	return nil
}

func (l LoggingConfig) problems() []string {
	var p []string
	if !oneOf(l.Level, "debug", "info", "warn", "error") {
		p = append(p, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", l.Level))
	}
	if !oneOf(l.Format, "text", "json") {
		p = append(p, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", l.Format))
	}
	return p
}
