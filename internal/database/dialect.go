package database

import (
	"strconv"
	"strings"
)

// Dialect captures the SQL differences between supported stores.
type Dialect struct {
	Name string

	placeholder func(n int) string
	quote       string
	listTables  func(schema string) (string, []any)
}

// Placeholder returns the bind marker for the n-th (1-based) parameter.
func (d Dialect) Placeholder(n int) string {
	return d.placeholder(n)
}

// QuoteIdent quotes a table or column name. Embedded quote characters are doubled.
func (d Dialect) QuoteIdent(name string) string {
	return d.quote + strings.ReplaceAll(name, d.quote, d.quote+d.quote) + d.quote
}

// ListTablesQuery returns the catalog query listing base tables of schema,
// ordered by name, together with its arguments.
func (d Dialect) ListTablesQuery(schema string) (string, []any) {
	return d.listTables(schema)
}

func dollarPlaceholder(n int) string { return "$" + strconv.Itoa(n) }

func questionPlaceholder(int) string { return "?" }

// Postgres is the dialect used with pgx.
var Postgres = Dialect{
	Name:        "postgres",
	placeholder: dollarPlaceholder,
	quote:       `"`,
	listTables: func(schema string) (string, []any) {
		if schema == "" {
			schema = "public"
		}
		return "SELECT table_name FROM information_schema.tables " +
			"WHERE table_schema = $1 AND table_type = 'BASE TABLE' ORDER BY table_name", []any{schema}
	},
}

// MySQL is the dialect used with go-sql-driver/mysql. An empty schema means
// the database named in the connection string.
var MySQL = Dialect{
	Name:        "mysql",
	placeholder: questionPlaceholder,
	quote:       "`",
	listTables: func(schema string) (string, []any) {
		if schema == "" {
			return "SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES " +
				"WHERE TABLE_SCHEMA = DATABASE() AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME", nil
		}
		return "SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES " +
			"WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME", []any{schema}
	},
}

// SQLite has a single schema per file; the schema argument is ignored.
var SQLite = Dialect{
	Name:        "sqlite",
	placeholder: questionPlaceholder,
	quote:       `"`,
	listTables: func(string) (string, []any) {
		return "SELECT name FROM sqlite_master " +
			"WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name", nil
	},
}
