// Package database provides pooled access to the backing store.
//
// Callers never hold a connection across operations: each operation acquires a
// [Handle] from a [Provider], runs its statements, and releases it. Providers
// open their pool lazily on the first Acquire and transparently reopen it after
// Close, so a long-lived process can tear the pool down and keep going.
//
// Three drivers are supported:
//
//   - postgres: pgx/v5 pgxpool
//   - mysql:    database/sql with go-sql-driver/mysql
//   - sqlite:   database/sql with modernc.org/sqlite
//
// Each driver carries a [Dialect] describing placeholder syntax, identifier
// quoting and the catalog query used for table discovery.
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/PharmaDB/internal/config"
)

// ErrClosed is returned by a provider wrapping a caller-owned pool after Close.
var ErrClosed = errors.New("database: provider closed")

// Handle is one checked-out connection. It must be released exactly once.
type Handle interface {
	// Exec runs a statement and returns the number of rows it affected.
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	// Query runs a statement that returns rows.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	// Release returns the connection to the pool.
	Release()
}

// Rows is a driver-neutral result cursor.
type Rows interface {
	// Columns returns the result column names in database order.
	Columns() []string
	Next() bool
	// Values returns the current row. Values are normalized: []byte becomes
	// string and numeric types become their exact decimal text.
	Values() ([]any, error)
	Err() error
	Close()
}

// Provider hands out connections from a lazily opened pool.
type Provider interface {
	Acquire(ctx context.Context) (Handle, error)
	Dialect() Dialect
	Ping(ctx context.Context) error
	Close()
}

// Open returns the provider for the configured driver. The pool itself is
// not opened until the first Acquire.
func Open(cfg config.DatabaseConfig) (Provider, error) {
	switch strings.ToLower(cfg.Driver) {
	case "postgres", "postgresql", "pgx":
		return NewPostgres(cfg)
	case "mysql":
		return NewSQL(MySQL, "mysql", cfg), nil
	case "sqlite", "sqlite3":
		return NewSQL(SQLite, "sqlite", cfg), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}
