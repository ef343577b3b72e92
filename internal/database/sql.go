package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/JonMunkholm/PharmaDB/internal/config"
)

// SQLProvider serves handles from a database/sql pool. It backs the mysql
// and sqlite dialects.
type SQLProvider struct {
	dialect    Dialect
	driverName string
	cfg        config.DatabaseConfig

	mu     sync.Mutex
	db     *sql.DB
	reopen bool
}

// NewSQL returns an unopened provider for a registered database/sql driver.
func NewSQL(d Dialect, driverName string, cfg config.DatabaseConfig) *SQLProvider {
	return &SQLProvider{dialect: d, driverName: driverName, cfg: cfg, reopen: true}
}

// FromDB wraps an already open *sql.DB. Once closed it cannot be reopened.
func FromDB(d Dialect, db *sql.DB) *SQLProvider {
	return &SQLProvider{dialect: d, db: db}
}

func (p *SQLProvider) Dialect() Dialect { return p.dialect }

func (p *SQLProvider) open() (*sql.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db != nil {
		return p.db, nil
	}
	if !p.reopen {
		return nil, ErrClosed
	}

	db, err := sql.Open(p.driverName, p.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p.driverName, err)
	}
	if p.cfg.MaxConns > 0 {
		db.SetMaxOpenConns(p.cfg.MaxConns)
	}
	db.SetMaxIdleConns(p.cfg.MinConns)
	db.SetConnMaxLifetime(p.cfg.MaxConnLifetime)
	db.SetConnMaxIdleTime(p.cfg.MaxConnIdleTime)

	p.db = db
	return db, nil
}

// Acquire checks out a dedicated connection, opening the pool if needed.
func (p *SQLProvider) Acquire(ctx context.Context) (Handle, error) {
	db, err := p.open()
	if err != nil {
		return nil, err
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return &sqlHandle{conn: conn}, nil
}

func (p *SQLProvider) Ping(ctx context.Context) error {
	db, err := p.open()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

// Close closes the pool. A later Acquire opens a new one unless the provider
// wraps a caller-supplied *sql.DB.
func (p *SQLProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db != nil {
		_ = p.db.Close()
		p.db = nil
	}
}

type sqlHandle struct {
	conn *sql.Conn
}

func (h *sqlHandle) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := h.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func (h *sqlHandle) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := h.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	cols, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, err
	}
	return &sqlRows{rows: rows, cols: cols}, nil
}

func (h *sqlHandle) Release() {
	_ = h.conn.Close()
}

type sqlRows struct {
	rows *sql.Rows
	cols []string
}

func (r *sqlRows) Columns() []string { return r.cols }

func (r *sqlRows) Next() bool { return r.rows.Next() }

func (r *sqlRows) Values() ([]any, error) {
	vals := make([]any, len(r.cols))
	dest := make([]any, len(r.cols))
	for i := range vals {
		dest[i] = &vals[i]
	}
	if err := r.rows.Scan(dest...); err != nil {
		return nil, err
	}
	for i, v := range vals {
		vals[i] = normalize(v)
	}
	return vals, nil
}

func (r *sqlRows) Err() error { return r.rows.Err() }

func (r *sqlRows) Close() { _ = r.rows.Close() }
