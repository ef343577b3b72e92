package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/PharmaDB/internal/config"
)

// PostgresProvider serves handles from a pgxpool.Pool.
type PostgresProvider struct {
	cfg config.DatabaseConfig

	mu   sync.Mutex
	pool *pgxpool.Pool
}

// NewPostgres checks the connection string and returns an unopened provider.
func NewPostgres(cfg config.DatabaseConfig) (*PostgresProvider, error) {
	if _, err := pgxpool.ParseConfig(cfg.URL); err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	return &PostgresProvider{cfg: cfg}, nil
}

func (p *PostgresProvider) Dialect() Dialect { return Postgres }

func (p *PostgresProvider) open(ctx context.Context) (*pgxpool.Pool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pool != nil {
		return p.pool, nil
	}

	poolConfig, err := pgxpool.ParseConfig(p.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	if p.cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(p.cfg.MaxConns)
	}
	poolConfig.MinConns = int32(p.cfg.MinConns)
	if p.cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = p.cfg.MaxConnLifetime
	}
	if p.cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = p.cfg.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	p.pool = pool
	return pool, nil
}

// Acquire checks out a pooled connection, opening the pool if needed.
func (p *PostgresProvider) Acquire(ctx context.Context) (Handle, error) {
	pool, err := p.open(ctx)
	if err != nil {
		return nil, err
	}
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return &pgHandle{conn: conn}, nil
}

func (p *PostgresProvider) Ping(ctx context.Context) error {
	pool, err := p.open(ctx)
	if err != nil {
		return err
	}
	return pool.Ping(ctx)
}

// Close shuts the pool down. A later Acquire opens a new one.
func (p *PostgresProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
}

type pgHandle struct {
	conn *pgxpool.Conn
}

func (h *pgHandle) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := h.conn.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (h *pgHandle) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rows, err := h.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return &pgRows{rows: rows}, nil
}

func (h *pgHandle) Release() {
	h.conn.Release()
}

type pgRows struct {
	rows pgx.Rows
}

func (r *pgRows) Columns() []string {
	fields := r.rows.FieldDescriptions()
	names := make([]string, len(fields))
	for i, fd := range fields {
		names[i] = fd.Name
	}
	return names
}

func (r *pgRows) Next() bool { return r.rows.Next() }

func (r *pgRows) Values() ([]any, error) {
	vals, err := r.rows.Values()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		vals[i] = normalize(v)
	}
	return vals, nil
}

func (r *pgRows) Err() error { return r.rows.Err() }

func (r *pgRows) Close() { r.rows.Close() }
