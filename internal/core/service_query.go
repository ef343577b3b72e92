package core

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/PharmaDB/internal/database"
)

// ListTables returns the base tables of the configured schema ordered by name.
func (s *Service) ListTables(ctx context.Context) ([]string, error) {
	var tables []string
	err := s.withHandle(ctx, "list tables", func(h database.Handle) error {
		var err error
		tables, err = s.listTables(ctx, h)
		return err
	})
	return tables, err
}

// LoadTable reads every row of table. There is no paging or row limit.
func (s *Service) LoadTable(ctx context.Context, table string) (*TableSnapshot, error) {
	var snap *TableSnapshot
	err := s.withHandle(ctx, "load "+table, func(h database.Handle) error {
		name, err := s.resolveTable(ctx, h, table)
		if err != nil {
			return err
		}

		rows, err := h.Query(ctx, "SELECT * FROM "+s.dialect.QuoteIdent(name))
		if err != nil {
			return &DataAccessError{Op: "load " + name, Err: err}
		}
		defer rows.Close()

		snap = &TableSnapshot{Table: name, Columns: rows.Columns(), Rows: [][]any{}}
		for rows.Next() {
			vals, err := rows.Values()
			if err != nil {
				return &DataAccessError{Op: "load " + name, Err: err}
			}
			snap.Rows = append(snap.Rows, vals)
		}
		if err := rows.Err(); err != nil {
			return &DataAccessError{Op: "load " + name, Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Columns returns the column names of table in database order.
func (s *Service) Columns(ctx context.Context, table string) ([]string, error) {
	var cols []string
	err := s.withHandle(ctx, "describe "+table, func(h database.Handle) error {
		name, err := s.resolveTable(ctx, h, table)
		if err != nil {
			return err
		}
		cols, err = s.tableColumns(ctx, h, name)
		return err
	})
	return cols, err
}

func (s *Service) listTables(ctx context.Context, h database.Handle) ([]string, error) {
	query, args := s.dialect.ListTablesQuery(s.schema)
	tables, err := queryStrings(ctx, h, query, args...)
	if err != nil {
		return nil, &DataAccessError{Op: "list tables", Err: err}
	}
	return tables, nil
}

// resolveTable maps a caller-supplied name to its catalog spelling.
func (s *Service) resolveTable(ctx context.Context, h database.Handle, table string) (string, error) {
	tables, err := s.listTables(ctx, h)
	if err != nil {
		return "", err
	}
	i := indexFold(tables, table)
	if i < 0 {
		return "", &NotFoundError{Entity: "table", Key: table}
	}
	return tables[i], nil
}

// tableColumns reads the column list without fetching rows.
func (s *Service) tableColumns(ctx context.Context, h database.Handle, table string) ([]string, error) {
	rows, err := h.Query(ctx, "SELECT * FROM "+s.dialect.QuoteIdent(table)+" WHERE 1=0")
	if err != nil {
		return nil, &DataAccessError{Op: "describe " + table, Err: err}
	}
	cols := rows.Columns()
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, &DataAccessError{Op: "describe " + table, Err: err}
	}
	return cols, nil
}

// resolve maps the table and every column to catalog spelling.
func (s *Service) resolve(ctx context.Context, h database.Handle, table string, columns []string) (string, []string, error) {
	name, err := s.resolveTable(ctx, h, table)
	if err != nil {
		return "", nil, err
	}
	live, err := s.tableColumns(ctx, h, name)
	if err != nil {
		return "", nil, err
	}

	resolved := make([]string, len(columns))
	for i, col := range columns {
		j := indexFold(live, col)
		if j < 0 {
			return "", nil, &NotFoundError{Entity: "column", Key: fmt.Sprintf("%s.%s", name, col)}
		}
		resolved[i] = live[j]
	}
	return name, resolved, nil
}
