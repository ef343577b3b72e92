package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/JonMunkholm/PharmaDB/internal/database"
	"github.com/JonMunkholm/PharmaDB/internal/logging"
)

// Insert adds one row. values[i] is bound as text to columns[i], or as NULL
// when it is Null.
// The row is validated first; a rejected row never reaches the database.
func (s *Service) Insert(ctx context.Context, table string, columns, values []string) (int64, error) {
	if err := checkShape(columns, values); err != nil {
		return 0, err
	}
	if err := validateRow(table, columns, values); err != nil {
		return 0, err
	}

	var affected int64
	err := s.withHandle(ctx, "insert into "+table, func(h database.Handle) error {
		name, cols, err := s.resolve(ctx, h, table, columns)
		if err != nil {
			return err
		}

		n, err := h.Exec(ctx, buildInsert(s.dialect, name, cols), textArgs(values)...)
		if err != nil {
			return &DataAccessError{Op: "insert into " + name, Err: err}
		}
		affected = n
		logging.WithFields(ctx, "table", name, "op", "insert").Info("row inserted", "rows", n)
		return nil
	})
	return affected, err
}

// Update rewrites every non-key column of the rows whose key matches.
// columns[0] and values[0] are the key; the key itself is not changed.
// The row is validated like an insert.
func (s *Service) Update(ctx context.Context, table string, columns, values []string) (int64, error) {
	if err := checkShape(columns, values); err != nil {
		return 0, err
	}
	if len(columns) < 2 {
		return 0, &FormatError{Field: "columns", Value: strings.Join(columns, ","), Reason: "update needs a key column and at least one column to set"}
	}
	if err := validateRow(table, columns, values); err != nil {
		return 0, err
	}

	args := make([]any, 0, len(values))
	args = append(args, textArgs(values[1:])...)
	args = append(args, textArg(values[0]))

	var affected int64
	err := s.withHandle(ctx, "update "+table, func(h database.Handle) error {
		name, cols, err := s.resolve(ctx, h, table, columns)
		if err != nil {
			return err
		}

		n, err := h.Exec(ctx, buildUpdate(s.dialect, name, cols), args...)
		if err != nil {
			return &DataAccessError{Op: "update " + name, Err: err}
		}
		affected = n
		logging.WithFields(ctx, "table", name, "op", "update").Info("rows updated", "key", values[0], "rows", n)
		return nil
	})
	return affected, err
}

// Delete removes every row where keyColumn equals keyValue. A key that
// matches nothing is not an error.
func (s *Service) Delete(ctx context.Context, table, keyColumn, keyValue string) (int64, error) {
	if strings.TrimSpace(keyColumn) == "" {
		return 0, &FormatError{Field: "column", Reason: "key column is required"}
	}

	var affected int64
	err := s.withHandle(ctx, "delete from "+table, func(h database.Handle) error {
		name, cols, err := s.resolve(ctx, h, table, []string{keyColumn})
		if err != nil {
			return err
		}

		n, err := h.Exec(ctx, buildDelete(s.dialect, name, cols[0]), textArg(keyValue))
		if err != nil {
			return &DataAccessError{Op: "delete from " + name, Err: err}
		}
		affected = n
		logging.WithFields(ctx, "table", name, "op", "delete").Info("rows deleted", "key", keyValue, "rows", n)
		return nil
	})
	return affected, err
}

// buildInsert: INSERT INTO t (c1, ..., cN) VALUES (p1, ..., pN)
func buildInsert(d database.Dialect, table string, cols []string) string {
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = d.Placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.QuoteIdent(table),
		strings.Join(quoteColumns(d, cols), ", "),
		strings.Join(placeholders, ", "),
	)
}

// buildUpdate: UPDATE t SET c2 = p1, ..., cN = pN-1 WHERE c1 = pN
func buildUpdate(d database.Dialect, table string, cols []string) string {
	sets := make([]string, len(cols)-1)
	for i, col := range cols[1:] {
		sets[i] = fmt.Sprintf("%s = %s", d.QuoteIdent(col), d.Placeholder(i+1))
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s",
		d.QuoteIdent(table),
		strings.Join(sets, ", "),
		d.QuoteIdent(cols[0]),
		d.Placeholder(len(cols)),
	)
}

// buildDelete: DELETE FROM t WHERE k = p1
func buildDelete(d database.Dialect, table, keyColumn string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = %s",
		d.QuoteIdent(table),
		d.QuoteIdent(keyColumn),
		d.Placeholder(1),
	)
}
