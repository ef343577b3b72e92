package core

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/PharmaDB/internal/database"
)

// Service runs introspection and mutations against whatever schema the
// provider points at. It is safe for concurrent use; every call checks out
// its own connection and releases it before returning.
type Service struct {
	provider database.Provider
	dialect  database.Dialect
	schema   string
}

// NewService returns a Service over provider. schema limits table discovery;
// empty means the driver default.
func NewService(provider database.Provider, schema string) *Service {
	return &Service{
		provider: provider,
		dialect:  provider.Dialect(),
		schema:   schema,
	}
}

// Dialect returns the SQL dialect of the underlying store.
func (s *Service) Dialect() database.Dialect {
	return s.dialect
}

// Ping checks that the database is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.provider.Ping(ctx); err != nil {
		return &DataAccessError{Op: "ping", Err: err}
	}
	return nil
}

// withHandle acquires a connection for the duration of fn.
func (s *Service) withHandle(ctx context.Context, op string, fn func(h database.Handle) error) error {
	h, err := s.provider.Acquire(ctx)
	if err != nil {
		return &DataAccessError{Op: op, Err: err}
	}
	defer h.Release()
	return fn(h)
}

// queryStrings runs a single-column query and returns its values as text.
func queryStrings(ctx context.Context, h database.Handle, query string, args ...any) ([]string, error) {
	rows, err := h.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, err
		}
		if len(vals) == 0 {
			return nil, fmt.Errorf("query returned no columns")
		}
		out = append(out, FormatValue(vals[0]))
	}
	return out, rows.Err()
}
