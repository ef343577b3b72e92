package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/PharmaDB/internal/config"
)

func TestOpen_Driver(t *testing.T) {
	tests := []struct {
		driver  string
		dialect string
		wantErr bool
	}{
		{"postgres", "postgres", false},
		{"PostgreSQL", "postgres", false},
		{"mysql", "mysql", false},
		{"sqlite", "sqlite", false},
		{"oracle", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			p, err := Open(config.DatabaseConfig{Driver: tt.driver, URL: "postgres://localhost/pharmsdb"})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.dialect, p.Dialect().Name)
			p.Close()
		})
	}
}

func TestSQLProvider_QueryNormalizesValues(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	mock.ExpectQuery("SELECT * FROM `product`").
		WillReturnRows(sqlmock.NewRows([]string{"Product_ID", "Name", "Price"}).
			AddRow(int64(1), []byte("Aspirin"), []byte("4.99")).
			AddRow(int64(2), "Ibuprofen", nil))

	p := FromDB(MySQL, db)
	defer p.Close()

	h, err := p.Acquire(context.Background())
	require.NoError(t, err)
	defer h.Release()

	rows, err := h.Query(context.Background(), "SELECT * FROM `product`")
	require.NoError(t, err)
	defer rows.Close()

	assert.Equal(t, []string{"Product_ID", "Name", "Price"}, rows.Columns())

	var got [][]any
	for rows.Next() {
		vals, err := rows.Values()
		require.NoError(t, err)
		got = append(got, vals)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, [][]any{
		{int64(1), "Aspirin", "4.99"},
		{int64(2), "Ibuprofen", nil},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLProvider_ExecRowsAffected(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	mock.ExpectExec("DELETE FROM `customer` WHERE `Customer_ID` = ?").
		WithArgs("3").
		WillReturnResult(sqlmock.NewResult(0, 1))

	p := FromDB(MySQL, db)
	defer p.Close()

	h, err := p.Acquire(context.Background())
	require.NoError(t, err)
	defer h.Release()

	n, err := h.Exec(context.Background(), "DELETE FROM `customer` WHERE `Customer_ID` = ?", "3")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFromDB_ClosedCannotReopen(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)

	p := FromDB(SQLite, db)
	p.Close()

	_, err = p.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSQLProvider_ReopensAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pharma.db")
	p := NewSQL(SQLite, "sqlite", config.DatabaseConfig{URL: path, MaxConns: 2})
	ctx := context.Background()

	h, err := p.Acquire(ctx)
	require.NoError(t, err)
	_, err = h.Exec(ctx, `CREATE TABLE customer (Customer_ID INTEGER PRIMARY KEY, Name TEXT)`)
	require.NoError(t, err)
	_, err = h.Exec(ctx, `INSERT INTO customer (Customer_ID, Name) VALUES (?, ?)`, "1", "Jane Doe")
	require.NoError(t, err)
	h.Release()

	p.Close()

	h, err = p.Acquire(ctx)
	require.NoError(t, err)
	defer h.Release()

	rows, err := h.Query(ctx, `SELECT Name FROM customer`)
	require.NoError(t, err)
	defer rows.Close()

	require.True(t, rows.Next())
	vals, err := rows.Values()
	require.NoError(t, err)
	assert.Equal(t, []any{"Jane Doe"}, vals)
	p.Close()
}

func TestSQLProvider_Ping(t *testing.T) {
	p := NewSQL(SQLite, "sqlite", config.DatabaseConfig{URL: filepath.Join(t.TempDir(), "ping.db")})
	defer p.Close()
	assert.NoError(t, p.Ping(context.Background()))
}
