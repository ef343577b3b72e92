// Package dbtest provides a throwaway SQLite database carrying the PharmaDB
// schema, for tests in other packages.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/JonMunkholm/PharmaDB/internal/config"
	"github.com/JonMunkholm/PharmaDB/internal/database"
)

// Schema creates the four tables of the pharmacy schema. Keys come first.
var Schema = []string{
	`CREATE TABLE customer (
		Customer_ID INTEGER PRIMARY KEY,
		Name        TEXT NOT NULL,
		Phone       TEXT,
		Email       TEXT
	)`,
	`CREATE TABLE product (
		Product_ID INTEGER PRIMARY KEY,
		Name       TEXT NOT NULL,
		Price      NUMERIC
	)`,
	`CREATE TABLE orders (
		Order_ID    INTEGER PRIMARY KEY,
		Customer_ID INTEGER NOT NULL REFERENCES customer (Customer_ID),
		Order_Date  TEXT
	)`,
	`CREATE TABLE orderdetails (
		OrderDetail_ID  INTEGER PRIMARY KEY,
		Order_ID        INTEGER NOT NULL REFERENCES orders (Order_ID),
		Product_ID      INTEGER NOT NULL REFERENCES product (Product_ID),
		Quantity        INTEGER NOT NULL,
		PriceAtPurchase NUMERIC NOT NULL,
		Subtotal        NUMERIC NOT NULL
	)`,
}

// Seed is a small data set: order 7 has three lines totalling 34.83, order 8
// has none.
var Seed = []string{
	`INSERT INTO customer VALUES (1, 'Jane Doe', '5551234567', 'jane@example.com')`,
	`INSERT INTO customer VALUES (2, 'John Smith', '5559876543', 'john@example.com')`,
	`INSERT INTO product VALUES (1, 'Aspirin', 4.99)`,
	`INSERT INTO product VALUES (2, 'Ibuprofen', 7.25)`,
	`INSERT INTO product VALUES (3, 'Bandages', 3.10)`,
	`INSERT INTO orders VALUES (7, 1, '2024-03-01')`,
	`INSERT INTO orders VALUES (8, 2, '2024-03-02')`,
	`INSERT INTO orderdetails VALUES (1, 7, 3, 1, 3.10, 3.10)`,
	`INSERT INTO orderdetails VALUES (2, 7, 1, 2, 4.99, 9.98)`,
	`INSERT INTO orderdetails VALUES (3, 7, 2, 3, 7.25, 21.75)`,
}

// SeededTotal is the invoice total of order 7 in Seed.
const SeededTotal = "34.83"

// New returns a provider over an empty SQLite file with Schema applied.
// The provider is closed when the test ends.
func New(t testing.TB) *database.SQLProvider {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pharma.db")
	p := database.NewSQL(database.SQLite, "sqlite", config.DatabaseConfig{
		URL:      "file:" + path + "?_pragma=foreign_keys(1)",
		MaxConns: 4,
	})
	t.Cleanup(p.Close)

	Exec(t, p, Schema...)
	return p
}

// NewSeeded is New followed by Seed.
func NewSeeded(t testing.TB) *database.SQLProvider {
	t.Helper()
	p := New(t)
	Exec(t, p, Seed...)
	return p
}

// Exec runs statements in order, failing the test on the first error.
func Exec(t testing.TB, p database.Provider, stmts ...string) {
	t.Helper()

	ctx := context.Background()
	h, err := p.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer h.Release()

	for _, stmt := range stmts {
		if _, err := h.Exec(ctx, stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
}
