package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/PharmaDB/internal/core"
	_ "github.com/JonMunkholm/PharmaDB/internal/core/kinds"
	"github.com/JonMunkholm/PharmaDB/internal/database"
)

const pgListTables = "SELECT table_name FROM information_schema.tables " +
	"WHERE table_schema = $1 AND table_type = 'BASE TABLE' ORDER BY table_name"

const mysqlListTables = "SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES " +
	"WHERE TABLE_SCHEMA = DATABASE() AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME"

func newMockService(t *testing.T, d database.Dialect) (*core.Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	p := database.FromDB(d, db)
	t.Cleanup(p.Close)
	return core.NewService(p, ""), mock
}

func expectCatalog(mock sqlmock.Sqlmock, d database.Dialect, table string, columns ...string) {
	tables := sqlmock.NewRows([]string{"table_name"}).
		AddRow("customer").AddRow("orderdetails").AddRow("orders").AddRow("product")
	if d.Name == "postgres" {
		mock.ExpectQuery(pgListTables).WithArgs("public").WillReturnRows(tables)
	} else {
		mock.ExpectQuery(mysqlListTables).WillReturnRows(tables)
	}
	mock.ExpectQuery("SELECT * FROM " + d.QuoteIdent(table) + " WHERE 1=0").
		WillReturnRows(sqlmock.NewRows(columns))
}

var customerColumns = []string{"Customer_ID", "Name", "Phone", "Email"}

func TestInsert_Postgres(t *testing.T) {
	svc, mock := newMockService(t, database.Postgres)

	expectCatalog(mock, database.Postgres, "customer", customerColumns...)
	mock.ExpectExec(`INSERT INTO "customer" ("Name", "Phone", "Email") VALUES ($1, $2, $3)`).
		WithArgs("Jane Doe", "5551234567", "jane@x.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := svc.Insert(context.Background(), "customer",
		[]string{"Name", "Phone", "Email"},
		[]string{"Jane Doe", "5551234567", "jane@x.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_MySQL(t *testing.T) {
	svc, mock := newMockService(t, database.MySQL)

	expectCatalog(mock, database.MySQL, "product", "Product_ID", "Name", "Price")
	mock.ExpectExec("INSERT INTO `product` (`Name`, `Price`) VALUES (?, ?)").
		WithArgs("Aspirin", "4.99").
		WillReturnResult(sqlmock.NewResult(4, 1))

	n, err := svc.Insert(context.Background(), "product", []string{"Name", "Price"}, []string{"Aspirin", "4.99"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_UsesCatalogSpelling(t *testing.T) {
	svc, mock := newMockService(t, database.Postgres)

	expectCatalog(mock, database.Postgres, "customer", customerColumns...)
	mock.ExpectExec(`INSERT INTO "customer" ("Name", "Phone") VALUES ($1, $2)`).
		WithArgs("Jane Doe", "5551234567").
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := svc.Insert(context.Background(), "CUSTOMER", []string{"name", "PHONE"}, []string{"Jane Doe", "5551234567"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_RejectedBeforeAnyStatement(t *testing.T) {
	svc, mock := newMockService(t, database.Postgres)

	_, err := svc.Insert(context.Background(), "customer",
		[]string{"Name", "Phone", "Email"},
		[]string{"Jane Doe", "555123", "jane@x.com"})

	var valErr *core.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Phone", valErr.Field)
	assert.Equal(t, "555123", valErr.Value)
	assert.Equal(t, "Invalid Phone Number. Must be 10 digits.", valErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_ShapeMismatch(t *testing.T) {
	svc, mock := newMockService(t, database.Postgres)

	_, err := svc.Insert(context.Background(), "customer", []string{"Name", "Phone"}, []string{"Jane Doe"})

	var formatErr *core.FormatError
	assert.ErrorAs(t, err, &formatErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_UnknownTable(t *testing.T) {
	svc, mock := newMockService(t, database.Postgres)

	mock.ExpectQuery(pgListTables).WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("customer"))

	_, err := svc.Insert(context.Background(), "customer; DROP TABLE customer", []string{"Name"}, []string{"x"})

	var notFound *core.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "table", notFound.Entity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_UnknownColumn(t *testing.T) {
	svc, mock := newMockService(t, database.Postgres)

	expectCatalog(mock, database.Postgres, "customer", customerColumns...)

	_, err := svc.Insert(context.Background(), "customer", []string{"Name", "Fax"}, []string{"Jane Doe", "1"})

	var notFound *core.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "column", notFound.Entity)
	assert.Equal(t, "customer.Fax", notFound.Key)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_ExecFailure(t *testing.T) {
	svc, mock := newMockService(t, database.Postgres)

	expectCatalog(mock, database.Postgres, "customer", customerColumns...)
	mock.ExpectExec(`INSERT INTO "customer" ("Customer_ID", "Name") VALUES ($1, $2)`).
		WithArgs("1", "Jane Doe").
		WillReturnError(errors.New(`duplicate key value violates unique constraint "customer_pkey"`))

	_, err := svc.Insert(context.Background(), "customer", []string{"Customer_ID", "Name"}, []string{"1", "Jane Doe"})

	var dataErr *core.DataAccessError
	require.ErrorAs(t, err, &dataErr)
	assert.Equal(t, "DB001", core.MapError(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_Postgres(t *testing.T) {
	svc, mock := newMockService(t, database.Postgres)

	expectCatalog(mock, database.Postgres, "customer", customerColumns...)
	mock.ExpectExec(`UPDATE "customer" SET "Name" = $1, "Phone" = $2 WHERE "Customer_ID" = $3`).
		WithArgs("Jane Roe", "5550000000", "1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := svc.Update(context.Background(), "customer",
		[]string{"Customer_ID", "Name", "Phone"},
		[]string{"1", "Jane Roe", "5550000000"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_NullBoundAsNull(t *testing.T) {
	svc, mock := newMockService(t, database.Postgres)

	expectCatalog(mock, database.Postgres, "customer", customerColumns...)
	mock.ExpectExec(`INSERT INTO "customer" ("Name", "Phone", "Email") VALUES ($1, $2, $3)`).
		WithArgs("John Smith", nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := svc.Insert(context.Background(), "customer",
		[]string{"Name", "Phone", "Email"},
		[]string{"John Smith", core.Null, core.Null})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_MySQL(t *testing.T) {
	svc, mock := newMockService(t, database.MySQL)

	expectCatalog(mock, database.MySQL, "product", "Product_ID", "Name", "Price")
	mock.ExpectExec("UPDATE `product` SET `Price` = ? WHERE `Product_ID` = ?").
		WithArgs("5.49", "1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := svc.Update(context.Background(), "product", []string{"Product_ID", "Price"}, []string{"1", "5.49"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_KeyOnly(t *testing.T) {
	svc, mock := newMockService(t, database.Postgres)

	_, err := svc.Update(context.Background(), "customer", []string{"Customer_ID"}, []string{"1"})

	var formatErr *core.FormatError
	assert.ErrorAs(t, err, &formatErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_Validates(t *testing.T) {
	svc, mock := newMockService(t, database.Postgres)

	_, err := svc.Update(context.Background(), "product", []string{"Product_ID", "Price"}, []string{"1", "1.999"})

	var valErr *core.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Price", valErr.Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	svc, mock := newMockService(t, database.Postgres)

	expectCatalog(mock, database.Postgres, "orders", "Order_ID", "Customer_ID", "Order_Date")
	mock.ExpectExec(`DELETE FROM "orders" WHERE "Order_ID" = $1`).
		WithArgs("7").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := svc.Delete(context.Background(), "orders", "Order_ID", "7")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_MissingKeyIsNoop(t *testing.T) {
	svc, mock := newMockService(t, database.MySQL)

	expectCatalog(mock, database.MySQL, "orders", "Order_ID", "Customer_ID")
	mock.ExpectExec("DELETE FROM `orders` WHERE `Order_ID` = ?").
		WithArgs("404").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := svc.Delete(context.Background(), "orders", "Order_ID", "404")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTables_CatalogFailure(t *testing.T) {
	svc, mock := newMockService(t, database.Postgres)

	mock.ExpectQuery(pgListTables).WithArgs("public").WillReturnError(errors.New("connection reset by peer"))

	_, err := svc.ListTables(context.Background())

	var dataErr *core.DataAccessError
	require.ErrorAs(t, err, &dataErr)
	assert.Equal(t, "DB005", core.MapError(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadTable_Postgres(t *testing.T) {
	svc, mock := newMockService(t, database.Postgres)

	mock.ExpectQuery(pgListTables).WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("product"))
	mock.ExpectQuery(`SELECT * FROM "product"`).
		WillReturnRows(sqlmock.NewRows([]string{"Product_ID", "Name", "Price"}).
			AddRow(int64(1), "Aspirin", "4.99").
			AddRow(int64(2), "Ibuprofen", "7.25"))

	snap, err := svc.LoadTable(context.Background(), "Product")
	require.NoError(t, err)
	assert.Equal(t, "product", snap.Table)
	assert.Equal(t, []string{"Product_ID", "Name", "Price"}, snap.Columns)
	assert.Equal(t, [][]string{{"1", "Aspirin", "4.99"}, {"2", "Ibuprofen", "7.25"}}, snap.Strings())
	assert.NoError(t, mock.ExpectationsWereMet())
}
