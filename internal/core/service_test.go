package core_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/PharmaDB/internal/core"
	"github.com/JonMunkholm/PharmaDB/internal/database/dbtest"
)

func TestListTables_SQLite(t *testing.T) {
	svc := core.NewService(dbtest.New(t), "")

	tables, err := svc.ListTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"customer", "orderdetails", "orders", "product"}, tables)
}

func TestColumns_SQLite(t *testing.T) {
	svc := core.NewService(dbtest.New(t), "")

	cols, err := svc.Columns(context.Background(), "orderdetails")
	require.NoError(t, err)
	assert.Equal(t, []string{"OrderDetail_ID", "Order_ID", "Product_ID", "Quantity", "PriceAtPurchase", "Subtotal"}, cols)

	_, err = svc.Columns(context.Background(), "nope")
	var notFound *core.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestInsertThenLoad(t *testing.T) {
	ctx := context.Background()
	svc := core.NewService(dbtest.New(t), "")

	n, err := svc.Insert(ctx, "customer",
		[]string{"Name", "Phone", "Email"},
		[]string{"Jane Doe", "5551234567", "jane@x.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	snap, err := svc.LoadTable(ctx, "customer")
	require.NoError(t, err)
	require.Len(t, snap.Rows, 1)

	row := snap.Strings()[0]
	assert.Equal(t, "Jane Doe", row[snap.ColumnIndex("name")])
	assert.Equal(t, "5551234567", row[snap.ColumnIndex("phone")])
	assert.Equal(t, "jane@x.com", row[snap.ColumnIndex("email")])
}

func TestInsert_InvalidPhoneLeavesTableUnchanged(t *testing.T) {
	ctx := context.Background()
	svc := core.NewService(dbtest.NewSeeded(t), "")

	before, err := svc.LoadTable(ctx, "customer")
	require.NoError(t, err)

	_, err = svc.Insert(ctx, "customer",
		[]string{"Name", "Phone", "Email"},
		[]string{"Jane Doe", "555123", "jane@x.com"})
	var valErr *core.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Invalid Phone Number. Must be 10 digits.", valErr.Message)

	after, err := svc.LoadTable(ctx, "customer")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdateThenLoad(t *testing.T) {
	ctx := context.Background()
	svc := core.NewService(dbtest.NewSeeded(t), "")

	n, err := svc.Update(ctx, "product", []string{"Product_ID", "Price"}, []string{"2", "8.15"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	snap, err := svc.LoadTable(ctx, "product")
	require.NoError(t, err)
	for _, row := range snap.Strings() {
		switch row[0] {
		case "2":
			assert.Equal(t, "Ibuprofen", row[1])
			assert.Equal(t, "8.15", row[2])
		case "1":
			assert.Equal(t, "4.99", row[2])
		}
	}
}

func TestDeleteThenLoad(t *testing.T) {
	ctx := context.Background()
	svc := core.NewService(dbtest.NewSeeded(t), "")

	n, err := svc.Delete(ctx, "orderdetails", "Order_ID", "7")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	snap, err := svc.LoadTable(ctx, "orderdetails")
	require.NoError(t, err)
	assert.Empty(t, snap.Rows)

	n, err = svc.Delete(ctx, "orderdetails", "Order_ID", "7")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDelete_ForeignKeyViolation(t *testing.T) {
	svc := core.NewService(dbtest.NewSeeded(t), "")

	_, err := svc.Delete(context.Background(), "customer", "Customer_ID", "1")

	var dataErr *core.DataAccessError
	require.ErrorAs(t, err, &dataErr)
	assert.Equal(t, "DB003", core.MapError(err).Code)
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	srcDB := dbtest.NewSeeded(t)
	dbtest.Exec(t, srcDB,
		`INSERT INTO customer VALUES (3, 'Ann Lee', NULL, NULL)`,
		`INSERT INTO product VALUES (4, 'Gauze', NULL)`,
		`INSERT INTO orders VALUES (9, 1, NULL)`,
		`INSERT INTO orders VALUES (10, 3, '')`,
	)
	src := core.NewService(srcDB, "")
	dst := core.NewService(dbtest.New(t), "")

	// Parents first so foreign keys resolve.
	for _, table := range []string{"customer", "product", "orders", "orderdetails"} {
		snap, err := src.LoadTable(ctx, table)
		require.NoError(t, err)

		for _, row := range snap.Strings() {
			_, err := dst.Insert(ctx, table, snap.Columns, row)
			require.NoError(t, err, "re-insert into %s", table)
		}

		copied, err := dst.LoadTable(ctx, table)
		require.NoError(t, err)
		assert.Equal(t, snap.Columns, copied.Columns)
		assert.Equal(t, snap.Rows, copied.Rows, "rows of %s", table)
	}
}

func TestUpdate_SetsNull(t *testing.T) {
	ctx := context.Background()
	svc := core.NewService(dbtest.NewSeeded(t), "")

	n, err := svc.Update(ctx, "customer",
		[]string{"Customer_ID", "Phone", "Email"},
		[]string{"2", core.Null, core.Null})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	snap, err := svc.LoadTable(ctx, "customer")
	require.NoError(t, err)
	phone, email := snap.ColumnIndex("phone"), snap.ColumnIndex("email")
	for _, row := range snap.Rows {
		if row[0] == int64(2) {
			assert.Nil(t, row[phone])
			assert.Nil(t, row[email])
		}
	}
}
