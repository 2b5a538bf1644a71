package dbmetrics

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
)

func TestGetExecutor_PrefersContextTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	sqlTx, err := db.Begin()
	require.NoError(t, err)

	wrapper := &SqlTxWrapper{Tx: sqlTx}
	ctx := WithTx(context.Background(), wrapper)

	assert.True(t, IsInTransaction(ctx))
	assert.Same(t, wrapper, GetExecutor(ctx, db))
	assert.False(t, IsInTransaction(context.Background()))
	assert.Equal(t, DBExecutor(db), GetExecutor(context.Background(), db))
}

func TestDB_ObservesQueries(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	m := metrics.NewWithRegisterer(prometheus.NewRegistry(), "test")
	db := Wrap(sqlDB, m)

	mock.ExpectExec("UPDATE slot_pools").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO slot_assignments").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	_, err = db.ExecContext(context.Background(), "UPDATE slot_pools SET occupied = occupied + 1")
	require.NoError(t, err)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	_, err = tx.ExecContext(context.Background(), "INSERT INTO slot_assignments VALUES (1)")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("  SELECT id FROM offices"))
	assert.Equal(t, "unknown", operation(""))
}
