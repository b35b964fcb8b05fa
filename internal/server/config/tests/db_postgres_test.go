package tests

import (
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/pdv-labs/api-sales/internal/server/config"
)

// the repositories only ever see an injected *sql.DB
func TestDatabaseInjection(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectQuery(`SELECT 1`).WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	var x int
	err = db.QueryRow(`SELECT 1`).Scan(&x)
	require.NoError(t, err)
	require.Equal(t, 1, x)

	require.NoError(t, mock.ExpectationsWereMet())
}

// integration test, only runs against a real database
func TestOpenDB_WithDSN(t *testing.T) {
	dsn := testDSN(t)

	cfg := &config.Config{}
	cfg.DB.DSN = dsn
	cfg.DB.MaxOpenConns = 2

	db, err := config.OpenDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var x int
	require.NoError(t, db.QueryRow("SELECT 1").Scan(&x))
	require.Equal(t, 1, x)
}

func testDSN(t *testing.T) string {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping integration test")
	}
	return dsn
}
