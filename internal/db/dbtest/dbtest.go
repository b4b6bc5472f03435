// Package dbtest opens migrated in-memory databases for tests.
package dbtest

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dreamtask/dreamtask/internal/db"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var seq atomic.Int64

// Open returns a fresh, fully migrated sqlite database private to the test.
func Open(t *testing.T) *sqlx.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", name, seq.Add(1))

	conn, err := sqlx.Connect(db.DriverSQLite, dsn)
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.RunMigrations(conn.DB, db.DriverSQLite))
	return conn
}
