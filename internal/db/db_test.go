package db_test

import (
	"database/sql"
	"net/url"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"finedu/backend/internal/db"

	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "education.db")
	database, err := db.Open(dbPath)
	require.NoError(t, err)
	require.NotNil(t, database)
	defer database.Close()

	tables := []string{
		"users", "sessions", "learning_progress", "exercise_submissions",
		"portfolios", "holdings", "study_notes", "activity_logs",
		"news_items", "settings",
	}
	for _, table := range tables {
		var name string
		err = database.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
}

func TestBuildDSN_AllPragmasInDSN(t *testing.T) {
	dsn := db.BuildDSN("education.db")
	require.Contains(t, dsn, "file:education.db")

	// URL decode for easier verification
	decodedDSN, err := url.QueryUnescape(dsn)
	require.NoError(t, err)

	// Pragmas applied via Exec only affect one pooled connection, so all of
	// them must be embedded in the DSN.
	expectedPragmas := []string{
		"journal_mode(WAL)",
		"foreign_keys(ON)",
		"busy_timeout(30000)",
		"synchronous(NORMAL)",
	}
	for _, pragma := range expectedPragmas {
		require.Contains(t, decodedDSN, pragma, "DSN must contain pragma: "+pragma)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "education.db")
	database, err := db.Open(dbPath)
	require.NoError(t, err)
	defer database.Close()

	// Running migrations again on an up-to-date database must not fail.
	require.NoError(t, db.Migrate(database))

	var count int
	err = database.QueryRow(
		`SELECT COUNT(*) FROM pragma_table_info('users') WHERE name = 'is_active'`,
	).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestMigrate_ClosedDB(t *testing.T) {
	database, err := sql.Open("sqlite", "file::memory:?cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Close())

	err = db.Migrate(database)
	require.Error(t, err)
}
