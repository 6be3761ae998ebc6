// Package testdb provides database helpers for tests. The default path is an
// in-memory sqlite database migrated to the current schema; integration runs
// against postgres are opted into with DATABASE_URL.
package testdb

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/navrex0/roastbot/migrations"
)

// TestTimeout bounds connection checks for test databases.
const TestTimeout = 5 * time.Second

// IsIntegrationTestEnvironment returns true if a postgres URL is available,
// indicating that integration tests can run.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// GetTestDatabaseURL returns the postgres URL for integration tests. It
// checks DATABASE_URL and ROASTBOT_TEST_DB_URL in that order, returning the
// first non-empty value.
func GetTestDatabaseURL() string {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return dbURL
	}
	return os.Getenv("ROASTBOT_TEST_DB_URL")
}

// NewSQLite opens a fresh in-memory sqlite database, applies all embedded
// migrations, and registers cleanup on t.
func NewSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Each new pooled connection would see its own empty in-memory database;
	// a single connection keeps every statement on the migrated schema.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = db.Close()
	})

	applyMigrations(t, db, "sqlite3", "sqlite")
	return db
}

// NewPostgres connects to the database named by DATABASE_URL, applies all
// embedded migrations, and empties the users table so the test starts clean.
// Tests calling it are skipped when no URL is configured.
func NewPostgres(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skip("DATABASE_URL not set - skipping postgres integration test")
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "postgres test database must be reachable")

	applyMigrations(t, db, "postgres", "postgres")

	_, err = db.Exec("TRUNCATE users")
	require.NoError(t, err)

	return db
}

// applyMigrations runs the embedded migrations for one backend against db.
func applyMigrations(t *testing.T, db *sql.DB, dialect, dir string) {
	t.Helper()

	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations.FS)
	t.Cleanup(func() {
		goose.SetBaseFS(nil)
	})
	require.NoError(t, goose.SetDialect(dialect))
	require.NoError(t, goose.Up(db, dir))
}
