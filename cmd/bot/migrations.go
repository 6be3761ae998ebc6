package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"

	"github.com/navrex0/roastbot/migrations"
)

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct{}

// Printf forwards goose messages to slog.Info.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...))
}

// Fatalf forwards to slog.Error without exiting; goose errors are returned
// to main, which owns process exit.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...))
}

// runMigrations applies all pending schema migrations from the embedded
// filesystem. Every log line of one run shares a correlation ID.
func runMigrations(db *sql.DB, be backend, logger *slog.Logger) error {
	correlationID := uuid.New().String()
	migrationLogger := logger.With(
		slog.String("correlation_id", correlationID),
		slog.String("component", "migrations"))

	startTime := time.Now()
	migrationLogger.Info("starting migration run", slog.String("backend", string(be)))

	goose.SetLogger(&slogGooseLogger{})
	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(be.dialect()); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	before, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if err := goose.Up(db, be.migrationsDir()); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	after, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	migrationLogger.Info("migrations applied",
		slog.Int64("previous_version", before),
		slog.Int64("version", after),
		slog.Int64("duration_ms", time.Since(startTime).Milliseconds()))
	return nil
}

// maskDatabaseURL masks the password in a database URL for safe logging.
func maskDatabaseURL(dbURL string) string {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}

	if parsedURL.User != nil {
		username := parsedURL.User.Username()
		parsedURL.User = url.UserPassword(username, "****")
		return parsedURL.String()
	}

	return dbURL
}
