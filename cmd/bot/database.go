package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/navrex0/roastbot/internal/config"
)

// backend identifies the configured database engine.
type backend string

const (
	backendSQLite   backend = "sqlite"
	backendPostgres backend = "postgres"
)

// dialect returns the goose dialect name for the backend.
func (b backend) dialect() string {
	if b == backendPostgres {
		return "postgres"
	}
	return "sqlite3"
}

// migrationsDir returns the directory inside the embedded migrations
// filesystem holding this backend's SQL files.
func (b backend) migrationsDir() string {
	return string(b)
}

// detectBackend picks the engine from the DSN: postgres URLs go through pgx,
// anything else is treated as a sqlite file path.
func detectBackend(dbURL string) backend {
	if strings.HasPrefix(dbURL, "postgres://") || strings.HasPrefix(dbURL, "postgresql://") {
		return backendPostgres
	}
	return backendSQLite
}

// setupDatabase establishes a connection for the configured backend,
// configures the connection pool, and verifies connectivity with a ping.
func setupDatabase(cfg *config.Config, logger *slog.Logger) (*sql.DB, backend, error) {
	be := detectBackend(cfg.Database.URL)

	var db *sql.DB
	var err error
	switch be {
	case backendPostgres:
		db, err = sql.Open("pgx", cfg.Database.URL)
		if err != nil {
			return nil, be, fmt.Errorf("failed to open database connection: %w", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

	default:
		if dir := filepath.Dir(cfg.Database.URL); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, be, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		db, err = sql.Open("sqlite", cfg.Database.URL)
		if err != nil {
			return nil, be, fmt.Errorf("failed to open database connection: %w", err)
		}
		// modernc sqlite answers SQLITE_BUSY to concurrent writers; a single
		// pooled connection serializes access instead.
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, be, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, be, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		slog.String("backend", string(be)),
		slog.String("url", maskDatabaseURL(cfg.Database.URL)))
	return db, be, nil
}
