// Package main implements the entry point for the RoastBot Telegram bot,
// which forwards copywriting samples to the Gemini API and relays the
// roast back to the chat.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/navrex0/roastbot/internal/config"
	"github.com/navrex0/roastbot/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start roastbot: %v", err)
	}
}

// run loads configuration, prepares the database, and hands control to the
// application until shutdown.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("model", cfg.LLM.Model))

	db, be, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return err
	}

	if err := runMigrations(db, be, appLogger); err != nil {
		_ = db.Close()
		return err
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger, db, be)
	if err != nil {
		_ = db.Close()
		return err
	}

	return app.Run(ctx)
}
