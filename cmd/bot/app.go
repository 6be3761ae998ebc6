package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"

	"github.com/navrex0/roastbot/internal/api"
	"github.com/navrex0/roastbot/internal/bot"
	"github.com/navrex0/roastbot/internal/config"
	"github.com/navrex0/roastbot/internal/domain"
	"github.com/navrex0/roastbot/internal/generation"
	"github.com/navrex0/roastbot/internal/platform/gemini"
	"github.com/navrex0/roastbot/internal/platform/postgres"
	"github.com/navrex0/roastbot/internal/platform/sqlite"
	"github.com/navrex0/roastbot/internal/prompt"
	"github.com/navrex0/roastbot/internal/retry"
	"github.com/navrex0/roastbot/internal/store"
)

// application holds the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	users     store.UserStore
	generator generation.Generator
	modes     *bot.ModeHolder
	handler   *bot.Handler
	bot       *tgbot.Bot
}

// newApplication creates an application instance with all dependencies
// initialized. The database connection must already be established and
// migrated.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	be backend,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	switch be {
	case backendPostgres:
		app.users = postgres.NewPostgresUserStore(db, logger)
	default:
		app.users = sqlite.NewSQLiteUserStore(db, logger)
	}

	var err error
	app.generator, err = gemini.NewGenerator(
		ctx,
		logger.With(slog.String("component", "llm_generator")),
		cfg.LLM,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	logger.Info("LLM generator initialized", slog.String("model", cfg.LLM.Model))

	prompts, err := prompt.NewBuilder()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize prompt builder: %w", err)
	}

	// Every restart comes back up in spicy mode, matching the bot's
	// advertised default.
	app.modes = bot.NewModeHolder(domain.ModeSpicy)

	if err := os.MkdirAll(cfg.Telegram.DownloadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}

	app.handler, err = bot.NewHandler(bot.HandlerConfig{
		Logger:      logger,
		Users:       app.users,
		DB:          db,
		Generator:   app.generator,
		Prompts:     prompts,
		Modes:       app.modes,
		Policy:      retry.Policy{MaxAttempts: cfg.LLM.MaxAttempts, Delay: cfg.LLM.RetryDelay},
		DownloadDir: cfg.Telegram.DownloadDir,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize bot handler: %w", err)
	}

	app.bot, err = bot.New(cfg.Telegram.BotToken, app.handler, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram bot: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the ops server and the Telegram polling loop, then blocks until
// a shutdown signal arrives or either component fails.
func (app *application) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", app.config.Server.Port),
		Handler: api.NewRouter(app.logger, app.db),
	}

	go func() {
		app.logger.Info("starting ops server", slog.Int("port", app.config.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("ops server failed", slog.String("error", err.Error()))
			cancel()
		}
	}()

	pollingDone := make(chan struct{})
	go func() {
		defer close(pollingDone)
		app.logger.Info("starting telegram polling")
		app.bot.Start(runCtx)
	}()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdownCh:
		app.logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	case <-runCtx.Done():
		app.logger.Info("run context canceled, shutting down")
	}

	// Stop polling first so no new handler starts mid-shutdown.
	cancel()
	<-pollingDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("ops server shutdown failed", slog.String("error", err.Error()))
	}

	app.cleanup()
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
