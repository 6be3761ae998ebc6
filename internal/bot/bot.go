package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"

	"github.com/navrex0/roastbot/internal/platform/logger"
	"github.com/navrex0/roastbot/internal/redact"
)

// New builds the Telegram bot, wires it into the handler as its transport,
// and registers every command. The returned bot is started with Start(ctx)
// and polls until the context is cancelled.
func New(token string, handler *Handler, log *slog.Logger) (*tgbot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if handler == nil {
		return nil, fmt.Errorf("handler cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	opts := []tgbot.Option{
		tgbot.WithDefaultHandler(handler.traced(handler.HandleUpdate)),
		tgbot.WithErrorsHandler(func(err error) {
			log.Error("telegram polling error",
				slog.String("error", redact.Error(err)))
		}),
	}

	b, err := tgbot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram bot: %w", err)
	}

	// The handler needs the bot as its transport, and the bot needs the
	// handler's functions; the cycle resolves here, before polling starts.
	handler.client = b

	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypeExact, handler.traced(handler.HandleStart))
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/mode_pedas", tgbot.MatchTypeExact, handler.traced(handler.HandleModePedas))
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/mode_solusi", tgbot.MatchTypeExact, handler.traced(handler.HandleModeSolusi))
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/tentang", tgbot.MatchTypeExact, handler.traced(handler.HandleAbout))
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/info_akun", tgbot.MatchTypeExact, handler.traced(handler.HandleAccount))

	return b, nil
}

// traced binds a fresh trace ID into the context logger so every log line of
// one update correlates.
func (h *Handler) traced(fn tgbot.HandlerFunc) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		log := h.logger.With(slog.String("trace_id", uuid.NewString()))
		fn(logger.WithLogger(ctx, log), b, update)
	}
}
