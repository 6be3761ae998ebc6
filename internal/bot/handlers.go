package bot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/navrex0/roastbot/internal/domain"
	"github.com/navrex0/roastbot/internal/generation"
	"github.com/navrex0/roastbot/internal/platform/logger"
	"github.com/navrex0/roastbot/internal/prompt"
	"github.com/navrex0/roastbot/internal/redact"
	"github.com/navrex0/roastbot/internal/retry"
	"github.com/navrex0/roastbot/internal/store"
)

// TelegramClient is the slice of the Telegram API the handlers use. The
// production implementation is *bot.Bot from go-telegram; tests substitute
// a recording fake.
type TelegramClient interface {
	SendMessage(ctx context.Context, params *tgbot.SendMessageParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *tgbot.EditMessageTextParams) (*models.Message, error)
	DeleteMessage(ctx context.Context, params *tgbot.DeleteMessageParams) (bool, error)
	SendChatAction(ctx context.Context, params *tgbot.SendChatActionParams) (bool, error)
	GetFile(ctx context.Context, params *tgbot.GetFileParams) (*models.File, error)
	FileDownloadLink(f *models.File) string
}

// HandlerConfig carries the dependencies for NewHandler.
type HandlerConfig struct {
	// Logger for handler activity. Required.
	Logger *slog.Logger

	// Client is the Telegram transport. Optional here: New wires the real
	// bot in after construction, tests set a fake.
	Client TelegramClient

	// Users is the user persistence layer. Required.
	Users store.UserStore

	// DB is the database handle used to run multi-counter updates in one
	// transaction. Required.
	DB *sql.DB

	// Generator produces the roasts. Required.
	Generator generation.Generator

	// Prompts renders the mode-specific prompt texts. Required.
	Prompts *prompt.Builder

	// Modes holds the current bot-wide roast mode. Required.
	Modes *ModeHolder

	// Policy bounds the generation retry loop.
	Policy retry.Policy

	// DownloadDir is where incoming photos are staged. Required.
	DownloadDir string

	// HTTPClient downloads photo files from Telegram. Defaults to a client
	// with a 30 second timeout.
	HTTPClient *http.Client
}

// Handler implements all bot commands and message flows.
type Handler struct {
	logger      *slog.Logger
	client      TelegramClient
	users       store.UserStore
	db          *sql.DB
	generator   generation.Generator
	prompts     *prompt.Builder
	modes       *ModeHolder
	policy      retry.Policy
	downloadDir string
	httpClient  *http.Client
}

// NewHandler validates the configuration and creates a Handler.
func NewHandler(cfg HandlerConfig) (*Handler, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if cfg.Users == nil {
		return nil, fmt.Errorf("user store cannot be nil")
	}
	if cfg.DB == nil {
		return nil, fmt.Errorf("database handle cannot be nil")
	}
	if cfg.Generator == nil {
		return nil, fmt.Errorf("generator cannot be nil")
	}
	if cfg.Prompts == nil {
		return nil, fmt.Errorf("prompt builder cannot be nil")
	}
	if cfg.Modes == nil {
		return nil, fmt.Errorf("mode holder cannot be nil")
	}
	if cfg.DownloadDir == "" {
		return nil, fmt.Errorf("download directory cannot be empty")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Handler{
		logger:      cfg.Logger.With(slog.String("component", "bot_handler")),
		client:      cfg.Client,
		users:       cfg.Users,
		db:          cfg.DB,
		generator:   cfg.Generator,
		prompts:     cfg.Prompts,
		modes:       cfg.Modes,
		policy:      cfg.Policy,
		downloadDir: cfg.DownloadDir,
		httpClient:  httpClient,
	}, nil
}

// HandleStart registers the user and sends the welcome message.
func (h *Handler) HandleStart(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, h.logger)

	user, err := domain.NewUser(msg.From.ID, msg.From.Username)
	if err != nil {
		log.Error("refusing to register invalid telegram identity",
			slog.Int64("user_id", msg.From.ID),
			slog.String("error", err.Error()))
		return
	}

	// Registration failures don't block the welcome.
	if err := h.users.Create(ctx, user); err != nil && !errors.Is(err, store.ErrUserExists) {
		log.Error("failed to register user",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()))
	}

	text := welcomeMessage(userMention(msg.From), h.modes.Current())
	h.sendParsed(ctx, msg.Chat.ID, text, models.ParseModeMarkdown)
}

// HandleModePedas switches the bot to spicy mode.
func (h *Handler) HandleModePedas(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil {
		return
	}
	h.modes.Set(domain.ModeSpicy)
	logger.FromContextOrDefault(ctx, h.logger).Info("bot mode switched",
		slog.String("mode", string(domain.ModeSpicy)))
	h.sendParsed(ctx, msg.Chat.ID, msgModeSpicy, models.ParseModeHTML)
}

// HandleModeSolusi switches the bot to solution mode.
func (h *Handler) HandleModeSolusi(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil {
		return
	}
	h.modes.Set(domain.ModeSolution)
	logger.FromContextOrDefault(ctx, h.logger).Info("bot mode switched",
		slog.String("mode", string(domain.ModeSolution)))
	h.sendParsed(ctx, msg.Chat.ID, msgModeSolution, models.ParseModeHTML)
}

// HandleAbout sends the about text with link previews disabled.
func (h *Handler) HandleAbout(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil {
		return
	}
	params := &tgbot.SendMessageParams{
		ChatID:             msg.Chat.ID,
		Text:               msgAbout,
		ParseMode:          models.ParseModeHTML,
		LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: boolPtr(true)},
	}
	if _, err := h.client.SendMessage(ctx, params); err != nil {
		logger.FromContextOrDefault(ctx, h.logger).Error("failed to send about message",
			slog.String("error", redact.Error(err)))
	}
}

// HandleAccount sends the caller's usage statistics.
func (h *Handler) HandleAccount(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, h.logger)

	user, err := h.users.GetByID(ctx, msg.From.ID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Error("failed to load account data",
				slog.Int64("user_id", msg.From.ID),
				slog.String("error", err.Error()))
		}
		h.send(ctx, msg.Chat.ID, msgAccountNotFound)
		return
	}

	username := user.Username
	if username == "" {
		username = msg.From.Username
	}
	if username == "" {
		username = "User"
	}

	text := accountInfoMessage(username, user.UsageCount, user.ImageUsageCount)
	h.sendParsed(ctx, msg.Chat.ID, text, models.ParseModeMarkdownV1)
}

// HandleUpdate is the default handler: it routes photos to the image flow
// and everything else with text to the text flow. Unknown commands and
// non-message updates are ignored.
func (h *Handler) HandleUpdate(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	if len(msg.Photo) > 0 {
		h.handlePhoto(ctx, msg)
		return
	}

	if strings.HasPrefix(msg.Text, "/") {
		return
	}

	h.handleText(ctx, msg)
}

// handleText runs the text roast flow.
func (h *Handler) handleText(ctx context.Context, msg *models.Message) {
	log := logger.FromContextOrDefault(ctx, h.logger)

	if msg.Text == "" {
		h.send(ctx, msg.Chat.ID, msgEmptyText)
		return
	}

	// The mode is captured once so the prompt and every status message of
	// this request agree, even if someone switches modes mid-flight.
	mode := h.modes.Current()

	log.Info("text roast requested",
		slog.Int64("user_id", msg.From.ID),
		slog.String("mode", string(mode)),
		slog.Int("text_length", len(msg.Text)))

	h.typing(ctx, msg.Chat.ID)
	status, err := h.client.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   msgTextReceived,
	})
	if err != nil {
		log.Error("failed to send acknowledgement",
			slog.String("error", redact.Error(err)))
		return
	}

	promptText, err := h.prompts.Build(mode, msg.Text)
	if err != nil {
		log.Error("failed to build prompt",
			slog.String("mode", string(mode)),
			slog.String("error", err.Error()))
		return
	}

	result := retry.Do(ctx, h.policy, h.generator.GenerateText, promptText, fallbackText,
		h.statusNotifier(ctx, mode, msg.Chat.ID, status.ID))

	h.finish(ctx, msg, status.ID, result, false)
}

// handlePhoto runs the image roast flow.
func (h *Handler) handlePhoto(ctx context.Context, msg *models.Message) {
	log := logger.FromContextOrDefault(ctx, h.logger)

	// Telegram lists photo sizes smallest first; the last entry is the
	// full-resolution version.
	photo := msg.Photo[len(msg.Photo)-1]

	mode := h.modes.Current()

	log.Info("image roast requested",
		slog.Int64("user_id", msg.From.ID),
		slog.String("mode", string(mode)),
		slog.String("file_id", photo.FileID))

	h.typing(ctx, msg.Chat.ID)
	status, err := h.client.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   msgImageReceived,
	})
	if err != nil {
		log.Error("failed to send acknowledgement",
			slog.String("error", redact.Error(err)))
		return
	}

	imagePath, err := h.downloadPhoto(ctx, photo.FileID)
	if err != nil {
		log.Error("failed to download photo",
			slog.String("file_id", photo.FileID),
			slog.String("error", redact.Error(err)))
		return
	}
	defer h.removeDownload(imagePath)

	op := func(ctx context.Context, path string) (string, error) {
		return h.generator.GenerateFromImage(ctx, path, h.prompts.ImagePrompt())
	}

	result := retry.Do(ctx, h.policy, op, imagePath, fallbackImage,
		h.statusNotifier(ctx, mode, msg.Chat.ID, status.ID))

	h.finish(ctx, msg, status.ID, result, true)
}

// finish applies the retry outcome: an empty answer gets the speechless
// reply and leaves the status message in place, anything else replaces the
// status message with the roast and records usage.
func (h *Handler) finish(ctx context.Context, msg *models.Message, statusID int, result retry.Result, image bool) {
	if result.Outcome == retry.OutcomeEmpty {
		h.send(ctx, msg.Chat.ID, msgSpeechless)
		return
	}

	if _, err := h.client.DeleteMessage(ctx, &tgbot.DeleteMessageParams{
		ChatID:    msg.Chat.ID,
		MessageID: statusID,
	}); err != nil {
		logger.FromContextOrDefault(ctx, h.logger).Warn("failed to delete status message",
			slog.Int("message_id", statusID),
			slog.String("error", redact.Error(err)))
	}

	h.recordUsage(ctx, msg.From.ID, image)
	h.send(ctx, msg.Chat.ID, result.Text)
}

// recordUsage bumps the text counter, or both counters atomically for an
// image roast. Failures are logged and do not block delivery.
func (h *Handler) recordUsage(ctx context.Context, userID int64, image bool) {
	var err error
	if image {
		err = store.RunInTransaction(ctx, h.db, func(ctx context.Context, tx *sql.Tx) error {
			txStore := h.users.WithTx(tx)
			if err := txStore.IncrementUsage(ctx, userID); err != nil {
				return err
			}
			return txStore.IncrementImageUsage(ctx, userID)
		})
	} else {
		err = h.users.IncrementUsage(ctx, userID)
	}

	if err != nil {
		logger.FromContextOrDefault(ctx, h.logger).Error("failed to record usage",
			slog.Int64("user_id", userID),
			slog.Bool("image", image),
			slog.String("error", err.Error()))
	}
}

// statusNotifier adapts retry progress into status message edits. The
// processing and exhausted texts use legacy Markdown so the mode name is
// bold; the retry text is deliberately plain.
func (h *Handler) statusNotifier(ctx context.Context, mode domain.Mode, chatID int64, messageID int) retry.StatusFunc {
	return func(status retry.Status, attempt int) {
		switch status {
		case retry.StatusAttempting:
			h.typing(ctx, chatID)
			h.editStatus(ctx, chatID, messageID, processingMessage(mode), models.ParseModeMarkdownV1)
		case retry.StatusRetrying:
			h.editStatus(ctx, chatID, messageID, retryMessage(mode, attempt), "")
		case retry.StatusExhausted:
			h.editStatus(ctx, chatID, messageID, exhaustedMessage(mode), models.ParseModeMarkdownV1)
		}
	}
}

// downloadPhoto resolves the Telegram file and stages it under the download
// directory, named by file ID.
func (h *Handler) downloadPhoto(ctx context.Context, fileID string) (string, error) {
	file, err := h.client.GetFile(ctx, &tgbot.GetFileParams{FileID: fileID})
	if err != nil {
		return "", fmt.Errorf("failed to resolve file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.client.FileDownloadLink(file), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download file: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected download status: %s", resp.Status)
	}

	path := filepath.Join(h.downloadDir, fileID+".jpg")
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create download file: %w", err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write download file: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to close download file: %w", err)
	}

	return path, nil
}

// removeDownload deletes a staged photo. Called on every exit path of the
// image flow so failed generations don't leak files.
func (h *Handler) removeDownload(path string) {
	err := os.Remove(path)
	switch {
	case err == nil:
		h.logger.Info("downloaded image deleted", slog.String("path", path))
	case !errors.Is(err, os.ErrNotExist):
		h.logger.Error("failed to delete downloaded image",
			slog.String("path", path),
			slog.String("error", err.Error()))
	}
}

// editStatus edits the status message, logging instead of failing: a lost
// status update never aborts a roast in progress.
func (h *Handler) editStatus(ctx context.Context, chatID int64, messageID int, text string, parseMode models.ParseMode) {
	params := &tgbot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
		ParseMode: parseMode,
	}
	if _, err := h.client.EditMessageText(ctx, params); err != nil {
		logger.FromContextOrDefault(ctx, h.logger).Warn("failed to edit status message",
			slog.Int("message_id", messageID),
			slog.String("error", redact.Error(err)))
	}
}

// typing shows the typing indicator; best effort.
func (h *Handler) typing(ctx context.Context, chatID int64) {
	params := &tgbot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatActionTyping,
	}
	if _, err := h.client.SendChatAction(ctx, params); err != nil {
		logger.FromContextOrDefault(ctx, h.logger).Debug("failed to send chat action",
			slog.String("error", redact.Error(err)))
	}
}

// send delivers a plain text message.
func (h *Handler) send(ctx context.Context, chatID int64, text string) {
	h.sendParsed(ctx, chatID, text, "")
}

// sendParsed delivers a message with the given parse mode.
func (h *Handler) sendParsed(ctx context.Context, chatID int64, text string, parseMode models.ParseMode) {
	params := &tgbot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: parseMode,
	}
	if _, err := h.client.SendMessage(ctx, params); err != nil {
		logger.FromContextOrDefault(ctx, h.logger).Error("failed to send message",
			slog.String("error", redact.Error(err)))
	}
}

// boolPtr returns a pointer to b for optional API fields.
func boolPtr(b bool) *bool {
	return &b
}
