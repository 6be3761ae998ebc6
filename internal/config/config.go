package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Telegram TelegramConfig `mapstructure:"telegram" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains settings for the ops HTTP server and logging.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
// URL is either a sqlite file path (the default) or a postgres:// DSN;
// the backend is selected from its scheme at startup.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// TelegramConfig contains the Telegram transport settings.
type TelegramConfig struct {
	// BotToken is the token issued by BotFather. The bot cannot start
	// without it.
	BotToken string `mapstructure:"bot_token" validate:"required"`

	// DownloadDir is the scratch directory for photos fetched from
	// Telegram before they are sent to the vision model.
	DownloadDir string `mapstructure:"download_dir" validate:"required"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	// GeminiAPIKey authenticates against the Gemini API. Required.
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`

	// Model is the Gemini model used for both text and vision roasts.
	Model string `mapstructure:"model" validate:"required"`

	// MaxAttempts bounds the generation retry loop, counting the first try.
	MaxAttempts int `mapstructure:"max_attempts" validate:"required,gte=1,lte=10"`

	// RetryDelay is the fixed pause between generation attempts.
	RetryDelay time.Duration `mapstructure:"retry_delay" validate:"gte=0"`
}
