// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config file. It provides
// type-safe access to the settings the bot needs (Telegram credentials,
// Gemini API key, database location, retry policy) while keeping
// configuration details separate from business logic.
package config
