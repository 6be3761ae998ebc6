// Package logger provides structured logging for the bot.
//
// It builds on Go's standard library log/slog package: JSON output with a
// configurable level, plus context helpers for carrying request-scoped
// loggers through handler call stacks.
package logger
