// Package api exposes the bot's operational HTTP surface: liveness and
// readiness probes. The roast flow itself never passes through HTTP; the
// Telegram long-polling loop is the only user-facing transport.
package api
