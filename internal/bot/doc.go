// Package bot contains the Telegram-facing layer: command and message
// handlers, the user-visible message catalog, and the wiring that registers
// everything on a go-telegram bot instance.
//
// Handlers orchestrate the roast flow end to end: acknowledge the incoming
// message, build the prompt for the current mode, run generation through the
// retry loop while editing a status message, then record usage and deliver
// the result. All persistence goes through store.UserStore and all
// generation through generation.Generator, so the handlers can be tested
// against fakes for both.
package bot
