// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying database from the bot's core
// logic, so handlers depend on behavior (register a user, bump a counter)
// rather than on a specific storage technology.
package store
