// Package sqlite provides SQLite-backed implementations of the store
// interfaces using the modernc.org/sqlite driver.
//
// SQLite is the default backend: a single-file database fits a bot that
// runs as one process. The implementations mirror the postgres package so
// the two stay interchangeable behind store.UserStore.
//
// Timestamps are stored as RFC 3339 text in UTC and parsed back on read,
// keeping the on-disk format independent of driver time handling.
package sqlite
