// Package postgres provides PostgreSQL-backed implementations of the store
// interfaces using the pgx driver through database/sql.
//
// It is the backend for deployments that already run PostgreSQL; the default
// single-process setup uses the sqlite package instead. Both packages
// implement the same store interfaces and differ only in SQL dialect and
// error inspection.
package postgres
