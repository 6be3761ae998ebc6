// Package migrations embeds the goose SQL migrations for both supported
// database backends. The subdirectory name passed to goose selects the
// dialect-specific set.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
