package testdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteAppliesFullSchema(t *testing.T) {
	db := NewSQLite(t)

	_, err := db.Exec(
		"INSERT INTO users (user_id, username, join_time, usage_count, image_usage_count) VALUES (1, 'a', '2025-01-01T00:00:00Z', 0, 0)",
	)
	require.NoError(t, err, "the migrated schema must carry both usage counters")

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestNewSQLiteIsolatesTests(t *testing.T) {
	first := NewSQLite(t)
	_, err := first.Exec(
		"INSERT INTO users (user_id, username, join_time) VALUES (7, 'x', '2025-01-01T00:00:00Z')",
	)
	require.NoError(t, err)

	second := NewSQLite(t)
	var count int
	require.NoError(t, second.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	assert.Zero(t, count, "each call must return an independent database")
}
