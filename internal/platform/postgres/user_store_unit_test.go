package postgres_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/navrex0/roastbot/internal/platform/postgres"
	"github.com/navrex0/roastbot/internal/store"
)

func TestNewPostgresUserStorePanicsOnNilDB(t *testing.T) {
	assert.Panics(t, func() {
		postgres.NewPostgresUserStore(nil, nil)
	})
}

func TestPostgresUserStoreImplementsInterface(t *testing.T) {
	var userStore interface{} = (*postgres.PostgresUserStore)(nil)
	_, ok := userStore.(store.UserStore)
	assert.True(t, ok, "PostgresUserStore must implement store.UserStore")
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unique violation",
			err:  &pgconn.PgError{Code: "23505"},
			want: true,
		},
		{
			name: "wrapped unique violation",
			err:  fmt.Errorf("insert failed: %w", &pgconn.PgError{Code: "23505"}),
			want: true,
		},
		{
			name: "foreign key violation",
			err:  &pgconn.PgError{Code: "23503"},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection refused"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, postgres.IsUniqueViolation(tt.err))
		})
	}
}
