package store

import (
	"context"
	"database/sql"

	"github.com/navrex0/roastbot/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// Registration is idempotent from the caller's point of view: if the
	// Telegram ID is already registered, ErrUserExists is returned and the
	// existing record is left untouched.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their Telegram user ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// IncrementUsage adds one to the user's text roast counter.
	// The increment is a single atomic statement, so concurrent calls for
	// the same user never lose updates.
	// Returns ErrUserNotFound if the user does not exist.
	IncrementUsage(ctx context.Context, id int64) error

	// IncrementImageUsage adds one to the user's image roast counter, with
	// the same atomicity and error contract as IncrementUsage.
	IncrementImageUsage(ctx context.Context, id int64) error

	// WithTx returns a new UserStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) UserStore
}
