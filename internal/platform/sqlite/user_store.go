package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/navrex0/roastbot/internal/domain"
	"github.com/navrex0/roastbot/internal/platform/logger"
	"github.com/navrex0/roastbot/internal/store"
)

// SQLiteUserStore implements the store.UserStore interface
// using a SQLite database as the storage backend.
type SQLiteUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSQLiteUserStore creates a new SQLite implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewSQLiteUserStore(db store.DBTX, logger *slog.Logger) *SQLiteUserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SQLiteUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure SQLiteUserStore implements store.UserStore interface
var _ store.UserStore = (*SQLiteUserStore)(nil)

// Create implements store.UserStore.Create
// It saves a new user to the database, handling domain validation.
// Returns store.ErrUserExists if the Telegram ID is already registered.
func (s *SQLiteUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.Int64("user_id", user.ID))
		return err
	}

	query := `
		INSERT INTO users (user_id, username, join_time, usage_count, image_usage_count)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Username,
		user.JoinedAt.UTC().Format(time.RFC3339Nano),
		user.UsageCount,
		user.ImageUsageCount,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("user already registered", slog.Int64("user_id", user.ID))
			return store.ErrUserExists
		}

		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", user.ID))
		return err
	}

	log.Info("user created successfully",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username))
	return nil
}

// GetByID implements store.UserStore.GetByID
// It retrieves a user by their Telegram user ID.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *SQLiteUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving user by ID", slog.Int64("user_id", id))

	query := `
		SELECT user_id, username, join_time, usage_count, image_usage_count
		FROM users
		WHERE user_id = ?
	`

	var user domain.User
	var joinTime string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&joinTime,
		&user.UsageCount,
		&user.ImageUsageCount,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.Int64("user_id", id))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return nil, err
	}

	user.JoinedAt, err = time.Parse(time.RFC3339Nano, joinTime)
	if err != nil {
		log.Error("failed to parse stored join time",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id),
			slog.String("join_time", joinTime))
		return nil, fmt.Errorf("failed to parse stored join time: %w", err)
	}

	log.Debug("user retrieved successfully", slog.Int64("user_id", id))
	return &user, nil
}

// IncrementUsage implements store.UserStore.IncrementUsage
// The counter update is a single statement, so concurrent increments for
// the same user are serialized by the database and never lost.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *SQLiteUserStore) IncrementUsage(ctx context.Context, id int64) error {
	return s.increment(ctx, id, "usage_count")
}

// IncrementImageUsage implements store.UserStore.IncrementImageUsage
// with the same contract as IncrementUsage.
func (s *SQLiteUserStore) IncrementImageUsage(ctx context.Context, id int64) error {
	return s.increment(ctx, id, "image_usage_count")
}

// increment bumps the named counter column by one. The column name is one
// of two fixed identifiers, never user input.
func (s *SQLiteUserStore) increment(ctx context.Context, id int64, column string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`UPDATE users SET %s = %s + 1 WHERE user_id = ?`, column, column)

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to increment usage counter",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id),
			slog.String("counter", column))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("user not found for counter increment",
			slog.Int64("user_id", id),
			slog.String("counter", column))
		return store.ErrUserNotFound
	}

	log.Info("usage counter incremented",
		slog.Int64("user_id", id),
		slog.String("counter", column))
	return nil
}

// WithTx implements store.UserStore.WithTx
// It returns a new SQLiteUserStore that uses the provided transaction.
func (s *SQLiteUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &SQLiteUserStore{
		db:     tx,
		logger: s.logger,
	}
}
