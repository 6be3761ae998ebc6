package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/navrex0/roastbot/internal/domain"
	"github.com/navrex0/roastbot/internal/platform/logger"
	"github.com/navrex0/roastbot/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create
// It saves a new user to the database, handling domain validation.
// Returns store.ErrUserExists if the Telegram ID is already registered.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.Int64("user_id", user.ID))
		return err
	}

	query := `
		INSERT INTO users (user_id, username, join_time, usage_count, image_usage_count)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Username,
		user.JoinedAt.UTC(),
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
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving user by ID", slog.Int64("user_id", id))

	query := `
		SELECT user_id, username, join_time, usage_count, image_usage_count
		FROM users
		WHERE user_id = $1
	`

	var user domain.User

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.JoinedAt,
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

	log.Debug("user retrieved successfully", slog.Int64("user_id", id))
	return &user, nil
}

// IncrementUsage implements store.UserStore.IncrementUsage
// The counter update is a single statement, so concurrent increments for
// the same user are serialized by the database and never lost.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) IncrementUsage(ctx context.Context, id int64) error {
	return s.increment(ctx, id, `UPDATE users SET usage_count = usage_count + 1 WHERE user_id = $1`, "usage_count")
}

// IncrementImageUsage implements store.UserStore.IncrementImageUsage
// with the same contract as IncrementUsage.
func (s *PostgresUserStore) IncrementImageUsage(ctx context.Context, id int64) error {
	return s.increment(ctx, id, `UPDATE users SET image_usage_count = image_usage_count + 1 WHERE user_id = $1`, "image_usage_count")
}

func (s *PostgresUserStore) increment(ctx context.Context, id int64, query, counter string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to increment usage counter",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id),
			slog.String("counter", counter))
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
			slog.String("counter", counter))
		return store.ErrUserNotFound
	}

	log.Info("usage counter incremented",
		slog.Int64("user_id", id),
		slog.String("counter", counter))
	return nil
}

// WithTx implements store.UserStore.WithTx
// It returns a new PostgresUserStore that uses the provided transaction.
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
	}
}
