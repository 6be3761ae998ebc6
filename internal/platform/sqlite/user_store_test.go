package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navrex0/roastbot/internal/domain"
	"github.com/navrex0/roastbot/internal/platform/sqlite"
	"github.com/navrex0/roastbot/internal/store"
	"github.com/navrex0/roastbot/internal/testdb"
)

func mustUser(t *testing.T, id int64, username string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(id, username)
	require.NoError(t, err)
	return user
}

func TestMigrationsUpAndDown(t *testing.T) {
	db := testdb.NewSQLite(t)

	version, err := goose.GetDBVersion(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	require.NoError(t, goose.Down(db, "sqlite"))
	version, err = goose.GetDBVersion(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	require.NoError(t, goose.Up(db, "sqlite"))
	version, err = goose.GetDBVersion(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}

func TestSQLiteUserStoreCreateAndGet(t *testing.T) {
	db := testdb.NewSQLite(t)
	userStore := sqlite.NewSQLiteUserStore(db, nil)
	ctx := context.Background()

	user := mustUser(t, 7777, "tester")
	require.NoError(t, userStore.Create(ctx, user))

	got, err := userStore.GetByID(ctx, 7777)
	require.NoError(t, err)
	assert.Equal(t, int64(7777), got.ID)
	assert.Equal(t, "tester", got.Username)
	assert.Equal(t, 0, got.UsageCount)
	assert.Equal(t, 0, got.ImageUsageCount)
	assert.True(t, got.JoinedAt.Equal(user.JoinedAt),
		"join time should survive the storage round trip")
}

func TestSQLiteUserStoreCreateDuplicate(t *testing.T) {
	db := testdb.NewSQLite(t)
	userStore := sqlite.NewSQLiteUserStore(db, nil)
	ctx := context.Background()

	require.NoError(t, userStore.Create(ctx, mustUser(t, 42, "first")))

	err := userStore.Create(ctx, mustUser(t, 42, "second"))
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrUserExists)
	assert.True(t, store.IsDuplicateError(err))

	// The original registration must be untouched.
	got, err := userStore.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Username)
}

func TestSQLiteUserStoreCreateInvalidUser(t *testing.T) {
	db := testdb.NewSQLite(t)
	userStore := sqlite.NewSQLiteUserStore(db, nil)

	err := userStore.Create(context.Background(), &domain.User{ID: 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidUserID)
}

func TestSQLiteUserStoreGetMissing(t *testing.T) {
	db := testdb.NewSQLite(t)
	userStore := sqlite.NewSQLiteUserStore(db, nil)

	got, err := userStore.GetByID(context.Background(), 99999)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.True(t, store.IsNotFoundError(err))
	assert.Nil(t, got)
}

func TestSQLiteUserStoreIncrementUsage(t *testing.T) {
	db := testdb.NewSQLite(t)
	userStore := sqlite.NewSQLiteUserStore(db, nil)
	ctx := context.Background()

	require.NoError(t, userStore.Create(ctx, mustUser(t, 1, "roastee")))

	require.NoError(t, userStore.IncrementUsage(ctx, 1))
	require.NoError(t, userStore.IncrementUsage(ctx, 1))

	got, err := userStore.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, got.UsageCount)
	assert.Equal(t, 0, got.ImageUsageCount, "text increments must not touch the image counter")
}

func TestSQLiteUserStoreIncrementImageUsage(t *testing.T) {
	db := testdb.NewSQLite(t)
	userStore := sqlite.NewSQLiteUserStore(db, nil)
	ctx := context.Background()

	require.NoError(t, userStore.Create(ctx, mustUser(t, 2, "artist")))

	require.NoError(t, userStore.IncrementImageUsage(ctx, 2))

	got, err := userStore.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, got.UsageCount)
	assert.Equal(t, 1, got.ImageUsageCount)
}

func TestSQLiteUserStoreIncrementMissingUser(t *testing.T) {
	db := testdb.NewSQLite(t)
	userStore := sqlite.NewSQLiteUserStore(db, nil)
	ctx := context.Background()

	err := userStore.IncrementUsage(ctx, 12345)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	err = userStore.IncrementImageUsage(ctx, 12345)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestSQLiteUserStoreConcurrentIncrements(t *testing.T) {
	db := testdb.NewSQLite(t)
	userStore := sqlite.NewSQLiteUserStore(db, nil)
	ctx := context.Background()

	require.NoError(t, userStore.Create(ctx, mustUser(t, 3, "busy")))

	const goroutines = 20
	var wg sync.WaitGroup
	errs := make(chan error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- userStore.IncrementUsage(ctx, 3)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	got, err := userStore.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, goroutines, got.UsageCount, "no increment may be lost under concurrency")
}

func TestSQLiteUserStoreWithTxCommit(t *testing.T) {
	db := testdb.NewSQLite(t)
	userStore := sqlite.NewSQLiteUserStore(db, nil)
	ctx := context.Background()

	require.NoError(t, userStore.Create(ctx, mustUser(t, 4, "txuser")))

	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := userStore.WithTx(tx)
		if err := txStore.IncrementUsage(ctx, 4); err != nil {
			return err
		}
		return txStore.IncrementImageUsage(ctx, 4)
	})
	require.NoError(t, err)

	got, err := userStore.GetByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, got.UsageCount)
	assert.Equal(t, 1, got.ImageUsageCount)
}

func TestSQLiteUserStoreWithTxRollback(t *testing.T) {
	db := testdb.NewSQLite(t)
	userStore := sqlite.NewSQLiteUserStore(db, nil)
	ctx := context.Background()

	require.NoError(t, userStore.Create(ctx, mustUser(t, 5, "rollback")))

	wantErr := errors.New("abort after increment")
	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := userStore.WithTx(tx)
		if err := txStore.IncrementUsage(ctx, 5); err != nil {
			return err
		}
		return wantErr
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)

	got, err := userStore.GetByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, got.UsageCount, "rolled back increment must not persist")
}
