package identity

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kheyer/RESTful-App/internal/apperror"
	"github.com/kheyer/RESTful-App/internal/repository"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "identity_test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	store, err := repository.New(db)
	require.NoError(t, err)
	return NewResolver(store)
}

func TestResolveCreatesOnFirstSight(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	id, err := r.Resolve(ctx, "alice@example.com", "Alice", "https://example.com/alice.png")
	require.NoError(t, err)
	require.NotZero(t, id)

	user, err := r.Describe(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Alice", user.Name)
	require.Equal(t, "https://example.com/alice.png", user.Picture)
}

func TestResolveDoesNotSyncProfile(t *testing.T) {
	r := newTestResolver(t)
	ctx := context.Background()

	id, err := r.Resolve(ctx, "alice@example.com", "Alice", "old.png")
	require.NoError(t, err)

	// Repeat login with a changed provider profile keeps the stored one.
	again, err := r.Resolve(ctx, "alice@example.com", "Alicia", "new.png")
	require.NoError(t, err)
	require.Equal(t, id, again)

	user, err := r.Describe(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Alice", user.Name)
	require.Equal(t, "old.png", user.Picture)
}

func TestDescribeUnknownUser(t *testing.T) {
	r := newTestResolver(t)
	_, err := r.Describe(context.Background(), 42)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}
