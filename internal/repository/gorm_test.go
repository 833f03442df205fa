package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kheyer/RESTful-App/internal/apperror"
	"github.com/kheyer/RESTful-App/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "catalog_test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	store, err := New(db)
	require.NoError(t, err)
	return store
}

func seedUser(t *testing.T, store *Store, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func TestUserLookup(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created := seedUser(t, store, "Alice", "alice@example.com")

	byEmail, err := store.UserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)

	byID, err := store.UserByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", byID.Name)

	_, err = store.UserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "Alice", "alice@example.com")

	require.NoError(t, store.CreateCategory(ctx, &models.Category{Name: "Fruits", UserID: user.ID}))

	err := store.CreateCategory(ctx, &models.Category{Name: "Fruits", UserID: user.ID})
	require.ErrorIs(t, err, apperror.ErrDuplicateName)

	categories, err := store.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
}

func TestRenameCategory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "Alice", "alice@example.com")

	fruits := &models.Category{Name: "Fruits", UserID: user.ID}
	require.NoError(t, store.CreateCategory(ctx, fruits))
	require.NoError(t, store.CreateCategory(ctx, &models.Category{Name: "Vegetables", UserID: user.ID}))

	err := store.RenameCategory(ctx, fruits.ID, "Vegetables")
	require.ErrorIs(t, err, apperror.ErrDuplicateName)

	require.NoError(t, store.RenameCategory(ctx, fruits.ID, "Berries"))
	renamed, err := store.CategoryByName(ctx, "Berries")
	require.NoError(t, err)
	require.Equal(t, fruits.ID, renamed.ID)

	// Renaming to the current name is not a conflict with itself.
	require.NoError(t, store.RenameCategory(ctx, fruits.ID, "Berries"))
}

func TestDeleteCategoryCascades(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "Alice", "alice@example.com")

	fruits := &models.Category{Name: "Fruits", UserID: user.ID}
	veg := &models.Category{Name: "Vegetables", UserID: user.ID}
	require.NoError(t, store.CreateCategory(ctx, fruits))
	require.NoError(t, store.CreateCategory(ctx, veg))

	require.NoError(t, store.CreateItem(ctx, &models.Item{Name: "Apple", CategoryID: fruits.ID, UserID: user.ID}))
	require.NoError(t, store.CreateItem(ctx, &models.Item{Name: "Banana", CategoryID: fruits.ID, UserID: user.ID}))
	require.NoError(t, store.CreateItem(ctx, &models.Item{Name: "Carrot", CategoryID: veg.ID, UserID: user.ID}))

	require.NoError(t, store.DeleteCategory(ctx, fruits.ID))

	items, err := store.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Carrot", items[0].Name)

	_, err = store.CategoryByName(ctx, "Fruits")
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestItemDuplicateName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "Alice", "alice@example.com")

	fruits := &models.Category{Name: "Fruits", UserID: user.ID}
	require.NoError(t, store.CreateCategory(ctx, fruits))
	require.NoError(t, store.CreateItem(ctx, &models.Item{Name: "Apple", CategoryID: fruits.ID, UserID: user.ID}))

	err := store.CreateItem(ctx, &models.Item{Name: "Apple", CategoryID: fruits.ID, UserID: user.ID})
	require.ErrorIs(t, err, apperror.ErrDuplicateName)

	items, err := store.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestUpdateItemRefreshesDate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "Alice", "alice@example.com")

	fruits := &models.Category{Name: "Fruits", UserID: user.ID}
	require.NoError(t, store.CreateCategory(ctx, fruits))

	item := &models.Item{Name: "Apple", Description: "red fruit", CategoryID: fruits.ID, UserID: user.ID}
	require.NoError(t, store.CreateItem(ctx, item))
	created := item.Date

	time.Sleep(10 * time.Millisecond)
	item.Description = "sweet red fruit"
	require.NoError(t, store.UpdateItem(ctx, item))

	updated, err := store.ItemByName(ctx, "Apple")
	require.NoError(t, err)
	require.Equal(t, "sweet red fruit", updated.Description)
	require.True(t, updated.Date.After(created))
}

func TestListingsSortedByName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "Alice", "alice@example.com")

	for _, name := range []string{"Vegetables", "Fruits", "Dairy"} {
		require.NoError(t, store.CreateCategory(ctx, &models.Category{Name: name, UserID: user.ID}))
	}
	categories, err := store.Categories(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Dairy", "Fruits", "Vegetables"},
		[]string{categories[0].Name, categories[1].Name, categories[2].Name})

	fruits, err := store.CategoryByName(ctx, "Fruits")
	require.NoError(t, err)
	for _, name := range []string{"Pear", "Apple", "Mango"} {
		require.NoError(t, store.CreateItem(ctx, &models.Item{Name: name, CategoryID: fruits.ID, UserID: user.ID}))
	}
	items, err := store.ItemsByCategory(ctx, fruits.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"Apple", "Mango", "Pear"},
		[]string{items[0].Name, items[1].Name, items[2].Name})
}

func TestDeleteItem(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "Alice", "alice@example.com")

	fruits := &models.Category{Name: "Fruits", UserID: user.ID}
	require.NoError(t, store.CreateCategory(ctx, fruits))
	item := &models.Item{Name: "Apple", CategoryID: fruits.ID, UserID: user.ID}
	require.NoError(t, store.CreateItem(ctx, item))

	require.NoError(t, store.DeleteItem(ctx, item.ID))
	_, err := store.ItemByName(ctx, "Apple")
	require.ErrorIs(t, err, apperror.ErrNotFound)

	require.ErrorIs(t, store.DeleteItem(ctx, item.ID), apperror.ErrNotFound)
}
