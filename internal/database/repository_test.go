package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/todoey/internal/models"
	"github.com/thenoetrevino/todoey/internal/types"
)

func TestCategoryCRUD(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	school := createTestCategory(t, repo, "School")
	home := createTestCategory(t, repo, "Home")

	got, err := repo.GetCategoryByID(ctx, school.ID)
	require.NoError(t, err)
	assert.Equal(t, "School", got.Name)
	assert.Equal(t, school.ID, got.ID)
	assert.True(t, got.CreatedAt.Equal(school.CreatedAt))

	all, err := repo.GetAllCategories(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, school.ID, all[0].ID)
	assert.Equal(t, home.ID, all[1].ID)

	require.NoError(t, repo.RenameCategory(ctx, home.ID, "Chores"))
	got, err = repo.GetCategoryByID(ctx, home.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chores", got.Name)

	require.NoError(t, repo.DeleteCategory(ctx, home.ID))
	_, err = repo.GetCategoryByID(ctx, home.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	// Deleting again is a no-op
	assert.NoError(t, repo.DeleteCategory(ctx, home.ID))
}

func TestRenameCategory_NotFound(t *testing.T) {
	t.Parallel()
	repo := NewRepository(setupTestDB(t))

	err := repo.RenameCategory(context.Background(), types.NewCategoryID(), "Nope")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCategoryExists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))
	school := createTestCategory(t, repo, "School")

	exists, err := repo.CategoryExists(ctx, school.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.CategoryExists(ctx, types.NewCategoryID())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestItemExists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))
	home := createTestCategory(t, repo, "Home")
	item := createTestItem(t, repo, home, "Buy milk")

	exists, err := repo.ItemExists(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ItemExists(ctx, types.NewItemID())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestListItems_InsertionOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))
	school := createTestCategory(t, repo, "School")

	createTestItem(t, repo, school, "Homework")
	createTestItem(t, repo, school, "Essay")
	createTestItem(t, repo, school, "Algebra")

	items, err := repo.ListItems(ctx, ItemQuery{CategoryID: school.ID, Filter: NoFilter()})
	require.NoError(t, err)
	assert.Equal(t, []string{"Homework", "Essay", "Algebra"}, itemTitles(items))
	for _, item := range items {
		assert.False(t, item.Done)
		assert.Equal(t, school.ID, item.CategoryID)
	}
}

func TestListItems_CompoundPredicate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))
	school := createTestCategory(t, repo, "School")
	home := createTestCategory(t, repo, "Home")

	createTestItem(t, repo, school, "Buy Milk for lab")
	createTestItem(t, repo, school, "Essay")
	createTestItem(t, repo, home, "Buy Milk")
	createTestItem(t, repo, home, "Café run")

	items, err := repo.ListItems(ctx, ItemQuery{CategoryID: school.ID, Filter: TextContains("MILK")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Buy Milk for lab"}, itemTitles(items))

	items, err = repo.ListItems(ctx, ItemQuery{CategoryID: home.ID, Filter: TextContains("cafe")})
	require.NoError(t, err)
	assert.Equal(t, []string{"Café run"}, itemTitles(items))

	items, err = repo.ListItems(ctx, ItemQuery{CategoryID: home.ID, Filter: TextContains("essay")})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestListItems_WildcardsAreLiteral(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))
	c := createTestCategory(t, repo, "Misc")

	createTestItem(t, repo, c, "100% done")
	createTestItem(t, repo, c, "snake_case")
	createTestItem(t, repo, c, "plain")

	items, err := repo.ListItems(ctx, ItemQuery{CategoryID: c.ID, Filter: TextContains("%")})
	require.NoError(t, err)
	assert.Equal(t, []string{"100% done"}, itemTitles(items))

	items, err = repo.ListItems(ctx, ItemQuery{CategoryID: c.ID, Filter: TextContains("_")})
	require.NoError(t, err)
	assert.Equal(t, []string{"snake_case"}, itemTitles(items))
}

func TestToggleItemDone(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))
	school := createTestCategory(t, repo, "School")
	essay := createTestItem(t, repo, school, "Essay")

	require.NoError(t, repo.ToggleItemDone(ctx, essay.ID))
	got, err := repo.GetItem(ctx, essay.ID)
	require.NoError(t, err)
	assert.True(t, got.Done)

	require.NoError(t, repo.ToggleItemDone(ctx, essay.ID))
	got, err = repo.GetItem(ctx, essay.ID)
	require.NoError(t, err)
	assert.False(t, got.Done)

	err = repo.ToggleItemDone(ctx, types.NewItemID())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteItem_Idempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))
	school := createTestCategory(t, repo, "School")
	essay := createTestItem(t, repo, school, "Essay")

	require.NoError(t, repo.DeleteItem(ctx, essay.ID))
	require.NoError(t, repo.DeleteItem(ctx, essay.ID))

	_, err := repo.GetItem(ctx, essay.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestForeignKeys(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))
	school := createTestCategory(t, repo, "School")
	createTestItem(t, repo, school, "Essay")

	// An item cannot point at a missing category
	_, err := repo.CreateItem(ctx, types.NewCategoryID(), "Orphan")
	assert.ErrorIs(t, err, models.ErrStorage)

	// A category that still owns items cannot be removed directly
	err = repo.DeleteCategory(ctx, school.ID)
	assert.ErrorIs(t, err, models.ErrStorage)

	n, err := repo.DeleteItemsByCategory(ctx, school.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, repo.DeleteCategory(ctx, school.ID))
}

func TestInTx_RollbackOnError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))
	boom := errors.New("boom")

	err := repo.InTx(ctx, func(tx DataStore) error {
		if _, err := tx.CreateCategory(ctx, "Doomed"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	all, err := repo.GetAllCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestInTx_Commit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t))

	var created *models.Category
	err := repo.InTx(ctx, func(tx DataStore) error {
		var err error
		created, err = tx.CreateCategory(ctx, "Kept")
		if err != nil {
			return err
		}
		_, err = tx.CreateItem(ctx, created.ID, "Inside tx")
		return err
	})
	require.NoError(t, err)

	items, err := repo.ListItems(ctx, ItemQuery{CategoryID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"Inside tx"}, itemTitles(items))
}

func TestPersistenceAcrossReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "todoey.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	repo := NewRepository(db)
	school := createTestCategory(t, repo, "School")
	essay := createTestItem(t, repo, school, "Essay")
	require.NoError(t, repo.ToggleItemDone(ctx, essay.ID))
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	repo = NewRepository(db)

	items, err := repo.ListItems(ctx, ItemQuery{CategoryID: school.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, essay.ID, items[0].ID)
	assert.True(t, items[0].Done)
}
