package instance_test

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pas-services/pas-profile/internal/db/instance"
	"github.com/pas-services/pas-profile/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.Permission{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func newPermission(db *gorm.DB, row *models.Permission) *instance.Instance[models.Permission, *models.Permission] {
	return instance.New[models.Permission](db, row, instance.Options{Entity: "permission"})
}

func TestNewWithoutRow(t *testing.T) {
	i := newPermission(setupTestDB(t), nil)

	assert.False(t, i.IsReloadable())
	assert.Empty(t, i.ID())

	i.View(func(row *models.Permission) {
		assert.NotNil(t, row)
	})
}

func TestSaveAndReload(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	i := newPermission(db, nil)

	i.Update(func(row *models.Permission) {
		row.Name = "edit"
		row.Permitted = true
	})

	require.NoError(t, i.Save(ctx, nil))
	assert.True(t, i.IsReloadable())
	assert.Len(t, i.ID(), models.IDLength)

	// change the stored copy behind the instance's back
	require.NoError(t, db.Model(&models.Permission{}).Where("id = ?", i.ID()).Update("permitted", false).Error)

	require.NoError(t, i.Reload(ctx))
	i.View(func(row *models.Permission) {
		assert.Equal(t, "edit", row.Name)
		assert.False(t, row.Permitted)
	})
}

func TestReloadErrors(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	unsaved := newPermission(db, nil)
	require.ErrorIs(t, unsaved.Reload(ctx), instance.ErrNotReloadable)

	vanished := newPermission(db, &models.Permission{ID: "0123456789abcdef0123456789abcdef", Name: "gone"})
	assert.True(t, vanished.IsReloadable())

	err := vanished.Reload(ctx)
	require.ErrorIs(t, err, instance.ErrNothingMatched)
	assert.Contains(t, err.Error(), "0123456789abcdef0123456789abcdef")
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	i := newPermission(db, &models.Permission{Name: "read"})

	// unsaved rows are ignored
	require.NoError(t, i.Delete(ctx, nil))

	require.NoError(t, i.Save(ctx, nil))
	require.NoError(t, i.Delete(ctx, nil))
	assert.False(t, i.IsReloadable())

	var count int64
	require.NoError(t, db.Model(&models.Permission{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestNothingMatched(t *testing.T) {
	err := instance.NothingMatchedf("Profile ID '%s' is invalid", "abc")

	require.ErrorIs(t, err, instance.ErrNothingMatched)
	assert.Equal(t, "Profile ID 'abc' is invalid: nothing matched", err.Error())
	require.ErrorIs(t, instance.NothingMatched("ACL ID is invalid"), instance.ErrNothingMatched)
}
