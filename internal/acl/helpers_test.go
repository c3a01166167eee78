package acl_test

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pas-services/pas-profile/internal/acl"
	"github.com/pas-services/pas-profile/internal/db/models"
)

func ptr[T any](v T) *T {
	return &v
}

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.Permission{}, &models.ACLEntry{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedEntry stores an entry for ownerType_ownerID protecting ownedID with the given permissions.
func seedEntry(t *testing.T, entries *acl.Entries, ownedID, ownerType, ownerID string, permissions map[string]bool) *acl.Entry {
	t.Helper()

	e := entries.New()
	e.SetDataAttributes(acl.EntryAttributes{
		OwnedID:   &ownedID,
		OwnerType: &ownerType,
		OwnerID:   &ownerID,
	})

	for name, permitted := range permissions {
		e.SetPermission(name, permitted)
	}

	require.NoError(t, e.Save(context.Background()), "failed to seed test data")

	return e
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Table(table).Count(&n).Error)

	return n
}
