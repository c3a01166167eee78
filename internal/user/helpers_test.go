package user_test

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pas-services/pas-profile/internal/db/models"
	"github.com/pas-services/pas-profile/internal/user"
)

func ptr[T any](v T) *T {
	return &v
}

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	// a second connection would open a second, empty in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.UserProfile{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedProfile stores a profile with the given attributes.
func seedProfile(t *testing.T, profiles *user.Profiles, a user.Attributes) *user.Profile {
	t.Helper()

	p := profiles.New()
	p.SetDataAttributes(a)
	require.NoError(t, p.Save(context.Background()), "failed to seed test data")

	return p
}
