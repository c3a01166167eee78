// Package db opens the configured database and manages its schema.
package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pas-services/pas-profile/internal/config"
	"github.com/pas-services/pas-profile/internal/db/dsn"
	"github.com/pas-services/pas-profile/internal/db/models"
	gormlog "github.com/pas-services/pas-profile/internal/logger/adapter/gorm"
)

// Open connects to the database selected by cfg.DB.Engine.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	source := dsn.Create(&cfg.DB)

	switch cfg.DB.Engine {
	case "mysql":
		dialector = gormmysql.Open(source)
	case "postgres":
		dialector = gormpostgres.Open(source)
	case "sqlite":
		dialector = sqlite.Open(source)
	default:
		return nil, fmt.Errorf("unsupported database engine %q", cfg.DB.Engine)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlog.New(cfg.Log),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	log.Debug().Str("engine", cfg.DB.Engine).Str("name", cfg.DB.Name).Msg("database opened")

	return db, nil
}

// Migrate creates or updates the profile and ACL tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.UserProfile{},
		&models.Permission{},
		&models.ACLEntry{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}
