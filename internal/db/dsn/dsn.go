// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/pas-services/pas-profile/internal/config"
)

// Create builds the Data Source Name for the configured engine.
func Create(dbCfg *config.DB) string {
	switch dbCfg.Engine {
	case "postgres":
		return strings.TrimSpace(fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s %s",
			dbCfg.Host,
			dbCfg.Port,
			dbCfg.User,
			dbCfg.Password,
			dbCfg.Name,
			dbCfg.Extras,
		))
	case "sqlite":
		if dbCfg.Extras == "" {
			return dbCfg.Name
		}

		return dbCfg.Name + "?" + dbCfg.Extras
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			dbCfg.User,
			dbCfg.Password,
			dbCfg.Host,
			dbCfg.Port,
			dbCfg.Name,
			dbCfg.Extras,
		)
	}
}
