// Package app implements the main application commands.
package app

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/pas-services/pas-profile/internal/acl"
	"github.com/pas-services/pas-profile/internal/config"
	"github.com/pas-services/pas-profile/internal/db"
	"github.com/pas-services/pas-profile/internal/logger"
	"github.com/pas-services/pas-profile/internal/settings"
	"github.com/pas-services/pas-profile/internal/user"
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "Directory containing main.toml")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "Enable dev mode (debug logging)")
}

var (
	configPath string // Path to the configuration directory
	devMode    bool

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "pas-profile",
		Short: "pas-profile manages user profiles and access control entries",
		Long: `pas-profile manages the user profiles and access control entries
of the PAS services framework stored in a MySQL, PostgreSQL or SQLite database.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error

			if cfg, err = config.ReadConfig(configPath); err != nil {
				return err
			}

			if devMode {
				cfg.DevMode = true
				cfg.Log.LogLevel = "debug"
			}

			return logger.Init(cfg.Log)
		},
	}
)

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		log.Error().Err(err).Msg("command failed")
	}

	return err
}

// services are the data services used by one command.
type services struct {
	db       *gorm.DB
	profiles *user.Profiles
	entries  *acl.Entries
}

func openServices() (*services, error) {
	gdb, err := db.Open(&cfg)
	if err != nil {
		return nil, err
	}

	store := settings.New(cfg.DataPath, time.Duration(cfg.Settings.CacheSeconds)*time.Second)

	s := &services{db: gdb, entries: acl.NewEntries(gdb)}

	if s.profiles, err = user.NewProfiles(gdb, store); err != nil {
		s.Close()

		return nil, err
	}

	return s, nil
}

func (s *services) Close() {
	sqlDB, err := s.db.DB()
	if err != nil {
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close database")
	}
}
