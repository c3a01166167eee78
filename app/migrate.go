package app

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pas-services/pas-profile/internal/db"
	"github.com/pas-services/pas-profile/internal/db/models"
	"github.com/pas-services/pas-profile/internal/user"
)

func init() { //nolint: gochecknoinits
	migrateCmd.Flags().BoolVar(&seedAdmin, "seed", false, "Create an administrator profile when no profile exists")

	rootCmd.AddCommand(migrateCmd)
}

var (
	seedAdmin bool

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the profile and ACL tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openServices()
			if err != nil {
				return err
			}
			defer s.Close()

			if err = db.Migrate(s.db); err != nil {
				return err
			}

			log.Info().Str("engine", cfg.DB.Engine).Msg("database migrated")

			if !seedAdmin {
				return nil
			}

			return seed(cmd.Context(), cmd.OutOrStdout(), s)
		},
	}
)

// seed creates the administrator profile "admin" if the profile table is empty.
func seed(ctx context.Context, out io.Writer, s *services) error {
	var count int64

	if err := s.db.WithContext(ctx).Model(&models.UserProfile{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Info().Int64("profiles", count).Msg("profiles exist, nothing seeded")

		return nil
	}

	name := "admin"
	administrator := user.TypeAdministrator

	admin := s.profiles.New()
	admin.SetDataAttributes(user.Attributes{Type: &administrator, Name: &name})
	admin.GenerateSecID()

	password := admin.GeneratePassword()
	if err := admin.SetPassword(password); err != nil {
		return err
	}

	if err := admin.Save(ctx); err != nil {
		return err
	}

	log.Info().Str("profile", admin.ID()).Msg("administrator profile created")
	_, err := fmt.Fprintf(out, "created profile %s with password %s\n", name, password)

	return err
}
