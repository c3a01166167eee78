package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pas-services/pas-profile/internal/db/instance"
	"github.com/pas-services/pas-profile/internal/user"
)

func init() { //nolint: gochecknoinits
	profileListCmd.Flags().IntVar(&listOffset, "offset", 0, "Number of profiles to skip")
	profileListCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of profiles")
	profileListCmd.Flags().StringVar(&listType, "type", "", "Only list profiles of this type")

	profilePasswdCmd.Flags().StringVar(&newPassword, "password", "", "New password, generated when empty")
	profileAddCmd.Flags().StringVar(&newPassword, "password", "", "Password, generated when empty")

	profileCmd.AddCommand(profileAddCmd, profileShowCmd, profileListCmd, profileLockCmd, profileUnlockCmd, profileSetCmd, profilePasswdCmd)
	rootCmd.AddCommand(profileCmd)
}

var (
	listOffset  int
	listLimit   int
	listType    string
	newPassword string

	profileCmd = &cobra.Command{
		Use:   "profile",
		Short: "Show and modify user profiles",
	}

	profileAddCmd = &cobra.Command{
		Use:   "add <name> <email>",
		Short: "Register a profile with the configured defaults",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openServices()
			if err != nil {
				return err
			}
			defer s.Close()

			password := newPassword
			if password == "" {
				password = s.profiles.GeneratePassword()
			}

			p, err := s.profiles.Register(cmd.Context(), args[0], args[1], password, "")
			if err != nil {
				return err
			}

			if newPassword == "" {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "created profile %s with password %s\n", p.ID(), password)
			}

			return err
		},
	}

	profileShowCmd = &cobra.Command{
		Use:   "show <name|id>",
		Short: "Show a profile",
		Args:  cobra.ExactArgs(1),
		RunE: withProfile(func(cmd *cobra.Command, _ *services, p *user.Profile, _ []string) error {
			return printProfile(cmd.OutOrStdout(), p)
		}),
	}

	profileListCmd = &cobra.Command{
		Use:   "list",
		Short: "List the profiles not deleted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := user.ListOptions{Offset: listOffset, Limit: listLimit}

			if listType != "" {
				t, err := user.ParseType(listType)
				if err != nil {
					return err
				}

				opts.Type = &t
			}

			s, err := openServices()
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()

			for p, err := range s.profiles.LoadList(cmd.Context(), opts) {
				if err != nil {
					return err
				}

				if _, err := fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", p.ID(), p.Name(), p.Type(), status(p)); err != nil {
					return err
				}
			}

			return nil
		},
	}

	profileLockCmd = &cobra.Command{
		Use:   "lock <name|id>",
		Short: "Lock a profile",
		Args:  cobra.ExactArgs(1),
		RunE: withProfile(func(cmd *cobra.Command, _ *services, p *user.Profile, _ []string) error {
			p.Lock()

			return p.Save(cmd.Context())
		}),
	}

	profileUnlockCmd = &cobra.Command{
		Use:   "unlock <name|id>",
		Short: "Unlock a profile",
		Args:  cobra.ExactArgs(1),
		RunE: withProfile(func(cmd *cobra.Command, _ *services, p *user.Profile, _ []string) error {
			p.Unlock()

			return p.Save(cmd.Context())
		}),
	}

	profileSetCmd = &cobra.Command{
		Use:   "set <name|id> <column=value>...",
		Short: "Set profile columns, e.g. type=moderator email=jane@example.com",
		Args:  cobra.MinimumNArgs(2), //nolint:mnd
		RunE: withProfile(func(cmd *cobra.Command, _ *services, p *user.Profile, args []string) error {
			values := make(map[string]any, len(args))

			for _, arg := range args {
				key, value, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("%w: %q", errInvalidAssignment, arg)
				}

				values[strings.TrimSpace(key)] = value
			}

			attributes, err := user.AttributesFromMap(values)
			if err != nil {
				return err
			}

			p.SetDataAttributes(attributes)

			return p.Save(cmd.Context())
		}),
	}

	profilePasswdCmd = &cobra.Command{
		Use:   "passwd <name|id>",
		Short: "Set the password of a profile",
		Args:  cobra.ExactArgs(1),
		RunE: withProfile(func(cmd *cobra.Command, _ *services, p *user.Profile, _ []string) error {
			password := newPassword
			if password == "" {
				password = p.GeneratePassword()
			}

			if err := p.SetPassword(password); err != nil {
				return err
			}

			if err := p.Save(cmd.Context()); err != nil {
				return err
			}

			if newPassword == "" {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "new password: %s\n", password)

				return err
			}

			return nil
		}),
	}
)

var errInvalidAssignment = errors.New("expected column=value")

// withProfile opens the services and loads the profile named by the first argument.
func withProfile(fn func(*cobra.Command, *services, *user.Profile, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openServices()
		if err != nil {
			return err
		}
		defer s.Close()

		p, err := findProfile(cmd.Context(), s.profiles, args[0])
		if err != nil {
			return err
		}

		return fn(cmd, s, p, args[1:])
	}
}

// findProfile looks key up as user name first, then as profile id.
func findProfile(ctx context.Context, profiles *user.Profiles, key string) (*user.Profile, error) {
	p, err := profiles.FindUsername(ctx, key)
	if !errors.Is(err, instance.ErrNothingMatched) {
		return p, err
	}

	return profiles.LoadID(ctx, key)
}

func status(p *user.Profile) string {
	var flags []string

	if p.IsBanned() {
		flags = append(flags, "banned")
	}

	if p.IsDeleted() {
		flags = append(flags, "deleted")
	}

	if p.IsLocked() {
		flags = append(flags, "locked")
	}

	if len(flags) == 0 {
		return "valid"
	}

	return strings.Join(flags, ",")
}

func printProfile(out io.Writer, p *user.Profile) error {
	_, err := fmt.Fprintf(out,
		"id:            %s\nname:          %s\ntype:          %s\nstatus:        %s\n"+
			"email:         %s\nlang:          %s\ntheme:         %s\ncredits:       %d\n"+
			"registered:    %s from %s\nlast visit:    %s from %s\n",
		p.ID(), p.Name(), p.Type(), status(p),
		p.Email(), p.Lang(), p.Theme(), p.Credits(),
		formatUnix(p.RegistrationTime()), p.RegistrationIP(),
		formatUnix(p.LastvisitTime()), p.LastvisitIP(),
	)

	return err
}

func formatUnix(ts int64) string {
	if ts == 0 {
		return "-"
	}

	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}
