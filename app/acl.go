package app

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pas-services/pas-profile/internal/acl"
	"github.com/pas-services/pas-profile/internal/db/instance"
)

func init() { //nolint: gochecknoinits
	aclGrantCmd.Flags().StringVar(&ownedID, "owned", "", "Id of the protected object, required for new entries")
	aclGrantCmd.Flags().BoolVar(&deny, "deny", false, "Store the permission as denied")

	aclCmd.AddCommand(aclShowCmd, aclOwnedCmd, aclGrantCmd, aclRevokeCmd)
	rootCmd.AddCommand(aclCmd)
}

var (
	ownedID string
	deny    bool

	aclCmd = &cobra.Command{
		Use:   "acl",
		Short: "Show and modify access control entries",
	}

	aclShowCmd = &cobra.Command{
		Use:   "show <owner_type>_<owner_id>",
		Short: "Show the permissions of an ACL entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openServices()
			if err != nil {
				return err
			}
			defer s.Close()

			e, err := s.entries.LoadACLID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printEntry(cmd.OutOrStdout(), e)
		},
	}

	aclOwnedCmd = &cobra.Command{
		Use:   "owned <owned_id>",
		Short: "Show the ACL entries protecting an object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openServices()
			if err != nil {
				return err
			}
			defer s.Close()

			entries, err := s.entries.LoadOwned(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			for _, e := range entries {
				if err := printEntry(cmd.OutOrStdout(), e); err != nil {
					return err
				}
			}

			return nil
		},
	}

	aclGrantCmd = &cobra.Command{
		Use:   "grant <owner_type>_<owner_id> <permission>",
		Short: "Grant (or with --deny deny) a permission, creating the entry if needed",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openServices()
			if err != nil {
				return err
			}
			defer s.Close()

			e, err := s.entries.LoadACLID(cmd.Context(), args[0])

			switch {
			case errors.Is(err, instance.ErrNothingMatched):
				if e, err = newEntry(s.entries, args[0]); err != nil {
					return err
				}
			case err != nil:
				return err
			}

			// a known name keeps its flag, replace it to change the flag
			e.UnsetPermission(args[1])
			e.SetPermission(args[1], !deny)

			return e.Save(cmd.Context())
		},
	}

	aclRevokeCmd = &cobra.Command{
		Use:   "revoke <owner_type>_<owner_id> <permission>",
		Short: "Remove a permission from an ACL entry",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openServices()
			if err != nil {
				return err
			}
			defer s.Close()

			e, err := s.entries.LoadACLID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			e.UnsetPermission(args[1])

			return e.Save(cmd.Context())
		},
	}
)

var errOwnedIDMissing = errors.New("--owned is required to create an ACL entry")

func newEntry(entries *acl.Entries, id string) (*acl.Entry, error) {
	ownerType, ownerID, ok := strings.Cut(id, "_")
	if !ok {
		return nil, instance.NothingMatchedf("ACL ID '%s' is invalid", id)
	}

	if ownedID == "" {
		return nil, errOwnedIDMissing
	}

	e := entries.New()
	e.SetDataAttributes(acl.EntryAttributes{OwnedID: &ownedID, OwnerType: &ownerType, OwnerID: &ownerID})

	return e, nil
}

func printEntry(out io.Writer, e *acl.Entry) error {
	if _, err := fmt.Fprintf(out, "%s\towned by %s\n", e.ACLID(), e.OwnedID()); err != nil {
		return err
	}

	permissions := e.Permissions()

	for _, name := range slices.Sorted(maps.Keys(permissions)) {
		state := "denied"
		if permissions[name] {
			state = "granted"
		}

		if _, err := fmt.Fprintf(out, "\t%s\t%s\n", name, state); err != nil {
			return err
		}
	}

	return nil
}
