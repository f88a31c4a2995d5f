package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/fieldkit/internal/wire"
)

// SiteCmd returns the site command
func SiteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Inspect deployment sites",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List sites with their deployment and retrieval state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SiteAdapter().List(NewContext())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show [site-id]",
		Short: "Show the sections recorded for a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.SiteAdapter().Show(NewContext(), args[0])
			return err
		},
	})

	return cmd
}
