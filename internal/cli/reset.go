package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/fieldkit/internal/wire"
)

// ResetCmd returns the reset command
func ResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Start a new campaign",
		Long: `Restore every site to its empty default, clear the session
(selected sites, daily counter, pre-deployment checklist) and move the
checklist back to step 1. The field log is kept.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Print("This will erase all recorded site data. Continue? [y/N] ")
				var response string
				fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					fmt.Println("Aborted.")
					return nil
				}
			}

			ctx := NewContext()
			if err := wire.SiteAdapter().Reset(ctx); err != nil {
				return err
			}
			if err := wire.ProgressService().Reset(ctx); err != nil {
				return fmt.Errorf("failed to reset progress: %w", err)
			}

			fmt.Println("✓ Checklist back at step 1")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	return cmd
}
