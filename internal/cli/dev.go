package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/fieldkit/internal/config"
	"github.com/example/fieldkit/internal/db"
	"github.com/example/fieldkit/internal/wire"
)

// DevCmd returns the dev command group for development utilities.
func DevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "dev",
		Short:  "Development utilities",
		Hidden: true,
	}

	cmd.AddCommand(devSeedCmd())
	return cmd
}

func devSeedCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a mid-campaign fixture",
		Long: `Overwrite the site data with a fixture where every site but the
last is deployed and the checklist waits at site arrival.

Only the sqlite store can be seeded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			if cfg.Storage != config.StorageSQLite {
				return fmt.Errorf("seed requires sqlite storage, config uses %q", cfg.Storage)
			}

			if !force {
				fmt.Print("This will overwrite all site data. Continue? [y/N] ")
				var response string
				fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					fmt.Println("Aborted.")
					return nil
				}
			}

			database, err := db.GetDB()
			if err != nil {
				return err
			}
			ids := cfg.SiteIDs()
			if err := db.SeedFixtures(database, ids); err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}

			fmt.Printf("✓ Seeded %d sites (%d deployed)\n", len(ids), len(ids)-1)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	return cmd
}
