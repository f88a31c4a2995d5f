package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/fieldkit/internal/config"
	"github.com/example/fieldkit/internal/db"
	"github.com/example/fieldkit/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize fieldkit storage",
		Long:  `Write a default config if none exists, create the database and the default site set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.ResolveDir()
			if err != nil {
				return err
			}

			if _, err := os.Stat(config.Path(dir)); os.IsNotExist(err) {
				if err := config.SaveConfig(dir, config.Default()); err != nil {
					return err
				}
				fmt.Printf("✓ Config created at %s\n", config.Path(dir))
			}

			cfg := wire.Config()
			if err := wire.SiteService().Initialize(NewContext()); err != nil {
				return fmt.Errorf("failed to initialize sites: %w", err)
			}

			dbPath, err := db.GetDBPath()
			if err != nil {
				return err
			}
			fmt.Printf("✓ Database ready at %s\n", dbPath)
			if cfg.Storage == config.StorageFile {
				fmt.Printf("✓ Site data stored in %s\n", cfg.DataFilePath(dir))
			}
			fmt.Printf("✓ %d sites ready\n", len(cfg.SiteIDs()))
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  fieldkit status")
			fmt.Println("  fieldkit deploy predeploy --all")

			return nil
		},
	}
}
