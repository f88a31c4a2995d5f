package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/example/fieldkit/internal/config"
)

// ConfigCmd returns the config command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the fieldkit configuration",
	}

	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configInitCmd())
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.ResolveDir()
			if err != nil {
				return err
			}
			cfg, err := config.LoadOrDefault(dir)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}

			fmt.Printf("# %s\n", config.Path(dir))
			fmt.Print(string(data))
			fmt.Printf("# %d sites\n", len(cfg.SiteIDs()))
			return nil
		},
	}
}

func configInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file",
		Long: `Write .fieldkit/config.yaml with the given settings.

Clusters are given as id=count pairs, e.g. --cluster C1=7 --cluster C2=5.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.ResolveDir()
			if err != nil {
				return err
			}
			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(config.Path(dir)); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", config.Path(dir))
			}

			cfg := config.Default()
			cfg.Operator, _ = cmd.Flags().GetString("operator-name")
			cfg.Storage, _ = cmd.Flags().GetString("storage")
			cfg.DBPath, _ = cmd.Flags().GetString("db-path")
			cfg.DataFile, _ = cmd.Flags().GetString("data-file")

			specs, _ := cmd.Flags().GetStringArray("cluster")
			if len(specs) > 0 {
				clusters, err := parseClusters(specs)
				if err != nil {
					return err
				}
				cfg.Clusters = clusters
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.SaveConfig(dir, cfg); err != nil {
				return err
			}

			fmt.Printf("✓ Config written to %s\n", config.Path(dir))
			fmt.Printf("  %d sites across %d clusters, %s storage\n", len(cfg.SiteIDs()), len(cfg.Clusters), cfg.Storage)
			return nil
		},
	}

	cmd.Flags().String("operator-name", "", "Default operator recorded in the field log")
	cmd.Flags().String("storage", config.StorageSQLite, "Storage backend (sqlite or file)")
	cmd.Flags().String("db-path", "", "sqlite database path")
	cmd.Flags().String("data-file", "", "JSON data file path (file storage)")
	cmd.Flags().StringArray("cluster", nil, "Cluster as id=count (repeatable)")
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing config")
	return cmd
}
