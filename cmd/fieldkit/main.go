package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/fieldkit/internal/cli"
	"github.com/example/fieldkit/internal/version"
)

func main() {
	var operator string

	rootCmd := &cobra.Command{
		Use:     "fieldkit",
		Short:   "fieldkit - acoustic recorder deployment checklist",
		Version: version.String(),
		Long: `fieldkit walks a field team through deploying acoustic recorders at a
fixed set of sites, then retrieving them. Each checklist step unlocks
once the previous one is recorded.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cli.SetOperator(operator)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&operator, "operator", "", "Name recorded in the field log (default: config operator)")

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.OpenCmd())
	rootCmd.AddCommand(cli.SiteCmd())
	rootCmd.AddCommand(cli.DeployCmd())
	rootCmd.AddCommand(cli.RetrieveCmd())
	rootCmd.AddCommand(cli.LogCmd())
	rootCmd.AddCommand(cli.ResetCmd())
	rootCmd.AddCommand(cli.ConfigCmd())

	// Developer tools
	rootCmd.AddCommand(cli.DevCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
