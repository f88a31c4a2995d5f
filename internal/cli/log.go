package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/fieldkit/internal/ports/primary"
	"github.com/example/fieldkit/internal/wire"
)

// LogCmd returns the log command
func LogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the field activity log",
		Long:  "Show recorded section updates, completions and resets, newest first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := primary.LogFilters{}
			filters.EntityType, _ = cmd.Flags().GetString("type")
			filters.EntityID, _ = cmd.Flags().GetString("entity")
			filters.Operator, _ = cmd.Flags().GetString("by")
			filters.Action, _ = cmd.Flags().GetString("action")
			filters.Section, _ = cmd.Flags().GetString("section")
			filters.Limit, _ = cmd.Flags().GetInt("limit")

			return wire.LogAdapter().List(NewContext(), filters)
		},
	}

	cmd.Flags().String("type", "", "Filter by entity type (site, progress)")
	cmd.Flags().String("entity", "", "Filter by entity id (e.g. C1-S3)")
	cmd.Flags().String("by", "", "Filter by operator")
	cmd.Flags().String("action", "", "Filter by action (update, complete, reset)")
	cmd.Flags().String("section", "", "Filter by section (e.g. deviceSetup, retrieval.deviceStatus, or retrieval for all)")
	cmd.Flags().IntP("limit", "n", 50, "Maximum entries to show")

	prune := &cobra.Command{
		Use:   "prune",
		Short: "Delete old log entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")
			return wire.LogAdapter().Prune(NewContext(), days)
		},
	}
	prune.Flags().Int("days", 90, "Delete entries older than this many days")
	cmd.AddCommand(prune)

	return cmd
}
