package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/fieldkit/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the field checklist",
		Long:  "Show every checklist step as done, active, open or locked, followed by the day's progress.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()

			if err := wire.BoardAdapter().Show(ctx); err != nil {
				return err
			}
			if err := wire.WorkflowAdapter().Summary(ctx); err != nil {
				return err
			}

			if op := GetOperator(); op != "" {
				fmt.Printf("Operator: %s\n", color.New(color.FgCyan).Sprint(op))
			}
			return nil
		},
	}
}

// OpenCmd returns the open command
func OpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open [step-id|screen]",
		Short: "Check whether a checklist step can be opened",
		Long: `Check whether a checklist step can be opened.

Steps can be named by id (e.g. 3) or by screen (e.g. DeviceSetup).
Exits non-zero with the reason when the step is locked.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.BoardAdapter().Open(NewContext(), args[0])
		},
	}
}
