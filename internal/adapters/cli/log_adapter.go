package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/fieldkit/internal/ports/primary"
)

// LogAdapter renders the field activity log.
type LogAdapter struct {
	service primary.LogService
	out     io.Writer
}

// NewLogAdapter creates a new LogAdapter with the given service.
func NewLogAdapter(service primary.LogService, out io.Writer) *LogAdapter {
	return &LogAdapter{
		service: service,
		out:     out,
	}
}

// List prints log entries newest first.
func (a *LogAdapter) List(ctx context.Context, filters primary.LogFilters) error {
	entries, err := a.service.ListLogs(ctx, filters)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No log entries found")
		return nil
	}

	for _, e := range entries {
		who := e.Operator
		if who == "" {
			who = "-"
		}
		field := e.EntityID
		if e.FieldName != "" {
			field += "." + e.FieldName
		}
		fmt.Fprintf(a.out, "%s  %-10s %s %s\n", e.Timestamp, who, actionBadge(e.Action), field)
	}
	return nil
}

// Prune deletes entries older than the given number of days.
func (a *LogAdapter) Prune(ctx context.Context, days int) error {
	n, err := a.service.PruneLogs(ctx, days)
	if err != nil {
		return fmt.Errorf("failed to prune logs: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Pruned %d log entries older than %d days\n", n, days)
	return nil
}

func actionBadge(action string) string {
	label := fmt.Sprintf("%-8s", action)
	switch action {
	case "complete":
		return color.New(color.FgHiGreen).Sprint(label)
	case "reset":
		return color.New(color.FgRed).Sprint(label)
	default:
		return color.New(color.FgCyan).Sprint(label)
	}
}
