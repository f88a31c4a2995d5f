// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/example/fieldkit/internal/core/flow"
	"github.com/example/fieldkit/internal/ports/primary"
)

const rule = "────────────────────────────────────────────────────────────────"

// BoardAdapter renders the checklist board and answers flow gate queries.
type BoardAdapter struct {
	nav primary.NavigationService
	out io.Writer
}

// NewBoardAdapter creates a new BoardAdapter with the given service.
func NewBoardAdapter(nav primary.NavigationService, out io.Writer) *BoardAdapter {
	return &BoardAdapter{
		nav: nav,
		out: out,
	}
}

// Show prints every catalog step grouped by phase.
func (a *BoardAdapter) Show(ctx context.Context) error {
	board := a.nav.Board(ctx)

	fmt.Fprintf(a.out, "\nField checklist (cursor: step %d)\n", board.Cursor)
	if board.AllSitesCompleted {
		fmt.Fprintln(a.out, color.New(color.FgHiGreen).Sprint("All sites deployed. Retrieval is open."))
	}

	var phase flow.Phase
	for _, row := range board.Steps {
		if row.Step.Phase != phase {
			phase = row.Step.Phase
			fmt.Fprintf(a.out, "\n%s\n%s\n", strings.ToUpper(string(phase)), rule)
		}
		fmt.Fprintf(a.out, "%3d  %s %s\n", row.Step.ID, statusBadge(row.Status), row.Step.Title)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Open checks whether a step may be opened. target is a step id or a screen name.
func (a *BoardAdapter) Open(ctx context.Context, target string) error {
	var access *primary.StepAccess
	if id, err := strconv.Atoi(target); err == nil {
		access = a.nav.CanOpen(ctx, id)
	} else {
		access = a.nav.CanOpenScreen(ctx, target)
	}

	if !access.Allowed {
		return rejection(access.Reason)
	}
	fmt.Fprintf(a.out, "✓ %s (step %d) is open\n", access.Step.Title, access.Step.ID)
	return nil
}

// statusBadge pads before colouring so columns line up with colour enabled.
func statusBadge(status flow.StepStatus) string {
	switch status {
	case flow.StepCompleted:
		return color.New(color.FgHiGreen).Sprintf("%-10s", "[done]")
	case flow.StepActive:
		return color.New(color.FgHiCyan).Sprintf("%-10s", "[active]")
	case flow.StepUnlocked:
		return color.New(color.FgWhite).Sprintf("%-10s", "[open]")
	default:
		return color.New(color.FgHiBlack).Sprintf("%-10s", "[locked]")
	}
}
