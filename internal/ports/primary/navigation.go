package primary

import (
	"context"

	"github.com/example/fieldkit/internal/core/flow"
)

// NavigationService defines the primary port for the flow gate.
type NavigationService interface {
	// CanOpen decides whether the step with the given id may be opened.
	// Unknown ids are rejected with a reason, not an error.
	CanOpen(ctx context.Context, stepID int) *StepAccess

	// CanOpenScreen is CanOpen keyed by screen name.
	CanOpenScreen(ctx context.Context, screen string) *StepAccess

	// Board returns every catalog step with its display status.
	Board(ctx context.Context) *Board
}

// StepAccess is the flow gate decision for one step.
type StepAccess struct {
	Step    flow.Step
	Allowed bool
	Reason  string
}

// Board is the home-screen checklist.
type Board struct {
	Cursor            int
	AllSitesCompleted bool
	Steps             []BoardStep
}

// BoardStep is one checklist row.
type BoardStep struct {
	Step   flow.Step
	Status flow.StepStatus
	Reason string // why the step is locked
}
