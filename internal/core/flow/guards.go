package flow

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// AccessStepContext provides context for step unlock guards.
type AccessStepContext struct {
	Step              Step
	Cursor            int
	AllSitesCompleted bool
}

// CanAccessStep evaluates whether a step may be opened.
// Rules:
// - Deployment steps unlock up to the cursor
// - Deployment steps are sealed once every site is completed
// - Retrieval steps unlock as a block once every site is completed
// - Summary steps are always reachable
func CanAccessStep(ctx AccessStepContext) GuardResult {
	s := ctx.Step

	switch s.Phase {
	case PhaseDeployment:
		if ctx.AllSitesCompleted {
			return GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("%s is locked: all sites are deployed, continue with retrieval", s.Title),
			}
		}
		if s.ID > ctx.Cursor {
			return GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("%s is locked: complete step %d first", s.Title, ctx.Cursor),
			}
		}
		return GuardResult{Allowed: true}

	case PhaseRetrieval:
		if !ctx.AllSitesCompleted {
			return GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("%s is locked: deploy all sites before retrieval", s.Title),
			}
		}
		return GuardResult{Allowed: true}

	case PhaseSummary:
		return GuardResult{Allowed: true}
	}

	return GuardResult{
		Allowed: false,
		Reason:  fmt.Sprintf("step %d has unknown phase %q", s.ID, s.Phase),
	}
}

// StepStatus is how a step is presented on the checklist board.
type StepStatus string

const (
	StepCompleted StepStatus = "completed"
	StepActive    StepStatus = "active"
	StepUnlocked  StepStatus = "unlocked"
	StepLocked    StepStatus = "locked"
)

// StatusOf classifies a step for display given the same context the gate uses.
// Deployment steps below the cursor are completed and the cursor step is active.
func StatusOf(ctx AccessStepContext) StepStatus {
	s := ctx.Step
	if s.Phase == PhaseDeployment && ctx.AllSitesCompleted {
		return StepCompleted
	}
	if !CanAccessStep(ctx).Allowed {
		return StepLocked
	}
	switch {
	case s.Phase == PhaseSummary:
		return StepUnlocked
	case s.ID < ctx.Cursor:
		return StepCompleted
	case s.ID == ctx.Cursor:
		return StepActive
	default:
		return StepUnlocked
	}
}
