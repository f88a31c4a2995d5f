package app

import (
	"context"
	"fmt"

	"github.com/example/fieldkit/internal/core/flow"
	"github.com/example/fieldkit/internal/ports/primary"
)

// NavigationServiceImpl implements the NavigationService interface.
type NavigationServiceImpl struct {
	catalog  flow.Catalog
	sites    primary.SiteService
	progress primary.ProgressService
}

// NewNavigationService creates a new NavigationService over the given catalog.
func NewNavigationService(catalog flow.Catalog, sites primary.SiteService, progress primary.ProgressService) *NavigationServiceImpl {
	return &NavigationServiceImpl{
		catalog:  catalog,
		sites:    sites,
		progress: progress,
	}
}

// CanOpen evaluates the flow gate for a step id.
func (s *NavigationServiceImpl) CanOpen(ctx context.Context, stepID int) *primary.StepAccess {
	step, ok := s.catalog.ByID(stepID)
	if !ok {
		return &primary.StepAccess{
			Step:    flow.Step{ID: stepID},
			Allowed: false,
			Reason:  fmt.Sprintf("unknown step %d", stepID),
		}
	}
	return s.evaluate(ctx, step)
}

// CanOpenScreen evaluates the flow gate for a screen name.
func (s *NavigationServiceImpl) CanOpenScreen(ctx context.Context, screen string) *primary.StepAccess {
	step, ok := s.catalog.ByScreen(screen)
	if !ok {
		return &primary.StepAccess{
			Step:    flow.Step{Screen: screen},
			Allowed: false,
			Reason:  fmt.Sprintf("unknown screen %q", screen),
		}
	}
	return s.evaluate(ctx, step)
}

// Board classifies every catalog step for display.
func (s *NavigationServiceImpl) Board(ctx context.Context) *primary.Board {
	cursor := s.progress.GetStep(ctx)
	allDone := s.sites.AllCompleted(ctx)

	board := &primary.Board{
		Cursor:            cursor,
		AllSitesCompleted: allDone,
		Steps:             make([]primary.BoardStep, 0, len(s.catalog)),
	}
	for _, step := range s.catalog {
		gctx := flow.AccessStepContext{Step: step, Cursor: cursor, AllSitesCompleted: allDone}
		row := primary.BoardStep{Step: step, Status: flow.StatusOf(gctx)}
		if row.Status == flow.StepLocked {
			row.Reason = flow.CanAccessStep(gctx).Reason
		}
		board.Steps = append(board.Steps, row)
	}
	return board
}

func (s *NavigationServiceImpl) evaluate(ctx context.Context, step flow.Step) *primary.StepAccess {
	result := flow.CanAccessStep(flow.AccessStepContext{
		Step:              step,
		Cursor:            s.progress.GetStep(ctx),
		AllSitesCompleted: s.sites.AllCompleted(ctx),
	})
	return &primary.StepAccess{
		Step:    step,
		Allowed: result.Allowed,
		Reason:  result.Reason,
	}
}

// Ensure NavigationServiceImpl implements the interface
var _ primary.NavigationService = (*NavigationServiceImpl)(nil)
