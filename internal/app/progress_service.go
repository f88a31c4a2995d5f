package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/example/fieldkit/internal/core/flow"
	"github.com/example/fieldkit/internal/ports/primary"
	"github.com/example/fieldkit/internal/ports/secondary"
)

// ProgressServiceImpl implements the ProgressService interface.
type ProgressServiceImpl struct {
	kv        secondary.KeyValueStore
	logWriter secondary.LogWriter
}

// NewProgressService creates a new ProgressService with injected dependencies.
func NewProgressService(kv secondary.KeyValueStore, logWriter secondary.LogWriter) *ProgressServiceImpl {
	return &ProgressServiceImpl{
		kv:        kv,
		logWriter: logWriter,
	}
}

// GetStep returns the cursor, defaulting to the first step.
func (s *ProgressServiceImpl) GetStep(ctx context.Context) int {
	raw, found, err := s.kv.Get(ctx, secondary.KeyCurrentStep)
	if err != nil || !found {
		return flow.InitialStep
	}
	step, err := strconv.Atoi(raw)
	if err != nil {
		return flow.InitialStep
	}
	return step
}

// SetStep stores the cursor. No ordering is enforced.
func (s *ProgressServiceImpl) SetStep(ctx context.Context, step int) error {
	old := s.GetStep(ctx)
	if err := s.kv.Set(ctx, secondary.KeyCurrentStep, strconv.Itoa(step)); err != nil {
		return fmt.Errorf("failed to save current step: %w", err)
	}
	if old != step {
		_ = s.logWriter.LogUpdate(ctx, secondary.EntityProgress, secondary.KeyCurrentStep, secondary.KeyCurrentStep, strconv.Itoa(old), strconv.Itoa(step))
	}
	return nil
}

// Reset sets the cursor back to the first step.
func (s *ProgressServiceImpl) Reset(ctx context.Context) error {
	if err := s.kv.Set(ctx, secondary.KeyCurrentStep, strconv.Itoa(flow.InitialStep)); err != nil {
		return fmt.Errorf("failed to reset current step: %w", err)
	}
	_ = s.logWriter.LogReset(ctx, secondary.EntityProgress, secondary.KeyCurrentStep)
	return nil
}

// Ensure ProgressServiceImpl implements the interface
var _ primary.ProgressService = (*ProgressServiceImpl)(nil)
