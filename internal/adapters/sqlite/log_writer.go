package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/fieldkit/internal/clock"
	"github.com/example/fieldkit/internal/ctxutil"
	"github.com/example/fieldkit/internal/ports/secondary"
)

// LogWriterAdapter implements secondary.LogWriter using FieldLogRepository.
type LogWriterAdapter struct {
	logRepo secondary.FieldLogRepository
	clock   clock.Clock
}

// NewLogWriterAdapter creates a new LogWriterAdapter.
func NewLogWriterAdapter(logRepo secondary.FieldLogRepository, clk clock.Clock) *LogWriterAdapter {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &LogWriterAdapter{
		logRepo: logRepo,
		clock:   clk,
	}
}

// LogUpdate logs an update operation for an entity field.
func (w *LogWriterAdapter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	return w.writeLog(ctx, entityType, entityID, "update", fieldName, oldValue, newValue)
}

// LogComplete logs that a lifecycle flag was set.
func (w *LogWriterAdapter) LogComplete(ctx context.Context, entityType, entityID, fieldName string) error {
	return w.writeLog(ctx, entityType, entityID, "complete", fieldName, "false", "true")
}

// LogReset logs that an entity was restored to its defaults.
func (w *LogWriterAdapter) LogReset(ctx context.Context, entityType, entityID string) error {
	return w.writeLog(ctx, entityType, entityID, "reset", "", "", "")
}

// writeLog writes a log entry with common logic.
func (w *LogWriterAdapter) writeLog(ctx context.Context, entityType, entityID, action, fieldName, oldValue, newValue string) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate log id: %w", err)
	}

	record := &secondary.FieldLogRecord{
		ID:         id.String(),
		Timestamp:  clock.Stamp(w.clock.Now()),
		Operator:   ctxutil.OperatorFromContext(ctx),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		FieldName:  fieldName,
		OldValue:   oldValue,
		NewValue:   newValue,
	}

	return w.logRepo.Create(ctx, record)
}

// Ensure LogWriterAdapter implements the interface
var _ secondary.LogWriter = (*LogWriterAdapter)(nil)
