package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/fieldkit/internal/models"
	"github.com/example/fieldkit/internal/ports/primary"
	"github.com/example/fieldkit/internal/ports/secondary"
)

// ErrUnknownSection is returned when a log filter names no known section.
var ErrUnknownSection = errors.New("unknown section")

// retrievalSections selects every section under the retrieval object.
const retrievalSections = "retrieval"

// LogServiceImpl implements the LogService interface.
type LogServiceImpl struct {
	logRepo secondary.FieldLogRepository
}

// NewLogService creates a new LogService with injected dependencies.
func NewLogService(logRepo secondary.FieldLogRepository) *LogServiceImpl {
	return &LogServiceImpl{
		logRepo: logRepo,
	}
}

// ListLogs retrieves log entries matching the given filters.
func (s *LogServiceImpl) ListLogs(ctx context.Context, filters primary.LogFilters) ([]*primary.LogEntry, error) {
	repoFilters := secondary.FieldLogFilters{
		EntityType: filters.EntityType,
		EntityID:   filters.EntityID,
		Operator:   filters.Operator,
		Action:     filters.Action,
		Limit:      filters.Limit,
	}
	if err := applySectionFilter(&repoFilters, filters.Section); err != nil {
		return nil, err
	}

	records, err := s.logRepo.List(ctx, repoFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}

	entries := make([]*primary.LogEntry, len(records))
	for i, r := range records {
		entries[i] = s.recordToLogEntry(r)
	}
	return entries, nil
}

// PruneLogs deletes log entries older than the specified number of days.
func (s *LogServiceImpl) PruneLogs(ctx context.Context, olderThanDays int) (int, error) {
	if olderThanDays < 1 {
		return 0, fmt.Errorf("retention must be at least one day, got %d", olderThanDays)
	}
	return s.logRepo.PruneOlderThan(ctx, olderThanDays)
}

// Helper methods

// applySectionFilter narrows a query to one section's updates. Section
// filters only make sense for site entries, so they imply the site type.
func applySectionFilter(f *secondary.FieldLogFilters, section string) error {
	switch section {
	case "":
		return nil
	case retrievalSections:
		f.FieldPrefix = retrievalSections + "."
	default:
		sec, ok := models.ParseSection(section)
		if !ok {
			return fmt.Errorf("%w %q", ErrUnknownSection, section)
		}
		f.FieldName = string(sec)
	}
	f.EntityType = secondary.EntitySite
	return nil
}

func (s *LogServiceImpl) recordToLogEntry(r *secondary.FieldLogRecord) *primary.LogEntry {
	return &primary.LogEntry{
		ID:         r.ID,
		Timestamp:  r.Timestamp,
		Operator:   r.Operator,
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		Action:     r.Action,
		FieldName:  r.FieldName,
		OldValue:   r.OldValue,
		NewValue:   r.NewValue,
	}
}

// Ensure LogServiceImpl implements the interface
var _ primary.LogService = (*LogServiceImpl)(nil)
