package primary

import "context"

// LogService defines the primary port for field activity log operations.
type LogService interface {
	// ListLogs retrieves log entries matching the given filters, newest first.
	ListLogs(ctx context.Context, filters LogFilters) ([]*LogEntry, error)

	// PruneLogs deletes log entries older than the specified number of days.
	PruneLogs(ctx context.Context, olderThanDays int) (int, error)
}

// LogEntry represents a field activity log entry at the port boundary.
type LogEntry struct {
	ID         string
	Timestamp  string
	Operator   string
	EntityType string
	EntityID   string
	Action     string // 'update', 'complete', 'reset'
	FieldName  string
	OldValue   string
	NewValue   string
}

// LogFilters contains filter options for querying logs.
// Section is a section name (e.g. "deviceSetup"), or "retrieval" for every
// retrieval section.
type LogFilters struct {
	EntityType string
	EntityID   string
	Operator   string
	Action     string
	Section    string
	Limit      int
}
