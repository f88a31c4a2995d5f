// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application interacts with external systems.
package secondary

import "context"

// Keys persisted in the key-value store.
const (
	KeySitesData              = "sites_data"
	KeyCurrentStep            = "currentStep"
	KeyCurrentSiteID          = "currentSiteId"
	KeyCurrentRetrievalSiteID = "currentRetrievalSiteId"
	KeyDailyCompletedCount    = "dailyCompletedCount"
	KeyPreDeployment          = "preDeployment"
)

// SessionKeys are the auxiliary keys cleared by a site reset.
var SessionKeys = []string{
	KeyCurrentSiteID,
	KeyCurrentRetrievalSiteID,
	KeyDailyCompletedCount,
	KeyPreDeployment,
}

// KeyValueStore defines the secondary port for the device-local key-value storage
// that holds the site set, the progress cursor and the session keys.
// Values are opaque strings; callers own the encoding.
type KeyValueStore interface {
	// Get returns the value for key. found is false when the key was never set.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes the given keys. Missing keys are ignored.
	Remove(ctx context.Context, keys ...string) error
}

// FieldLogRepository defines the secondary port for field log (audit trail) persistence.
// Logs are immutable - no Update operations, but old entries can be pruned.
type FieldLogRepository interface {
	// Create persists a new field log entry.
	Create(ctx context.Context, log *FieldLogRecord) error

	// List retrieves log entries matching the given filters, newest first.
	List(ctx context.Context, filters FieldLogFilters) ([]*FieldLogRecord, error)

	// PruneOlderThan deletes log entries older than the given number of days.
	// Returns the number of deleted entries.
	PruneOlderThan(ctx context.Context, days int) (int, error)
}

// FieldLogRecord represents a field log entry as stored in persistence.
type FieldLogRecord struct {
	ID         string
	Timestamp  string
	Operator   string // Empty string means null
	EntityType string // 'site', 'progress'
	EntityID   string
	Action     string // 'update', 'complete', 'reset'
	FieldName  string // Empty string means null
	OldValue   string // Empty string means null
	NewValue   string // Empty string means null
}

// FieldLogFilters contains filter options for querying logs.
// FieldName matches exactly; FieldPrefix matches every field starting with it.
type FieldLogFilters struct {
	EntityType  string
	EntityID    string
	Operator    string
	Action      string
	FieldName   string
	FieldPrefix string
	Limit       int
}
