package secondary

import "context"

// Audit log entity types.
const (
	EntitySite     = "site"
	EntityProgress = "progress"
)

// LogWriter defines the interface for writing audit log entries.
// Implementations extract the operator from context.
type LogWriter interface {
	// LogUpdate logs an update operation for an entity field.
	// fieldName, oldValue, newValue describe what changed.
	LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error

	// LogComplete logs that a lifecycle flag was set on an entity.
	LogComplete(ctx context.Context, entityType, entityID, fieldName string) error

	// LogReset logs that an entity was restored to its defaults.
	LogReset(ctx context.Context, entityType, entityID string) error
}
