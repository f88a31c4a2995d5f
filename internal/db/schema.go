package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema for fresh fieldkit installs.
// This schema reflects the current state after all migrations.
//
// This is the single source of truth for the database schema. Tests load it via
// GetSchemaSQL() so that repository code referencing a missing column fails
// immediately with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Key-value storage (site set, progress cursor, session keys)
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Field logs (audit trail of accepted field actions)
CREATE TABLE IF NOT EXISTS field_logs (
	id TEXT PRIMARY KEY,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	operator TEXT,
	entity_type TEXT NOT NULL CHECK(entity_type IN ('site', 'progress')),
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('update', 'complete', 'reset')),
	field_name TEXT,
	old_value TEXT,
	new_value TEXT
);

CREATE INDEX IF NOT EXISTS idx_field_logs_entity ON field_logs(entity_type, entity_id);
CREATE INDEX IF NOT EXISTS idx_field_logs_timestamp ON field_logs(timestamp);
`

const schemaVersionSQL = `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)
`

// InitSchema creates the database schema on a fresh database, or runs pending
// migrations on an existing one.
func InitSchema(db *sql.DB) error {
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}

	if tableCount > 0 {
		return RunMigrations(db)
	}

	// Fresh install - create modern schema directly and mark every migration applied
	if _, err := db.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := db.Exec(schemaVersionSQL); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	for _, m := range migrations {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
