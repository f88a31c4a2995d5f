package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_kv_table",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_field_logs_table",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_field_logs_indexes",
		Up:      migrationV3,
	},
}

// SchemaVersion returns the highest applied migration version, or 0.
func SchemaVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	return version, nil
}

// RunMigrations executes all pending migrations
func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec(schemaVersionSQL); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	currentVersion, err := SchemaVersion(db)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		fmt.Printf("Running migration %d: %s\n", migration.Version, migration.Name)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		fmt.Printf("✓ Migration %d completed\n", migration.Version)
	}

	return nil
}

// migrationV1 creates the key-value table backing the site set and cursor
func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create kv table: %w", err)
	}
	return nil
}

// migrationV2 adds the field_logs audit table
func migrationV2(tx *sql.Tx) error {
	_, err := tx.Exec(`
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
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create field_logs table: %w", err)
	}
	return nil
}

// migrationV3 indexes field_logs for the log listing filters
func migrationV3(tx *sql.Tx) error {
	stmts := []string{
		"CREATE INDEX IF NOT EXISTS idx_field_logs_entity ON field_logs(entity_type, entity_id)",
		"CREATE INDEX IF NOT EXISTS idx_field_logs_timestamp ON field_logs(timestamp)",
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
