package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/fieldkit/internal/ports/secondary"
)

// FieldLogRepository implements secondary.FieldLogRepository with SQLite.
type FieldLogRepository struct {
	db *sql.DB
}

// NewFieldLogRepository creates a new SQLite field log repository.
func NewFieldLogRepository(db *sql.DB) *FieldLogRepository {
	return &FieldLogRepository{db: db}
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Create persists a new field log entry.
// An empty Timestamp is filled with the current UTC time.
func (r *FieldLogRepository) Create(ctx context.Context, log *secondary.FieldLogRecord) error {
	if log.Timestamp == "" {
		log.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO field_logs (id, timestamp, operator, entity_type, entity_id, action, field_name, old_value, new_value) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		log.ID,
		log.Timestamp,
		nullable(log.Operator),
		log.EntityType,
		log.EntityID,
		log.Action,
		nullable(log.FieldName),
		nullable(log.OldValue),
		nullable(log.NewValue),
	)
	if err != nil {
		return fmt.Errorf("failed to create field log: %w", err)
	}

	return nil
}

// List retrieves log entries matching the given filters.
func (r *FieldLogRepository) List(ctx context.Context, filters secondary.FieldLogFilters) ([]*secondary.FieldLogRecord, error) {
	query := `SELECT id, timestamp, operator, entity_type, entity_id, action, field_name, old_value, new_value FROM field_logs WHERE 1=1`
	args := []any{}

	if filters.EntityType != "" {
		query += " AND entity_type = ?"
		args = append(args, filters.EntityType)
	}

	if filters.EntityID != "" {
		query += " AND entity_id = ?"
		args = append(args, filters.EntityID)
	}

	if filters.Operator != "" {
		query += " AND operator = ?"
		args = append(args, filters.Operator)
	}

	if filters.Action != "" {
		query += " AND action = ?"
		args = append(args, filters.Action)
	}

	if filters.FieldName != "" {
		query += " AND field_name = ?"
		args = append(args, filters.FieldName)
	}

	if filters.FieldPrefix != "" {
		query += " AND substr(field_name, 1, ?) = ?"
		args = append(args, len(filters.FieldPrefix), filters.FieldPrefix)
	}

	// ids are uuid v7, so they break timestamp ties in insertion order
	query += " ORDER BY timestamp DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list field logs: %w", err)
	}
	defer rows.Close()

	var logs []*secondary.FieldLogRecord
	for rows.Next() {
		var (
			operator  sql.NullString
			fieldName sql.NullString
			oldValue  sql.NullString
			newValue  sql.NullString
			timestamp time.Time
		)

		record := &secondary.FieldLogRecord{}
		err := rows.Scan(&record.ID,
			&timestamp,
			&operator,
			&record.EntityType,
			&record.EntityID,
			&record.Action,
			&fieldName,
			&oldValue,
			&newValue)
		if err != nil {
			return nil, fmt.Errorf("failed to scan field log: %w", err)
		}
		record.Timestamp = timestamp.UTC().Format(time.RFC3339)
		record.Operator = operator.String
		record.FieldName = fieldName.String
		record.OldValue = oldValue.String
		record.NewValue = newValue.String

		logs = append(logs, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate field logs: %w", err)
	}

	return logs, nil
}

// PruneOlderThan deletes log entries older than the given number of days.
func (r *FieldLogRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM field_logs WHERE timestamp < strftime('%Y-%m-%dT%H:%M:%SZ', 'now', ?)",
		fmt.Sprintf("-%d days", days),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune field logs: %w", err)
	}

	count, _ := result.RowsAffected()
	return int(count), nil
}

// Ensure FieldLogRepository implements the interface
var _ secondary.FieldLogRepository = (*FieldLogRepository)(nil)
