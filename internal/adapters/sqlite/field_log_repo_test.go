package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/fieldkit/internal/adapters/sqlite"
	"github.com/example/fieldkit/internal/ports/secondary"
)

func TestFieldLogRepository_CreateAndList(t *testing.T) {
	repo := sqlite.NewFieldLogRepository(setupTestDB(t))
	ctx := context.Background()

	t.Run("creates log with all fields", func(t *testing.T) {
		record := &secondary.FieldLogRecord{
			ID:         "0190a000-0000-7000-8000-000000000001",
			Timestamp:  "2026-03-02T07:30:00Z",
			Operator:   "ranger-1",
			EntityType: secondary.EntitySite,
			EntityID:   "C1-S3",
			Action:     "update",
			FieldName:  "arrival",
			NewValue:   `{"time":"07:30"}`,
		}
		require.NoError(t, repo.Create(ctx, record))

		logs, err := repo.List(ctx, secondary.FieldLogFilters{EntityID: "C1-S3"})
		require.NoError(t, err)
		require.Len(t, logs, 1)

		got := logs[0]
		assert.Equal(t, "2026-03-02T07:30:00Z", got.Timestamp)
		assert.Equal(t, "ranger-1", got.Operator)
		assert.Equal(t, "site", got.EntityType)
		assert.Equal(t, "update", got.Action)
		assert.Equal(t, "arrival", got.FieldName)
		assert.Empty(t, got.OldValue)
		assert.Equal(t, `{"time":"07:30"}`, got.NewValue)
	})

	t.Run("fills missing timestamp", func(t *testing.T) {
		record := &secondary.FieldLogRecord{
			ID:         "0190a000-0000-7000-8000-000000000002",
			EntityType: secondary.EntityProgress,
			EntityID:   "currentStep",
			Action:     "reset",
		}
		require.NoError(t, repo.Create(ctx, record))
		assert.NotEmpty(t, record.Timestamp)
	})

	t.Run("rejects unknown action", func(t *testing.T) {
		err := repo.Create(ctx, &secondary.FieldLogRecord{
			ID:         "0190a000-0000-7000-8000-000000000003",
			EntityType: secondary.EntitySite,
			EntityID:   "C1-S1",
			Action:     "delete",
		})
		assert.Error(t, err)
	})
}

func TestFieldLogRepository_ListFiltersAndOrder(t *testing.T) {
	repo := sqlite.NewFieldLogRepository(setupTestDB(t))
	ctx := context.Background()

	entries := []secondary.FieldLogRecord{
		{ID: "0190a000-0000-7000-8000-00000000000a", Timestamp: "2026-03-02T07:00:00Z", Operator: "ana", EntityType: "site", EntityID: "C1-S1", Action: "update", FieldName: "arrival"},
		{ID: "0190a000-0000-7000-8000-00000000000b", Timestamp: "2026-03-02T08:00:00Z", Operator: "ana", EntityType: "site", EntityID: "C1-S1", Action: "complete", FieldName: "completed"},
		{ID: "0190a000-0000-7000-8000-00000000000c", Timestamp: "2026-03-02T08:00:00Z", Operator: "ben", EntityType: "progress", EntityID: "currentStep", Action: "update", FieldName: "currentStep"},
		{ID: "0190a000-0000-7000-8000-00000000000d", Timestamp: "2026-03-02T09:00:00Z", Operator: "ben", EntityType: "site", EntityID: "C1-S2", Action: "update", FieldName: "arrival"},
		{ID: "0190a000-0000-7000-8000-000000000009", Timestamp: "2026-03-01T12:00:00Z", Operator: "ana", EntityType: "site", EntityID: "C1-S1", Action: "update", FieldName: "retrieval.arrival"},
	}
	for i := range entries {
		require.NoError(t, repo.Create(ctx, &entries[i]))
	}

	t.Run("newest first with id tie-break", func(t *testing.T) {
		logs, err := repo.List(ctx, secondary.FieldLogFilters{})
		require.NoError(t, err)
		require.Len(t, logs, 5)
		assert.Equal(t, "0190a000-0000-7000-8000-00000000000d", logs[0].ID)
		assert.Equal(t, "0190a000-0000-7000-8000-00000000000c", logs[1].ID)
		assert.Equal(t, "0190a000-0000-7000-8000-00000000000b", logs[2].ID)
	})

	tests := []struct {
		name    string
		filters secondary.FieldLogFilters
		want    int
	}{
		{"by entity type", secondary.FieldLogFilters{EntityType: "site"}, 4},
		{"by entity id", secondary.FieldLogFilters{EntityID: "C1-S1"}, 3},
		{"by operator", secondary.FieldLogFilters{Operator: "ben"}, 2},
		{"by action", secondary.FieldLogFilters{Action: "complete"}, 1},
		{"by field", secondary.FieldLogFilters{FieldName: "arrival"}, 2},
		{"by field prefix", secondary.FieldLogFilters{FieldPrefix: "retrieval."}, 1},
		{"with limit", secondary.FieldLogFilters{Limit: 2}, 2},
		{"no match", secondary.FieldLogFilters{EntityID: "C9-S9"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs, err := repo.List(ctx, tt.filters)
			require.NoError(t, err)
			assert.Len(t, logs, tt.want)
		})
	}
}

func TestFieldLogRepository_PruneOlderThan(t *testing.T) {
	repo := sqlite.NewFieldLogRepository(setupTestDB(t))
	ctx := context.Background()

	old := time.Now().UTC().AddDate(0, 0, -40).Format(time.RFC3339)
	recent := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)

	require.NoError(t, repo.Create(ctx, &secondary.FieldLogRecord{ID: "old", Timestamp: old, EntityType: "site", EntityID: "C1-S1", Action: "update"}))
	require.NoError(t, repo.Create(ctx, &secondary.FieldLogRecord{ID: "recent", Timestamp: recent, EntityType: "site", EntityID: "C1-S1", Action: "update"}))

	pruned, err := repo.PruneOlderThan(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, pruned)

	logs, err := repo.List(ctx, secondary.FieldLogFilters{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "recent", logs[0].ID)
}
