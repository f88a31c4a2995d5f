package app

import (
	"context"
	"time"

	"github.com/example/fieldkit/internal/clock"
	"github.com/example/fieldkit/internal/core/flow"
	"github.com/example/fieldkit/internal/core/site"
	"github.com/example/fieldkit/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// Ensure mocks implement the interfaces
var (
	_ secondary.KeyValueStore = (*mockKVStore)(nil)
	_ secondary.LogWriter     = (*mockLogWriter)(nil)
)

// mockKVStore implements secondary.KeyValueStore for testing.
type mockKVStore struct {
	values    map[string]string
	sets      int
	getErr    error
	setErr    error
	removeErr error
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{values: make(map[string]string)}
}

func (m *mockKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mockKVStore) Set(ctx context.Context, key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.values[key] = value
	return nil
}

func (m *mockKVStore) Remove(ctx context.Context, keys ...string) error {
	if m.removeErr != nil {
		return m.removeErr
	}
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

// logEntry is a call captured by mockLogWriter.
type logEntry struct {
	action, entityType, entityID, field, oldValue, newValue string
}

// mockLogWriter implements secondary.LogWriter for testing.
type mockLogWriter struct {
	entries []logEntry
}

func (m *mockLogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	m.entries = append(m.entries, logEntry{"update", entityType, entityID, fieldName, oldValue, newValue})
	return nil
}

func (m *mockLogWriter) LogComplete(ctx context.Context, entityType, entityID, fieldName string) error {
	m.entries = append(m.entries, logEntry{"complete", entityType, entityID, fieldName, "false", "true"})
	return nil
}

func (m *mockLogWriter) LogReset(ctx context.Context, entityType, entityID string) error {
	m.entries = append(m.entries, logEntry{"reset", entityType, entityID, "", "", ""})
	return nil
}

// ============================================================================
// Fixtures
// ============================================================================

var defaultSiteIDs = site.ClusterSiteIDs("C1", 7)

var fixedTime = time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC)

// testServices wires the full application layer over an in-memory store.
type testServices struct {
	kv         *mockKVStore
	logs       *mockLogWriter
	clock      *clock.FakeClock
	sites      *SiteServiceImpl
	progress   *ProgressServiceImpl
	nav        *NavigationServiceImpl
	deployment *DeploymentServiceImpl
	retrieval  *RetrievalServiceImpl
}

func newTestServices(siteIDs []string) *testServices {
	kv := newMockKVStore()
	logs := &mockLogWriter{}
	clk := clock.NewFakeClock(fixedTime)
	catalog := flow.DefaultCatalog()

	sites := NewSiteService(kv, logs, siteIDs)
	progress := NewProgressService(kv, logs)
	nav := NewNavigationService(catalog, sites, progress)

	return &testServices{
		kv:         kv,
		logs:       logs,
		clock:      clk,
		sites:      sites,
		progress:   progress,
		nav:        nav,
		deployment: NewDeploymentService(sites, progress, nav, catalog, kv),
		retrieval:  NewRetrievalService(sites, progress, nav, catalog, kv, clk),
	}
}
