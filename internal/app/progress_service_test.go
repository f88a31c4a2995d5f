package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/fieldkit/internal/ports/secondary"
)

func TestGetStep_Defaults(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(kv *mockKVStore)
		want  int
	}{
		{"unset", func(kv *mockKVStore) {}, 1},
		{"unparsable", func(kv *mockKVStore) { kv.values[secondary.KeyCurrentStep] = "three" }, 1},
		{"read failure", func(kv *mockKVStore) { kv.getErr = errors.New("io") }, 1},
		{"stored", func(kv *mockKVStore) { kv.values[secondary.KeyCurrentStep] = "5" }, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newMockKVStore()
			tt.setup(kv)
			svc := NewProgressService(kv, &mockLogWriter{})
			assert.Equal(t, tt.want, svc.GetStep(ctx))
		})
	}
}

func TestSetStep_IsADumbRegister(t *testing.T) {
	kv := newMockKVStore()
	logs := &mockLogWriter{}
	svc := NewProgressService(kv, logs)
	ctx := context.Background()

	require.NoError(t, svc.SetStep(ctx, 5))
	require.NoError(t, svc.SetStep(ctx, 2))
	assert.Equal(t, 2, svc.GetStep(ctx))
	assert.Equal(t, "2", kv.values[secondary.KeyCurrentStep])

	require.Len(t, logs.entries, 2)
	assert.Equal(t, "5", logs.entries[1].oldValue)
	assert.Equal(t, "2", logs.entries[1].newValue)

	// unchanged value is not logged
	require.NoError(t, svc.SetStep(ctx, 2))
	assert.Len(t, logs.entries, 2)
}

func TestProgressReset(t *testing.T) {
	kv := newMockKVStore()
	svc := NewProgressService(kv, &mockLogWriter{})
	ctx := context.Background()

	require.NoError(t, svc.SetStep(ctx, 6))
	require.NoError(t, svc.Reset(ctx))
	assert.Equal(t, 1, svc.GetStep(ctx))

	kv.setErr = errors.New("disk full")
	err := svc.SetStep(ctx, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save current step")
}
