// Package cli provides CLI commands for the fieldkit application.
package cli

import (
	"context"

	"github.com/example/fieldkit/internal/ctxutil"
	"github.com/example/fieldkit/internal/wire"
)

// globalOperator stores the --operator flag for the current CLI invocation.
// Set once at startup by SetOperator().
var globalOperator string

// SetOperator stores the operator name given on the command line.
// Should be called once at CLI startup in PersistentPreRun.
func SetOperator(name string) {
	globalOperator = name
}

// GetOperator returns the operator for this invocation: the flag value,
// falling back to the configured operator.
func GetOperator() string {
	if globalOperator != "" {
		return globalOperator
	}
	return wire.Config().Operator
}

// NewContext creates a context.Background() with the operator embedded.
// CLI commands should use this instead of context.Background() directly.
func NewContext() context.Context {
	ctx := context.Background()
	if op := GetOperator(); op != "" {
		return ctxutil.WithOperator(ctx, op)
	}
	return ctx
}
