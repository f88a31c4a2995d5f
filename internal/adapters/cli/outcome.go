package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/example/fieldkit/internal/ports/primary"
)

// ErrRejected wraps every step the workflow refused.
var ErrRejected = errors.New("rejected")

func rejection(reason string) error {
	return fmt.Errorf("%w: %s", ErrRejected, reason)
}

// report prints an accepted outcome or converts a rejection into an error.
func report(out io.Writer, outcome *primary.StepOutcome, msg string) error {
	if !outcome.Accepted {
		return rejection(outcome.Reason)
	}
	fmt.Fprintf(out, "✓ %s\n", msg)
	fmt.Fprintf(out, "  Next: step %d\n", outcome.Cursor)
	return nil
}
