package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	oldCommit, oldBuild := Commit, BuildTime
	defer func() { Commit, BuildTime = oldCommit, oldBuild }()

	Commit = "0123456789abcdef"
	BuildTime = "2026-03-01T00:00:00Z"

	got := String()
	if !strings.HasPrefix(got, "fieldkit dev") {
		t.Errorf("String() = %q, want fieldkit prefix", got)
	}
	if !strings.Contains(got, "commit: 0123456") || strings.Contains(got, "0123456789") {
		t.Errorf("String() = %q, want commit shortened to 7 characters", got)
	}
	if !strings.Contains(got, "built: 2026-03-01T00:00:00Z") {
		t.Errorf("String() = %q, want build time", got)
	}
}
