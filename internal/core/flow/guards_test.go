package flow

import "testing"

func step(t *testing.T, id int) Step {
	t.Helper()
	s, ok := DefaultCatalog().ByID(id)
	if !ok {
		t.Fatalf("step %d not in catalog", id)
	}
	return s
}

func TestCanAccessStep(t *testing.T) {
	tests := []struct {
		name        string
		stepID      int
		cursor      int
		allComplete bool
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "first step on fresh install",
			stepID:      StepPreDeployment,
			cursor:      1,
			wantAllowed: true,
		},
		{
			name:        "step beyond cursor",
			stepID:      StepSiteArrival,
			cursor:      1,
			wantAllowed: false,
			wantReason:  "Site Arrival Setup is locked: complete step 1 first",
		},
		{
			name:        "step at cursor",
			stepID:      StepDeviceSetup,
			cursor:      3,
			wantAllowed: true,
		},
		{
			name:        "step before cursor stays open",
			stepID:      StepSiteArrival,
			cursor:      5,
			wantAllowed: true,
		},
		{
			name:        "deployment sealed after all sites complete",
			stepID:      StepPreDeployment,
			cursor:      6,
			allComplete: true,
			wantAllowed: false,
			wantReason:  "Pre-Deployment Checklist is locked: all sites are deployed, continue with retrieval",
		},
		{
			name:        "retrieval locked during deployment",
			stepID:      StepSiteRetrievalArrival,
			cursor:      15,
			wantAllowed: false,
			wantReason:  "Site Retrieval Arrival is locked: deploy all sites before retrieval",
		},
		{
			name:        "retrieval opens as a block",
			stepID:      StepDataOrganization,
			cursor:      1,
			allComplete: true,
			wantAllowed: true,
		},
		{
			name:        "summary reachable before anything",
			stepID:      StepDailySummary,
			cursor:      1,
			wantAllowed: true,
		},
		{
			name:        "summary reachable after deployment",
			stepID:      StepSiteSummary,
			cursor:      1,
			allComplete: true,
			wantAllowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanAccessStep(AccessStepContext{
				Step:              step(t, tt.stepID),
				Cursor:            tt.cursor,
				AllSitesCompleted: tt.allComplete,
			})
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v (reason %q)", result.Allowed, tt.wantAllowed, result.Reason)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
			if tt.wantAllowed && result.Error() != nil {
				t.Errorf("Error() = %v, want nil", result.Error())
			}
		})
	}
}

func TestCanAccessStep_UnknownPhase(t *testing.T) {
	result := CanAccessStep(AccessStepContext{Step: Step{ID: 99, Phase: "bogus"}, Cursor: 99})
	if result.Allowed {
		t.Fatal("expected unknown phase to be rejected")
	}
	if result.Error() == nil {
		t.Error("expected an error from rejected result")
	}
}

// Deployment gate holds for every cursor/step combination.
func TestCanAccessStep_DeploymentMonotonic(t *testing.T) {
	deployment := DefaultCatalog().Phase(PhaseDeployment)
	for cursor := 1; cursor <= 6; cursor++ {
		for _, s := range deployment {
			got := CanAccessStep(AccessStepContext{Step: s, Cursor: cursor}).Allowed
			want := s.ID <= cursor
			if got != want {
				t.Errorf("cursor=%d step=%d: allowed=%v, want %v", cursor, s.ID, got, want)
			}
			if CanAccessStep(AccessStepContext{Step: s, Cursor: cursor, AllSitesCompleted: true}).Allowed {
				t.Errorf("cursor=%d step=%d: deployment must be sealed once all sites complete", cursor, s.ID)
			}
		}
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name        string
		stepID      int
		cursor      int
		allComplete bool
		want        StepStatus
	}{
		{"passed step", StepSiteArrival, 4, false, StepCompleted},
		{"cursor step", StepPlacement, 4, false, StepActive},
		{"future step", StepGroundTruth, 4, false, StepLocked},
		{"summary", StepSiteSummary, 1, false, StepUnlocked},
		{"retrieval before deployment done", StepRecorderRetrieval, 6, false, StepLocked},
		{"deployment after all complete", StepDocumentation, 2, true, StepCompleted},
		{"retrieval after all complete", StepRecorderRetrieval, 1, true, StepUnlocked},
		{"retrieval cursor", StepRecorderRetrieval, 12, true, StepActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatusOf(AccessStepContext{Step: step(t, tt.stepID), Cursor: tt.cursor, AllSitesCompleted: tt.allComplete})
			if got != tt.want {
				t.Errorf("StatusOf = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	c := DefaultCatalog()

	if s, ok := c.ByScreen("GroundTruth"); !ok || s.ID != StepGroundTruth {
		t.Errorf("ByScreen(GroundTruth) = %+v, %v", s, ok)
	}
	if _, ok := c.ByID(9); ok {
		t.Error("step 9 should not exist")
	}
	if _, ok := c.ByScreen("Nowhere"); ok {
		t.Error("unknown screen should not resolve")
	}

	next, ok := c.Next(StepGroundTruth)
	if !ok || next.ID != StepSiteSummary {
		t.Errorf("Next(6) = %+v, %v", next, ok)
	}
	next, ok = c.Next(StepSiteRetrievalArrival)
	if !ok || next.ID != StepRecorderRetrieval {
		t.Errorf("Next(11) = %+v, %v", next, ok)
	}
	if _, ok := c.Next(StepDataOrganization); ok {
		t.Error("last step should have no successor")
	}

	if n := len(c.Phase(PhaseDeployment)); n != 6 {
		t.Errorf("deployment steps = %d, want 6", n)
	}
	if n := len(c.Phase(PhaseRetrieval)); n != 5 {
		t.Errorf("retrieval steps = %d, want 5", n)
	}
}
