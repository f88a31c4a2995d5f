// Package flow contains the step catalog and the pure unlock rules that
// decide which step of the field workflow may be opened.
package flow

// Phase groups steps by the workflow they belong to.
type Phase string

const (
	PhaseDeployment Phase = "deployment"
	PhaseRetrieval  Phase = "retrieval"
	PhaseSummary    Phase = "summary"
)

// Step is one entry of the home-screen checklist.
type Step struct {
	ID     int
	Title  string
	Screen string
	Phase  Phase
}

// Well-known step ids.
const (
	StepPreDeployment        = 1
	StepSiteArrival          = 2
	StepDeviceSetup          = 3
	StepPlacement            = 4
	StepDocumentation        = 5
	StepGroundTruth          = 6
	StepSiteSummary          = 7
	StepDailySummary         = 8
	StepSiteRetrievalArrival = 11
	StepRecorderRetrieval    = 12
	StepGroundTruthUpdate    = 13
	StepRetrievalSummary     = 14
	StepDataOrganization     = 15
)

// InitialStep is the cursor value of a fresh install.
const InitialStep = StepPreDeployment

// Catalog is an ordered list of steps.
type Catalog []Step

// DefaultCatalog returns the standard deployment and retrieval checklist.
func DefaultCatalog() Catalog {
	return Catalog{
		{ID: StepPreDeployment, Title: "Pre-Deployment Checklist", Screen: "PreDeployment", Phase: PhaseDeployment},
		{ID: StepSiteArrival, Title: "Site Arrival Setup", Screen: "SiteArrival", Phase: PhaseDeployment},
		{ID: StepDeviceSetup, Title: "Device Setup", Screen: "DeviceSetup", Phase: PhaseDeployment},
		{ID: StepPlacement, Title: "Placement Checklist", Screen: "Placement", Phase: PhaseDeployment},
		{ID: StepDocumentation, Title: "Deployment Documentation", Screen: "Documentation", Phase: PhaseDeployment},
		{ID: StepGroundTruth, Title: "Ground Truthing", Screen: "GroundTruth", Phase: PhaseDeployment},
		{ID: StepSiteSummary, Title: "Site Summary", Screen: "SiteSummary", Phase: PhaseSummary},
		{ID: StepDailySummary, Title: "Daily Summary", Screen: "DailySummary", Phase: PhaseSummary},
		{ID: StepSiteRetrievalArrival, Title: "Site Retrieval Arrival", Screen: "SiteRetrievalArrival", Phase: PhaseRetrieval},
		{ID: StepRecorderRetrieval, Title: "Recorder Retrieval", Screen: "RecorderRetrieval", Phase: PhaseRetrieval},
		{ID: StepGroundTruthUpdate, Title: "Ground Truth Update", Screen: "GroundTruthUpdate", Phase: PhaseRetrieval},
		{ID: StepRetrievalSummary, Title: "Retrieval Summary", Screen: "RetrievalSummary", Phase: PhaseRetrieval},
		{ID: StepDataOrganization, Title: "Data Organization", Screen: "DataOrganization", Phase: PhaseRetrieval},
	}
}

// ByID looks up a step by its numeric id.
func (c Catalog) ByID(id int) (Step, bool) {
	for _, s := range c {
		if s.ID == id {
			return s, true
		}
	}
	return Step{}, false
}

// ByScreen looks up a step by its screen name.
func (c Catalog) ByScreen(screen string) (Step, bool) {
	for _, s := range c {
		if s.Screen == screen {
			return s, true
		}
	}
	return Step{}, false
}

// Next returns the step following id in catalog order, or false when id is
// the last step or unknown.
func (c Catalog) Next(id int) (Step, bool) {
	for i, s := range c {
		if s.ID == id && i+1 < len(c) {
			return c[i+1], true
		}
	}
	return Step{}, false
}

// Phase returns the subset of steps in the given phase, preserving order.
func (c Catalog) Phase(p Phase) Catalog {
	var out Catalog
	for _, s := range c {
		if s.Phase == p {
			out = append(out, s)
		}
	}
	return out
}
