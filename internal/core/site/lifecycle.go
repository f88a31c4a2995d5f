package site

import (
	"fmt"

	"github.com/example/fieldkit/internal/models"
)

// DeploymentState is the position of a site in the deployment sub-flow.
type DeploymentState string

const (
	StateNotStarted       DeploymentState = "not_started"
	StateArrivalRecorded  DeploymentState = "arrival_recorded"
	StateDeviceConfigured DeploymentState = "device_configured"
	StatePlaced           DeploymentState = "placed"
	StateDocumented       DeploymentState = "documented"
	StateGroundTruthed    DeploymentState = "ground_truthed"
	StateCompleted        DeploymentState = "completed"
)

// RetrievalState is the position of a site in the retrieval sub-flow.
type RetrievalState string

const (
	RetrievalNotStarted  RetrievalState = "retrieval_not_started"
	RetrievalArrived     RetrievalState = "retrieval_arrived"
	DeviceRetrieved      RetrievalState = "device_retrieved"
	GroundTruthUpdated   RetrievalState = "ground_truth_updated"
	RetrievalCompleted   RetrievalState = "retrieval_completed"
	RetrievalUnavailable RetrievalState = "retrieval_unavailable"
)

// deploymentOrder lists sections in the order they must be filled.
var deploymentOrder = []models.Section{
	models.SectionArrival,
	models.SectionDeviceSetup,
	models.SectionPlacement,
	models.SectionDocumentation,
	models.SectionGroundTruth,
}

// retrievalOrder lists retrieval sections in the order they must be filled.
var retrievalOrder = []models.Section{
	models.SectionRetrievalArrival,
	models.SectionDeviceStatus,
	models.SectionGroundTruthUpdate,
}

// StateOf derives the deployment state from the sections present on a record.
// The furthest contiguous filled section wins; completed overrides everything.
func StateOf(s models.Site) DeploymentState {
	if s.Completed {
		return StateCompleted
	}
	switch {
	case s.Arrival == nil:
		return StateNotStarted
	case s.DeviceSetup == nil:
		return StateArrivalRecorded
	case s.Placement == nil:
		return StateDeviceConfigured
	case s.Documentation == nil:
		return StatePlaced
	case s.GroundTruth == nil:
		return StateDocumented
	default:
		return StateGroundTruthed
	}
}

// RetrievalStateOf derives the retrieval state. Sites that are not deployed
// report RetrievalUnavailable.
func RetrievalStateOf(s models.Site) RetrievalState {
	if !s.Completed {
		return RetrievalUnavailable
	}
	r := s.Retrieval
	switch {
	case r != nil && r.Completed:
		return RetrievalCompleted
	case r == nil || r.Arrival == nil:
		return RetrievalNotStarted
	case r.DeviceStatus == nil:
		return RetrievalArrived
	case r.GroundTruthUpdate == nil:
		return DeviceRetrieved
	default:
		return GroundTruthUpdated
	}
}

// IsTerminal reports whether both sub-flows have reached their terminal state.
func IsTerminal(s models.Site) bool {
	return RetrievalStateOf(s) == RetrievalCompleted
}

// sectionPresent reports whether the given section is already filled.
func sectionPresent(s models.Site, section models.Section) bool {
	switch section {
	case models.SectionArrival:
		return s.Arrival != nil
	case models.SectionDeviceSetup:
		return s.DeviceSetup != nil
	case models.SectionPlacement:
		return s.Placement != nil
	case models.SectionDocumentation:
		return s.Documentation != nil
	case models.SectionGroundTruth:
		return s.GroundTruth != nil
	case models.SectionPhotos:
		return s.Photos != nil
	}
	r := s.Retrieval
	if r == nil {
		return false
	}
	switch section {
	case models.SectionRetrievalArrival:
		return r.Arrival != nil
	case models.SectionDeviceStatus:
		return r.DeviceStatus != nil
	case models.SectionGroundTruthUpdate:
		return r.GroundTruthUpdate != nil
	case models.SectionTimeRetrieved:
		return r.TimeRetrieved != ""
	}
	return false
}

// predecessor returns the section that must be present before section may be
// written, and false when the section has no predecessor.
func predecessor(section models.Section) (models.Section, bool) {
	for _, order := range [][]models.Section{deploymentOrder, retrievalOrder} {
		for i, s := range order {
			if s == section {
				if i == 0 {
					return "", false
				}
				return order[i-1], true
			}
		}
	}
	if section == models.SectionTimeRetrieved {
		return models.SectionDeviceStatus, true
	}
	return "", false
}

// ApplySectionContext provides context for section transition guards.
type ApplySectionContext struct {
	Site    models.Site
	Section models.Section
}

// CanApplySection evaluates whether a section may be written to a site.
// Rules:
// - Deployment sections are frozen once the site is completed
// - Retrieval sections require a completed deployment
// - Retrieval sections are frozen once retrieval is completed
// - The preceding section must already be present
// - Photos may be attached any time before completion
func CanApplySection(ctx ApplySectionContext) GuardResult {
	s := ctx.Site

	if !ctx.Section.IsRetrieval() {
		if s.Completed {
			return GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("site %s is already deployed; %s can no longer be changed", s.ID, ctx.Section),
			}
		}
	} else {
		if !s.Completed {
			return GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("site %s was not deployed yet", s.ID),
			}
		}
		if s.RetrievalCompleted() {
			return GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("retrieval of site %s is already complete", s.ID),
			}
		}
	}

	if prev, ok := predecessor(ctx.Section); ok && !sectionPresent(s, prev) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("complete %s for site %s before %s", prev, s.ID, ctx.Section),
		}
	}

	return GuardResult{Allowed: true}
}

// CanCompleteDeployment evaluates whether a site may be marked as deployed.
// Rules:
// - Ground truth must be recorded and valid
func CanCompleteDeployment(s models.Site) GuardResult {
	if s.GroundTruth == nil {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("ground truth for site %s is missing", s.ID),
		}
	}
	return ValidateGroundTruth(*s.GroundTruth)
}

// CanSelectForRetrieval evaluates whether a site may be picked for retrieval.
// Rules:
// - Site must be deployed
// - Retrieval must not already be complete
func CanSelectForRetrieval(s models.Site) GuardResult {
	if !s.Completed {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("site %s was not deployed yet", s.ID),
		}
	}
	if s.RetrievalCompleted() {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("retrieval of site %s is already complete", s.ID),
		}
	}
	return GuardResult{Allowed: true}
}

// CanCompleteRetrieval evaluates whether retrieval of a site may be closed.
// Rules:
// - Site must be deployed
// - Ground truth update must be recorded
func CanCompleteRetrieval(s models.Site) GuardResult {
	if !s.Completed {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("site %s was not deployed yet", s.ID),
		}
	}
	if s.Retrieval == nil || s.Retrieval.GroundTruthUpdate == nil {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("ground truth update for site %s is missing", s.ID),
		}
	}
	return GuardResult{Allowed: true}
}
