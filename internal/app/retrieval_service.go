package app

import (
	"context"
	"fmt"

	"github.com/example/fieldkit/internal/clock"
	"github.com/example/fieldkit/internal/core/flow"
	coresite "github.com/example/fieldkit/internal/core/site"
	"github.com/example/fieldkit/internal/models"
	"github.com/example/fieldkit/internal/ports/primary"
	"github.com/example/fieldkit/internal/ports/secondary"
)

// RetrievalServiceImpl implements the RetrievalService interface.
type RetrievalServiceImpl struct {
	workflow
	clock clock.Clock
}

// NewRetrievalService creates a new RetrievalService with injected dependencies.
func NewRetrievalService(
	sites primary.SiteService,
	progress primary.ProgressService,
	nav primary.NavigationService,
	catalog flow.Catalog,
	kv secondary.KeyValueStore,
	clk clock.Clock,
) *RetrievalServiceImpl {
	return &RetrievalServiceImpl{
		workflow: workflow{
			sites:    sites,
			progress: progress,
			nav:      nav,
			catalog:  catalog,
			kv:       kv,
		},
		clock: clk,
	}
}

// SelectRetrievalSite makes the given deployed site the retrieval in progress.
func (s *RetrievalServiceImpl) SelectRetrievalSite(ctx context.Context, siteID string) (*primary.StepOutcome, error) {
	if out := s.gate(ctx, flow.StepSiteRetrievalArrival); out != nil {
		return out, nil
	}
	if _, _, err := coresite.ParseSiteID(siteID); err != nil {
		return rejected(err.Error(), s.progress.GetStep(ctx)), nil
	}

	site, found := s.sites.GetByID(ctx, siteID)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrSiteNotFound, siteID)
	}
	if r := coresite.CanSelectForRetrieval(*site); !r.Allowed {
		return rejected(r.Reason, s.progress.GetStep(ctx)), nil
	}

	if err := s.setKey(ctx, secondary.KeyCurrentRetrievalSiteID, siteID); err != nil {
		return nil, err
	}
	return accepted(site, s.progress.GetStep(ctx)), nil
}

// RecordRetrievalArrival records arrival at the current retrieval site.
// The deployment arrival coordinates are kept as the reference point.
func (s *RetrievalServiceImpl) RecordRetrievalArrival(ctx context.Context, arrivedAt string) (*primary.StepOutcome, error) {
	siteID := s.getKey(ctx, secondary.KeyCurrentRetrievalSiteID)
	if siteID == "" {
		return rejected(noRetrievalSite, s.progress.GetStep(ctx)), nil
	}
	site, found := s.sites.GetByID(ctx, siteID)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrSiteNotFound, siteID)
	}

	if arrivedAt == "" {
		arrivedAt = clock.Stamp(s.clock.Now())
	}
	arrival := models.RetrievalArrival{Time: arrivedAt}
	if site.Arrival != nil && site.Arrival.Coords != nil {
		ref := *site.Arrival.Coords
		arrival.ReferenceCoords = &ref
	}

	return s.recordStep(ctx, flow.StepSiteRetrievalArrival, siteID, models.RetrievalArrivalUpdate{Arrival: arrival})
}

// RecordDeviceRetrieval records the recorder condition.
func (s *RetrievalServiceImpl) RecordDeviceRetrieval(ctx context.Context, status models.DeviceStatus) (*primary.StepOutcome, error) {
	return s.recordCurrent(ctx, flow.StepRecorderRetrieval, models.DeviceStatusUpdate{Status: status})
}

// RecordGroundTruthUpdate records changes observed since deployment.
func (s *RetrievalServiceImpl) RecordGroundTruthUpdate(ctx context.Context, update models.GroundTruthUpdate) (*primary.StepOutcome, error) {
	return s.recordCurrent(ctx, flow.StepGroundTruthUpdate, models.GroundTruthRevisionUpdate{Update: update})
}

// CompleteRetrieval stamps and closes the current retrieval, then returns
// the cursor to the start of the retrieval flow.
func (s *RetrievalServiceImpl) CompleteRetrieval(ctx context.Context) (*primary.StepOutcome, error) {
	siteID := s.getKey(ctx, secondary.KeyCurrentRetrievalSiteID)
	if siteID == "" {
		return rejected(noRetrievalSite, s.progress.GetStep(ctx)), nil
	}
	if out := s.gate(ctx, flow.StepRetrievalSummary); out != nil {
		return out, nil
	}

	site, found := s.sites.GetByID(ctx, siteID)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrSiteNotFound, siteID)
	}
	if r := coresite.CanCompleteRetrieval(*site); !r.Allowed {
		return rejected(r.Reason, s.progress.GetStep(ctx)), nil
	}

	site, out, err := s.applySection(ctx, siteID, models.TimeRetrievedUpdate{Time: clock.Stamp(s.clock.Now())})
	if err != nil || out != nil {
		return out, err
	}
	if err := s.sites.MarkRetrievalComplete(ctx, siteID); err != nil {
		return nil, err
	}
	site.Retrieval.Completed = true

	if err := s.clearKeys(ctx, secondary.KeyCurrentRetrievalSiteID); err != nil {
		return nil, err
	}
	if err := s.progress.SetStep(ctx, flow.StepSiteRetrievalArrival); err != nil {
		return nil, err
	}
	return accepted(site, flow.StepSiteRetrievalArrival), nil
}

// DataOrganizationStatus reports whether every site has been retrieved.
func (s *RetrievalServiceImpl) DataOrganizationStatus(ctx context.Context) (*primary.DataOrganizationStatus, error) {
	status := &primary.DataOrganizationStatus{}
	for _, site := range s.sites.GetAll(ctx) {
		status.Total++
		if site.RetrievalCompleted() {
			status.Retrieved++
		} else {
			status.Pending = append(status.Pending, site.ID)
		}
	}

	if access := s.nav.CanOpen(ctx, flow.StepDataOrganization); !access.Allowed {
		status.Reason = access.Reason
		return status, nil
	}
	if !s.sites.AllRetrieved(ctx) {
		status.Reason = fmt.Sprintf("%d of %d sites still to retrieve.", len(status.Pending), status.Total)
		return status, nil
	}
	status.Ready = true
	return status, nil
}

// Helper methods

const noRetrievalSite = "No retrieval site selected."

func (s *RetrievalServiceImpl) recordCurrent(ctx context.Context, stepID int, u models.SectionUpdate) (*primary.StepOutcome, error) {
	siteID := s.getKey(ctx, secondary.KeyCurrentRetrievalSiteID)
	if siteID == "" {
		return rejected(noRetrievalSite, s.progress.GetStep(ctx)), nil
	}
	return s.recordStep(ctx, stepID, siteID, u)
}

// Ensure RetrievalServiceImpl implements the interface
var _ primary.RetrievalService = (*RetrievalServiceImpl)(nil)
