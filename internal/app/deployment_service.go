package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/example/fieldkit/internal/core/flow"
	coresite "github.com/example/fieldkit/internal/core/site"
	"github.com/example/fieldkit/internal/models"
	"github.com/example/fieldkit/internal/ports/primary"
	"github.com/example/fieldkit/internal/ports/secondary"
)

// DeploymentServiceImpl implements the DeploymentService interface.
type DeploymentServiceImpl struct {
	workflow
}

// NewDeploymentService creates a new DeploymentService with injected dependencies.
func NewDeploymentService(
	sites primary.SiteService,
	progress primary.ProgressService,
	nav primary.NavigationService,
	catalog flow.Catalog,
	kv secondary.KeyValueStore,
) *DeploymentServiceImpl {
	return &DeploymentServiceImpl{
		workflow: workflow{
			sites:    sites,
			progress: progress,
			nav:      nav,
			catalog:  catalog,
			kv:       kv,
		},
	}
}

// SelectSite makes the given site the deployment in progress.
func (s *DeploymentServiceImpl) SelectSite(ctx context.Context, siteID string) (*primary.StepOutcome, error) {
	if out := s.gate(ctx, flow.StepSiteArrival); out != nil {
		return out, nil
	}
	site, out, err := s.selectable(ctx, siteID)
	if err != nil || out != nil {
		return out, err
	}

	if err := s.setKey(ctx, secondary.KeyCurrentSiteID, siteID); err != nil {
		return nil, err
	}
	return accepted(site, s.progress.GetStep(ctx)), nil
}

// CompletePreDeployment records the equipment checklist.
func (s *DeploymentServiceImpl) CompletePreDeployment(ctx context.Context, checklist coresite.PreDeploymentChecklist) (*primary.StepOutcome, error) {
	if out := s.gate(ctx, flow.StepPreDeployment); out != nil {
		return out, nil
	}
	if r := coresite.ValidatePreDeployment(checklist); !r.Allowed {
		return rejected(r.Reason, s.progress.GetStep(ctx)), nil
	}

	data, err := json.Marshal(checklist)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal checklist: %w", err)
	}
	if err := s.setKey(ctx, secondary.KeyPreDeployment, string(data)); err != nil {
		return nil, err
	}

	cursor, err := s.advance(ctx, flow.StepPreDeployment)
	if err != nil {
		return nil, err
	}
	return accepted(nil, cursor), nil
}

// RecordArrival selects the site and records its arrival section.
func (s *DeploymentServiceImpl) RecordArrival(ctx context.Context, req primary.RecordArrivalRequest) (*primary.StepOutcome, error) {
	siteID := req.SiteID
	if siteID == "" {
		siteID = s.getKey(ctx, secondary.KeyCurrentSiteID)
	}
	if siteID == "" {
		return rejected("Select a site before recording arrival.", s.progress.GetStep(ctx)), nil
	}

	if out := s.gate(ctx, flow.StepSiteArrival); out != nil {
		return out, nil
	}
	if _, out, err := s.selectable(ctx, siteID); err != nil || out != nil {
		return out, err
	}

	out, err := s.recordStep(ctx, flow.StepSiteArrival, siteID, models.ArrivalUpdate{Arrival: req.Arrival})
	if err != nil || !out.Accepted {
		return out, err
	}
	if err := s.setKey(ctx, secondary.KeyCurrentSiteID, siteID); err != nil {
		return nil, err
	}
	return out, nil
}

// ConfigureDevice records the device setup section.
func (s *DeploymentServiceImpl) ConfigureDevice(ctx context.Context, setup models.DeviceSetup) (*primary.StepOutcome, error) {
	return s.recordCurrent(ctx, flow.StepDeviceSetup, models.DeviceSetupUpdate{DeviceSetup: setup})
}

// ConfirmPlacement records the placement checklist.
func (s *DeploymentServiceImpl) ConfirmPlacement(ctx context.Context, placement models.Placement) (*primary.StepOutcome, error) {
	return s.recordCurrent(ctx, flow.StepPlacement, models.PlacementUpdate{Placement: placement})
}

// DocumentDeployment records the deployment documentation.
func (s *DeploymentServiceImpl) DocumentDeployment(ctx context.Context, doc models.Documentation) (*primary.StepOutcome, error) {
	return s.recordCurrent(ctx, flow.StepDocumentation, models.DocumentationUpdate{Documentation: doc})
}

// RecordGroundTruth records ground truth and marks the site deployed.
func (s *DeploymentServiceImpl) RecordGroundTruth(ctx context.Context, gt models.GroundTruth) (*primary.StepOutcome, error) {
	siteID := s.getKey(ctx, secondary.KeyCurrentSiteID)
	if siteID == "" {
		return rejected(noSiteSelected, s.progress.GetStep(ctx)), nil
	}
	if out := s.gate(ctx, flow.StepGroundTruth); out != nil {
		return out, nil
	}

	site, out, err := s.applySection(ctx, siteID, models.GroundTruthSectionUpdate{GroundTruth: gt})
	if err != nil || out != nil {
		return out, err
	}

	if r := coresite.CanCompleteDeployment(*site); !r.Allowed {
		return rejected(r.Reason, s.progress.GetStep(ctx)), nil
	}
	if err := s.sites.MarkDeploymentComplete(ctx, siteID); err != nil {
		return nil, err
	}
	site.Completed = true

	cursor, err := s.advance(ctx, flow.StepGroundTruth)
	if err != nil {
		return nil, err
	}
	return accepted(site, cursor), nil
}

// AttachPhotos records photo references for the current site.
func (s *DeploymentServiceImpl) AttachPhotos(ctx context.Context, photos models.Photos) (*primary.StepOutcome, error) {
	siteID := s.getKey(ctx, secondary.KeyCurrentSiteID)
	if siteID == "" {
		return rejected(noSiteSelected, s.progress.GetStep(ctx)), nil
	}

	site, out, err := s.applySection(ctx, siteID, models.PhotosUpdate{Photos: photos})
	if err != nil || out != nil {
		return out, err
	}
	return accepted(site, s.progress.GetStep(ctx)), nil
}

// FinishSite closes the current site and sends the team to the next arrival.
func (s *DeploymentServiceImpl) FinishSite(ctx context.Context) (*primary.StepOutcome, error) {
	if out := s.gate(ctx, flow.StepSiteSummary); out != nil {
		return out, nil
	}

	siteID := s.getKey(ctx, secondary.KeyCurrentSiteID)
	if siteID == "" {
		return rejected(noSiteSelected, s.progress.GetStep(ctx)), nil
	}
	site, found := s.sites.GetByID(ctx, siteID)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrSiteNotFound, siteID)
	}
	if !site.Completed {
		return rejected(fmt.Sprintf("Site %s is not fully deployed yet.", siteID), s.progress.GetStep(ctx)), nil
	}

	count := s.getCount(ctx, secondary.KeyDailyCompletedCount) + 1
	if err := s.setKey(ctx, secondary.KeyDailyCompletedCount, strconv.Itoa(count)); err != nil {
		return nil, err
	}
	if err := s.clearKeys(ctx, secondary.KeyCurrentSiteID); err != nil {
		return nil, err
	}
	if err := s.progress.SetStep(ctx, flow.StepSiteArrival); err != nil {
		return nil, err
	}
	return accepted(site, flow.StepSiteArrival), nil
}

// FinishDay closes the deployment day. Every site must be deployed.
func (s *DeploymentServiceImpl) FinishDay(ctx context.Context) (*primary.StepOutcome, error) {
	if out := s.gate(ctx, flow.StepDailySummary); out != nil {
		return out, nil
	}
	if !s.sites.AllCompleted(ctx) {
		return rejected("All sites must be completed before finishing the day.", s.progress.GetStep(ctx)), nil
	}

	if err := s.clearKeys(ctx, secondary.KeyCurrentSiteID, secondary.KeyDailyCompletedCount); err != nil {
		return nil, err
	}
	if err := s.progress.SetStep(ctx, flow.InitialStep); err != nil {
		return nil, err
	}
	return accepted(nil, flow.InitialStep), nil
}

// DailySummary reports deployment progress.
func (s *DeploymentServiceImpl) DailySummary(ctx context.Context) (*primary.DailySummary, error) {
	sites := s.sites.GetAll(ctx)

	summary := &primary.DailySummary{
		CompletedToday: s.getCount(ctx, secondary.KeyDailyCompletedCount),
		Total:          len(sites),
		CurrentSiteID:  s.getKey(ctx, secondary.KeyCurrentSiteID),
	}
	for _, site := range sites {
		if site.Completed {
			summary.Deployed++
		} else {
			summary.Pending = append(summary.Pending, site.ID)
		}
	}
	summary.AllCompleted = summary.Total > 0 && summary.Deployed == summary.Total
	return summary, nil
}

// Helper methods

const noSiteSelected = "No site selected. Record site arrival first."

// recordCurrent records a section step against the deployment in progress.
func (s *DeploymentServiceImpl) recordCurrent(ctx context.Context, stepID int, u models.SectionUpdate) (*primary.StepOutcome, error) {
	siteID := s.getKey(ctx, secondary.KeyCurrentSiteID)
	if siteID == "" {
		return rejected(noSiteSelected, s.progress.GetStep(ctx)), nil
	}
	return s.recordStep(ctx, stepID, siteID, u)
}

// selectable checks that siteID is a well-formed, known, undeployed site.
func (s *DeploymentServiceImpl) selectable(ctx context.Context, siteID string) (*models.Site, *primary.StepOutcome, error) {
	if _, _, err := coresite.ParseSiteID(siteID); err != nil {
		return nil, rejected(err.Error(), s.progress.GetStep(ctx)), nil
	}
	site, found := s.sites.GetByID(ctx, siteID)
	if !found {
		return nil, nil, fmt.Errorf("%w: %s", ErrSiteNotFound, siteID)
	}
	if site.Completed {
		return nil, rejected(fmt.Sprintf("Site %s is already deployed.", siteID), s.progress.GetStep(ctx)), nil
	}
	return site, nil, nil
}

// Ensure DeploymentServiceImpl implements the interface
var _ primary.DeploymentService = (*DeploymentServiceImpl)(nil)
