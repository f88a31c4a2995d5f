package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	coresite "github.com/example/fieldkit/internal/core/site"
	"github.com/example/fieldkit/internal/models"
	"github.com/example/fieldkit/internal/ports/primary"
)

// WorkflowAdapter translates deployment and retrieval commands to service calls.
type WorkflowAdapter struct {
	deployment primary.DeploymentService
	retrieval  primary.RetrievalService
	out        io.Writer
}

// NewWorkflowAdapter creates a new WorkflowAdapter with the given services.
func NewWorkflowAdapter(deployment primary.DeploymentService, retrieval primary.RetrievalService, out io.Writer) *WorkflowAdapter {
	return &WorkflowAdapter{
		deployment: deployment,
		retrieval:  retrieval,
		out:        out,
	}
}

// ============================================================================
// Deployment
// ============================================================================

// PreDeploy records the equipment checklist.
func (a *WorkflowAdapter) PreDeploy(ctx context.Context, checklist coresite.PreDeploymentChecklist) error {
	outcome, err := a.deployment.CompletePreDeployment(ctx, checklist)
	if err != nil {
		return err
	}
	return report(a.out, outcome, "Pre-deployment checklist complete")
}

// Select makes a site the deployment in progress.
func (a *WorkflowAdapter) Select(ctx context.Context, siteID string) error {
	outcome, err := a.deployment.SelectSite(ctx, siteID)
	if err != nil {
		return err
	}
	return report(a.out, outcome, fmt.Sprintf("Site %s selected", siteID))
}

// Arrive records site arrival.
func (a *WorkflowAdapter) Arrive(ctx context.Context, siteID string, arrival models.Arrival) error {
	outcome, err := a.deployment.RecordArrival(ctx, primary.RecordArrivalRequest{SiteID: siteID, Arrival: arrival})
	if err != nil {
		return err
	}
	return report(a.out, outcome, siteMsg(outcome, "arrival recorded"))
}

// Device records the device setup.
func (a *WorkflowAdapter) Device(ctx context.Context, setup models.DeviceSetup) error {
	outcome, err := a.deployment.ConfigureDevice(ctx, setup)
	if err != nil {
		return err
	}
	return report(a.out, outcome, siteMsg(outcome, "device configured"))
}

// Place records the placement checklist.
func (a *WorkflowAdapter) Place(ctx context.Context, placement models.Placement) error {
	outcome, err := a.deployment.ConfirmPlacement(ctx, placement)
	if err != nil {
		return err
	}
	return report(a.out, outcome, siteMsg(outcome, "placement confirmed"))
}

// Document records the deployment documentation.
func (a *WorkflowAdapter) Document(ctx context.Context, doc models.Documentation) error {
	outcome, err := a.deployment.DocumentDeployment(ctx, doc)
	if err != nil {
		return err
	}
	return report(a.out, outcome, siteMsg(outcome, "deployment documented"))
}

// GroundTruth records ground truth and completes the site.
func (a *WorkflowAdapter) GroundTruth(ctx context.Context, gt models.GroundTruth) error {
	outcome, err := a.deployment.RecordGroundTruth(ctx, gt)
	if err != nil {
		return err
	}
	return report(a.out, outcome, siteMsg(outcome, "deployed"))
}

// Photos attaches photo references to the current site.
func (a *WorkflowAdapter) Photos(ctx context.Context, photos models.Photos) error {
	outcome, err := a.deployment.AttachPhotos(ctx, photos)
	if err != nil {
		return err
	}
	return report(a.out, outcome, siteMsg(outcome, "photos attached"))
}

// FinishSite closes the current site.
func (a *WorkflowAdapter) FinishSite(ctx context.Context) error {
	outcome, err := a.deployment.FinishSite(ctx)
	if err != nil {
		return err
	}
	return report(a.out, outcome, siteMsg(outcome, "closed"))
}

// FinishDay closes the deployment day.
func (a *WorkflowAdapter) FinishDay(ctx context.Context) error {
	outcome, err := a.deployment.FinishDay(ctx)
	if err != nil {
		return err
	}
	return report(a.out, outcome, "Deployment day closed")
}

// Summary prints the daily deployment summary.
func (a *WorkflowAdapter) Summary(ctx context.Context) error {
	summary, err := a.deployment.DailySummary(ctx)
	if err != nil {
		return fmt.Errorf("failed to build summary: %w", err)
	}

	fmt.Fprintf(a.out, "\nDeployed:        %d of %d\n", summary.Deployed, summary.Total)
	fmt.Fprintf(a.out, "Completed today: %d\n", summary.CompletedToday)
	if summary.CurrentSiteID != "" {
		fmt.Fprintf(a.out, "In progress:     %s\n", summary.CurrentSiteID)
	}
	if len(summary.Pending) > 0 {
		fmt.Fprintf(a.out, "Pending:         %s\n", strings.Join(summary.Pending, ", "))
	}
	if summary.AllCompleted {
		fmt.Fprintln(a.out, "✓ All sites deployed")
	}
	fmt.Fprintln(a.out)
	return nil
}

// ============================================================================
// Retrieval
// ============================================================================

// SelectRetrieval makes a deployed site the retrieval in progress.
func (a *WorkflowAdapter) SelectRetrieval(ctx context.Context, siteID string) error {
	outcome, err := a.retrieval.SelectRetrievalSite(ctx, siteID)
	if err != nil {
		return err
	}
	return report(a.out, outcome, fmt.Sprintf("Site %s selected for retrieval", siteID))
}

// RetrievalArrive records arrival at the retrieval site.
func (a *WorkflowAdapter) RetrievalArrive(ctx context.Context, arrivedAt string) error {
	outcome, err := a.retrieval.RecordRetrievalArrival(ctx, arrivedAt)
	if err != nil {
		return err
	}
	return report(a.out, outcome, siteMsg(outcome, "retrieval arrival recorded"))
}

// DeviceRetrieval records the recorder condition.
func (a *WorkflowAdapter) DeviceRetrieval(ctx context.Context, status models.DeviceStatus) error {
	outcome, err := a.retrieval.RecordDeviceRetrieval(ctx, status)
	if err != nil {
		return err
	}
	return report(a.out, outcome, siteMsg(outcome, "recorder retrieved"))
}

// GroundTruthUpdate records changes observed since deployment.
func (a *WorkflowAdapter) GroundTruthUpdate(ctx context.Context, update models.GroundTruthUpdate) error {
	outcome, err := a.retrieval.RecordGroundTruthUpdate(ctx, update)
	if err != nil {
		return err
	}
	return report(a.out, outcome, siteMsg(outcome, "ground truth updated"))
}

// FinishRetrieval closes the current retrieval.
func (a *WorkflowAdapter) FinishRetrieval(ctx context.Context) error {
	outcome, err := a.retrieval.CompleteRetrieval(ctx)
	if err != nil {
		return err
	}
	return report(a.out, outcome, siteMsg(outcome, "retrieved"))
}

// Organize reports whether data organization can start.
func (a *WorkflowAdapter) Organize(ctx context.Context) error {
	status, err := a.retrieval.DataOrganizationStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to check retrieval status: %w", err)
	}

	fmt.Fprintf(a.out, "Retrieved: %d of %d\n", status.Retrieved, status.Total)
	if !status.Ready {
		return rejection(status.Reason)
	}
	fmt.Fprintln(a.out, "✓ All recorders retrieved. Ready for data organization")
	return nil
}

func siteMsg(outcome *primary.StepOutcome, what string) string {
	if outcome.Site == nil {
		return what
	}
	return fmt.Sprintf("Site %s %s", outcome.Site.ID, what)
}
