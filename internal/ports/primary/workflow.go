package primary

import (
	"context"

	"github.com/example/fieldkit/internal/core/site"
	"github.com/example/fieldkit/internal/models"
)

// StepOutcome is the result of a workflow action.
// A rejected action carries a human-readable reason and changes no state.
type StepOutcome struct {
	Accepted bool
	Reason   string
	Site     *models.Site // the affected site, when there is one
	Cursor   int          // progress cursor after the action
}

// DeploymentService defines the primary port for the deployment workflow.
// Section steps act on the site selected by SelectSite or RecordArrival.
type DeploymentService interface {
	// SelectSite makes the given site the deployment in progress.
	SelectSite(ctx context.Context, siteID string) (*StepOutcome, error)

	// CompletePreDeployment records the equipment checklist.
	CompletePreDeployment(ctx context.Context, checklist site.PreDeploymentChecklist) (*StepOutcome, error)

	// RecordArrival selects the site and records its arrival section.
	RecordArrival(ctx context.Context, req RecordArrivalRequest) (*StepOutcome, error)

	// ConfigureDevice records the device setup section.
	ConfigureDevice(ctx context.Context, setup models.DeviceSetup) (*StepOutcome, error)

	// ConfirmPlacement records the placement checklist.
	ConfirmPlacement(ctx context.Context, placement models.Placement) (*StepOutcome, error)

	// DocumentDeployment records the deployment documentation.
	DocumentDeployment(ctx context.Context, doc models.Documentation) (*StepOutcome, error)

	// RecordGroundTruth records ground truth and marks the site deployed.
	RecordGroundTruth(ctx context.Context, gt models.GroundTruth) (*StepOutcome, error)

	// AttachPhotos records photo references without moving the cursor.
	AttachPhotos(ctx context.Context, photos models.Photos) (*StepOutcome, error)

	// FinishSite closes the current site and returns to site arrival.
	FinishSite(ctx context.Context) (*StepOutcome, error)

	// FinishDay closes the deployment day once every site is deployed.
	FinishDay(ctx context.Context) (*StepOutcome, error)

	// DailySummary reports deployment progress.
	DailySummary(ctx context.Context) (*DailySummary, error)
}

// RecordArrivalRequest contains parameters for recording site arrival.
type RecordArrivalRequest struct {
	SiteID  string // empty means the current site
	Arrival models.Arrival
}

// DailySummary contains deployment progress for the day.
type DailySummary struct {
	CompletedToday int
	Deployed       int
	Total          int
	CurrentSiteID  string
	Pending        []string
	AllCompleted   bool
}

// RetrievalService defines the primary port for the retrieval workflow.
type RetrievalService interface {
	// SelectRetrievalSite makes the given deployed site the retrieval in progress.
	SelectRetrievalSite(ctx context.Context, siteID string) (*StepOutcome, error)

	// RecordRetrievalArrival records arrival, keeping the deployment coordinates as reference.
	// An empty time is stamped from the clock.
	RecordRetrievalArrival(ctx context.Context, arrivedAt string) (*StepOutcome, error)

	// RecordDeviceRetrieval records the recorder condition.
	RecordDeviceRetrieval(ctx context.Context, status models.DeviceStatus) (*StepOutcome, error)

	// RecordGroundTruthUpdate records changes observed since deployment.
	RecordGroundTruthUpdate(ctx context.Context, update models.GroundTruthUpdate) (*StepOutcome, error)

	// CompleteRetrieval stamps and closes the current retrieval.
	CompleteRetrieval(ctx context.Context) (*StepOutcome, error)

	// DataOrganizationStatus reports whether every site has been retrieved.
	DataOrganizationStatus(ctx context.Context) (*DataOrganizationStatus, error)
}

// DataOrganizationStatus reports retrieval progress for data hand-off.
type DataOrganizationStatus struct {
	Ready     bool
	Reason    string
	Retrieved int
	Total     int
	Pending   []string
}
