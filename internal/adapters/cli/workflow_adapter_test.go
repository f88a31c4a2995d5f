package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coresite "github.com/example/fieldkit/internal/core/site"
	"github.com/example/fieldkit/internal/models"
	"github.com/example/fieldkit/internal/ports/primary"
)

// mockDeploymentService implements primary.DeploymentService for testing.
// Every step returns outcome/err; lastArrival captures the arrival request.
type mockDeploymentService struct {
	outcome     *primary.StepOutcome
	err         error
	summary     *primary.DailySummary
	lastArrival primary.RecordArrivalRequest
}

var _ primary.DeploymentService = (*mockDeploymentService)(nil)

func (m *mockDeploymentService) step() (*primary.StepOutcome, error) { return m.outcome, m.err }

func (m *mockDeploymentService) SelectSite(ctx context.Context, siteID string) (*primary.StepOutcome, error) {
	return m.step()
}

func (m *mockDeploymentService) CompletePreDeployment(ctx context.Context, c coresite.PreDeploymentChecklist) (*primary.StepOutcome, error) {
	return m.step()
}

func (m *mockDeploymentService) RecordArrival(ctx context.Context, req primary.RecordArrivalRequest) (*primary.StepOutcome, error) {
	m.lastArrival = req
	return m.step()
}

func (m *mockDeploymentService) ConfigureDevice(ctx context.Context, setup models.DeviceSetup) (*primary.StepOutcome, error) {
	return m.step()
}

func (m *mockDeploymentService) ConfirmPlacement(ctx context.Context, p models.Placement) (*primary.StepOutcome, error) {
	return m.step()
}

func (m *mockDeploymentService) DocumentDeployment(ctx context.Context, doc models.Documentation) (*primary.StepOutcome, error) {
	return m.step()
}

func (m *mockDeploymentService) RecordGroundTruth(ctx context.Context, gt models.GroundTruth) (*primary.StepOutcome, error) {
	return m.step()
}

func (m *mockDeploymentService) AttachPhotos(ctx context.Context, photos models.Photos) (*primary.StepOutcome, error) {
	return m.step()
}

func (m *mockDeploymentService) FinishSite(ctx context.Context) (*primary.StepOutcome, error) {
	return m.step()
}

func (m *mockDeploymentService) FinishDay(ctx context.Context) (*primary.StepOutcome, error) {
	return m.step()
}

func (m *mockDeploymentService) DailySummary(ctx context.Context) (*primary.DailySummary, error) {
	return m.summary, m.err
}

// mockRetrievalService implements primary.RetrievalService for testing.
type mockRetrievalService struct {
	outcome       *primary.StepOutcome
	err           error
	status        *primary.DataOrganizationStatus
	lastArrivedAt string
}

var _ primary.RetrievalService = (*mockRetrievalService)(nil)

func (m *mockRetrievalService) SelectRetrievalSite(ctx context.Context, siteID string) (*primary.StepOutcome, error) {
	return m.outcome, m.err
}

func (m *mockRetrievalService) RecordRetrievalArrival(ctx context.Context, arrivedAt string) (*primary.StepOutcome, error) {
	m.lastArrivedAt = arrivedAt
	return m.outcome, m.err
}

func (m *mockRetrievalService) RecordDeviceRetrieval(ctx context.Context, status models.DeviceStatus) (*primary.StepOutcome, error) {
	return m.outcome, m.err
}

func (m *mockRetrievalService) RecordGroundTruthUpdate(ctx context.Context, update models.GroundTruthUpdate) (*primary.StepOutcome, error) {
	return m.outcome, m.err
}

func (m *mockRetrievalService) CompleteRetrieval(ctx context.Context) (*primary.StepOutcome, error) {
	return m.outcome, m.err
}

func (m *mockRetrievalService) DataOrganizationStatus(ctx context.Context) (*primary.DataOrganizationStatus, error) {
	return m.status, m.err
}

func TestWorkflowAdapter_Accepted(t *testing.T) {
	var buf bytes.Buffer
	dep := &mockDeploymentService{outcome: &primary.StepOutcome{
		Accepted: true,
		Site:     &models.Site{ID: "C1-S3"},
		Cursor:   3,
	}}
	adapter := NewWorkflowAdapter(dep, &mockRetrievalService{}, &buf)

	err := adapter.Arrive(context.Background(), "C1-S3", models.Arrival{Time: "08:10"})
	require.NoError(t, err)
	assert.Equal(t, "C1-S3", dep.lastArrival.SiteID)
	assert.Equal(t, "08:10", dep.lastArrival.Arrival.Time)
	assert.Equal(t, "✓ Site C1-S3 arrival recorded\n  Next: step 3\n", buf.String())
}

func TestWorkflowAdapter_Rejected(t *testing.T) {
	var buf bytes.Buffer
	dep := &mockDeploymentService{outcome: &primary.StepOutcome{
		Reason: "Select recording duration.",
		Cursor: 3,
	}}
	adapter := NewWorkflowAdapter(dep, &mockRetrievalService{}, &buf)

	err := adapter.Device(context.Background(), models.DeviceSetup{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRejected))
	assert.Equal(t, "rejected: Select recording duration.", err.Error())
	assert.Empty(t, buf.String())
}

func TestWorkflowAdapter_ServiceError(t *testing.T) {
	var buf bytes.Buffer
	dep := &mockDeploymentService{err: errors.New("database is locked")}
	adapter := NewWorkflowAdapter(dep, &mockRetrievalService{}, &buf)

	err := adapter.FinishSite(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrRejected))
}

func TestWorkflowAdapter_Summary(t *testing.T) {
	var buf bytes.Buffer
	dep := &mockDeploymentService{summary: &primary.DailySummary{
		CompletedToday: 2,
		Deployed:       5,
		Total:          7,
		CurrentSiteID:  "C1-S6",
		Pending:        []string{"C1-S6", "C1-S7"},
	}}
	adapter := NewWorkflowAdapter(dep, &mockRetrievalService{}, &buf)

	require.NoError(t, adapter.Summary(context.Background()))
	output := buf.String()
	assert.Contains(t, output, "Deployed:        5 of 7")
	assert.Contains(t, output, "Completed today: 2")
	assert.Contains(t, output, "In progress:     C1-S6")
	assert.Contains(t, output, "Pending:         C1-S6, C1-S7")
	assert.NotContains(t, output, "All sites deployed")
}

func TestWorkflowAdapter_Retrieval(t *testing.T) {
	var buf bytes.Buffer
	ret := &mockRetrievalService{outcome: &primary.StepOutcome{
		Accepted: true,
		Site:     &models.Site{ID: "C1-S1"},
		Cursor:   12,
	}}
	adapter := NewWorkflowAdapter(&mockDeploymentService{}, ret, &buf)

	require.NoError(t, adapter.RetrievalArrive(context.Background(), ""))
	assert.Empty(t, ret.lastArrivedAt)
	assert.Contains(t, buf.String(), "✓ Site C1-S1 retrieval arrival recorded")
}

func TestWorkflowAdapter_Organize(t *testing.T) {
	ctx := context.Background()

	t.Run("pending sites", func(t *testing.T) {
		var buf bytes.Buffer
		ret := &mockRetrievalService{status: &primary.DataOrganizationStatus{
			Reason: "1 of 2 sites still to retrieve.", Retrieved: 1, Total: 2,
		}}
		adapter := NewWorkflowAdapter(&mockDeploymentService{}, ret, &buf)

		err := adapter.Organize(ctx)
		assert.ErrorIs(t, err, ErrRejected)
		assert.Equal(t, "Retrieved: 1 of 2\n", buf.String())
	})

	t.Run("ready", func(t *testing.T) {
		var buf bytes.Buffer
		ret := &mockRetrievalService{status: &primary.DataOrganizationStatus{Ready: true, Retrieved: 2, Total: 2}}
		adapter := NewWorkflowAdapter(&mockDeploymentService{}, ret, &buf)

		require.NoError(t, adapter.Organize(ctx))
		assert.Contains(t, buf.String(), "Ready for data organization")
	})
}
