package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/fieldkit/internal/core/flow"
	"github.com/example/fieldkit/internal/core/site"
	"github.com/example/fieldkit/internal/models"
	"github.com/example/fieldkit/internal/ports/primary"
	"github.com/example/fieldkit/internal/ports/secondary"
)

// ============================================================================
// Fixtures
// ============================================================================

func fullChecklist() site.PreDeploymentChecklist {
	return site.PreDeploymentChecklist{
		DevicesConfigured: true,
		BatteriesInserted: true,
		SDCardsFormatted:  true,
		DeviceLabeled:     true,
		GPSDownloaded:     true,
		PhoneCharged:      true,
	}
}

func validArrival() models.Arrival {
	return models.Arrival{Coords: &models.Coords{Lat: -1.29, Lng: 36.82, Acc: 4}, Time: "07:45"}
}

func validDeviceSetup() models.DeviceSetup {
	return models.DeviceSetup{
		DeviceID:    "AM-001",
		CustomMode:  true,
		BatteriesOK: true,
		SDOK:        true,
		StartDate:   "02-03-2026",
		StartTime:   "18.00",
		Duration:    "3",
	}
}

func validPlacement() models.Placement {
	return models.Placement{
		HeightOK: true, MicOut: true, TiltDown: true, AwayFromTrail: true,
		AwayFromWater: true, AwayFromRoad: true, SecureAttach: true, Waterproof: true,
	}
}

func validDocumentation() models.Documentation {
	no := false
	return models.Documentation{
		Coords:     &models.Coords{Lat: -1.29, Lng: 36.82, Acc: 3},
		Weather:    "Clear",
		Wind:       "Calm",
		RecentRain: &no,
	}
}

func validGroundTruth() models.GroundTruth {
	return models.GroundTruth{Flora: models.Flora{VegType: "Grassland"}}
}

func requireAccepted(t *testing.T, out *primary.StepOutcome, err error) *primary.StepOutcome {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, out)
	require.True(t, out.Accepted, "rejected: %s", out.Reason)
	return out
}

// accepts returns a checker that can wrap a service call directly.
func accepts(t *testing.T) func(*primary.StepOutcome, error) *primary.StepOutcome {
	return func(out *primary.StepOutcome, err error) *primary.StepOutcome {
		t.Helper()
		return requireAccepted(t, out, err)
	}
}

func requireRejected(t *testing.T, out *primary.StepOutcome, err error, reason string) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.False(t, out.Accepted)
	assert.Equal(t, reason, out.Reason)
}

// deploySite walks one site through the whole deployment sub-flow and closes it.
func deploySite(t *testing.T, svc *testServices, id string) {
	t.Helper()
	ctx := context.Background()
	d := svc.deployment

	out, err := d.RecordArrival(ctx, primary.RecordArrivalRequest{SiteID: id, Arrival: validArrival()})
	requireAccepted(t, out, err)
	out, err = d.ConfigureDevice(ctx, validDeviceSetup())
	requireAccepted(t, out, err)
	out, err = d.ConfirmPlacement(ctx, validPlacement())
	requireAccepted(t, out, err)
	out, err = d.DocumentDeployment(ctx, validDocumentation())
	requireAccepted(t, out, err)
	out, err = d.RecordGroundTruth(ctx, validGroundTruth())
	requireAccepted(t, out, err)
	out, err = d.FinishSite(ctx)
	requireAccepted(t, out, err)
}

// ============================================================================
// Step Tests
// ============================================================================

func TestCompletePreDeployment(t *testing.T) {
	svc := newTestServices(defaultSiteIDs)
	ctx := context.Background()

	partial := fullChecklist()
	partial.PhoneCharged = false
	out, err := svc.deployment.CompletePreDeployment(ctx, partial)
	requireRejected(t, out, err, "All mandatory checks must be completed.")
	assert.Equal(t, 1, svc.progress.GetStep(ctx))

	out, err = svc.deployment.CompletePreDeployment(ctx, fullChecklist())
	requireAccepted(t, out, err)
	assert.Equal(t, 2, out.Cursor)
	assert.Contains(t, svc.kv.values[secondary.KeyPreDeployment], `"phoneCharged":true`)
}

func TestRecordArrival_LockedBeforePreDeployment(t *testing.T) {
	svc := newTestServices(defaultSiteIDs)
	ctx := context.Background()

	out, err := svc.deployment.RecordArrival(ctx, primary.RecordArrivalRequest{SiteID: "C1-S1", Arrival: validArrival()})
	requireRejected(t, out, err, "Site Arrival Setup is locked: complete step 1 first")

	s, _ := svc.sites.GetByID(ctx, "C1-S1")
	assert.Nil(t, s.Arrival)
}

func TestRecordArrival_SelectsSite(t *testing.T) {
	accept := accepts(t)
	svc := newTestServices(defaultSiteIDs)
	ctx := context.Background()
	accept(svc.deployment.CompletePreDeployment(ctx, fullChecklist()))

	out, err := svc.deployment.RecordArrival(ctx, primary.RecordArrivalRequest{SiteID: "C1-S3", Arrival: validArrival()})
	requireAccepted(t, out, err)
	assert.Equal(t, 3, out.Cursor)
	assert.Equal(t, "C1-S3", out.Site.ID)
	assert.Equal(t, "C1-S3", svc.kv.values[secondary.KeyCurrentSiteID])
}

func TestRecordArrival_Rejections(t *testing.T) {
	accept := accepts(t)
	svc := newTestServices(defaultSiteIDs)
	ctx := context.Background()
	accept(svc.deployment.CompletePreDeployment(ctx, fullChecklist()))

	out, err := svc.deployment.RecordArrival(ctx, primary.RecordArrivalRequest{})
	requireRejected(t, out, err, "Select a site before recording arrival.")

	out, err = svc.deployment.RecordArrival(ctx, primary.RecordArrivalRequest{SiteID: "C1-S1"})
	requireRejected(t, out, err, "Please confirm GPS before continuing.")

	issue := validArrival()
	issue.AccessIssue = true
	out, err = svc.deployment.RecordArrival(ctx, primary.RecordArrivalRequest{SiteID: "C1-S1", Arrival: issue})
	requireRejected(t, out, err, "Please describe the access issue.")

	out, err = svc.deployment.RecordArrival(ctx, primary.RecordArrivalRequest{SiteID: "site-1", Arrival: validArrival()})
	require.NoError(t, err)
	assert.False(t, out.Accepted)
	assert.Contains(t, out.Reason, "invalid site id")

	_, err = svc.deployment.RecordArrival(ctx, primary.RecordArrivalRequest{SiteID: "C1-S9", Arrival: validArrival()})
	assert.ErrorIs(t, err, ErrSiteNotFound)

	assert.Equal(t, 2, svc.progress.GetStep(ctx))
	_, selected := svc.kv.values[secondary.KeyCurrentSiteID]
	assert.False(t, selected)
}

func TestSectionSteps_RequireSelectedSite(t *testing.T) {
	svc := newTestServices(defaultSiteIDs)
	ctx := context.Background()

	out, err := svc.deployment.ConfigureDevice(ctx, validDeviceSetup())
	requireRejected(t, out, err, noSiteSelected)
	out, err = svc.deployment.RecordGroundTruth(ctx, validGroundTruth())
	requireRejected(t, out, err, noSiteSelected)
	out, err = svc.deployment.AttachPhotos(ctx, models.Photos{})
	requireRejected(t, out, err, noSiteSelected)
	out, err = svc.deployment.FinishSite(ctx)
	requireRejected(t, out, err, noSiteSelected)
}

func TestConfigureDevice_ValidationLeavesStateUntouched(t *testing.T) {
	accept := accepts(t)
	svc := newTestServices(defaultSiteIDs)
	ctx := context.Background()
	accept(svc.deployment.CompletePreDeployment(ctx, fullChecklist()))
	accept(svc.deployment.RecordArrival(ctx, primary.RecordArrivalRequest{SiteID: "C1-S1", Arrival: validArrival()}))

	tests := []struct {
		name   string
		mutate func(d *models.DeviceSetup)
		reason string
	}{
		{"missing id", func(d *models.DeviceSetup) { d.DeviceID = " " }, "Enter Device ID / Serial."},
		{"sd unchecked", func(d *models.DeviceSetup) { d.SDOK = false }, "Complete all device configuration checks."},
		{"bad date", func(d *models.DeviceSetup) { d.StartDate = "2026-03-02" }, "Invalid date. Use DD-MM-YYYY format."},
		{"bad time", func(d *models.DeviceSetup) { d.StartTime = "18:00" }, "Invalid time. Use HH.MM (24-hour) format."},
		{"bad duration", func(d *models.DeviceSetup) { d.Duration = "7" }, "Select recording duration."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup := validDeviceSetup()
			tt.mutate(&setup)
			out, err := svc.deployment.ConfigureDevice(ctx, setup)
			requireRejected(t, out, err, tt.reason)

			s, _ := svc.sites.GetByID(ctx, "C1-S1")
			assert.Nil(t, s.DeviceSetup)
			assert.Equal(t, 3, svc.progress.GetStep(ctx))
		})
	}
}

func TestRecordGroundTruth_StressNeedsPhoto(t *testing.T) {
	accept := accepts(t)
	svc := newTestServices(defaultSiteIDs)
	ctx := context.Background()
	accept(svc.deployment.CompletePreDeployment(ctx, fullChecklist()))
	accept(svc.deployment.RecordArrival(ctx, primary.RecordArrivalRequest{SiteID: "C1-S2", Arrival: validArrival()}))
	accept(svc.deployment.ConfigureDevice(ctx, validDeviceSetup()))
	accept(svc.deployment.ConfirmPlacement(ctx, validPlacement()))
	accept(svc.deployment.DocumentDeployment(ctx, validDocumentation()))

	gt := validGroundTruth()
	gt.Flora.StressObserved = true
	gt.Flora.StressNote = "leaf browning"
	out, err := svc.deployment.RecordGroundTruth(ctx, gt)
	requireRejected(t, out, err, "A photo of the observed stress is required.")

	s, _ := svc.sites.GetByID(ctx, "C1-S2")
	assert.False(t, s.Completed)
	assert.Nil(t, s.GroundTruth)

	photo := "file:///photos/stress-1.jpg"
	gt.Flora.StressPhoto = &photo
	out, err = svc.deployment.RecordGroundTruth(ctx, gt)
	requireAccepted(t, out, err)
	assert.True(t, out.Site.Completed)
	assert.Equal(t, flow.StepSiteSummary, out.Cursor)

	s, _ = svc.sites.GetByID(ctx, "C1-S2")
	assert.True(t, s.Completed)
}

func TestAttachPhotos_DoesNotMoveCursor(t *testing.T) {
	accept := accepts(t)
	svc := newTestServices(defaultSiteIDs)
	ctx := context.Background()
	accept(svc.deployment.CompletePreDeployment(ctx, fullChecklist()))
	accept(svc.deployment.RecordArrival(ctx, primary.RecordArrivalRequest{SiteID: "C1-S1", Arrival: validArrival()}))

	ref := "file:///photos/landscape.jpg"
	out, err := svc.deployment.AttachPhotos(ctx, models.Photos{Landscape: &ref})
	requireAccepted(t, out, err)
	assert.Equal(t, 3, out.Cursor)
	require.NotNil(t, out.Site.Photos)
	assert.Equal(t, ref, *out.Site.Photos.Landscape)
	require.NotNil(t, out.Site.Arrival)
}

func TestReRecordingEarlierStepKeepsCursor(t *testing.T) {
	accept := accepts(t)
	svc := newTestServices(defaultSiteIDs)
	ctx := context.Background()
	accept(svc.deployment.CompletePreDeployment(ctx, fullChecklist()))
	accept(svc.deployment.RecordArrival(ctx, primary.RecordArrivalRequest{SiteID: "C1-S1", Arrival: validArrival()}))
	accept(svc.deployment.ConfigureDevice(ctx, validDeviceSetup()))
	accept(svc.deployment.ConfirmPlacement(ctx, validPlacement()))

	setup := validDeviceSetup()
	setup.DeviceID = "AM-002"
	out, err := svc.deployment.ConfigureDevice(ctx, setup)
	requireAccepted(t, out, err)
	assert.Equal(t, 5, out.Cursor)
	assert.Equal(t, "AM-002", out.Site.DeviceSetup.DeviceID)
	require.NotNil(t, out.Site.Placement)
}

// ============================================================================
// Site and Day Tests
// ============================================================================

func TestFinishSite(t *testing.T) {
	accept := accepts(t)
	svc := newTestServices(defaultSiteIDs)
	ctx := context.Background()
	accept(svc.deployment.CompletePreDeployment(ctx, fullChecklist()))
	accept(svc.deployment.RecordArrival(ctx, primary.RecordArrivalRequest{SiteID: "C1-S1", Arrival: validArrival()}))

	out, err := svc.deployment.FinishSite(ctx)
	requireRejected(t, out, err, "Site C1-S1 is not fully deployed yet.")

	accept(svc.deployment.ConfigureDevice(ctx, validDeviceSetup()))
	accept(svc.deployment.ConfirmPlacement(ctx, validPlacement()))
	accept(svc.deployment.DocumentDeployment(ctx, validDocumentation()))
	accept(svc.deployment.RecordGroundTruth(ctx, validGroundTruth()))

	out, err = svc.deployment.FinishSite(ctx)
	requireAccepted(t, out, err)
	assert.Equal(t, flow.StepSiteArrival, out.Cursor)
	assert.Equal(t, 2, svc.progress.GetStep(ctx))
	assert.Equal(t, "1", svc.kv.values[secondary.KeyDailyCompletedCount])
	_, selected := svc.kv.values[secondary.KeyCurrentSiteID]
	assert.False(t, selected)

	// a deployed site cannot be selected again
	out, err = svc.deployment.SelectSite(ctx, "C1-S1")
	requireRejected(t, out, err, "Site C1-S1 is already deployed.")
}

func TestFinishDay(t *testing.T) {
	accept := accepts(t)
	ids := []string{"C1-S1", "C1-S2"}
	svc := newTestServices(ids)
	ctx := context.Background()
	accept(svc.deployment.CompletePreDeployment(ctx, fullChecklist()))

	deploySite(t, svc, "C1-S1")

	out, err := svc.deployment.FinishDay(ctx)
	requireRejected(t, out, err, "All sites must be completed before finishing the day.")

	summary, err := svc.deployment.DailySummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.CompletedToday)
	assert.Equal(t, 1, summary.Deployed)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, []string{"C1-S2"}, summary.Pending)
	assert.False(t, summary.AllCompleted)

	deploySite(t, svc, "C1-S2")
	assert.True(t, svc.sites.AllCompleted(ctx))

	out, err = svc.deployment.FinishDay(ctx)
	requireAccepted(t, out, err)
	assert.Equal(t, 1, svc.progress.GetStep(ctx))
	_, counted := svc.kv.values[secondary.KeyDailyCompletedCount]
	assert.False(t, counted)

	summary, err = svc.deployment.DailySummary(ctx)
	require.NoError(t, err)
	assert.True(t, summary.AllCompleted)
	assert.Zero(t, summary.CompletedToday)
}

func TestDeploymentSealedAfterAllSitesComplete(t *testing.T) {
	accept := accepts(t)
	svc := newTestServices([]string{"C1-S1"})
	ctx := context.Background()
	accept(svc.deployment.CompletePreDeployment(ctx, fullChecklist()))
	deploySite(t, svc, "C1-S1")

	out, err := svc.deployment.CompletePreDeployment(ctx, fullChecklist())
	require.NoError(t, err)
	assert.False(t, out.Accepted)
	assert.Contains(t, out.Reason, "all sites are deployed")
}
