package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	coresite "github.com/example/fieldkit/internal/core/site"
	"github.com/example/fieldkit/internal/models"
	"github.com/example/fieldkit/internal/ports/primary"
)

// SiteAdapter is a thin adapter that translates CLI operations to SiteService calls.
type SiteAdapter struct {
	service primary.SiteService
	out     io.Writer
}

// NewSiteAdapter creates a new SiteAdapter with the given service.
func NewSiteAdapter(service primary.SiteService, out io.Writer) *SiteAdapter {
	return &SiteAdapter{
		service: service,
		out:     out,
	}
}

// List prints every site with its deployment and retrieval state.
func (a *SiteAdapter) List(ctx context.Context) error {
	sites := a.service.GetAll(ctx)
	if len(sites) == 0 {
		fmt.Fprintln(a.out, "No sites configured")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-8s %-18s %s\n", "ID", "DEPLOYMENT", "RETRIEVAL")
	fmt.Fprintln(a.out, rule)
	for _, s := range sites {
		fmt.Fprintf(a.out, "%-8s %s %s\n", s.ID, deploymentBadge(coresite.StateOf(s)), coresite.RetrievalStateOf(s))
	}
	fmt.Fprintln(a.out)
	return nil
}

// Show prints the sections recorded for one site.
func (a *SiteAdapter) Show(ctx context.Context, siteID string) (*models.Site, error) {
	s, found := a.service.GetByID(ctx, siteID)
	if !found {
		return nil, fmt.Errorf("site %s not found", siteID)
	}

	fmt.Fprintf(a.out, "\nSite:       %s\n", s.ID)
	fmt.Fprintf(a.out, "Deployment: %s\n", coresite.StateOf(*s))
	fmt.Fprintf(a.out, "Retrieval:  %s\n", coresite.RetrievalStateOf(*s))

	if s.Arrival != nil {
		fmt.Fprintf(a.out, "Arrived:    %s%s\n", s.Arrival.Time, coords(s.Arrival.Coords))
		if s.Arrival.AccessIssue {
			fmt.Fprintf(a.out, "  Access issue: %s\n", s.Arrival.IssueNote)
		}
	}
	if s.DeviceSetup != nil {
		fmt.Fprintf(a.out, "Device:     %s (%s days)\n", s.DeviceSetup.DeviceID, s.DeviceSetup.Duration)
	}
	if s.Documentation != nil {
		fmt.Fprintf(a.out, "Conditions: %s, wind %s\n", s.Documentation.Weather, s.Documentation.Wind)
	}
	if s.GroundTruth != nil {
		fmt.Fprintf(a.out, "Vegetation: %s\n", s.GroundTruth.Flora.VegType)
	}
	if r := s.Retrieval; r != nil {
		if r.DeviceStatus != nil {
			fmt.Fprintf(a.out, "Recorder:   battery %s, %s\n", r.DeviceStatus.Battery, r.DeviceStatus.Condition)
		}
		if r.TimeRetrieved != "" {
			fmt.Fprintf(a.out, "Retrieved:  %s\n", r.TimeRetrieved)
		}
	}
	fmt.Fprintln(a.out)

	return s, nil
}

// Reset restores the default site set.
func (a *SiteAdapter) Reset(ctx context.Context) error {
	if err := a.service.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset sites: %w", err)
	}
	fmt.Fprintln(a.out, "✓ Sites reset to defaults")
	return nil
}

func coords(c *models.Coords) string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf(" at %.5f, %.5f (±%.0fm)", c.Lat, c.Lng, c.Acc)
}

func deploymentBadge(state coresite.DeploymentState) string {
	label := fmt.Sprintf("%-18s", state)
	switch state {
	case coresite.StateCompleted:
		return color.New(color.FgHiGreen).Sprint(label)
	case coresite.StateNotStarted:
		return color.New(color.FgHiBlack).Sprint(label)
	default:
		return color.New(color.FgYellow).Sprint(label)
	}
}
