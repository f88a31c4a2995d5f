package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/example/fieldkit/internal/core/flow"
	coresite "github.com/example/fieldkit/internal/core/site"
	"github.com/example/fieldkit/internal/models"
	"github.com/example/fieldkit/internal/ports/primary"
	"github.com/example/fieldkit/internal/ports/secondary"
)

// workflow holds the collaborators shared by the deployment and retrieval services.
// Every section step runs the same pipeline:
// flow gate, section validation, lifecycle guard, store update, cursor advance.
type workflow struct {
	sites    primary.SiteService
	progress primary.ProgressService
	nav      primary.NavigationService
	catalog  flow.Catalog
	kv       secondary.KeyValueStore
}

func rejected(reason string, cursor int) *primary.StepOutcome {
	return &primary.StepOutcome{Accepted: false, Reason: reason, Cursor: cursor}
}

func accepted(site *models.Site, cursor int) *primary.StepOutcome {
	return &primary.StepOutcome{Accepted: true, Site: site, Cursor: cursor}
}

// gate returns a rejection when the step is locked, nil otherwise.
func (w *workflow) gate(ctx context.Context, stepID int) *primary.StepOutcome {
	access := w.nav.CanOpen(ctx, stepID)
	if access.Allowed {
		return nil
	}
	return rejected(access.Reason, w.progress.GetStep(ctx))
}

// advance moves the cursor to the step after stepID. The cursor never moves
// backwards here; only explicit resets rewind it.
func (w *workflow) advance(ctx context.Context, stepID int) (int, error) {
	cursor := w.progress.GetStep(ctx)
	next, ok := w.catalog.Next(stepID)
	if !ok || next.ID <= cursor {
		return cursor, nil
	}
	if err := w.progress.SetStep(ctx, next.ID); err != nil {
		return cursor, err
	}
	return next.ID, nil
}

// applySection validates and merges a section into the site without touching the cursor.
// A non-nil outcome means the update was rejected.
func (w *workflow) applySection(ctx context.Context, siteID string, u models.SectionUpdate) (*models.Site, *primary.StepOutcome, error) {
	if r := coresite.ValidateSection(u); !r.Allowed {
		return nil, rejected(r.Reason, w.progress.GetStep(ctx)), nil
	}

	site, found := w.sites.GetByID(ctx, siteID)
	if !found {
		return nil, nil, fmt.Errorf("%w: %s", ErrSiteNotFound, siteID)
	}

	if r := coresite.CanApplySection(coresite.ApplySectionContext{Site: *site, Section: u.Section()}); !r.Allowed {
		return nil, rejected(r.Reason, w.progress.GetStep(ctx)), nil
	}

	updated, err := w.sites.Update(ctx, siteID, u)
	if err != nil {
		return nil, nil, err
	}
	return updated, nil, nil
}

// recordStep runs the full pipeline for a section step and advances the cursor.
func (w *workflow) recordStep(ctx context.Context, stepID int, siteID string, u models.SectionUpdate) (*primary.StepOutcome, error) {
	if out := w.gate(ctx, stepID); out != nil {
		return out, nil
	}

	site, out, err := w.applySection(ctx, siteID, u)
	if err != nil || out != nil {
		return out, err
	}

	cursor, err := w.advance(ctx, stepID)
	if err != nil {
		return nil, err
	}
	return accepted(site, cursor), nil
}

// session key helpers

func (w *workflow) getKey(ctx context.Context, key string) string {
	value, found, err := w.kv.Get(ctx, key)
	if err != nil || !found {
		return ""
	}
	return value
}

func (w *workflow) setKey(ctx context.Context, key, value string) error {
	if err := w.kv.Set(ctx, key, value); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (w *workflow) clearKeys(ctx context.Context, keys ...string) error {
	if err := w.kv.Remove(ctx, keys...); err != nil {
		return fmt.Errorf("failed to clear session keys: %w", err)
	}
	return nil
}

func (w *workflow) getCount(ctx context.Context, key string) int {
	n, err := strconv.Atoi(w.getKey(ctx, key))
	if err != nil {
		return 0
	}
	return n
}
