// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import (
	"context"

	"github.com/example/fieldkit/internal/models"
)

// SiteService defines the primary port for the site record store.
// Reads never fail: a missing or unreadable set falls back to the defaults.
type SiteService interface {
	// Initialize writes the default site set when none is persisted or the
	// persisted set cannot be parsed. Safe to call repeatedly.
	Initialize(ctx context.Context) error

	// GetAll returns every site in initialization order.
	GetAll(ctx context.Context) []models.Site

	// GetByID returns the site with the given id, or found=false.
	GetByID(ctx context.Context, id string) (site *models.Site, found bool)

	// Update merges a single section into the site and persists the full set.
	// An unknown id returns ErrSiteNotFound without writing.
	Update(ctx context.Context, id string, update models.SectionUpdate) (*models.Site, error)

	// MarkDeploymentComplete sets completed=true. Idempotent.
	MarkDeploymentComplete(ctx context.Context, id string) error

	// MarkRetrievalComplete sets retrieval.completed=true, keeping the other retrieval fields.
	MarkRetrievalComplete(ctx context.Context, id string) error

	// AllCompleted reports whether the set is non-empty and every site is deployed.
	AllCompleted(ctx context.Context) bool

	// AllRetrieved reports whether the set is non-empty and every site is retrieved.
	AllRetrieved(ctx context.Context) bool

	// CompletedSites returns the deployed sites in initialization order.
	CompletedSites(ctx context.Context) []models.Site

	// Reset restores the default set and clears the session keys.
	Reset(ctx context.Context) error
}

// ProgressService defines the primary port for the progress cursor.
type ProgressService interface {
	// GetStep returns the cursor, or 1 when unset or unreadable.
	GetStep(ctx context.Context) int

	// SetStep stores the cursor as given.
	SetStep(ctx context.Context, step int) error

	// Reset sets the cursor back to 1.
	Reset(ctx context.Context) error
}
