package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/fieldkit/internal/models"
	"github.com/example/fieldkit/internal/ports/primary"
	"github.com/example/fieldkit/internal/ports/secondary"
)

// ErrSiteNotFound is returned when an operation names a site id outside the set.
var ErrSiteNotFound = errors.New("site not found")

// allSitesEntity is the entity id logged for whole-set operations.
const allSitesEntity = "*"

// SiteServiceImpl implements the SiteService interface.
// The whole site set lives under a single key and is rewritten on every mutation.
type SiteServiceImpl struct {
	kv        secondary.KeyValueStore
	logWriter secondary.LogWriter
	siteIDs   []string
}

// NewSiteService creates a new SiteService over the given storage.
// siteIDs is the fixed default set, in display order.
func NewSiteService(kv secondary.KeyValueStore, logWriter secondary.LogWriter, siteIDs []string) *SiteServiceImpl {
	return &SiteServiceImpl{
		kv:        kv,
		logWriter: logWriter,
		siteIDs:   siteIDs,
	}
}

// Initialize writes the default set when nothing usable is persisted.
func (s *SiteServiceImpl) Initialize(ctx context.Context) error {
	if _, ok := s.read(ctx); ok {
		return nil
	}
	return s.write(ctx, s.defaults())
}

// GetAll returns every site in initialization order.
func (s *SiteServiceImpl) GetAll(ctx context.Context) []models.Site {
	return s.sites(ctx)
}

// GetByID returns the site with the given id.
func (s *SiteServiceImpl) GetByID(ctx context.Context, id string) (*models.Site, bool) {
	sites := s.sites(ctx)
	i := indexOf(sites, id)
	if i < 0 {
		return nil, false
	}
	site := sites[i]
	return &site, true
}

// Update merges one section into the site.
func (s *SiteServiceImpl) Update(ctx context.Context, id string, update models.SectionUpdate) (*models.Site, error) {
	sites, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(sites, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSiteNotFound, id)
	}

	sites[i].Apply(update)
	if err := s.write(ctx, sites); err != nil {
		return nil, err
	}

	_ = s.logWriter.LogUpdate(ctx, secondary.EntitySite, id, string(update.Section()), "", encode(update))

	site := sites[i]
	return &site, nil
}

// MarkDeploymentComplete sets completed=true on the site.
func (s *SiteServiceImpl) MarkDeploymentComplete(ctx context.Context, id string) error {
	sites, err := s.load(ctx)
	if err != nil {
		return err
	}

	i := indexOf(sites, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrSiteNotFound, id)
	}
	if sites[i].Completed {
		return nil
	}

	sites[i].Completed = true
	if err := s.write(ctx, sites); err != nil {
		return err
	}

	_ = s.logWriter.LogComplete(ctx, secondary.EntitySite, id, "completed")
	return nil
}

// MarkRetrievalComplete sets retrieval.completed=true on the site.
func (s *SiteServiceImpl) MarkRetrievalComplete(ctx context.Context, id string) error {
	sites, err := s.load(ctx)
	if err != nil {
		return err
	}

	i := indexOf(sites, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrSiteNotFound, id)
	}
	if sites[i].RetrievalCompleted() {
		return nil
	}

	if sites[i].Retrieval == nil {
		sites[i].Retrieval = &models.Retrieval{}
	}
	sites[i].Retrieval.Completed = true
	if err := s.write(ctx, sites); err != nil {
		return err
	}

	_ = s.logWriter.LogComplete(ctx, secondary.EntitySite, id, "retrieval.completed")
	return nil
}

// AllCompleted reports whether every site is deployed. An empty set is not complete.
func (s *SiteServiceImpl) AllCompleted(ctx context.Context) bool {
	sites := s.sites(ctx)
	if len(sites) == 0 {
		return false
	}
	for _, site := range sites {
		if !site.Completed {
			return false
		}
	}
	return true
}

// AllRetrieved reports whether every site is retrieved. An empty set is not retrieved.
func (s *SiteServiceImpl) AllRetrieved(ctx context.Context) bool {
	sites := s.sites(ctx)
	if len(sites) == 0 {
		return false
	}
	for _, site := range sites {
		if !site.RetrievalCompleted() {
			return false
		}
	}
	return true
}

// CompletedSites returns the deployed sites.
func (s *SiteServiceImpl) CompletedSites(ctx context.Context) []models.Site {
	var done []models.Site
	for _, site := range s.sites(ctx) {
		if site.Completed {
			done = append(done, site)
		}
	}
	return done
}

// Reset restores the default set and clears the session keys.
func (s *SiteServiceImpl) Reset(ctx context.Context) error {
	if err := s.write(ctx, s.defaults()); err != nil {
		return err
	}
	if err := s.kv.Remove(ctx, secondary.SessionKeys...); err != nil {
		return fmt.Errorf("failed to clear session keys: %w", err)
	}

	_ = s.logWriter.LogReset(ctx, secondary.EntitySite, allSitesEntity)
	return nil
}

// Helper methods

func (s *SiteServiceImpl) defaults() []models.Site {
	return models.DefaultSites(s.siteIDs)
}

// read returns the persisted set. ok is false when the key is missing,
// unreadable or corrupted.
func (s *SiteServiceImpl) read(ctx context.Context) ([]models.Site, bool) {
	raw, found, err := s.kv.Get(ctx, secondary.KeySitesData)
	if err != nil || !found {
		return nil, false
	}
	var sites []models.Site
	if err := json.Unmarshal([]byte(raw), &sites); err != nil || sites == nil {
		return nil, false
	}
	return sites, true
}

// sites returns the persisted set, falling back to the defaults. The
// defaults are written back on a best-effort basis.
func (s *SiteServiceImpl) sites(ctx context.Context) []models.Site {
	if sites, ok := s.read(ctx); ok {
		return sites
	}
	sites := s.defaults()
	_ = s.write(ctx, sites)
	return sites
}

// load returns the set a mutation starts from, writing the defaults first
// when nothing usable is persisted.
func (s *SiteServiceImpl) load(ctx context.Context) ([]models.Site, error) {
	if sites, ok := s.read(ctx); ok {
		return sites, nil
	}
	sites := s.defaults()
	if err := s.write(ctx, sites); err != nil {
		return nil, err
	}
	return sites, nil
}

func (s *SiteServiceImpl) write(ctx context.Context, sites []models.Site) error {
	data, err := json.Marshal(sites)
	if err != nil {
		return fmt.Errorf("failed to marshal sites: %w", err)
	}
	if err := s.kv.Set(ctx, secondary.KeySitesData, string(data)); err != nil {
		return fmt.Errorf("failed to save sites: %w", err)
	}
	return nil
}

func indexOf(sites []models.Site, id string) int {
	for i, site := range sites {
		if site.ID == id {
			return i
		}
	}
	return -1
}

func encode(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// Ensure SiteServiceImpl implements the interface
var _ primary.SiteService = (*SiteServiceImpl)(nil)
