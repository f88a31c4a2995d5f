// Package wire provides dependency injection for the fieldkit application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"io"
	"log"
	"os"
	"sync"

	cliadapter "github.com/example/fieldkit/internal/adapters/cli"
	"github.com/example/fieldkit/internal/adapters/filesystem"
	"github.com/example/fieldkit/internal/adapters/sqlite"
	"github.com/example/fieldkit/internal/app"
	"github.com/example/fieldkit/internal/clock"
	"github.com/example/fieldkit/internal/config"
	"github.com/example/fieldkit/internal/core/flow"
	"github.com/example/fieldkit/internal/db"
	"github.com/example/fieldkit/internal/ports/primary"
	"github.com/example/fieldkit/internal/ports/secondary"
)

var (
	cfg               *config.Config
	siteService       primary.SiteService
	progressService   primary.ProgressService
	navigationService primary.NavigationService
	deploymentService primary.DeploymentService
	retrievalService  primary.RetrievalService
	logService        primary.LogService
	once              sync.Once
)

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// SiteService returns the singleton SiteService instance.
func SiteService() primary.SiteService {
	once.Do(initServices)
	return siteService
}

// ProgressService returns the singleton ProgressService instance.
func ProgressService() primary.ProgressService {
	once.Do(initServices)
	return progressService
}

// NavigationService returns the singleton NavigationService instance.
func NavigationService() primary.NavigationService {
	once.Do(initServices)
	return navigationService
}

// DeploymentService returns the singleton DeploymentService instance.
func DeploymentService() primary.DeploymentService {
	once.Do(initServices)
	return deploymentService
}

// RetrievalService returns the singleton RetrievalService instance.
func RetrievalService() primary.RetrievalService {
	once.Do(initServices)
	return retrievalService
}

// LogService returns the singleton LogService instance.
func LogService() primary.LogService {
	once.Do(initServices)
	return logService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	dir, err := config.ResolveDir()
	if err != nil {
		log.Fatalf("failed to resolve fieldkit directory: %v", err)
	}
	cfg, err = config.LoadOrDefault(dir)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// The field log always lives in sqlite, whichever store holds the sites
	db.SetPath(cfg.DatabasePath(dir))
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	var kv secondary.KeyValueStore
	switch cfg.Storage {
	case config.StorageFile:
		kv = filesystem.NewFileKVStore(cfg.DataFilePath(dir))
	default:
		kv = sqlite.NewKVStore(database)
	}

	clk := clock.RealClock{}
	logRepo := sqlite.NewFieldLogRepository(database)
	logWriter := sqlite.NewLogWriterAdapter(logRepo, clk)
	catalog := flow.DefaultCatalog()

	sites := app.NewSiteService(kv, logWriter, cfg.SiteIDs())
	progress := app.NewProgressService(kv, logWriter)
	nav := app.NewNavigationService(catalog, sites, progress)

	siteService = sites
	progressService = progress
	navigationService = nav
	deploymentService = app.NewDeploymentService(sites, progress, nav, catalog, kv)
	retrievalService = app.NewRetrievalService(sites, progress, nav, catalog, kv, clk)
	logService = app.NewLogService(logRepo)

	if err := sites.Initialize(context.Background()); err != nil {
		log.Fatalf("failed to initialize sites: %v", err)
	}
}

// BoardAdapter returns a new BoardAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func BoardAdapter() *cliadapter.BoardAdapter {
	return BoardAdapterWithOutput(os.Stdout)
}

// BoardAdapterWithOutput returns a new BoardAdapter writing to the given output.
func BoardAdapterWithOutput(out io.Writer) *cliadapter.BoardAdapter {
	once.Do(initServices)
	return cliadapter.NewBoardAdapter(navigationService, out)
}

// SiteAdapter returns a new SiteAdapter writing to stdout.
func SiteAdapter() *cliadapter.SiteAdapter {
	return SiteAdapterWithOutput(os.Stdout)
}

// SiteAdapterWithOutput returns a new SiteAdapter writing to the given output.
func SiteAdapterWithOutput(out io.Writer) *cliadapter.SiteAdapter {
	once.Do(initServices)
	return cliadapter.NewSiteAdapter(siteService, out)
}

// WorkflowAdapter returns a new WorkflowAdapter writing to stdout.
func WorkflowAdapter() *cliadapter.WorkflowAdapter {
	return WorkflowAdapterWithOutput(os.Stdout)
}

// WorkflowAdapterWithOutput returns a new WorkflowAdapter writing to the given output.
func WorkflowAdapterWithOutput(out io.Writer) *cliadapter.WorkflowAdapter {
	once.Do(initServices)
	return cliadapter.NewWorkflowAdapter(deploymentService, retrievalService, out)
}

// LogAdapter returns a new LogAdapter writing to stdout.
func LogAdapter() *cliadapter.LogAdapter {
	return LogAdapterWithOutput(os.Stdout)
}

// LogAdapterWithOutput returns a new LogAdapter writing to the given output.
func LogAdapterWithOutput(out io.Writer) *cliadapter.LogAdapter {
	once.Do(initServices)
	return cliadapter.NewLogAdapter(logService, out)
}
