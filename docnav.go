// Package docnav validates and renders the navigation of a versioned
// documentation site.
//
// Basic usage:
//
//	client, err := docnav.New(
//	    docnav.WithSQLite(".docnav/docnav.db"),
//	    docnav.WithDocsDir("docs"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Check every version against the docs tree
//	report, err := client.Checks.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range report.Problems() {
//	    fmt.Println(p)
//	}
//
//	// Render the newest sidebar
//	menu, err := client.Sites.Render(ctx, "latest", "sidebar", render.FormatMarkdown)
package docnav

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/helixml/docnav/application/service"
	"github.com/helixml/docnav/domain/check"
	"github.com/helixml/docnav/domain/site"
	"github.com/helixml/docnav/infrastructure/linkprobe"
	"github.com/helixml/docnav/infrastructure/metrics"
	"github.com/helixml/docnav/infrastructure/pages"
	"github.com/helixml/docnav/infrastructure/persistence"
	"github.com/helixml/docnav/infrastructure/siteconfig"
	"github.com/helixml/docnav/infrastructure/watch"
	"github.com/helixml/docnav/internal/config"
	"github.com/helixml/docnav/internal/database"
)

// Client is the main entry point for the docnav library.
//
// Access resources via struct fields:
//
//	client.Sites.Versions(ctx)
//	client.Checks.Run(ctx, service.WithVersions("v0.7"))
type Client struct {
	Sites    *service.Sites
	Checks   *service.Checks
	Schedule *service.PeriodicCheck

	db       database.Database
	catalogs pages.Source
	metrics  *metrics.Collector
	cfg      config.AppConfig
	logger   *slog.Logger
	closed   atomic.Bool
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	app := cfg.app

	logger := cfg.logger
	if logger == nil {
		logger = config.DefaultLogger()
	}

	if _, err := config.PrepareDataDir(app.DataDir()); err != nil {
		return nil, err
	}

	ctx := context.Background()
	db, err := database.NewDatabaseWithLogger(ctx, app.DBURL(), logger)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}

	prober := cfg.prober
	if prober == nil {
		prober = linkprobe.New(app.Check().ExternalTimeout())
	}

	catalogs := pages.Select(app.DocsDir(), app.HTMLDir())

	checksOpts := []service.ChecksOption{service.WithHistoryKeep(app.HistoryKeep())}
	if catalogs != nil {
		checksOpts = append(checksOpts, service.WithCatalogSource(catalogs))
	}
	if cfg.metrics != nil {
		checksOpts = append(checksOpts, service.WithRecorder(cfg.metrics))
	}

	sites := service.NewSites(siteconfig.NewSource(app.SiteDir()), logger)
	checker := service.NewChecker(app.Check(), prober, logger)

	checks := service.NewChecks(app.Check(), sites, checker, persistence.NewReportStore(db), logger, checksOpts...)

	client := &Client{
		Sites:    sites,
		Checks:   checks,
		Schedule: service.NewPeriodicCheck(app.Check(), checks, logger),
		db:       db,
		catalogs: catalogs,
		metrics:  cfg.metrics,
		cfg:      app,
		logger:   logger,
	}
	return client, nil
}

// Close releases the database.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}
	c.Schedule.Stop()
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	c.logger.Debug("docnav client closed")
	return nil
}

// Catalog builds the catalog of pages from the configured docs or html directory.
func (c *Client) Catalog(ctx context.Context) (site.Catalog, error) {
	if c.catalogs == nil {
		return site.Catalog{}, ErrNoCatalog
	}
	return c.catalogs.Catalog(ctx)
}

// Watch checks now and after every change under the site, docs and html
// directories until ctx is cancelled. Each report, or the error that
// prevented it, is passed to onReport.
func (c *Client) Watch(ctx context.Context, onReport func(check.Report, error), opts ...service.RunOption) error {
	if c.cfg.SiteDir() == "" && c.cfg.DocsDir() == "" && c.cfg.HTMLDir() == "" {
		return ErrNothingToWatch
	}
	w := watch.New(c.cfg.Watch().Debounce(), c.logger, c.cfg.SiteDir(), c.cfg.DocsDir(), c.cfg.HTMLDir())
	return c.Checks.Watch(ctx, w, onReport, opts...)
}

// Config returns the configuration the client was built with.
func (c *Client) Config() config.AppConfig {
	return c.cfg
}

// Metrics returns the collector checks are recorded in, or nil.
func (c *Client) Metrics() *metrics.Collector {
	return c.metrics
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}
