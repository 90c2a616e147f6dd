package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/helixml/docnav/domain/check"
	"github.com/helixml/docnav/domain/site"
	"github.com/helixml/docnav/internal/config"
	"github.com/helixml/docnav/internal/log"
)

// CatalogSource builds the catalog of pages that exist.
type CatalogSource interface {
	Catalog(ctx context.Context) (site.Catalog, error)
}

// ReportRecorder receives every finished report.
type ReportRecorder interface {
	RecordCheck(report check.Report)
}

type runOptions struct {
	versions []string
	content  bool
	external bool
}

// RunOption configures a single check run.
type RunOption func(*runOptions)

// WithVersions limits the run to the named versions. None means all.
func WithVersions(versions ...string) RunOption {
	return func(o *runOptions) { o.versions = versions }
}

// WithContent overrides whether page content links are checked.
func WithContent(enabled bool) RunOption {
	return func(o *runOptions) { o.content = enabled }
}

// WithExternal overrides whether external links are probed.
func WithExternal(enabled bool) RunOption {
	return func(o *runOptions) { o.external = enabled }
}

// Checks runs navigation checks and keeps their history.
type Checks struct {
	sites    *Sites
	checker  *Checker
	catalogs CatalogSource
	store    check.ReportStore
	recorder ReportRecorder
	cfg      config.CheckConfig
	keep     int
	logger   *slog.Logger
	now      func() time.Time

	mu sync.Mutex
}

// ChecksOption configures Checks.
type ChecksOption func(*Checks)

// WithCatalogSource sets where pages are read from. Without one, runs only
// check site structure.
func WithCatalogSource(src CatalogSource) ChecksOption {
	return func(c *Checks) { c.catalogs = src }
}

// WithRecorder sets a recorder that sees every finished report.
func WithRecorder(r ReportRecorder) ChecksOption {
	return func(c *Checks) { c.recorder = r }
}

// WithHistoryKeep sets how many reports are kept after each run.
func WithHistoryKeep(n int) ChecksOption {
	return func(c *Checks) { c.keep = n }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) ChecksOption {
	return func(c *Checks) { c.now = now }
}

// NewChecks creates a new Checks service.
func NewChecks(
	cfg config.CheckConfig,
	sites *Sites,
	checker *Checker,
	store check.ReportStore,
	logger *slog.Logger,
	opts ...ChecksOption,
) *Checks {
	c := &Checks{
		sites:   sites,
		checker: checker,
		store:   store,
		cfg:     cfg,
		keep:    config.DefaultHistoryKeep,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run checks the selected versions, stores the report and returns it.
// A report with problems is not an error; use Report.Err for that.
// Runs are serialised.
func (c *Checks) Run(ctx context.Context, opts ...RunOption) (check.Report, error) {
	o := runOptions{content: c.cfg.Content(), external: c.cfg.External()}
	for _, opt := range opts {
		opt(&o)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := uuid.NewString()
	ctx = log.WithRunID(ctx, id)
	logger := c.logger.With(slog.String(string(log.RunIDKey), id))
	started := c.now()

	versions, err := c.sites.Versions(ctx)
	if err != nil {
		return check.Report{}, err
	}
	selected, err := versions.Select(o.versions...)
	if err != nil {
		return check.Report{}, err
	}

	checkOpts := []CheckOption{WithContentLinks(o.content), WithExternalLinks(o.external)}
	pagesIndexed := 0
	if c.catalogs != nil {
		catalog, err := c.catalogs.Catalog(ctx)
		if err != nil {
			return check.Report{}, fmt.Errorf("build catalog: %w", err)
		}
		pagesIndexed = catalog.Len()
		checkOpts = append(checkOpts, WithCatalog(catalog))
	} else {
		logger.Warn("no docs or html directory configured, checking structure only")
	}

	outcome, err := c.checker.Check(ctx, selected, checkOpts...)
	if err != nil {
		return check.Report{}, err
	}

	names := make([]string, len(selected))
	for i, s := range selected {
		names[i] = s.Version()
	}
	report := check.NewReport(id, names, started, c.now(), outcome.LinksChecked, pagesIndexed, outcome.Problems)

	report, err = c.store.Save(ctx, report)
	if err != nil {
		return check.Report{}, err
	}
	if pruned, err := c.store.Prune(ctx, c.keep); err != nil {
		logger.Warn("failed to prune check history", slog.String("error", err.Error()))
	} else if pruned > 0 {
		logger.Debug("pruned check history", slog.Int64("deleted", pruned))
	}

	if c.recorder != nil {
		c.recorder.RecordCheck(report)
	}

	logger.Info("check finished",
		slog.Any("versions", names),
		slog.Int("links", report.LinksChecked()),
		slog.Int("problems", len(report.Problems())),
		slog.Duration("duration", report.Duration()),
	)
	return report, nil
}

// Latest returns the most recent report.
func (c *Checks) Latest(ctx context.Context) (check.Report, error) {
	return c.store.Latest(ctx)
}

// Get returns the report with the given ID.
func (c *Checks) Get(ctx context.Context, id string) (check.Report, error) {
	return c.store.Get(ctx, id)
}

// List returns up to limit reports, newest first. A non-positive limit
// uses the default.
func (c *Checks) List(ctx context.Context, limit int) ([]check.Report, error) {
	if limit <= 0 {
		limit = config.DefaultHistoryLimit
	}
	return c.store.List(ctx, limit)
}

// ChangeSource notifies about file changes until ctx is done.
type ChangeSource interface {
	Run(ctx context.Context, fn func(ctx context.Context, changed []string) error) error
}

// Watch runs a check now and again after every change reported by source,
// reloading the sites first. Each report, or the error that prevented it,
// is passed to onReport. It returns when ctx is cancelled.
func (c *Checks) Watch(ctx context.Context, source ChangeSource, onReport func(check.Report, error), opts ...RunOption) error {
	run := func(ctx context.Context) {
		if _, err := c.sites.Reload(ctx); err != nil {
			onReport(check.Report{}, err)
			return
		}
		report, err := c.Run(ctx, opts...)
		if errors.Is(err, context.Canceled) {
			return
		}
		onReport(report, err)
	}

	run(ctx)
	return source.Run(ctx, func(ctx context.Context, changed []string) error {
		c.logger.Info("files changed, checking again", slog.Int("files", len(changed)))
		run(ctx)
		return nil
	})
}
