package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/helixml/docnav/domain/check"
	"github.com/helixml/docnav/domain/nav"
	"github.com/helixml/docnav/domain/site"
	"github.com/helixml/docnav/internal/config"
	"golang.org/x/sync/errgroup"
)

// Prober checks that an external URL is reachable.
type Prober interface {
	Probe(ctx context.Context, url string) error
}

// Outcome is the result of checking a set of sites.
type Outcome struct {
	Problems     []check.Problem
	LinksChecked int
}

type checkOptions struct {
	catalog    site.Catalog
	hasCatalog bool
	content    bool
	external   bool
}

// CheckOption configures a single Check call.
type CheckOption func(*checkOptions)

// WithCatalog resolves internal links against catalog. Without a catalog
// only the structure of each site is checked.
func WithCatalog(catalog site.Catalog) CheckOption {
	return func(o *checkOptions) {
		o.catalog = catalog
		o.hasCatalog = true
	}
}

// WithContentLinks also resolves links found inside page content.
func WithContentLinks(enabled bool) CheckOption {
	return func(o *checkOptions) { o.content = enabled }
}

// WithExternalLinks also probes external links over HTTP.
func WithExternalLinks(enabled bool) CheckOption {
	return func(o *checkOptions) { o.external = enabled }
}

// Checker validates site navigation.
type Checker struct {
	prober              Prober
	concurrency         int
	externalConcurrency int
	logger              *slog.Logger
}

// NewChecker creates a new Checker. prober may be nil when external links
// are never checked.
func NewChecker(cfg config.CheckConfig, prober Prober, logger *slog.Logger) *Checker {
	return &Checker{
		prober:              prober,
		concurrency:         cfg.Concurrency(),
		externalConcurrency: cfg.ExternalConcurrency(),
		logger:              logger,
	}
}

// siteResult is the per-version part of an Outcome.
type siteResult struct {
	problems []check.Problem
	external []site.SiteLink
	checked  int
}

// Check validates sites. Problems are ordered by version (in the order
// given), then by check stage, then by display order.
func (c *Checker) Check(ctx context.Context, sites []site.Site, opts ...CheckOption) (Outcome, error) {
	o := checkOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.external && c.prober == nil {
		return Outcome{}, errors.New("external link checks need a prober")
	}

	results := make([]siteResult, len(sites))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, st := range sites {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.checkSite(st, o)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Outcome{}, err
	}

	if o.external {
		if err := c.probeExternal(ctx, sites, results); err != nil {
			return Outcome{}, err
		}
	}

	out := Outcome{Problems: []check.Problem{}}
	for _, r := range results {
		out.Problems = append(out.Problems, r.problems...)
		out.LinksChecked += r.checked
	}

	if o.content && o.hasCatalog && len(sites) > 0 {
		problems, checked := c.checkContent(sites[len(sites)-1].Base(), o.catalog)
		out.Problems = append(out.Problems, problems...)
		out.LinksChecked += checked
	}
	return out, nil
}

func (c *Checker) checkSite(st site.Site, o checkOptions) siteResult {
	r := siteResult{problems: st.Validate()}
	for _, sl := range st.Links() {
		switch {
		case sl.Link.IsInternal() && o.hasCatalog:
			r.checked++
			if !o.catalog.Has(sl.Link.Page()) {
				r.problems = append(r.problems, check.NewProblem(
					check.KindDanglingLink,
					sl.Path,
					sl.Link.Raw(),
					fmt.Sprintf("page %s does not exist", sl.Link.Page()),
				).WithVersion(st.Version()).WithSource(sl.Source))
			}
		case sl.Link.IsWeb():
			r.external = append(r.external, sl)
		}
	}
	return r
}

// checkContent resolves every page-to-page link in the catalog once.
func (c *Checker) checkContent(base string, catalog site.Catalog) ([]check.Problem, int) {
	var problems []check.Problem
	checked := 0
	for _, page := range catalog.Pages() {
		for _, raw := range page.Links() {
			l := nav.ParseLink(raw).WithinBase(base).ResolveFrom(page.Path())
			if !l.IsInternal() {
				continue
			}
			checked++
			if catalog.Has(l.Page()) {
				continue
			}
			problems = append(problems, check.NewProblem(
				check.KindDanglingContentLink,
				[]string{page.Path()},
				raw,
				fmt.Sprintf("page %s does not exist", l.Page()),
			).WithSource(check.SourcePage))
		}
	}
	return problems, checked
}

// probeExternal probes each distinct external URL once and appends a
// problem to every site link that points at an unreachable one.
func (c *Checker) probeExternal(ctx context.Context, sites []site.Site, results []siteResult) error {
	var urls []string
	seen := make(map[string]bool)
	for _, r := range results {
		for _, sl := range r.external {
			u := strings.TrimSpace(sl.Link.Raw())
			if !seen[u] {
				seen[u] = true
				urls = append(urls, u)
			}
		}
	}
	if len(urls) == 0 {
		return nil
	}

	failures := make([]error, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.externalConcurrency)
	for i, u := range urls {
		g.Go(func() error {
			if err := c.prober.Probe(gctx, u); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				failures[i] = err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := make(map[string]error)
	for i, err := range failures {
		if err != nil {
			failed[urls[i]] = err
			c.logger.Warn("external link unreachable", slog.String("url", urls[i]), slog.String("error", err.Error()))
		}
	}

	for i := range results {
		for _, sl := range results[i].external {
			results[i].checked++
			err, bad := failed[strings.TrimSpace(sl.Link.Raw())]
			if !bad {
				continue
			}
			results[i].problems = append(results[i].problems, check.NewProblem(
				check.KindUnreachableExternal,
				sl.Path,
				sl.Link.Raw(),
				err.Error(),
			).WithVersion(sites[i].Version()).WithSource(sl.Source))
		}
	}
	return nil
}
