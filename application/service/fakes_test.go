package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/helixml/docnav/domain/check"
	"github.com/helixml/docnav/domain/nav"
	"github.com/helixml/docnav/domain/site"
)

const githubURL = "https://github.com/Disservin/chess-library"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// chessSite builds a site with a Home nav link, the given sidebar and a
// GitHub social link.
func chessSite(version string, sidebar ...nav.Entry) site.Site {
	return site.New(version, "C++ Chess", nav.NewTree(sidebar),
		site.WithBase("/chess-library/"),
		site.WithNav(nav.NewTree([]nav.Entry{nav.NewLink("Home", "/")})),
		site.WithSocialLinks(site.NewSocialLink("github", githubURL)),
	)
}

// apiGroup is the API group holding Usage then Board.
func apiGroup() nav.Entry {
	return nav.NewGroup("API", []nav.Entry{
		nav.NewLink("Usage", "/pages/usage"),
		nav.NewLink("Board", "/pages/board"),
	})
}

func catalogOf(pages ...site.Page) site.Catalog {
	return site.NewCatalog(pages)
}

func page(path string, links ...string) site.Page {
	return site.NewPage(path, path, 100, links)
}

type fakeSiteSource struct {
	mu    sync.Mutex
	sites []site.Site
	err   error
	loads int
}

func (f *fakeSiteSource) Load(_ context.Context) (site.Versions, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.err != nil {
		return site.Versions{}, f.err
	}
	return site.NewVersions(f.sites)
}

func (f *fakeSiteSource) set(sites []site.Site, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sites = sites
	f.err = err
}

func (f *fakeSiteSource) loadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads
}

var errUnreachable = errors.New("unreachable")

type fakeProber struct {
	mu      sync.Mutex
	failing map[string]bool
	calls   map[string]int
}

func newFakeProber(failing ...string) *fakeProber {
	f := &fakeProber{failing: map[string]bool{}, calls: map[string]int{}}
	for _, u := range failing {
		f.failing[u] = true
	}
	return f
}

func (f *fakeProber) Probe(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.failing[url] {
		return errUnreachable
	}
	return nil
}

func (f *fakeProber) callCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

type fakeCatalogSource struct {
	catalog site.Catalog
	err     error
}

func (f fakeCatalogSource) Catalog(_ context.Context) (site.Catalog, error) {
	return f.catalog, f.err
}

type fakeRecorder struct {
	mu      sync.Mutex
	reports []check.Report
}

func (f *fakeRecorder) RecordCheck(r check.Report) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, r)
}

func (f *fakeRecorder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reports)
}

// fakeChangeSource reports each batch in turn, then waits for cancellation.
type fakeChangeSource struct {
	batches [][]string
}

func (f fakeChangeSource) Run(ctx context.Context, fn func(ctx context.Context, changed []string) error) error {
	for _, b := range f.batches {
		if err := fn(ctx, b); err != nil {
			return err
		}
	}
	<-ctx.Done()
	return nil
}
