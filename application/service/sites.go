package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/helixml/docnav/domain/nav"
	"github.com/helixml/docnav/domain/site"
	"github.com/helixml/docnav/infrastructure/render"
)

// LatestVersion selects the newest site version.
const LatestVersion = "latest"

// SiteSource loads every site version.
type SiteSource interface {
	Load(ctx context.Context) (site.Versions, error)
}

// Sites serves site versions, loading them on first use and caching them
// until Reload.
type Sites struct {
	source   SiteSource
	renderer Renderer
	logger   *slog.Logger

	mu       sync.RWMutex
	versions site.Versions
	loaded   bool
}

// NewSites creates a new Sites service.
func NewSites(source SiteSource, logger *slog.Logger) *Sites {
	return &Sites{
		source: source,
		logger: logger,
	}
}

// Versions returns every site version, oldest first.
func (s *Sites) Versions(ctx context.Context) (site.Versions, error) {
	s.mu.RLock()
	if s.loaded {
		v := s.versions
		s.mu.RUnlock()
		return v, nil
	}
	s.mu.RUnlock()
	return s.Reload(ctx)
}

// Reload reads the site versions from the source again. The cache is left
// untouched when loading fails.
func (s *Sites) Reload(ctx context.Context) (site.Versions, error) {
	versions, err := s.source.Load(ctx)
	if err != nil {
		return site.Versions{}, fmt.Errorf("load sites: %w", err)
	}

	s.mu.Lock()
	s.versions = versions
	s.loaded = true
	s.mu.Unlock()

	s.logger.Debug("sites loaded", slog.Any("versions", versions.Names()))
	return versions, nil
}

// Get returns one site version. "latest" and the empty string select the newest.
func (s *Sites) Get(ctx context.Context, version string) (site.Site, error) {
	versions, err := s.Versions(ctx)
	if err != nil {
		return site.Site{}, err
	}
	if version == "" || version == LatestVersion {
		latest, ok := versions.Latest()
		if !ok {
			return site.Site{}, fmt.Errorf("%w: no versions loaded", site.ErrUnknownVersion)
		}
		return latest, nil
	}
	return versions.Get(version)
}

// Menu returns the "nav" or "sidebar" tree of a site version.
func (s *Sites) Menu(ctx context.Context, version, menu string) (nav.Tree, error) {
	st, err := s.Get(ctx, version)
	if err != nil {
		return nav.Tree{}, err
	}
	tree, ok := st.Menu(menu)
	if !ok {
		return nav.Tree{}, fmt.Errorf("%w: %q", ErrUnknownMenu, menu)
	}
	return tree, nil
}

// Render renders a menu of a site version in the given format.
func (s *Sites) Render(ctx context.Context, version, menu string, format render.Format) (string, error) {
	st, err := s.Get(ctx, version)
	if err != nil {
		return "", err
	}
	return s.renderer.Render(ctx, st, menu, format)
}

// Diff compares a menu between two site versions.
func (s *Sites) Diff(ctx context.Context, from, to, menu string) ([]nav.Change, error) {
	a, err := s.Menu(ctx, from, menu)
	if err != nil {
		return nil, err
	}
	b, err := s.Menu(ctx, to, menu)
	if err != nil {
		return nil, err
	}
	return nav.Diff(a, b), nil
}

// Renderer renders site menus.
type Renderer struct{}

// Render returns the named menu of st in format f, with internal links
// prefixed by the site base.
func (Renderer) Render(ctx context.Context, st site.Site, menu string, f render.Format) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	tree, ok := st.Menu(menu)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMenu, menu)
	}
	return render.String(tree, f, render.WithBase(st.Base()))
}
