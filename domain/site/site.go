// Package site describes one documentation site version and the pages it can link to.
package site

import (
	"strings"

	"github.com/helixml/docnav/domain/check"
	"github.com/helixml/docnav/domain/nav"
)

// PathPlaceholder is replaced by the page's source file in edit links.
const PathPlaceholder = ":path"

// SocialLink is an icon link shown in the site header.
type SocialLink struct {
	icon string
	link string
}

// NewSocialLink creates a SocialLink.
func NewSocialLink(icon, link string) SocialLink {
	return SocialLink{icon: icon, link: link}
}

// Icon returns the icon name, e.g. "github".
func (s SocialLink) Icon() string { return s.icon }

// Link returns the target URL.
func (s SocialLink) Link() string { return s.link }

// Site is the navigation configuration of one documentation version.
type Site struct {
	version        string
	title          string
	description    string
	base           string
	searchProvider string
	editLink       string
	nav            nav.Tree
	sidebar        nav.Tree
	social         []SocialLink
}

// Option configures optional Site fields.
type Option func(*Site)

// WithDescription sets the site description.
func WithDescription(d string) Option {
	return func(s *Site) { s.description = d }
}

// WithBase sets the URL prefix the site is served under, e.g. "/chess-library/".
func WithBase(base string) Option {
	return func(s *Site) { s.base = base }
}

// WithSearchProvider sets the search provider name.
func WithSearchProvider(provider string) Option {
	return func(s *Site) { s.searchProvider = provider }
}

// WithEditLink sets the edit link pattern; it should contain ":path".
func WithEditLink(pattern string) Option {
	return func(s *Site) { s.editLink = pattern }
}

// WithNav sets the top navigation bar.
func WithNav(t nav.Tree) Option {
	return func(s *Site) { s.nav = t }
}

// WithSocialLinks sets the header icon links.
func WithSocialLinks(links ...SocialLink) Option {
	return func(s *Site) {
		s.social = make([]SocialLink, len(links))
		copy(s.social, links)
	}
}

// New creates a Site.
func New(version, title string, sidebar nav.Tree, opts ...Option) Site {
	s := Site{
		version: version,
		title:   title,
		base:    "/",
		nav:     nav.NewTree(nil),
		sidebar: sidebar,
		social:  []SocialLink{},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Version returns the documentation version name.
func (s Site) Version() string { return s.version }

// Title returns the site title.
func (s Site) Title() string { return s.title }

// Description returns the site description.
func (s Site) Description() string { return s.description }

// Base returns the URL prefix.
func (s Site) Base() string { return s.base }

// SearchProvider returns the search provider name.
func (s Site) SearchProvider() string { return s.searchProvider }

// EditLinkPattern returns the raw edit link pattern.
func (s Site) EditLinkPattern() string { return s.editLink }

// Nav returns the top navigation bar.
func (s Site) Nav() nav.Tree { return s.nav }

// Sidebar returns the sidebar menu.
func (s Site) Sidebar() nav.Tree { return s.sidebar }

// Menu returns the tree for the named menu ("nav" or "sidebar").
func (s Site) Menu(name string) (nav.Tree, bool) {
	switch check.Source(name) {
	case check.SourceNav:
		return s.nav, true
	case check.SourceSidebar:
		return s.sidebar, true
	}
	return nav.Tree{}, false
}

// SocialLinks returns the header icon links.
func (s Site) SocialLinks() []SocialLink {
	result := make([]SocialLink, len(s.social))
	copy(result, s.social)
	return result
}

// EditURL returns the edit link for a page, or "" when no pattern is set.
func (s Site) EditURL(page string) string {
	if s.editLink == "" {
		return ""
	}
	file := strings.TrimPrefix(nav.CanonicalPage(page), "/") + ".md"
	return strings.ReplaceAll(s.editLink, PathPlaceholder, file)
}

// SiteLink is a link found anywhere in the site configuration.
type SiteLink struct {
	Source check.Source
	Path   []string
	Link   nav.Link
}

// Links returns every link in the site: nav first, then sidebar, then
// social links, each in display order. Internal links are resolved
// relative to the site base.
func (s Site) Links() []SiteLink {
	var links []SiteLink
	for _, ref := range s.nav.Links() {
		links = append(links, SiteLink{Source: check.SourceNav, Path: ref.Path, Link: ref.Link.WithinBase(s.base)})
	}
	for _, ref := range s.sidebar.Links() {
		links = append(links, SiteLink{Source: check.SourceSidebar, Path: ref.Path, Link: ref.Link.WithinBase(s.base)})
	}
	for _, sl := range s.social {
		links = append(links, SiteLink{Source: check.SourceSocial, Path: []string{sl.icon}, Link: nav.ParseLink(sl.link)})
	}
	return links
}

// Validate reports structural problems in the whole site, tagged with the
// site version and the part of the configuration they were found in.
func (s Site) Validate() []check.Problem {
	problems := []check.Problem{}
	tag := func(ps []check.Problem, source check.Source) {
		for _, p := range ps {
			problems = append(problems, p.WithSource(source).WithVersion(s.version))
		}
	}

	var siteProblems []check.Problem
	if strings.TrimSpace(s.title) == "" {
		siteProblems = append(siteProblems, check.NewProblem(check.KindInvalidSite, []string{"title"}, "", "title is empty"))
	}
	if s.base != "" && (!strings.HasPrefix(s.base, "/") || !strings.HasSuffix(s.base, "/")) {
		siteProblems = append(siteProblems, check.NewProblem(check.KindInvalidSite, []string{"base"}, s.base,
			"base must start and end with \"/\""))
	}
	if s.editLink != "" && !strings.Contains(s.editLink, PathPlaceholder) {
		siteProblems = append(siteProblems, check.NewProblem(check.KindInvalidSite, []string{"editLink"}, s.editLink,
			"edit link pattern must contain "+PathPlaceholder))
	}
	if s.sidebar.Empty() {
		siteProblems = append(siteProblems, check.NewProblem(check.KindInvalidSite, []string{"sidebar"}, "", "sidebar is empty"))
	}
	tag(siteProblems, check.SourceSite)

	tag(s.nav.Validate(), check.SourceNav)
	tag(s.sidebar.Validate(), check.SourceSidebar)

	var socialProblems []check.Problem
	for _, sl := range s.social {
		path := []string{sl.icon}
		switch {
		case strings.TrimSpace(sl.icon) == "":
			socialProblems = append(socialProblems, check.NewProblem(check.KindEmptyLabel, path, sl.link, "social link has no icon"))
		case !nav.ParseLink(sl.link).IsExternal():
			socialProblems = append(socialProblems, check.NewProblem(check.KindMalformedLink, path, sl.link, "social links must be external URLs"))
		}
	}
	tag(socialProblems, check.SourceSocial)

	return problems
}
