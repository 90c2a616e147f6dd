package jsonapi

import (
	"strings"

	"github.com/helixml/docnav/domain/check"
	"github.com/helixml/docnav/domain/nav"
	"github.com/helixml/docnav/domain/site"
)

// Resource types.
const (
	TypeVersion = "version"
	TypeCheck   = "check"
	TypePage    = "page"
)

// SocialLinkAttributes is a header icon link.
type SocialLinkAttributes struct {
	Icon string `json:"icon"`
	Link string `json:"link"`
}

// VersionSummaryAttributes describes a site version in listings.
type VersionSummaryAttributes struct {
	Title        string `json:"title"`
	Base         string `json:"base,omitempty"`
	Latest       bool   `json:"latest"`
	NavLinks     int    `json:"nav_links"`
	SidebarLinks int    `json:"sidebar_links"`
}

// VersionAttributes is the full configuration of a site version.
type VersionAttributes struct {
	Title          string                 `json:"title"`
	Description    string                 `json:"description,omitempty"`
	Base           string                 `json:"base,omitempty"`
	SearchProvider string                 `json:"search_provider,omitempty"`
	EditLink       string                 `json:"edit_link,omitempty"`
	Nav            nav.Tree               `json:"nav"`
	Sidebar        nav.Tree               `json:"sidebar"`
	SocialLinks    []SocialLinkAttributes `json:"social_links"`
}

// ProblemAttributes is one finding of a check.
type ProblemAttributes struct {
	Kind     string   `json:"kind"`
	Version  string   `json:"version,omitempty"`
	Source   string   `json:"source,omitempty"`
	Path     []string `json:"path"`
	Link     string   `json:"link,omitempty"`
	Message  string   `json:"message"`
	Location string   `json:"location"`
}

// CheckAttributes is a check report.
type CheckAttributes struct {
	OK           bool                `json:"ok"`
	Versions     []string            `json:"versions"`
	StartedAt    DateTime            `json:"started_at"`
	FinishedAt   DateTime            `json:"finished_at"`
	DurationMS   int64               `json:"duration_ms"`
	LinksChecked int                 `json:"links_checked"`
	PagesIndexed int                 `json:"pages_indexed"`
	Counts       map[string]int      `json:"counts"`
	Problems     []ProblemAttributes `json:"problems"`
}

// PageAttributes describes a page in the catalog.
type PageAttributes struct {
	Title string `json:"title"`
	Size  int64  `json:"size"`
	Links int    `json:"links"`
}

// VersionSummaryResource converts a site to a listing resource.
func VersionSummaryResource(s site.Site, latest bool) *Resource {
	return NewResource(TypeVersion, s.Version(), VersionSummaryAttributes{
		Title:        s.Title(),
		Base:         s.Base(),
		Latest:       latest,
		NavLinks:     len(s.Nav().Links()),
		SidebarLinks: len(s.Sidebar().Links()),
	})
}

// VersionResource converts a site to a full resource.
func VersionResource(s site.Site) *Resource {
	social := make([]SocialLinkAttributes, 0, len(s.SocialLinks()))
	for _, sl := range s.SocialLinks() {
		social = append(social, SocialLinkAttributes{Icon: sl.Icon(), Link: sl.Link()})
	}
	return NewResource(TypeVersion, s.Version(), VersionAttributes{
		Title:          s.Title(),
		Description:    s.Description(),
		Base:           s.Base(),
		SearchProvider: s.SearchProvider(),
		EditLink:       s.EditLinkPattern(),
		Nav:            s.Nav(),
		Sidebar:        s.Sidebar(),
		SocialLinks:    social,
	})
}

// CheckResource converts a report to a resource.
func CheckResource(r check.Report) *Resource {
	problems := make([]ProblemAttributes, 0, len(r.Problems()))
	for _, p := range r.Problems() {
		problems = append(problems, ProblemAttributes{
			Kind:     string(p.Kind()),
			Version:  p.Version(),
			Source:   string(p.Source()),
			Path:     p.Path(),
			Link:     p.Link(),
			Message:  p.Message(),
			Location: p.Location(),
		})
	}
	counts := make(map[string]int)
	for k, n := range r.CountByKind() {
		counts[string(k)] = n
	}
	return NewResource(TypeCheck, r.ID(), CheckAttributes{
		OK:           r.OK(),
		Versions:     r.Versions(),
		StartedAt:    DateTime(r.StartedAt()),
		FinishedAt:   DateTime(r.FinishedAt()),
		DurationMS:   r.Duration().Milliseconds(),
		LinksChecked: r.LinksChecked(),
		PagesIndexed: r.PagesIndexed(),
		Counts:       counts,
		Problems:     problems,
	})
}

// PageResource converts a catalog page to a resource. The page path is the ID.
func PageResource(p site.Page) *Resource {
	return NewResource(TypePage, strings.TrimPrefix(p.Path(), "/"), PageAttributes{
		Title: p.Title(),
		Size:  p.Size(),
		Links: len(p.Links()),
	})
}
