package site

import (
	"sort"

	"github.com/helixml/docnav/domain/nav"
)

// Page is a document that navigation may link to.
type Page struct {
	path  string
	title string
	size  int64
	links []string
}

// NewPage creates a Page. path may be a file path ("pages/usage.md") or a
// page path ("/pages/usage"); it is stored in canonical form.
func NewPage(path, title string, size int64, links []string) Page {
	if links == nil {
		links = []string{}
	}
	l := make([]string, len(links))
	copy(l, links)
	return Page{
		path:  nav.CanonicalPage(path),
		title: title,
		size:  size,
		links: l,
	}
}

// Path returns the canonical page path, e.g. "/pages/usage".
func (p Page) Path() string { return p.path }

// Title returns the page title, if known.
func (p Page) Title() string { return p.title }

// Size returns the source size in bytes.
func (p Page) Size() int64 { return p.size }

// Links returns the raw links found in the page content.
func (p Page) Links() []string {
	result := make([]string, len(p.links))
	copy(result, p.links)
	return result
}

// Catalog is the set of pages that exist.
type Catalog struct {
	pages map[string]Page
}

// NewCatalog creates a Catalog. Later pages with the same path replace earlier ones.
func NewCatalog(pages []Page) Catalog {
	c := Catalog{pages: make(map[string]Page, len(pages))}
	for _, p := range pages {
		c.pages[p.path] = p
	}
	return c
}

// Has reports whether page exists. page is canonicalised first.
func (c Catalog) Has(page string) bool {
	_, ok := c.pages[nav.CanonicalPage(page)]
	return ok
}

// Page returns the page at path.
func (c Catalog) Page(path string) (Page, bool) {
	p, ok := c.pages[nav.CanonicalPage(path)]
	return p, ok
}

// Pages returns every page sorted by path.
func (c Catalog) Pages() []Page {
	result := make([]Page, 0, len(c.pages))
	for _, p := range c.pages {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].path < result[j].path })
	return result
}

// Len returns the number of pages.
func (c Catalog) Len() int { return len(c.pages) }
