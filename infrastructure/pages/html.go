package pages

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/helixml/docnav/domain/nav"
	"github.com/helixml/docnav/domain/site"
)

// HTMLSource reads a built site directory.
type HTMLSource struct {
	root string
}

// NewHTMLSource creates an HTMLSource rooted at dir.
func NewHTMLSource(dir string) HTMLSource {
	return HTMLSource{root: dir}
}

// Root returns the site output directory.
func (h HTMLSource) Root() string { return h.root }

// Catalog indexes every .html file under the root.
func (h HTMLSource) Catalog(ctx context.Context) (site.Catalog, error) {
	files, err := collect(ctx, h.root, ".html")
	if err != nil {
		return site.Catalog{}, err
	}

	pages := make([]site.Page, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f.abs)
		if err != nil {
			return site.Catalog{}, fmt.Errorf("read page %s: %w", f.rel, err)
		}
		title, links, err := parseHTML(data)
		if err != nil {
			return site.Catalog{}, fmt.Errorf("parse page %s: %w", f.rel, err)
		}
		pages = append(pages, site.NewPage(nav.CanonicalPage(f.rel), title, int64(len(data)), links))
	}
	return site.NewCatalog(pages), nil
}

// parseHTML returns the page title (<title>, else the first <h1>) and every
// anchor href in document order.
func parseHTML(data []byte) (string, []string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", nil, err
	}

	title := strings.TrimSpace(doc.Find("head > title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if href := strings.TrimSpace(s.AttrOr("href", "")); href != "" {
			links = append(links, href)
		}
	})
	return title, links, nil
}
