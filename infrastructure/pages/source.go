package pages

import (
	"context"

	"github.com/helixml/docnav/domain/site"
)

// Source builds a page catalog.
type Source interface {
	Catalog(ctx context.Context) (site.Catalog, error)
	Root() string
}

// Select picks the catalog source for the configured directories. A built
// HTML site wins over a markdown docs tree. It returns nil when neither is set.
func Select(docsDir, htmlDir string) Source {
	switch {
	case htmlDir != "":
		return NewHTMLSource(htmlDir)
	case docsDir != "":
		return NewMarkdownSource(docsDir)
	}
	return nil
}
