package siteconfig

import (
	"context"

	"github.com/helixml/docnav/domain/site"
)

// Source loads every site version from a directory, or the built-in
// versions when no directory is set.
type Source struct {
	dir string
}

// NewSource creates a Source reading dir. An empty dir selects the built-in sites.
func NewSource(dir string) Source {
	return Source{dir: dir}
}

// Dir returns the site directory, empty for the built-in sites.
func (s Source) Dir() string { return s.dir }

// Load reads the site versions.
func (s Source) Load(ctx context.Context) (site.Versions, error) {
	if err := ctx.Err(); err != nil {
		return site.Versions{}, err
	}
	if s.dir == "" {
		return Builtin()
	}
	return LoadDir(s.dir)
}
