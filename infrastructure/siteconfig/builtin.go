package siteconfig

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/helixml/docnav/domain/site"
)

//go:embed builtin
var builtinFS embed.FS

// Builtin returns the chess-library documentation versions shipped with the binary.
func Builtin() (site.Versions, error) {
	versions, err := LoadFS(builtinFS, "builtin")
	if err != nil {
		return site.Versions{}, fmt.Errorf("load built-in sites: %w", err)
	}
	return versions, nil
}

// BuiltinFS exposes the raw built-in site files.
func BuiltinFS() fs.FS {
	sub, _ := fs.Sub(builtinFS, "builtin")
	return sub
}
