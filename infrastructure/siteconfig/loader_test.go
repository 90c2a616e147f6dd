package siteconfig

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/helixml/docnav/domain/nav"
	"github.com/helixml/docnav/domain/site"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(entries []nav.Entry) []string {
	result := make([]string, len(entries))
	for i, e := range entries {
		result[i] = e.Label()
	}
	return result
}

func TestParse_ItemShape(t *testing.T) {
	data := []byte(`
title: C++ Chess
description: Documentation for chess-library
base: /chess-library/
search:
  provider: local
editLink:
  pattern: https://github.com/Disservin/chess-library/edit/master/docs/:path
  text: Edit this page
nav:
  - { text: Home, link: / }
sidebar:
  - text: Documentation
    collapsed: true
    items:
      - { text: Usage, link: /pages/usage }
      - { text: Board Object, link: /pages/board-object }
social:
  - { icon: github, link: https://github.com/Disservin/chess-library }
`)

	s, err := Parse("v0.6.yaml", "v0.6", data)
	require.NoError(t, err)

	assert.Equal(t, "v0.6", s.Version())
	assert.Equal(t, "C++ Chess", s.Title())
	assert.Equal(t, "Documentation for chess-library", s.Description())
	assert.Equal(t, "/chess-library/", s.Base())
	assert.Equal(t, "local", s.SearchProvider())
	assert.Equal(t, "https://github.com/Disservin/chess-library/edit/master/docs/:path", s.EditLinkPattern())
	assert.Equal(t, []string{"Home"}, labels(s.Nav().Entries()))

	docs, ok := s.Sidebar().Find("Documentation")
	require.True(t, ok)
	assert.True(t, docs.IsGroup())
	assert.True(t, docs.Collapsed())
	assert.Equal(t, []string{"Usage", "Board Object"}, labels(docs.Items()))

	require.Len(t, s.SocialLinks(), 1)
	assert.Equal(t, "github", s.SocialLinks()[0].Icon())
	assert.Empty(t, s.Validate())
}

func TestParse_CompactShapeKeepsOrder(t *testing.T) {
	data := []byte(`
title: Chess
sidebar:
  API:
    Usage: /pages/usage
    Board: /pages/board
  Zeta: /pages/zeta
  Alpha: /pages/alpha
`)

	s, err := Parse("inline", "v1", data)
	require.NoError(t, err)

	assert.Equal(t, []string{"API", "Zeta", "Alpha"}, labels(s.Sidebar().Entries()))
	api, ok := s.Sidebar().Find("API")
	require.True(t, ok)
	assert.Equal(t, []string{"Usage", "Board"}, labels(api.Items()))
	assert.Equal(t, "/pages/board", api.Items()[1].Link())
}

func TestParse_CompactNullIsMissingLink(t *testing.T) {
	s, err := Parse("inline", "v1", []byte("title: T\nsidebar:\n  Usage:\n"))
	require.NoError(t, err)

	e, ok := s.Sidebar().Find("Usage")
	require.True(t, ok)
	assert.False(t, e.IsGroup())
	assert.Equal(t, "", e.Link())
}

func TestParse_JSON(t *testing.T) {
	data := []byte(`{"title": "T", "version": "v9", "sidebar": [{"text": "Usage", "link": "/pages/usage"}]}`)

	s, err := Parse("site.json", "ignored", data)
	require.NoError(t, err)
	assert.Equal(t, "v9", s.Version())
	assert.Equal(t, 1, s.Sidebar().Len())
}

func TestParse_EmptyGroupItems(t *testing.T) {
	s, err := Parse("inline", "v1", []byte("title: T\nsidebar:\n  - text: Empty\n    items: []\n"))
	require.NoError(t, err)

	e, ok := s.Sidebar().Find("Empty")
	require.True(t, ok)
	assert.True(t, e.IsGroup())
	assert.Equal(t, 0, e.Len())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		line int
	}{
		{name: "unknown top-level key", data: "title: T\ntheme: dark\n", line: 2},
		{name: "unknown item key", data: "title: T\nsidebar:\n  - text: A\n    href: /a\n", line: 4},
		{name: "title not string", data: "title: [a]\n", line: 1},
		{name: "collapsed on leaf", data: "title: T\nsidebar:\n  - text: A\n    link: /a\n    collapsed: true\n", line: 3},
		{name: "collapsed not bool", data: "title: T\nsidebar:\n  - text: A\n    collapsed: maybe\n    items: []\n", line: 4},
		{name: "duplicate key", data: "title: T\ntitle: U\n", line: 2},
		{name: "menu is scalar", data: "title: T\nsidebar: nope\n", line: 2},
		{name: "unknown social key", data: "title: T\nsocial:\n  - { icon: x, url: y }\n", line: 3},
		{name: "unknown search key", data: "title: T\nsearch: { kind: local }\n", line: 2},
		{name: "not a mapping", data: "- a\n- b\n", line: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.yaml", "v1", []byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))

			var le *LoadError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, "bad.yaml", le.File)
			assert.Equal(t, tt.line, le.Line)
		})
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse("broken.yaml", "v1", []byte("title: [unterminated\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Contains(t, err.Error(), "broken.yaml")
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse("empty.yaml", "v1", []byte(""))
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"sites/v0.10.yaml":  {Data: []byte("title: T\nsidebar:\n  Usage: /pages/usage\n")},
		"sites/v0.9.json":   {Data: []byte(`{"title": "T", "sidebar": {"Usage": "/pages/usage"}}`)},
		"sites/README.md":   {Data: []byte("# not a site")},
		"sites/nested/x.yml": {Data: []byte("title: ignored")},
	}

	versions, err := LoadFS(fsys, "sites")
	require.NoError(t, err)
	assert.Equal(t, []string{"v0.9", "v0.10"}, versions.Names())
}

func TestLoadFS_NoFiles(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{"sites/notes.txt": {Data: []byte("x")}}, "sites")
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestLoadFS_DuplicateVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("version: v1\ntitle: T\nsidebar: {U: /u}\n")},
		"b.yaml": {Data: []byte("version: v1\ntitle: T\nsidebar: {U: /u}\n")},
	}
	_, err := LoadFS(fsys, ".")
	assert.True(t, errors.Is(err, site.ErrDuplicateVersion))
}

func TestLoadFileAndDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "v2.yml")
	require.NoError(t, os.WriteFile(path, []byte("title: T\nsidebar:\n  Usage: /pages/usage\n"), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", s.Version())

	versions, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"v2"}, versions.Names())

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestBuiltin(t *testing.T) {
	versions, err := Builtin()
	require.NoError(t, err)
	assert.Equal(t, []string{"v0.4", "v0.5", "v0.6", "v0.7"}, versions.Names())

	for _, s := range versions.Sites() {
		assert.Empty(t, s.Validate(), "built-in %s should be structurally valid", s.Version())
		assert.Equal(t, "/chess-library/", s.Base())
	}

	latest, ok := versions.Latest()
	require.True(t, ok)
	docs, ok := latest.Sidebar().Find("Documentation")
	require.True(t, ok)
	assert.Equal(t, []string{
		"Usage", "Types", "Constants", "Board Object", "Move", "Movelist Object",
		"Intrinsic Functions", "Attacks", "Helper Functions", "Move Generation",
	}, labels(docs.Items()))
	assert.Equal(t, []string{"Home", "Usage", "Examples"}, labels(latest.Nav().Entries()))
}

func TestIsSiteFile(t *testing.T) {
	assert.True(t, IsSiteFile("v1.yaml"))
	assert.True(t, IsSiteFile("V1.JSON"))
	assert.False(t, IsSiteFile("notes.md"))
}

func TestSource_Load(t *testing.T) {
	ctx := context.Background()

	builtin, err := NewSource("").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, builtin.Len())

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "next.yaml"), []byte("title: T\nsidebar:\n  Usage: /pages/usage\n"), 0o644))
	fromDir, err := NewSource(dir).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"next"}, fromDir.Names())

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = NewSource(dir).Load(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}
