// Package siteconfig loads per-version site configuration files.
//
// Files are YAML or JSON (JSON is read as YAML). Menus accept the vitepress
// item shape:
//
//	sidebar:
//	  - text: Documentation
//	    items:
//	      - { text: Usage, link: /pages/usage }
//
// and a compact mapping shape where a string value is a link and a nested
// mapping is a group:
//
//	sidebar:
//	  Documentation:
//	    Usage: /pages/usage
//
// Mapping order is display order. Unknown keys are rejected.
package siteconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/helixml/docnav/domain/nav"
	"github.com/helixml/docnav/domain/site"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig indicates a site file could not be understood.
var ErrInvalidConfig = errors.New("invalid site configuration")

// Extensions lists the file extensions LoadDir reads.
var Extensions = []string{".yaml", ".yml", ".json"}

// LoadError locates a configuration error within a file.
type LoadError struct {
	File   string
	Line   int
	Column int
	Err    error
}

// Error implements error.
func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %v", e.File, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error { return e.Err }

// Parse decodes one site file. version is used unless the file sets its own.
func Parse(file, version string, data []byte) (site.Site, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return site.Site{}, &LoadError{File: file, Err: fmt.Errorf("%w: %v", ErrInvalidConfig, err)}
	}
	p := parser{file: file}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return site.Site{}, p.errorf(&doc, "file is empty")
	}
	return p.site(doc.Content[0], version)
}

// LoadFile reads a single site file. The version defaults to the file name
// without its extension.
func LoadFile(filename string) (site.Site, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return site.Site{}, fmt.Errorf("read site file: %w", err)
	}
	return Parse(filename, versionFromName(filename), data)
}

// LoadDir reads every site file in dir.
func LoadDir(dir string) (site.Versions, error) {
	versions, err := LoadFS(os.DirFS(dir), ".")
	if err != nil {
		return site.Versions{}, fmt.Errorf("load %s: %w", dir, err)
	}
	return versions, nil
}

// LoadFS reads every site file in dir of fsys, in file name order.
func LoadFS(fsys fs.FS, dir string) (site.Versions, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return site.Versions{}, fmt.Errorf("read site directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsSiteFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	if len(names) == 0 {
		return site.Versions{}, fmt.Errorf("%w: no site files found", ErrInvalidConfig)
	}

	sites := make([]site.Site, 0, len(names))
	for _, name := range names {
		full := path.Join(dir, name)
		data, err := fs.ReadFile(fsys, full)
		if err != nil {
			return site.Versions{}, fmt.Errorf("read %s: %w", name, err)
		}
		s, err := Parse(name, versionFromName(name), data)
		if err != nil {
			return site.Versions{}, err
		}
		sites = append(sites, s)
	}
	return site.NewVersions(sites)
}

// IsSiteFile reports whether name has a site file extension.
func IsSiteFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func versionFromName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

type parser struct {
	file string
}

func (p parser) errorf(n *yaml.Node, format string, args ...any) error {
	return &LoadError{
		File:   p.file,
		Line:   n.Line,
		Column: n.Column,
		Err:    fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)),
	}
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// pairs returns the key/value nodes of a mapping, rejecting duplicate keys.
func (p parser) pairs(n *yaml.Node, what string) ([][2]*yaml.Node, error) {
	n = resolve(n)
	if n.Kind != yaml.MappingNode {
		return nil, p.errorf(n, "%s must be a mapping", what)
	}
	seen := make(map[string]bool, len(n.Content)/2)
	result := make([][2]*yaml.Node, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := resolve(n.Content[i]), resolve(n.Content[i+1])
		if k.Kind != yaml.ScalarNode {
			return nil, p.errorf(k, "%s keys must be strings", what)
		}
		if seen[k.Value] {
			return nil, p.errorf(k, "duplicate key %q in %s", k.Value, what)
		}
		seen[k.Value] = true
		result = append(result, [2]*yaml.Node{k, v})
	}
	return result, nil
}

func (p parser) scalar(n *yaml.Node, key string) (string, error) {
	n = resolve(n)
	if n.Kind != yaml.ScalarNode {
		return "", p.errorf(n, "%s must be a string", key)
	}
	return n.Value, nil
}

func (p parser) boolean(n *yaml.Node, key string) (bool, error) {
	var b bool
	if err := resolve(n).Decode(&b); err != nil {
		return false, p.errorf(n, "%s must be true or false", key)
	}
	return b, nil
}

func (p parser) site(root *yaml.Node, version string) (site.Site, error) {
	kv, err := p.pairs(root, "site")
	if err != nil {
		return site.Site{}, err
	}

	var (
		title   string
		sidebar = nav.NewTree(nil)
		opts    []site.Option
	)
	for _, pair := range kv {
		k, v := pair[0], pair[1]
		switch k.Value {
		case "version":
			if version, err = p.scalar(v, k.Value); err != nil {
				return site.Site{}, err
			}
		case "title":
			if title, err = p.scalar(v, k.Value); err != nil {
				return site.Site{}, err
			}
		case "description":
			s, err := p.scalar(v, k.Value)
			if err != nil {
				return site.Site{}, err
			}
			opts = append(opts, site.WithDescription(s))
		case "base":
			s, err := p.scalar(v, k.Value)
			if err != nil {
				return site.Site{}, err
			}
			opts = append(opts, site.WithBase(s))
		case "search":
			s, err := p.scalarOrField(v, k.Value, "provider")
			if err != nil {
				return site.Site{}, err
			}
			opts = append(opts, site.WithSearchProvider(s))
		case "editLink":
			s, err := p.scalarOrField(v, k.Value, "pattern", "text")
			if err != nil {
				return site.Site{}, err
			}
			opts = append(opts, site.WithEditLink(s))
		case "nav":
			t, err := p.menu(v, k.Value)
			if err != nil {
				return site.Site{}, err
			}
			opts = append(opts, site.WithNav(t))
		case "sidebar":
			if sidebar, err = p.menu(v, k.Value); err != nil {
				return site.Site{}, err
			}
		case "social", "socialLinks":
			links, err := p.social(v)
			if err != nil {
				return site.Site{}, err
			}
			opts = append(opts, site.WithSocialLinks(links...))
		default:
			return site.Site{}, p.errorf(k, "unknown key %q", k.Value)
		}
	}

	if strings.TrimSpace(version) == "" {
		return site.Site{}, p.errorf(root, "version is empty")
	}
	return site.New(version, title, sidebar, opts...), nil
}

// scalarOrField accepts either a plain string or a mapping whose first
// allowed key holds the value (e.g. search: {provider: local}).
func (p parser) scalarOrField(n *yaml.Node, key string, allowed ...string) (string, error) {
	n = resolve(n)
	if n.Kind == yaml.ScalarNode {
		return n.Value, nil
	}
	kv, err := p.pairs(n, key)
	if err != nil {
		return "", err
	}
	var value string
	for _, pair := range kv {
		switch pair[0].Value {
		case allowed[0]:
			if value, err = p.scalar(pair[1], key+"."+allowed[0]); err != nil {
				return "", err
			}
		default:
			if !contains(allowed[1:], pair[0].Value) {
				return "", p.errorf(pair[0], "unknown key %q in %s", pair[0].Value, key)
			}
		}
	}
	return value, nil
}

func (p parser) menu(n *yaml.Node, name string) (nav.Tree, error) {
	entries, err := p.entries(n, name)
	if err != nil {
		return nav.Tree{}, err
	}
	return nav.NewTree(entries), nil
}

func (p parser) entries(n *yaml.Node, where string) ([]nav.Entry, error) {
	n = resolve(n)
	switch n.Kind {
	case yaml.SequenceNode:
		result := make([]nav.Entry, 0, len(n.Content))
		for _, item := range n.Content {
			e, err := p.item(item, where)
			if err != nil {
				return nil, err
			}
			result = append(result, e)
		}
		return result, nil
	case yaml.MappingNode:
		return p.compact(n, where)
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return []nav.Entry{}, nil
		}
	}
	return nil, p.errorf(n, "%s must be a list of items or a mapping of labels", where)
}

// item decodes the vitepress shape {text, link, collapsed, items}.
func (p parser) item(n *yaml.Node, where string) (nav.Entry, error) {
	kv, err := p.pairs(n, where+" item")
	if err != nil {
		return nav.Entry{}, err
	}

	var (
		text, link string
		collapsed  bool
		items      []nav.Entry
		group      bool
	)
	for _, pair := range kv {
		k, v := pair[0], pair[1]
		switch k.Value {
		case "text":
			if text, err = p.scalar(v, "text"); err != nil {
				return nav.Entry{}, err
			}
		case "link":
			if link, err = p.scalar(v, "link"); err != nil {
				return nav.Entry{}, err
			}
		case "collapsed":
			if collapsed, err = p.boolean(v, "collapsed"); err != nil {
				return nav.Entry{}, err
			}
		case "items":
			group = true
			if items, err = p.entries(v, where+" > "+text); err != nil {
				return nav.Entry{}, err
			}
		default:
			return nav.Entry{}, p.errorf(k, "unknown key %q in %s item", k.Value, where)
		}
	}

	if group {
		return nav.NewGroup(text, items).WithLink(link).WithCollapsed(collapsed), nil
	}
	if collapsed {
		return nav.Entry{}, p.errorf(n, "collapsed is only valid on groups")
	}
	return nav.NewLink(text, link), nil
}

// compact decodes label: link and label: {children} mappings.
func (p parser) compact(n *yaml.Node, where string) ([]nav.Entry, error) {
	kv, err := p.pairs(n, where)
	if err != nil {
		return nil, err
	}
	result := make([]nav.Entry, 0, len(kv))
	for _, pair := range kv {
		label, v := pair[0].Value, pair[1]
		if v.Kind == yaml.ScalarNode {
			link := v.Value
			if v.Tag == "!!null" {
				link = ""
			}
			result = append(result, nav.NewLink(label, link))
			continue
		}
		children, err := p.entries(v, where+" > "+label)
		if err != nil {
			return nil, err
		}
		result = append(result, nav.NewGroup(label, children))
	}
	return result, nil
}

func (p parser) social(n *yaml.Node) ([]site.SocialLink, error) {
	n = resolve(n)
	if n.Kind != yaml.SequenceNode {
		return nil, p.errorf(n, "social must be a list")
	}
	links := make([]site.SocialLink, 0, len(n.Content))
	for _, item := range n.Content {
		kv, err := p.pairs(item, "social link")
		if err != nil {
			return nil, err
		}
		var icon, link string
		for _, pair := range kv {
			switch pair[0].Value {
			case "icon":
				icon, err = p.scalar(pair[1], "icon")
			case "link":
				link, err = p.scalar(pair[1], "link")
			default:
				return nil, p.errorf(pair[0], "unknown key %q in social link", pair[0].Value)
			}
			if err != nil {
				return nil, err
			}
		}
		links = append(links, site.NewSocialLink(icon, link))
	}
	return links, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
