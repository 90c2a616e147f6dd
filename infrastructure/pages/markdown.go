// Package pages builds page catalogs from a markdown docs tree or a built HTML site.
package pages

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/helixml/docnav/domain/nav"
	"github.com/helixml/docnav/domain/site"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
}

// markdown parses CommonMark. Reference definitions are resolved by the
// parser, so reference-style links surface as ordinary link nodes.
var markdown = goldmark.New()

// MarkdownSource reads a vitepress-style docs directory.
type MarkdownSource struct {
	root string
}

// NewMarkdownSource creates a MarkdownSource rooted at dir.
func NewMarkdownSource(dir string) MarkdownSource {
	return MarkdownSource{root: dir}
}

// Root returns the docs directory.
func (m MarkdownSource) Root() string { return m.root }

// Catalog indexes every .md file under the root.
func (m MarkdownSource) Catalog(ctx context.Context) (site.Catalog, error) {
	files, err := collect(ctx, m.root, ".md")
	if err != nil {
		return site.Catalog{}, err
	}

	pages := make([]site.Page, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f.abs)
		if err != nil {
			return site.Catalog{}, fmt.Errorf("read page %s: %w", f.rel, err)
		}
		title, links := parseMarkdown(data)
		pages = append(pages, site.NewPage(nav.CanonicalPage(f.rel), title, int64(len(data)), links))
	}
	return site.NewCatalog(pages), nil
}

type file struct {
	abs string
	rel string
}

// collect walks root and returns files with the given extension, skipping
// hidden directories and dependency folders.
func collect(ctx context.Context, root, ext string) ([]file, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open %s: not a directory", root)
	}

	var files []file
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && (strings.HasPrefix(d.Name(), ".") || skipDirs[d.Name()]) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), ext) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files = append(files, file{abs: p, rel: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

// parseMarkdown returns the page title and the link targets of the body in
// document order. The title comes from front matter "title" or else the
// first level-one heading.
func parseMarkdown(data []byte) (string, []string) {
	title := ""
	body := data
	if fm, rest, ok := splitFrontMatter(data); ok {
		var meta struct {
			Title string `yaml:"title"`
		}
		if err := yaml.Unmarshal(fm, &meta); err == nil {
			title = strings.TrimSpace(meta.Title)
		}
		body = rest
	}
	heading, links := scanMarkdown(body)
	if title == "" {
		title = heading
	}
	return title, links
}

func splitFrontMatter(data []byte) ([]byte, []byte, bool) {
	normalized := bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return nil, data, false
	}
	rest := normalized[4:]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return nil, data, false
	}
	fm := rest[:end]
	body := rest[end+4:]
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = nil
	}
	return fm, body, true
}

// scanMarkdown walks the document for the first level-one heading and every
// link destination. Images, code spans and code blocks never yield links.
func scanMarkdown(body []byte) (string, []string) {
	doc := markdown.Parser().Parse(text.NewReader(body))

	heading := ""
	var links []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			if n.Level == 1 && heading == "" {
				heading = strings.TrimSpace(plainText(n, body))
			}
		case *ast.Link:
			if dest := strings.TrimSpace(string(n.Destination)); dest != "" {
				links = append(links, dest)
			}
		case *ast.AutoLink:
			links = append(links, string(n.URL(body)))
		case *ast.Image:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return heading, links
}

// plainText concatenates the text under n.
func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(source))
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(c.Value)
		default:
			b.WriteString(plainText(c, source))
		}
	}
	return b.String()
}
