// Package render writes navigation menus as text, markdown, HTML or JSON.
// Output depends only on the tree and options, so rendering is deterministic.
package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"regexp"
	"strings"

	"github.com/helixml/docnav/domain/nav"
)

// ErrUnknownFormat indicates an unsupported output format.
var ErrUnknownFormat = errors.New("unknown format")

// Format is an output format.
type Format string

// Format values.
const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatMarkdown, FormatHTML, FormatJSON}
}

// ParseFormat parses a format name. The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension returns the conventional file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatHTML:
		return ".html"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

type options struct {
	base string
}

// Option configures rendering.
type Option func(*options)

// WithBase prefixes internal links with the site base (e.g. "/chess-library/")
// in markdown and HTML output.
func WithBase(base string) Option {
	return func(o *options) { o.base = base }
}

// Menu writes tree to w in format f.
func Menu(w io.Writer, tree nav.Tree, f Format, opts ...Option) error {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	switch f {
	case FormatText:
		return writeText(w, tree.Entries(), 0)
	case FormatMarkdown:
		return writeMarkdown(w, tree.Entries(), 0, o)
	case FormatHTML:
		return writeHTML(w, tree, o)
	case FormatJSON:
		data, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			return fmt.Errorf("render json: %w", err)
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// String renders tree in format f and returns the result.
func String(tree nav.Tree, f Format, opts ...Option) (string, error) {
	var buf bytes.Buffer
	if err := Menu(&buf, tree, f, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// writeText writes an indented outline with links after "->".
func writeText(w io.Writer, entries []nav.Entry, depth int) error {
	indent := strings.Repeat("  ", depth)
	for _, e := range entries {
		line := indent + e.Label()
		if e.Link() != "" {
			line += " -> " + e.Link()
		}
		if e.Collapsed() {
			line += " (collapsed)"
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
		if e.IsGroup() {
			if err := writeText(w, e.Items(), depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, `[`, `\[`, `]`, `\]`, `*`, `\*`, `_`, `\_`,
	"`", "\\`", `<`, `\<`, `>`, `\>`, `&`, `\&`, `|`, `\|`,
)

// orderedMarker matches text that would start an ordered list, e.g. "1. ".
var orderedMarker = regexp.MustCompile(`^(\d{1,9})([.)])`)

// markdownText escapes a label so it renders literally, including text that
// would otherwise open a heading or a nested list.
func markdownText(label string) string {
	escaped := markdownEscaper.Replace(label)
	if escaped != "" && strings.ContainsRune("#+-=", rune(escaped[0])) {
		escaped = `\` + escaped
	}
	return orderedMarker.ReplaceAllString(escaped, `$1\$2`)
}

// markdownDestination writes a link target, using the <...> form when the
// target holds characters that would end a bare destination.
func markdownDestination(link string) string {
	if !strings.ContainsAny(link, " \t()<>") {
		return link
	}
	return "<" + strings.NewReplacer(`<`, `\<`, `>`, `\>`).Replace(link) + ">"
}

func writeMarkdown(w io.Writer, entries []nav.Entry, depth int, o options) error {
	indent := strings.Repeat("  ", depth)
	for _, e := range entries {
		label := markdownText(e.Label())
		item := label
		if e.Link() != "" {
			item = "[" + label + "](" + markdownDestination(href(e.Link(), o.base)) + ")"
		} else if e.IsGroup() {
			item = "**" + label + "**"
		}
		if _, err := io.WriteString(w, indent+"- "+item+"\n"); err != nil {
			return err
		}
		if e.IsGroup() {
			if err := writeMarkdown(w, e.Items(), depth+1, o); err != nil {
				return err
			}
		}
	}
	return nil
}

// htmlItem is the template view of an entry.
type htmlItem struct {
	Label     string
	Href      string
	External  bool
	Group     bool
	Collapsed bool
	Items     []htmlItem
}

var menuTemplate = template.Must(template.New("menu").Parse(
	`{{define "items"}}<ul>
{{range .}}<li{{if .Group}} class="group{{if .Collapsed}} collapsed{{end}}"{{end}}>` +
		`{{if .Href}}<a href="{{.Href}}"{{if .External}} rel="noopener"{{end}}>{{.Label}}</a>{{else}}<span>{{.Label}}</span>{{end}}` +
		`{{if .Group}}
{{template "items" .Items}}{{end}}</li>
{{end}}</ul>{{end}}<nav class="docnav">
{{template "items" .}}
</nav>
`))

func writeHTML(w io.Writer, tree nav.Tree, o options) error {
	if err := menuTemplate.Execute(w, htmlItems(tree.Entries(), o)); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func htmlItems(entries []nav.Entry, o options) []htmlItem {
	items := make([]htmlItem, len(entries))
	for i, e := range entries {
		items[i] = htmlItem{
			Label:     e.Label(),
			External:  e.ParsedLink().IsExternal(),
			Group:     e.IsGroup(),
			Collapsed: e.Collapsed(),
		}
		if e.Link() != "" {
			items[i].Href = href(e.Link(), o.base)
		}
		if e.IsGroup() {
			items[i].Items = htmlItems(e.Items(), o)
		}
	}
	return items
}

// href prefixes internal links with base unless already present.
func href(link, base string) string {
	base = strings.TrimSuffix(base, "/")
	if base == "" || !nav.ParseLink(link).IsInternal() {
		return link
	}
	if link == base || strings.HasPrefix(link, base+"/") {
		return link
	}
	return base + link
}
