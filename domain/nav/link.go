package nav

import (
	"path"
	"regexp"
	"strings"
)

// LinkKind classifies a link target.
type LinkKind int

// LinkKind values.
const (
	LinkEmpty LinkKind = iota
	LinkInternal
	LinkRelative
	LinkExternal
	LinkAnchor
)

// String returns the kind name.
func (k LinkKind) String() string {
	switch k {
	case LinkInternal:
		return "internal"
	case LinkRelative:
		return "relative"
	case LinkExternal:
		return "external"
	case LinkAnchor:
		return "anchor"
	default:
		return "empty"
	}
}

// uriScheme matches an RFC 3986 scheme prefix such as "https:" or "irc:".
var uriScheme = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9+.-]*):`)

// Link is a parsed navigation target.
//
// Internal links carry a canonical page path: query and fragment removed,
// ".md"/".html" suffixes dropped, and directory links ("/", "/pages/")
// mapped to their index page ("/index", "/pages/index").
type Link struct {
	raw      string
	kind     LinkKind
	scheme   string
	page     string
	fragment string
}

// ParseLink classifies and normalises raw.
func ParseLink(raw string) Link {
	trimmed := strings.TrimSpace(raw)
	l := Link{raw: raw}

	switch {
	case trimmed == "":
		l.kind = LinkEmpty
		return l
	case strings.HasPrefix(trimmed, "#"):
		l.kind = LinkAnchor
		l.fragment = strings.TrimPrefix(trimmed, "#")
		return l
	case strings.HasPrefix(trimmed, "//"):
		l.kind = LinkExternal
		return l
	case uriScheme.MatchString(trimmed):
		l.kind = LinkExternal
		l.scheme = strings.ToLower(uriScheme.FindStringSubmatch(trimmed)[1])
		return l
	case strings.HasPrefix(trimmed, "/"):
		l.kind = LinkInternal
	default:
		l.kind = LinkRelative
	}

	target, fragment := splitFragment(trimmed)
	l.fragment = fragment
	if l.kind == LinkInternal {
		l.page = CanonicalPage(target)
	} else {
		l.page = target
	}
	return l
}

// Raw returns the link exactly as written.
func (l Link) Raw() string { return l.raw }

// Kind returns the link classification.
func (l Link) Kind() LinkKind { return l.kind }

// Scheme returns the lower-cased URI scheme of an external link, e.g.
// "https" or "mailto". Protocol-relative links ("//host/x") have none.
func (l Link) Scheme() string { return l.scheme }

// IsWeb reports whether the link is an http(s) URL that can be fetched.
func (l Link) IsWeb() bool { return l.scheme == "http" || l.scheme == "https" }

// Page returns the canonical page path of an internal link.
// For relative links it returns the unresolved target; otherwise "".
func (l Link) Page() string { return l.page }

// Fragment returns the anchor part without "#".
func (l Link) Fragment() string { return l.fragment }

// IsInternal reports whether the link points at a page of this site.
func (l Link) IsInternal() bool { return l.kind == LinkInternal }

// IsExternal reports whether the link leaves the site.
func (l Link) IsExternal() bool { return l.kind == LinkExternal }

// WithinBase strips the site base ("/chess-library/") from an internal link
// written with the base included. Links without the prefix are unchanged.
func (l Link) WithinBase(base string) Link {
	if l.kind != LinkInternal {
		return l
	}
	base = strings.TrimSuffix(base, "/")
	if base == "" {
		return l
	}
	if l.page == base || l.page == base+"/index" {
		l.page = "/index"
		return l
	}
	if strings.HasPrefix(l.page, base+"/") {
		l.page = CanonicalPage(strings.TrimPrefix(l.page, base))
	}
	return l
}

// ResolveFrom resolves a relative link against the page it appears on.
// Non-relative links are returned unchanged.
func (l Link) ResolveFrom(page string) Link {
	if l.kind != LinkRelative {
		return l
	}
	dir := path.Dir(CanonicalPage(page))
	target := l.page
	if strings.HasSuffix(target, "/") {
		target += "index"
	}
	l.page = CanonicalPage(path.Join(dir, target))
	l.kind = LinkInternal
	return l
}

// String returns the raw link.
func (l Link) String() string { return l.raw }

// CanonicalPage maps a page path or file path to its canonical form,
// e.g. "pages/usage.md" -> "/pages/usage", "/" -> "/index".
func CanonicalPage(p string) string {
	p = strings.TrimSpace(p)
	p, _ = splitFragment(p)
	if p == "" {
		return "/index"
	}
	dirLink := strings.HasSuffix(p, "/")
	p = path.Clean("/" + p)
	if dirLink || p == "/" {
		p = strings.TrimSuffix(p, "/") + "/index"
	}
	for _, ext := range []string{".md", ".html"} {
		if strings.HasSuffix(p, ext) {
			p = strings.TrimSuffix(p, ext)
			break
		}
	}
	return p
}

func splitFragment(s string) (string, string) {
	fragment := ""
	if i := strings.IndexByte(s, '#'); i >= 0 {
		fragment = s[i+1:]
		s = s[:i]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	return s, fragment
}
